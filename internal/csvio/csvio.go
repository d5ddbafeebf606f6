// =============================================================================
// Profit Calculator - CSV Reader/Writer
// =============================================================================
//
// This module exports the row collection as a flat CSV table and reads such
// tables back. The first line is a header naming the 14 fields; each further
// line is one row.
//
// FEATURES:
//   - Configurable delimiter (comma, semicolon, tab, pipe)
//   - Lenient reading: lazy quotes, variable column counts, trimmed space
//   - Column lookup by header name, so column order does not matter on read
//
// Decoded rows pass through codec.FromRecords and get the same shape checks
// as JSON and YAML documents.
//
// =============================================================================

package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ginjaninja78/profit-calculator/internal/codec"
	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings contains options for reading and writing CSV.
type Settings struct {
	// Delimiter separates fields. Accepts a single character or one of the
	// names "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string
}

// DefaultSettings returns comma-separated settings.
func DefaultSettings() Settings {
	return Settings{Delimiter: ","}
}

// comma resolves the configured delimiter.
func (s Settings) comma() rune {
	switch s.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	default:
		if len(s.Delimiter) > 0 {
			return rune(s.Delimiter[0])
		}
		return ','
	}
}

// =============================================================================
// WRITING
// =============================================================================

// Write writes a header line followed by one line per row.
func Write(w io.Writer, rows []row.Row, settings Settings) error {
	cw := csv.NewWriter(w)
	cw.Comma = settings.comma()

	header := make([]string, len(row.AllFields))
	for i, f := range row.AllFields {
		header[i] = string(f)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// =============================================================================
// READING
// =============================================================================

// Read parses a CSV table into rows.
func Read(r io.Reader, settings Settings) ([]row.Row, error) {
	records, err := Records(r, settings)
	if err != nil {
		return nil, err
	}
	return codec.FromRecords(records)
}

// Records parses a CSV table into generic records keyed by the header line.
func Records(r io.Reader, settings Settings) ([]any, error) {
	reader := csv.NewReader(r)
	configureReader(reader, settings)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, &codec.ImportError{Index: -1, Err: codec.ErrUnreadable, Detail: err}
	}
	if len(allRows) == 0 {
		return []any{}, nil
	}

	headers := cleanHeaders(allRows[0])

	records := make([]any, 0, len(allRows)-1)
	for _, line := range allRows[1:] {
		if isLineEmpty(line) {
			continue
		}

		record := make(map[string]any, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(line) {
				record[h] = line[i]
			} else {
				record[h] = ""
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings Settings) {
	reader.Comma = settings.comma()

	// Allow variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	// Trimming would swallow empty fields when the delimiter is itself
	// white space.
	reader.TrimLeadingSpace = !unicode.IsSpace(reader.Comma)
}

// cleanHeaders trims header names. A leading byte-order mark left by
// spreadsheet exports is dropped.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cleaned[i] = strings.TrimSpace(h)
	}
	return cleaned
}

func isLineEmpty(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
