// =============================================================================
// Profit Calculator - State Codec
// =============================================================================
//
// This package serializes the full row collection to a portable, indented
// text document and parses such documents back.
//
// DOCUMENT SHAPE:
//   A sequence of records; each record carries the 14 row fields as text.
//
//   [
//     {
//       "id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
//       "itemName": "New Item",
//       "quantity": "30",
//       ...
//       "profit": "266.75"
//     }
//   ]
//
// FORMATS:
//   - JSON (default), two-space indentation
//   - YAML, two-space indentation
//
//   Spreadsheet and markup formats (xlsx, csv, xml) live in their own
//   packages; they decode into generic records and reuse FromRecords for
//   validation.
//
// =============================================================================

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// DefaultFileName is the suggested name of an exported state document.
const DefaultFileName = "profit-calculator-state.json"

// =============================================================================
// FORMATS
// =============================================================================

// Format identifies a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	XLSX Format = "xlsx"
	CSV  Format = "csv"
	XML  Format = "xml"
)

// FormatFromPath picks a format from the file extension. Unknown
// extensions fall back to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".xlsx":
		return XLSX
	case ".csv":
		return CSV
	case ".xml":
		return XML
	default:
		return JSON
	}
}

// =============================================================================
// EXPORT
// =============================================================================

// Export serializes rows for a user-requested export. An empty collection
// is refused with ErrEmptyExport.
func Export(rows []row.Row, format Format) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyExport
	}
	return Marshal(rows, format)
}

// Marshal serializes rows without the empty-collection check. An empty
// collection encodes as an empty sequence.
func Marshal(rows []row.Row, format Format) ([]byte, error) {
	if rows == nil {
		rows = []row.Row{}
	}

	switch format {
	case JSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil

	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported text format %q", format)
	}
}

// =============================================================================
// IMPORT
// =============================================================================

// Import parses a JSON or YAML document into rows. On failure it returns an
// *ImportError and no rows.
func Import(data []byte, format Format) ([]row.Row, error) {
	var doc any

	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, documentError(ErrUnreadable, err)
		}
		if dec.More() {
			return nil, documentError(ErrUnreadable, fmt.Errorf("trailing data after document"))
		}

	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, documentError(ErrUnreadable, err)
		}

	default:
		return nil, fmt.Errorf("unsupported text format %q", format)
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, documentError(ErrNotSequence, nil)
	}
	return FromRecords(list)
}

// FromRecords validates decoded records and builds rows from them.
//
// VALIDATION:
//   - every element must be a record (a map keyed by field name)
//   - a non-empty list must have an item-name field in its first record
//
// Field values are converted to text; numbers are accepted as well as
// strings. Unknown keys are ignored. A missing or empty identifier, or one
// already used by an earlier record, is replaced with a fresh one so the
// identifier keeps working as the addressing key.
func FromRecords(list []any) ([]row.Row, error) {
	rows := make([]row.Row, 0, len(list))
	seen := make(map[string]bool, len(list))

	for i, elem := range list {
		record, ok := asRecord(elem)
		if !ok {
			return nil, elementError(i, ErrMalformedRecord)
		}
		if i == 0 && !hasItemName(record) {
			return nil, elementError(0, ErrMissingItemName)
		}

		r := fromRecord(record)
		if r.ID == "" || seen[r.ID] {
			r.ID = row.NewID()
		}
		seen[r.ID] = true

		rows = append(rows, r)
	}

	return rows, nil
}

// asRecord accepts both map shapes decoders produce.
func asRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[cast.ToString(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func hasItemName(record map[string]any) bool {
	for key := range record {
		if f, err := row.ParseField(key); err == nil && f == row.FieldItemName {
			return true
		}
	}
	return false
}

// fromRecord loads alternative spellings first so that canonical wire names
// win when a record carries both.
func fromRecord(record map[string]any) row.Row {
	var r row.Row
	for key, val := range record {
		f, err := row.ParseField(key)
		if err != nil || string(f) == key {
			continue
		}
		r.Load(f, text(val))
	}
	for _, f := range row.AllFields {
		if val, ok := record[string(f)]; ok {
			r.Load(f, text(val))
		}
	}
	return r
}

// text renders a decoded value as field text.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return cast.ToString(v)
	}
}
