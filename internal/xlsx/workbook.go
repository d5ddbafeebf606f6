// =============================================================================
// Profit Calculator - XLSX Workbook
// =============================================================================
//
// This module writes the row collection to an Excel workbook and reads such
// workbooks back, so the working set can be shared with people who live in
// spreadsheets.
//
// WORKBOOK LAYOUT:
//
//   | A  | B        | C        | ... | N      |
//   |----|----------|----------|-----|--------|
//   | id | itemName | quantity | ... | profit |   <- header row (bold)
//   | …  | New Item | 30       | ... | 266.75 |   <- one row per item
//   | TOTAL |       |          | ... | 266.75 |   <- total row
//
// Every cell is written as text, exactly as stored in the row, so a
// workbook round-trips field-for-field.
//
// READING:
//   The first sheet is read. The header row names the columns; data rows
//   become generic records handed to codec.FromRecords, which applies the
//   same shape validation as JSON/YAML import. The total row is skipped.
//
// =============================================================================

package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/profit-calculator/internal/codec"
	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

const (
	// SheetName is the name of the sheet holding the rows.
	SheetName = "Profit"

	// TotalLabel marks the total row in the identifier column.
	TotalLabel = "TOTAL"

	// columnWidth is applied to every data column.
	columnWidth = 16
)

// =============================================================================
// WRITING
// =============================================================================

// Build creates a workbook holding rows and the total. The caller owns the
// returned file and must Close it.
func Build(rows []row.Row, total decimal.Decimal) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range rows {
		if err := writeRecord(f, i+2, r.Record()); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeTotal(f, len(rows)+2, total); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// Encode renders the workbook to bytes.
func Encode(rows []row.Row, total decimal.Decimal) ([]byte, error) {
	f, err := Build(rows, total)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeHeader writes the bold header row and sizes the columns.
func writeHeader(f *excelize.File) error {
	header := make([]any, len(row.AllFields))
	for i, field := range row.AllFields {
		header[i] = string(field)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(row.AllFields))
	if err != nil {
		return fmt.Errorf("failed to resolve last column: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return nil
}

// writeRecord writes one row of text cells at the given 1-based row number.
func writeRecord(f *excelize.File, rowNum int, record []string) error {
	for col, value := range record {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetCellStr(SheetName, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

// writeTotal writes the label and the total profit under the profit column.
func writeTotal(f *excelize.File, rowNum int, total decimal.Decimal) error {
	record := make([]string, len(row.AllFields))
	record[0] = TotalLabel
	record[len(record)-1] = total.StringFixed(2)
	return writeRecord(f, rowNum, record)
}

// =============================================================================
// READING
// =============================================================================

// Read parses a workbook from r into rows.
func Read(r io.Reader) ([]row.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &codec.ImportError{Index: -1, Err: codec.ErrUnreadable, Detail: err}
	}
	defer f.Close()

	records, err := Records(f)
	if err != nil {
		return nil, err
	}
	return codec.FromRecords(records)
}

// Records extracts the data rows of the first sheet as generic records keyed
// by the header row.
func Records(f *excelize.File) ([]any, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, &codec.ImportError{Index: -1, Err: codec.ErrUnreadable, Detail: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &codec.ImportError{Index: -1, Err: codec.ErrUnreadable, Detail: err}
	}
	if len(rows) == 0 {
		return []any{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]any, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if isRowEmpty(cells) || isTotalRow(cells) {
			continue
		}

		record := make(map[string]any, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			value := ""
			if i < len(cells) {
				value = cells[i]
			}
			record[name] = value
		}
		records = append(records, record)
	}

	return records, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isTotalRow matches the row written by writeTotal: the label in the first
// column and nothing between it and the profit column. A data row whose
// identifier reads "TOTAL" still carries its raw fields and is kept.
func isTotalRow(cells []string) bool {
	if len(cells) == 0 || !strings.EqualFold(strings.TrimSpace(cells[0]), TotalLabel) {
		return false
	}
	profitCol := len(row.AllFields) - 1
	for i := 1; i < len(cells) && i < profitCol; i++ {
		if strings.TrimSpace(cells[i]) != "" {
			return false
		}
	}
	return true
}
