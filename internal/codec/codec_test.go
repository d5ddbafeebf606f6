package codec

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/profit-calculator/internal/calc"
	"github.com/ginjaninja78/profit-calculator/internal/row"
)

func sampleRows() []row.Row {
	second := "Copper"
	price := "120.5"
	return []row.Row{
		calc.Recompute(row.New(row.Overrides{})),
		calc.Recompute(row.New(row.Overrides{ItemName: &second, SellingPrice: &price})),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{JSON, YAML} {
		t.Run(string(format), func(t *testing.T) {
			rows := sampleRows()

			data, err := Export(rows, format)
			require.NoError(t, err)

			got, err := Import(data, format)
			require.NoError(t, err)
			assert.Equal(t, rows, got)
		})
	}
}

func TestExportJSONShape(t *testing.T) {
	rows := sampleRows()[:1]

	data, err := Export(rows, JSON)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": "), text)
	assert.Contains(t, text, `"quantity": "30"`)
	assert.Contains(t, text, `"profit": "266.75"`)

	var records []map[string]string
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Len(t, records[0], 14)
}

func TestExportYAMLKeepsNumbersAsText(t *testing.T) {
	data, err := Export(sampleRows()[:1], YAML)
	require.NoError(t, err)

	assert.Contains(t, string(data), `quantity: "30"`)
	assert.Contains(t, string(data), `itemName: New Item`)
}

func TestExportEmptyCollection(t *testing.T) {
	data, err := Export(nil, JSON)
	assert.ErrorIs(t, err, ErrEmptyExport)
	assert.Nil(t, data)

	data, err = Marshal(nil, JSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestImportRejections(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		cause  error
	}{
		{name: "single record", format: JSON, input: `{"itemName": "x"}`, cause: ErrNotSequence},
		{name: "scalar", format: JSON, input: `42`, cause: ErrNotSequence},
		{name: "null", format: JSON, input: `null`, cause: ErrNotSequence},
		{name: "first lacks item name", format: JSON, input: `[{"quantity": "1"}]`, cause: ErrMissingItemName},
		{name: "first is not a record", format: JSON, input: `["x"]`, cause: ErrMalformedRecord},
		{name: "later is not a record", format: JSON, input: `[{"itemName": "a"}, 7]`, cause: ErrMalformedRecord},
		{name: "broken JSON", format: JSON, input: `[{"itemName": `, cause: ErrUnreadable},
		{name: "empty input", format: JSON, input: ``, cause: ErrUnreadable},
		{name: "trailing data", format: JSON, input: `[] []`, cause: ErrUnreadable},
		{name: "YAML mapping", format: YAML, input: "itemName: x\n", cause: ErrNotSequence},
		{name: "YAML empty", format: YAML, input: "", cause: ErrNotSequence},
		{name: "broken YAML", format: YAML, input: "- itemName: [\n", cause: ErrUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Import([]byte(tt.input), tt.format)

			require.Error(t, err)
			assert.Nil(t, rows)
			assert.ErrorIs(t, err, tt.cause)
			assert.ErrorIs(t, err, ErrInvalidImport)

			var ie *ImportError
			require.True(t, errors.As(err, &ie))
		})
	}
}

func TestImportErrorMessage(t *testing.T) {
	_, err := Import([]byte(`[{"itemName": "a"}, 7]`), JSON)

	var ie *ImportError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Index)
	assert.Contains(t, err.Error(), "element 1")
}

func TestImportEmptySequence(t *testing.T) {
	rows, err := Import([]byte(`[]`), JSON)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestImportAcceptsNumbersAndAliases(t *testing.T) {
	input := `[
	  {"id": "a", "name": "Bolt", "quantity": 30, "cost": 9.75, "selling_price": 660, "extra": true},
	  {"itemName": "Nut", "quantity": "2"}
	]`

	rows, err := Import([]byte(input), JSON)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "Bolt", rows[0].ItemName)
	assert.Equal(t, "30", rows[0].Quantity)
	assert.Equal(t, "9.75", rows[0].Cost)
	assert.Equal(t, "660", rows[0].SellingPrice)
	assert.Empty(t, rows[0].Profit)

	assert.NotEmpty(t, rows[1].ID, "missing identifier is issued")
}

func TestImportCanonicalNameWins(t *testing.T) {
	rows, err := Import([]byte(`[{"name": "alias", "itemName": "canonical"}]`), JSON)
	require.NoError(t, err)
	assert.Equal(t, "canonical", rows[0].ItemName)
}

func TestImportReissuesDuplicateIdentifiers(t *testing.T) {
	rows, err := Import([]byte(`[{"id": "same", "itemName": "a"}, {"id": "same", "itemName": "b"}]`), JSON)
	require.NoError(t, err)

	assert.Equal(t, "same", rows[0].ID)
	assert.NotEqual(t, "same", rows[1].ID)
	assert.NotEmpty(t, rows[1].ID)
}

func TestImportYAMLNumbers(t *testing.T) {
	input := "- itemName: Bolt\n  quantity: 30\n  gst: 0.18\n"

	rows, err := Import([]byte(input), YAML)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "30", rows[0].Quantity)
	assert.Equal(t, "0.18", rows[0].GST)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, JSON, FormatFromPath("state.json"))
	assert.Equal(t, JSON, FormatFromPath("state"))
	assert.Equal(t, YAML, FormatFromPath("state.YML"))
	assert.Equal(t, YAML, FormatFromPath("dir/state.yaml"))
	assert.Equal(t, XLSX, FormatFromPath("book.xlsx"))
	assert.Equal(t, CSV, FormatFromPath("rows.csv"))
	assert.Equal(t, XML, FormatFromPath("upload.xml"))
}
