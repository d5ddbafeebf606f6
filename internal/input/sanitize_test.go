package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/profit-calculator/internal/row"
)

func TestField(t *testing.T) {
	tests := []struct {
		name  string
		field row.Field
		input string
		want  string
	}{
		{name: "plain number", field: row.FieldCost, input: "9.75", want: "9.75"},
		{name: "thousands separator", field: row.FieldSellingPrice, input: "1,250.50", want: "1250.50"},
		{name: "units and spaces", field: row.FieldQuantity, input: " 30 m ", want: "30"},
		{name: "negative", field: row.FieldDiscount, input: "-0.1", want: "-0.1"},
		{name: "exponent is dropped", field: row.FieldGST, input: "1e2", want: "12"},
		{name: "letters only", field: row.FieldExpense, input: "abc", want: ""},
		{name: "name is trimmed", field: row.FieldItemName, input: "  Copper   wire ", want: "Copper wire"},
		{name: "name keeps punctuation", field: row.FieldItemName, input: "M6 bolt, 20mm", want: "M6 bolt, 20mm"},
		{name: "name drops control characters", field: row.FieldItemName, input: "x\x01y\x7f", want: "xy"},
		{name: "name line breaks become spaces", field: row.FieldItemName, input: "Copper\r\nwire\tspool", want: "Copper wire spool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Field(tt.field, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyUnknownAction(t *testing.T) {
	_, err := Apply("x", ActionTrim, Action("shout"))
	assert.Error(t, err)
}
