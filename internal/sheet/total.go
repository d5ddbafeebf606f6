package sheet

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/profit-calculator/internal/numeric"
	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// TotalProfit sums the profit field of every row. Unparsable profits count
// as zero and an empty collection totals zero.
func TotalProfit(rows []row.Row) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(numeric.CoerceDecimal(r.Profit))
	}
	return total
}

// TotalProfit sums the profit of the sheet's rows.
func (s *Sheet) TotalProfit() decimal.Decimal {
	return TotalProfit(s.rows)
}
