// =============================================================================
// Profit Calculator - Calculation Engine
// =============================================================================
//
// This package maps the raw inputs of one row to its derived financial
// figures. It is pure: no state, no IO, same inputs give the same outputs.
//
// FORMULAS (q=quantity, c=cost, d=discount, g=GST, e=expense, s=selling price):
//   effective cost            = q * c * (1 - d)
//   cost with GST             = effective cost * (1 + g)
//   final cost                = cost with GST + e
//   selling price without GST = s / (1 + g)
//   selling price per metre   = selling price without GST / q   (0 when q <= 0)
//   profit                    = s - final cost
//
// The computation (Compute) and the rendering (Format) are kept apart so the
// raw numbers, NaN and Inf included, can be inspected before the formatter
// clamps them.
//
// =============================================================================

package calc

import (
	"math"

	"github.com/ginjaninja78/profit-calculator/internal/numeric"
	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// Fraction digits of the rendered figures.
const (
	MoneyPlaces    int32 = 2
	PerMetrePlaces int32 = 3
)

// =============================================================================
// INPUTS AND BREAKDOWN
// =============================================================================

// Inputs are the numeric raw fields of a row.
type Inputs struct {
	Quantity     float64
	Cost         float64
	Discount     float64
	GST          float64
	Expense      float64
	SellingPrice float64
}

// InputsOf coerces the raw text of r. Unparsable fields become 0.
func InputsOf(r row.Row) Inputs {
	return Inputs{
		Quantity:     numeric.Coerce(r.Quantity),
		Cost:         numeric.Coerce(r.Cost),
		Discount:     numeric.Coerce(r.Discount),
		GST:          numeric.Coerce(r.GST),
		Expense:      numeric.Coerce(r.Expense),
		SellingPrice: numeric.Coerce(r.SellingPrice),
	}
}

// Breakdown holds the unclamped derived figures of one row.
type Breakdown struct {
	EffectiveCost          float64
	CostWithGST            float64
	FinalCost              float64
	SellingPriceWithoutGST float64
	SellingPricePerMetre   float64
	Profit                 float64

	// PerMetreDefined is false when the quantity is not positive and the
	// per-metre price was not computed.
	PerMetreDefined bool
}

// =============================================================================
// COMPUTATION
// =============================================================================

// Compute applies the formulas to in. Discount and GST are not range
// checked; quantity may be zero, negative or fractional.
func Compute(in Inputs) Breakdown {
	var b Breakdown

	b.EffectiveCost = in.Quantity * in.Cost * (1 - in.Discount)
	b.CostWithGST = b.EffectiveCost * (1 + in.GST)
	b.FinalCost = b.CostWithGST + in.Expense
	b.SellingPriceWithoutGST = in.SellingPrice / (1 + in.GST)

	if in.Quantity > 0 {
		b.SellingPricePerMetre = b.SellingPriceWithoutGST / in.Quantity
		b.PerMetreDefined = true
	}

	// The selling price is GST-inclusive; when it cannot be split into a
	// tax-exclusive part the profit is undefined as well.
	b.Profit = in.SellingPrice - b.FinalCost
	if !numeric.Finite(b.SellingPriceWithoutGST) {
		b.Profit = math.NaN()
	}

	return b
}

// Derived is the rendered text of each derived field.
type Derived struct {
	EffectiveCost          string
	CostWithGST            string
	FinalCost              string
	SellingPriceWithoutGST string
	SellingPricePerMetre   string
	Profit                 string
}

// Format renders b. Every figure uses MoneyPlaces except the per-metre
// price, which uses PerMetrePlaces; an undefined per-metre price and any
// NaN or infinite figure render as numeric.Invalid.
func Format(b Breakdown) Derived {
	perMetre := numeric.Invalid
	if b.PerMetreDefined {
		perMetre = numeric.Fixed(b.SellingPricePerMetre, PerMetrePlaces)
	}

	return Derived{
		EffectiveCost:          numeric.Fixed(b.EffectiveCost, MoneyPlaces),
		CostWithGST:            numeric.Fixed(b.CostWithGST, MoneyPlaces),
		FinalCost:              numeric.Fixed(b.FinalCost, MoneyPlaces),
		SellingPriceWithoutGST: numeric.Fixed(b.SellingPriceWithoutGST, MoneyPlaces),
		SellingPricePerMetre:   perMetre,
		Profit:                 numeric.Fixed(b.Profit, MoneyPlaces),
	}
}

// Recompute returns a copy of r whose derived fields reflect its raw fields.
// The identifier and raw fields are returned untouched.
func Recompute(r row.Row) row.Row {
	d := Format(Compute(InputsOf(r)))

	r.EffectiveCost = d.EffectiveCost
	r.CostWithGST = d.CostWithGST
	r.FinalCost = d.FinalCost
	r.SellingPriceWithoutGST = d.SellingPriceWithoutGST
	r.SellingPricePerMetre = d.SellingPricePerMetre
	r.Profit = d.Profit

	return r
}

// RecomputeAll recomputes every row of rows into a new slice.
func RecomputeAll(rows []row.Row) []row.Row {
	out := make([]row.Row, len(rows))
	for i, r := range rows {
		out[i] = Recompute(r)
	}
	return out
}
