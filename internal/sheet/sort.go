package sheet

import (
	"cmp"
	"slices"

	"github.com/ginjaninja78/profit-calculator/internal/numeric"
	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// Direction is the ordering of the presentation view. The zero value is
// None. Directions are reached only through Toggle.
type Direction int

const (
	None Direction = iota
	Descending
	Ascending
)

// Toggle advances the cycle none -> descending -> ascending -> none.
func (d Direction) Toggle() Direction {
	switch d {
	case None:
		return Descending
	case Descending:
		return Ascending
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Descending:
		return "descending"
	case Ascending:
		return "ascending"
	default:
		return "none"
	}
}

// SortedView orders rows by profit for display. None returns rows itself.
// The other directions return a new slice sorted stably, so rows with equal
// profit keep their storage order; rows is never reordered.
func SortedView(rows []row.Row, dir Direction) []row.Row {
	if dir == None {
		return rows
	}

	view := slices.Clone(rows)
	slices.SortStableFunc(view, func(a, b row.Row) int {
		pa, pb := numeric.Coerce(a.Profit), numeric.Coerce(b.Profit)
		if dir == Descending {
			return cmp.Compare(pb, pa)
		}
		return cmp.Compare(pa, pb)
	})
	return view
}

// View returns the sheet's rows ordered for display.
func (s *Sheet) View(dir Direction) []row.Row {
	return SortedView(s.Rows(), dir)
}
