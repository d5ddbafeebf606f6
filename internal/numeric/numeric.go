// Package numeric converts between the decimal text stored in a row and the
// numbers the calculation engine works with.
//
// Parsing never fails: the leading decimal number of the text is used and
// anything unparsable is zero. Formatting never emits NaN or Infinity: such
// values render as Invalid.
package numeric

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Invalid is rendered in place of a NaN or infinite result.
const Invalid = "0.00"

// leadingNumber matches an optionally signed decimal with an optional
// exponent at the start of the text.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Leading returns the numeric prefix of text, or "" when there is none.
// "12.5kg" yields "12.5", "  -3" yields "-3", "abc" yields "".
func Leading(text string) string {
	return leadingNumber.FindString(strings.TrimLeft(text, " \t\r\n\f\v"))
}

// Coerce parses text as a float. Empty or unparsable text is 0. A numeric
// prefix out of float range yields ±Inf, which the formatter later clamps.
func Coerce(text string) float64 {
	s := Leading(text)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

// CoerceDecimal parses text as an exact decimal using the same rules as
// Coerce.
func CoerceDecimal(text string) decimal.Decimal {
	s := Leading(text)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Fixed renders v with the given number of fraction digits, rounding half
// away from zero. NaN and ±Inf render as Invalid.
func Fixed(v float64, places int32) string {
	if !Finite(v) {
		return Invalid
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
