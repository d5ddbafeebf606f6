// =============================================================================
// Profit Calculator - Input Sanitizer
// =============================================================================
//
// The presentation layer cleans what the user typed before it reaches the
// sheet. Numeric fields are restricted to a safe character set (digits, the
// decimal point and the minus sign); the item name is tidied but otherwise
// left as free text.
//
// Cleaning is a chain of actions applied in order, one chain per field kind:
//
//   numeric fields : trim -> keep_numeric
//   item name      : strip_control -> trim -> collapse_space
//
// The calculation engine still coerces anything left over, so sanitizing is
// about keeping stored text tidy, not about correctness of the figures.
//
// =============================================================================

package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// Action is a single cleaning step.
type Action string

const (
	// ActionTrim removes leading and trailing whitespace.
	ActionTrim Action = "trim"

	// ActionKeepNumeric drops every character outside [0-9.-].
	//
	// EXAMPLE:
	//   Input:  "1,250.50 kg"
	//   Output: "1250.50"
	ActionKeepNumeric Action = "keep_numeric"

	// ActionCollapseSpace turns runs of whitespace into a single space.
	ActionCollapseSpace Action = "collapse_space"

	// ActionStripControl drops control characters other than whitespace.
	//
	// EXAMPLE:
	//   Input:  "x\x01y"
	//   Output: "xy"
	ActionStripControl Action = "strip_control"
)

// numericChain and textChain are the chains used per field kind.
var (
	numericChain = []Action{ActionTrim, ActionKeepNumeric}
	textChain    = []Action{ActionStripControl, ActionTrim, ActionCollapseSpace}
)

// Field cleans value for the given field.
func Field(f row.Field, value string) (string, error) {
	if f.IsNumeric() {
		return Apply(value, numericChain...)
	}
	return Apply(value, textChain...)
}

// Apply runs the actions over value in order.
func Apply(value string, actions ...Action) (string, error) {
	result := value
	for _, action := range actions {
		var err error
		result, err = applyAction(result, action)
		if err != nil {
			return "", fmt.Errorf("action '%s' failed: %w", action, err)
		}
	}
	return result, nil
}

// applyAction applies a single action.
func applyAction(value string, action Action) (string, error) {
	switch action {
	case ActionTrim:
		return strings.TrimSpace(value), nil

	case ActionKeepNumeric:
		return strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, value), nil

	case ActionCollapseSpace:
		return strings.Join(strings.Fields(value), " "), nil

	case ActionStripControl:
		return strings.Map(func(r rune) rune {
			if unicode.IsControl(r) && !unicode.IsSpace(r) {
				return -1
			}
			return r
		}, value), nil

	default:
		return "", fmt.Errorf("unknown action %q", action)
	}
}
