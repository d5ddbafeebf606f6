// =============================================================================
// Profit Calculator - Import Validation Errors
// =============================================================================
//
// Import is the only boundary where untrusted documents enter the program.
// Rather than trusting whatever shape the decoder produced, the codec runs an
// explicit shape check and reports failures as typed errors:
//
//   ErrNotSequence      - the top-level value is not a list of records
//   ErrMissingItemName  - the first record has no item-name field
//   ErrMalformedRecord  - a list element is not a record
//   ErrUnreadable       - the document is not valid JSON/YAML/CSV/XLSX
//
// Every import failure is an *ImportError, which also matches
// ErrInvalidImport, so callers can test for "any import problem" or for a
// specific cause with errors.Is.
//
// =============================================================================

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImport matches every import failure.
	ErrInvalidImport = errors.New("invalid or corrupted state document")

	ErrNotSequence     = errors.New("top-level value is not a sequence of records")
	ErrMissingItemName = errors.New("first record has no item name field")
	ErrMalformedRecord = errors.New("element is not a record")
	ErrUnreadable      = errors.New("document cannot be parsed")

	// ErrEmptyExport is returned when exporting a collection with no rows.
	// No document is produced.
	ErrEmptyExport = errors.New("nothing to export: the collection is empty")
)

// ImportError describes why a document was rejected.
type ImportError struct {
	// Index is the position of the offending element, or -1 when the
	// document as a whole is at fault.
	Index int

	// Err is the specific cause (one of the sentinel errors above).
	Err error

	// Detail carries the underlying decoder message, if any.
	Detail error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	msg := e.Err.Error()
	if e.Index >= 0 {
		msg = fmt.Sprintf("element %d: %s", e.Index, msg)
	}
	if e.Detail != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Detail)
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidImport, msg)
}

// Unwrap exposes the cause, the decoder detail and ErrInvalidImport to
// errors.Is and errors.As.
func (e *ImportError) Unwrap() []error {
	errs := []error{ErrInvalidImport, e.Err}
	if e.Detail != nil {
		errs = append(errs, e.Detail)
	}
	return errs
}

func documentError(cause, detail error) *ImportError {
	return &ImportError{Index: -1, Err: cause, Detail: detail}
}

func elementError(index int, cause error) *ImportError {
	return &ImportError{Index: index, Err: cause}
}
