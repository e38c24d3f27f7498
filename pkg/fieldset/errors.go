package fieldset

import "errors"

var (
	// ErrInvalidDocument wraps parse and schema failures.
	ErrInvalidDocument = errors.New("fieldset: invalid document")
	// ErrDuplicateField is returned when two documents define the same field.
	ErrDuplicateField = errors.New("fieldset: duplicate field")
	// ErrUnknownField is returned for names the store does not hold.
	ErrUnknownField = errors.New("fieldset: unknown field")
)
