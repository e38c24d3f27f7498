package validation

import "errors"

// ErrUnknownKind is returned when a kind name or value is not recognised.
var ErrUnknownKind = errors.New("validation: unknown pattern kind")
