package field

import "errors"

var (
	// ErrInvalidConfig is wrapped by every error Config.Resolve returns.
	ErrInvalidConfig = errors.New("field: invalid configuration")
)
