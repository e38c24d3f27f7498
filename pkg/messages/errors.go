package messages

import "errors"

var (
	// ErrMissingTranslator is passed to the MissingTranslationHandler when no
	// translator and no catalog entry can produce a message.
	ErrMissingTranslator = errors.New("messages: translator not configured")
	// ErrMissingMessage is passed to the MissingTranslationHandler when a
	// catalog has no entry for the requested key.
	ErrMissingMessage = errors.New("messages: message not found")
	// ErrInvalidTemplate wraps template compilation and execution failures.
	ErrInvalidTemplate = errors.New("messages: invalid template")
)
