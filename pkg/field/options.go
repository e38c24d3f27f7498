package field

import "log/slog"

// TextSetter replaces the text of the underlying field. The binding calls it
// whenever its output differs from the text the event reported, with its
// re-entrancy guard held.
type TextSetter func(text string)

// Option configures a Binding.
type Option func(*Binding)

// WithLogger routes per-keystroke debug records to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binding) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTextSetter installs the callback that writes programmatic replacements
// back into the field.
func WithTextSetter(setter TextSetter) Option {
	return func(b *Binding) {
		b.setter = setter
	}
}
