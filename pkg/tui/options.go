package tui

import (
	"log/slog"

	"github.com/goliatone/go-formmask/pkg/messages"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes for the messages a session prints.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithMessages sets the renderer used for validation messages.
func WithMessages(renderer *messages.Renderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.messages = renderer
		}
	}
}

// WithLocale selects the message locale.
func WithLocale(locale string) Option {
	return func(s *Session) {
		if locale != "" {
			s.locale = locale
		}
	}
}

// WithDefaults prefills answers keyed by field name. Values are unmasked.
func WithDefaults(values map[string]string) Option {
	return func(s *Session) {
		s.defaults = values
	}
}

// WithMaxAttempts bounds how often a field is asked again after an invalid
// answer. Zero asks until the answer is valid.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithLogger sets the logger shared with every binding of the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
