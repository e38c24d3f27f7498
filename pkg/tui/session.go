package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formmask/pkg/field"
	"github.com/goliatone/go-formmask/pkg/messages"
	"github.com/goliatone/go-formmask/pkg/validation"
)

// Session prompts for a list of fields and collects their unmasked values.
type Session struct {
	driver       PromptDriver
	outputFormat OutputFormat
	messages     *messages.Renderer
	locale       string
	defaults     map[string]string
	maxAttempts  int
	logger       *slog.Logger
	theme        Theme
}

// New constructs a session with defaults (survey driver, JSON output, the
// built-in message catalog).
func New(options ...Option) (*Session, error) {
	s := &Session{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		locale:       messages.DefaultLocale,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.messages == nil {
		renderer, err := messages.New()
		if err != nil {
			return nil, fmt.Errorf("tui: messages: %w", err)
		}
		s.messages = renderer
	}
	return s, nil
}

// OutputFormat reports the format used by Serialize.
func (s *Session) OutputFormat() OutputFormat {
	return s.outputFormat
}

// ContentType reports the media type of Serialize's output.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Prompt asks for every field in order. An invalid answer prints the
// validation message and asks again; an accepted answer is echoed masked.
// The result maps field names to unmasked values.
func (s *Session) Prompt(ctx context.Context, fields []field.Config) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	values := make(map[string]string, len(fields))
	for _, cfg := range fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := s.promptField(ctx, cfg)
		if err != nil {
			return nil, err
		}
		values[cfg.Name] = value
	}
	return values, nil
}

type answer struct {
	value   string
	display string
	verdict validation.Verdict
	params  messages.Params
}

func (s *Session) promptField(ctx context.Context, cfg field.Config) (string, error) {
	probe, err := s.bind(cfg)
	if err != nil {
		return "", err
	}
	resolved := probe.Config()
	label := displayLabel(resolved)

	input := InputConfig{
		Message: label,
		Help:    displayHelp(resolved),
		Validator: func(text string) error {
			a, err := s.evaluate(ctx, cfg, text)
			if err != nil {
				return err
			}
			if !a.verdict.Valid {
				return errors.New(s.messages.Text(s.locale, a.params, a.verdict.Error))
			}
			return nil
		},
		Transform: func(text string) string {
			a, err := s.evaluate(ctx, cfg, text)
			if err != nil {
				return text
			}
			return a.display
		},
	}
	if raw, ok := s.defaults[cfg.Name]; ok {
		input.Default = probe.Prefill(raw)
	}

	for attempt := 1; ; attempt++ {
		response, err := s.driver.Input(ctx, input)
		if err != nil {
			return "", err
		}

		a, err := s.evaluate(ctx, cfg, response)
		if err != nil {
			return "", err
		}
		if a.verdict.Valid {
			s.logger.DebugContext(ctx, "field accepted",
				slog.String("field", cfg.Name),
				slog.Int("attempts", attempt),
			)
			if a.display != "" {
				_ = s.driver.Info(ctx, fmt.Sprintf("%s%s: %s", s.theme.InfoPrefix, label, a.display))
			}
			return a.value, nil
		}

		msg := s.messages.Text(s.locale, a.params, a.verdict.Error)
		s.logger.DebugContext(ctx, "field rejected",
			slog.String("field", cfg.Name),
			slog.String("error", a.verdict.Error.String()),
			slog.Int("attempt", attempt),
		)
		_ = s.driver.Info(ctx, s.theme.ErrorPrefix+msg)

		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return "", fmt.Errorf("%w: %s", ErrTooManyAttempts, cfg.Name)
		}
	}
}

// evaluate types text into a fresh binding and validates the result. Masked
// answers are unmasked first so pasted display text and raw digits agree.
func (s *Session) evaluate(ctx context.Context, cfg field.Config, text string) (answer, error) {
	b, err := s.bind(cfg)
	if err != nil {
		return answer{}, err
	}
	resolved := b.Config()
	if !resolved.Masks.IsZero() {
		text = resolved.Masks.Unmask(text)
	}
	field.Replay(ctx, b, strings.TrimSpace(text))
	out := b.Revalidate(ctx)
	return answer{
		value:   b.Value(),
		display: out.DisplayText,
		verdict: out.Verdict,
		params:  messages.ParamsFor(resolved),
	}, nil
}

func (s *Session) bind(cfg field.Config) (*field.Binding, error) {
	b, err := field.New(cfg, field.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("tui: field %q: %w", cfg.Name, err)
	}
	return b, nil
}

func displayLabel(cfg field.Resolved) string {
	if cfg.Label != "" {
		return cfg.Label
	}
	return cfg.Name
}

func displayHelp(cfg field.Resolved) string {
	help := cfg.Rule.Kind.String()
	if !cfg.Masks.IsZero() {
		help += " " + cfg.Masks.Primary.String()
		if cfg.Masks.HasAlternate() {
			help += " | " + cfg.Masks.Alternate.String()
		}
	}
	return help
}
