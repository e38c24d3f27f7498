package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formmask/pkg/field"
	"github.com/goliatone/go-formmask/pkg/validation"
)

// acceptDefault scripts accepting the prompt's default answer.
const acceptDefault = "\x00default"

type stubDriver struct {
	inputs       []string
	inputPos     int
	configs      []InputConfig
	infoMessages []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.configs = append(s.configs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if val == acceptDefault {
		return cfg.Default, nil
	}
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestPrompt_RepromptsUntilValid(t *testing.T) {
	driver := &stubDriver{inputs: []string{"119876", "11987654321"}}
	s, err := New(WithPromptDriver(driver), WithLocale("en"))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	values, err := s.Prompt(context.Background(), []field.Config{
		{Name: "phone", Label: "Telefone", Pattern: validation.KindPhone},
	})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}

	if diff := cmp.Diff(map[string]string{"phone": "11987654321"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	want := []string{
		"Telefone must contain the area code plus 8 or 9 digits.",
		"Telefone: (11) 98765-4321",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
	if driver.configs[0].Help != "phone (##) ####-#### | (##) #####-####" {
		t.Fatalf("unexpected help %q", driver.configs[0].Help)
	}
}

func TestPrompt_MaskedAnswersAndDefaults(t *testing.T) {
	driver := &stubDriver{inputs: []string{acceptDefault, "(11) 9876-5432", ""}}
	s, err := New(
		WithPromptDriver(driver),
		WithDefaults(map[string]string{"zip": "01310100"}),
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	values, err := s.Prompt(context.Background(), []field.Config{
		{Name: "zip", Label: "CEP", Pattern: validation.KindCep},
		{Name: "phone", Pattern: validation.KindPhone},
		{Name: "email", Pattern: validation.KindEmail},
	})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}

	want := map[string]string{"zip": "01310100", "phone": "1198765432", "email": ""}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := driver.configs[0].Default; got != "01310-100" {
		t.Fatalf("expected masked default, got %q", got)
	}
	if diff := cmp.Diff([]string{"CEP: 01310-100", "phone: (11) 9876-5432"}, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompt_ValidatorAndTransform(t *testing.T) {
	driver := &stubDriver{inputs: []string{"2024"}}
	s, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := s.Prompt(context.Background(), []field.Config{
		{Name: "year", Label: "Ano", Pattern: validation.KindYear},
	}); err != nil {
		t.Fatalf("prompt: %v", err)
	}

	cfg := driver.configs[0]
	err = cfg.Validator("18")
	if err == nil || err.Error() != "Ano deve conter 4 caracteres." {
		t.Fatalf("unexpected validator error %v", err)
	}
	if err := cfg.Validator("1999"); err != nil {
		t.Fatalf("expected valid year, got %v", err)
	}
	if got := cfg.Transform("2024"); got != "2024" {
		t.Fatalf("unexpected transform %q", got)
	}
}

func TestPrompt_RequiredAndMaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "  "}}
	s, err := New(WithPromptDriver(driver), WithMaxAttempts(2), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	_, err = s.Prompt(context.Background(), []field.Config{{Name: "nome", Label: "Nome"}})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	want := []string{"! Nome é obrigatório(a).", "! Nome é obrigatório(a)."}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompt_Errors(t *testing.T) {
	s, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	_, err = s.Prompt(context.Background(), []field.Config{{Name: "x", Pattern: validation.Kind(99)}})
	if !errors.Is(err, field.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	_, err = s.Prompt(context.Background(), []field.Config{{Name: "x"}})
	if err == nil || err.Error() != "no input scripted" {
		t.Fatalf("expected driver error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Prompt(ctx, []field.Config{{Name: "x"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSerialize(t *testing.T) {
	values := map[string]string{"phone": "11987654321", "zip": "01310100"}

	cases := []struct {
		format OutputFormat
		want   string
	}{
		{OutputFormatJSON, `{"phone":"11987654321","zip":"01310100"}`},
		{OutputFormatFormURLEncoded, "phone=11987654321&zip=01310100"},
		{OutputFormatPrettyText, "phone=11987654321\nzip=01310100\n"},
	}
	for _, tc := range cases {
		s, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(tc.format))
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		out, err := s.Serialize(values)
		if err != nil {
			t.Fatalf("%s: %v", tc.format, err)
		}
		if string(out) != tc.want {
			t.Fatalf("%s: got %q want %q", tc.format, out, tc.want)
		}
	}

	if _, err := Serialize(values, "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
