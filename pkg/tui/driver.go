package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a text input prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
	// Validator rejects an answer before the prompt returns. Drivers that
	// cannot validate in place may ignore it; the session checks every
	// answer again.
	Validator func(string) error
	// Transform renders the accepted answer.
	Transform func(string) string
}

// PromptDriver abstracts the terminal so sessions can be tested without one
// and callers can swap implementations.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

func newSurveyDriver() PromptDriver {
	return &surveyDriver{out: os.Stdout}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	question := &survey.Question{
		Name: "value",
		Prompt: &survey.Input{
			Message: cfg.Message,
			Help:    cfg.Help,
			Default: cfg.Default,
		},
	}
	if cfg.Validator != nil {
		validate := cfg.Validator
		question.Validate = func(ans interface{}) error {
			text, _ := ans.(string)
			return validate(text)
		}
	}
	if cfg.Transform != nil {
		question.Transform = survey.TransformString(cfg.Transform)
	}

	var answer struct {
		Value string `survey:"value"`
	}
	if err := survey.Ask([]*survey.Question{question}, &answer); err != nil {
		return "", translateSurveyErr(err)
	}
	return answer.Value, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
