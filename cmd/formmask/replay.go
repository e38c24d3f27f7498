package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goliatone/go-formmask/pkg/field"
	"github.com/goliatone/go-formmask/pkg/messages"
	"github.com/goliatone/go-formmask/pkg/validation"
)

func runReplay(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("replay", stderr)
	cfg := field.Config{Name: "input"}
	kind := fs.String("kind", "default", "field kind (phone, email, date, plate, year, cpf_cnpj, time, cep, decimal)")
	label := fs.String("label", "", "field label used in messages")
	backspace := fs.String("backspace", "<", "character standing for a backspace keystroke")
	locale := fs.String("locale", messages.DefaultLocale, "message locale")
	asJSON := fs.Bool("json", false, "print one JSON object per keystroke")
	fs.Func("mask", "primary mask; empty disables masking", func(v string) error {
		cfg.Mask = field.String(v)
		return nil
	})
	fs.Func("alt", "alternate mask", func(v string) error {
		cfg.AltMask = field.String(v)
		return nil
	})
	fs.Func("min", "minimum length", intFlag(&cfg.MinLength))
	fs.Func("max", "maximum length", intFlag(&cfg.MaxLength))
	fs.Func("mask-min", "unmasked length below which the mask stays off", intFlag(&cfg.MaskMinLength))
	fs.Func("before", "decimal digits before the separator", intFlag(&cfg.DigitsBeforeSeparator))
	fs.Func("after", "decimal digits after the separator", intFlag(&cfg.DigitsAfterSeparator))
	fs.BoolFunc("required", "require a value", func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		cfg.Required = field.Bool(b)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("replay: expected exactly one input argument, got %d", fs.NArg())
	}

	parsed, err := validation.ParseKind(*kind)
	if err != nil {
		return err
	}
	cfg.Pattern = parsed
	cfg.Label = *label

	b, err := field.New(cfg, field.WithLogger(newLogger(*verbose, stderr)))
	if err != nil {
		return err
	}
	renderer, err := messages.New(messages.WithDefaultLocale(*locale))
	if err != nil {
		return err
	}

	input := fs.Arg(0)
	if *backspace != "" {
		input = strings.ReplaceAll(input, *backspace, string(field.BackspaceRune))
	}

	params := messages.ParamsFor(b.Config())
	enc := json.NewEncoder(stdout)
	for i, out := range field.Replay(ctx, b, input) {
		if *asJSON {
			if err := enc.Encode(out); err != nil {
				return err
			}
			continue
		}
		status := "ok"
		if !out.Verdict.Valid {
			status = renderer.Text(*locale, params, out.Verdict.Error)
		}
		if out.Rejected {
			status += " (rejected input)"
		}
		fmt.Fprintf(stdout, "%3d %-20q %s\n", i+1, out.DisplayText, status)
	}
	fmt.Fprintf(stdout, "value=%q\n", b.Value())
	return nil
}

func intFlag(dst **int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = field.Int(n)
		return nil
	}
}
