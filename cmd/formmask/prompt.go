package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formmask/pkg/field"
	"github.com/goliatone/go-formmask/pkg/fieldset"
	"github.com/goliatone/go-formmask/pkg/messages"
	"github.com/goliatone/go-formmask/pkg/openapi"
	"github.com/goliatone/go-formmask/pkg/tui"
)

func runPrompt(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, verbose := newFlagSet("prompt", stderr)
	dir := flags.String("dir", "", "directory of field set documents")
	source := flags.String("openapi", "", "OpenAPI document path or URL")
	schema := flags.String("schema", "", "component schema holding the fields (with -openapi)")
	only := flags.String("fields", "", "comma separated subset of fields to ask for")
	locale := flags.String("locale", messages.DefaultLocale, "message locale")
	format := flags.String("format", string(tui.OutputFormatJSON), "output format (json, form, pretty)")
	timeout := flags.Duration("timeout", 10*time.Second, "timeout for remote OpenAPI documents")
	if err := flags.Parse(args); err != nil {
		return err
	}
	logger := newLogger(*verbose, stderr)

	var (
		fields []field.Config
		err    error
	)
	switch {
	case *source != "":
		if *schema == "" {
			return errors.New("prompt: -schema is required with -openapi")
		}
		src, perr := openapi.ParseSource(*source)
		if perr != nil {
			return perr
		}
		loader := openapi.NewLoader(openapi.WithTimeout(*timeout))
		fields, err = loader.Fields(ctx, src, *schema)
	case *dir != "":
		var store *fieldset.Store
		store, err = fieldset.LoadFS(os.DirFS(*dir))
		if err == nil {
			fields = store.Configs()
		}
	default:
		return errors.New("prompt: one of -dir or -openapi is required")
	}
	if err != nil {
		return err
	}

	fields, err = selectFields(fields, *only)
	if err != nil {
		return err
	}

	renderer, err := messages.New(messages.WithDefaultLocale(*locale))
	if err != nil {
		return err
	}
	session, err := tui.New(
		tui.WithMessages(renderer),
		tui.WithLocale(*locale),
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithLogger(logger),
		tui.WithTheme(tui.Theme{InfoPrefix: "  ", ErrorPrefix: "! "}),
	)
	if err != nil {
		return err
	}

	values, err := session.Prompt(ctx, fields)
	if err != nil {
		return err
	}
	out, err := session.Serialize(values)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func selectFields(fields []field.Config, only string) ([]field.Config, error) {
	if strings.TrimSpace(only) == "" {
		return fields, nil
	}
	byName := make(map[string]field.Config, len(fields))
	for _, cfg := range fields {
		byName[cfg.Name] = cfg
	}
	var out []field.Config
	for _, name := range strings.Split(only, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cfg, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("prompt: %w: %s", fieldset.ErrUnknownField, name)
		}
		out = append(out, cfg)
	}
	return out, nil
}
