package messages

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formmask/pkg/field"
	"github.com/goliatone/go-formmask/pkg/validation"
)

// KeyPrefix namespaces the keys handed to a Translator.
const KeyPrefix = "formmask."

// DefaultLocale is used when no catalog matches the requested locale.
const DefaultLocale = "pt-BR"

//go:embed catalog/*.yaml
var catalogFS embed.FS

//go:embed templates
var templateFS embed.FS

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// Params are the values a message template can reference.
type Params struct {
	Label         string
	Kind          validation.Kind
	MinLength     int
	MaxLength     int
	MaskMinLength int
}

// ParamsFor builds the parameters of a resolved field. The label falls back
// to the field name.
func ParamsFor(cfg field.Resolved) Params {
	label := cfg.Label
	if strings.TrimSpace(label) == "" {
		label = cfg.Name
	}
	return Params{
		Label:         label,
		Kind:          cfg.Rule.Kind,
		MinLength:     cfg.Rule.MinLength,
		MaxLength:     cfg.Rule.MaxLength,
		MaskMinLength: cfg.Rule.MaskMinLength,
	}
}

// Renderer turns error kinds into messages. It is safe for concurrent use
// once built.
type Renderer struct {
	set           *pongo2.TemplateSet
	sources       map[string]map[string]string
	templates     map[string]map[string]*pongo2.Template
	translator    Translator
	onMissing     MissingTranslationHandler
	defaultLocale string
}

// New loads the built-in catalogs, applies opts and compiles every template.
func New(opts ...Option) (*Renderer, error) {
	partials, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("messages: templates: %w", err)
	}

	r := &Renderer{
		set:           pongo2.NewSet("formmask", pongo2.NewFSLoader(partials)),
		sources:       make(map[string]map[string]string),
		templates:     make(map[string]map[string]*pongo2.Template),
		onMissing:     missingMessageDefault,
		defaultLocale: DefaultLocale,
	}
	if err := r.loadBuiltin(); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	for locale, entries := range r.sources {
		compiled := make(map[string]*pongo2.Template, len(entries))
		for key, source := range entries {
			tpl, err := r.set.FromString(source)
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %w", ErrInvalidTemplate, locale, key, err)
			}
			compiled[key] = tpl
		}
		r.templates[locale] = compiled
	}
	return r, nil
}

// Locales lists the locales with a catalog.
func (r *Renderer) Locales() []string {
	out := make([]string, 0, len(r.templates))
	for locale := range r.templates {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message returns the HTML-safe message for kind. The label is sanitised and
// every other parameter is numeric. ErrorNone yields "".
func (r *Renderer) Message(locale string, p Params, kind validation.ErrorKind) string {
	if kind == validation.ErrorNone {
		return ""
	}

	ctx := pongo2.Context{
		"label":    sanitizeLabel(p.Label),
		"min":      p.MinLength,
		"max":      p.MaxLength,
		"mask_min": p.MaskMinLength,
	}
	keys := messageKeys(p.Kind, kind)

	if r.translator != nil {
		for _, key := range keys {
			msg, err := r.translator.Translate(locale, KeyPrefix+key, map[string]any(ctx))
			if err != nil || strings.TrimSpace(msg) == "" {
				continue
			}
			return r.expand(msg, ctx)
		}
	}

	resolved := r.resolveLocale(locale)
	catalog := r.templates[resolved]
	for _, key := range keys {
		tpl, ok := catalog[key]
		if !ok {
			continue
		}
		out, err := tpl.Execute(ctx)
		if err != nil {
			return r.onMissing(locale, keys[0], []any{map[string]any(ctx)}, fmt.Errorf("%w: %w", ErrInvalidTemplate, err))
		}
		return strings.TrimSpace(out)
	}

	cause := ErrMissingMessage
	if catalog == nil && r.translator == nil {
		cause = ErrMissingTranslator
	}
	return r.onMissing(locale, keys[0], []any{map[string]any(ctx)}, cause)
}

// Text is Message with HTML entities decoded, for terminals and logs.
func (r *Renderer) Text(locale string, p Params, kind validation.ErrorKind) string {
	return html.UnescapeString(r.Message(locale, p, kind))
}

// expand renders translator output that itself contains template markup.
func (r *Renderer) expand(msg string, ctx pongo2.Context) string {
	if !strings.Contains(msg, "{{") && !strings.Contains(msg, "{%") {
		return msg
	}
	tpl, err := r.set.FromString(msg)
	if err != nil {
		return msg
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return msg
	}
	return strings.TrimSpace(out)
}

// resolveLocale matches locale exactly, case-insensitively, then by
// language, and finally falls back to the default locale.
func (r *Renderer) resolveLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if _, ok := r.templates[locale]; ok {
		return locale
	}
	language, _, _ := strings.Cut(strings.ReplaceAll(locale, "_", "-"), "-")
	for _, candidate := range r.Locales() {
		if strings.EqualFold(candidate, locale) {
			return candidate
		}
	}
	if language != "" {
		for _, candidate := range r.Locales() {
			base, _, _ := strings.Cut(candidate, "-")
			if strings.EqualFold(base, language) {
				return candidate
			}
		}
	}
	return r.defaultLocale
}

func (r *Renderer) loadBuiltin() error {
	files, err := fs.Glob(catalogFS, "catalog/*.yaml")
	if err != nil {
		return fmt.Errorf("messages: catalog: %w", err)
	}
	for _, name := range files {
		data, err := catalogFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("messages: catalog %s: %w", name, err)
		}
		entries := make(map[string]string)
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("messages: catalog %s: %w", name, err)
		}
		locale := strings.TrimSuffix(path.Base(name), path.Ext(name))
		r.sources[locale] = entries
	}
	return nil
}

// messageKeys lists the catalog keys for kind in lookup order: the
// kind-specific entry first, then the generic one.
func messageKeys(kind validation.Kind, errKind validation.ErrorKind) []string {
	generic := errKind.String()
	return []string{kind.String() + "." + generic, generic}
}

func sanitizeLabel(label string) string {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(labelPolicy.Sanitize(strings.TrimSpace(label)))
}

func missingMessageDefault(_ string, key string, args []any, _ error) string {
	label := ""
	if len(args) > 0 {
		if values, ok := args[0].(map[string]any); ok {
			label, _ = values["label"].(string)
		}
	}
	if label == "" {
		return key
	}
	return label + ": " + key
}
