package messages

// Translator resolves a message key for a locale. args carries a single
// map with the template parameters.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler produces the text returned when no message is
// found for key.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Option configures a Renderer.
type Option func(*Renderer)

// WithTranslator consults t before the catalogs. Keys are prefixed with
// KeyPrefix.
func WithTranslator(t Translator) Option {
	return func(r *Renderer) {
		r.translator = t
	}
}

// WithMissingTranslationHandler overrides the fallback for missing messages.
func WithMissingTranslationHandler(fn MissingTranslationHandler) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.onMissing = fn
		}
	}
}

// WithDefaultLocale selects the catalog used when a requested locale has
// none.
func WithDefaultLocale(locale string) Option {
	return func(r *Renderer) {
		if locale != "" {
			r.defaultLocale = locale
		}
	}
}

// WithCatalog adds or overrides entries of a locale's catalog. Entries are
// pongo2 templates keyed like the built-in ones ("required",
// "phone.length", ...).
func WithCatalog(locale string, entries map[string]string) Option {
	return func(r *Renderer) {
		if locale == "" || len(entries) == 0 {
			return
		}
		catalog := r.sources[locale]
		if catalog == nil {
			catalog = make(map[string]string, len(entries))
			r.sources[locale] = catalog
		}
		for key, value := range entries {
			catalog[key] = value
		}
	}
}
