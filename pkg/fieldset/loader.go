package fieldset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formmask/pkg/field"
)

const schemaURL = "fieldset.schema.json"

//go:embed schema/fieldset.schema.json
var schemaSource []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Store holds the fields of one or more documents. It is read-only after
// loading and safe for concurrent use.
type Store struct {
	fields map[string]entry
	order  []string
}

type entry struct {
	config   field.Config
	resolved field.Resolved
	source   string
}

type documentFile struct {
	Order  []string                `json:"order"`
	Fields map[string]field.Config `json:"fields"`
}

// LoadFS walks fsys and loads every .json, .yaml, .yml and .toml file. A nil
// fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{fields: make(map[string]entry)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !IsDocumentFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldset: read %s: %w", path, err)
		}
		doc, err := Parse(path, data)
		if err != nil {
			return err
		}
		return store.add(doc, path)
	})
	if err != nil {
		return nil, err
	}

	if err := store.checkOrder(); err != nil {
		return nil, err
	}
	return store, nil
}

// Document is a parsed, schema-checked field set file.
type Document struct {
	Order  []string
	Fields map[string]field.Config
}

// Parse decodes a single document. The format follows the extension of
// name; unknown extensions are tried as JSON, YAML and TOML in turn.
func Parse(name string, data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, fmt.Errorf("%w: %s is empty", ErrInvalidDocument, name)
	}

	generic, err := decodeGeneric(name, data)
	if err != nil {
		return Document{}, err
	}

	normalized, instance, err := normalize(generic)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
	}

	schema, err := documentSchema()
	if err != nil {
		return Document{}, err
	}
	if err := schema.Validate(instance); err != nil {
		return Document{}, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
	}

	var raw documentFile
	if err := json.Unmarshal(normalized, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
	}

	doc := Document{Order: raw.Order, Fields: make(map[string]field.Config, len(raw.Fields))}
	for key, cfg := range raw.Fields {
		fieldName := strings.TrimSpace(key)
		if fieldName == "" {
			return Document{}, fmt.Errorf("%w: %s defines a field with an empty name", ErrInvalidDocument, name)
		}
		cfg.Name = fieldName
		doc.Fields[fieldName] = cfg
	}
	return doc, nil
}

// Field returns the configuration of name.
func (s *Store) Field(name string) (field.Config, bool) {
	if s == nil {
		return field.Config{}, false
	}
	e, ok := s.fields[name]
	return e.config, ok
}

// Resolved returns the resolved configuration of name.
func (s *Store) Resolved(name string) (field.Resolved, bool) {
	if s == nil {
		return field.Resolved{}, false
	}
	e, ok := s.fields[name]
	return e.resolved, ok
}

// Source returns the path of the document that defines name.
func (s *Store) Source(name string) string {
	if s == nil {
		return ""
	}
	return s.fields[name].source
}

// Names lists the fields in declared order followed by the remaining ones
// sorted by name.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.fields))
	seen := make(map[string]struct{}, len(s.order))
	for _, name := range s.order {
		out = append(out, name)
		seen[name] = struct{}{}
	}
	rest := make([]string, 0, len(s.fields)-len(seen))
	for name := range s.fields {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Configs returns every field configuration in Names order.
func (s *Store) Configs() []field.Config {
	names := s.Names()
	out := make([]field.Config, 0, len(names))
	for _, name := range names {
		out = append(out, s.fields[name].config)
	}
	return out
}

// Empty reports whether the store holds any field.
func (s *Store) Empty() bool {
	return s == nil || len(s.fields) == 0
}

// Bind creates a binding for name.
func (s *Store) Bind(name string, opts ...field.Option) (*field.Binding, error) {
	cfg, ok := s.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return field.New(cfg, opts...)
}

func (s *Store) add(doc Document, source string) error {
	names := make([]string, 0, len(doc.Fields))
	for name := range doc.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if prev, exists := s.fields[name]; exists {
			return fmt.Errorf("%w: %q in %s and %s", ErrDuplicateField, name, prev.source, source)
		}
		cfg := doc.Fields[name]
		resolved, err := cfg.Resolve()
		if err != nil {
			return fmt.Errorf("fieldset: %s: %w", source, err)
		}
		s.fields[name] = entry{config: cfg, resolved: resolved, source: source}
	}
	s.order = append(s.order, doc.Order...)
	return nil
}

func (s *Store) checkOrder() error {
	seen := make(map[string]struct{}, len(s.order))
	for _, name := range s.order {
		if _, ok := s.fields[name]; !ok {
			return fmt.Errorf("%w: %q listed in order", ErrUnknownField, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q listed twice in order", ErrDuplicateField, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func decodeGeneric(name string, data []byte) (any, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return decodeJSON(name, data)
	case ".yaml", ".yml":
		return decodeYAML(name, data)
	case ".toml":
		return decodeTOML(name, data)
	}

	if v, err := decodeJSON(name, data); err == nil {
		return v, nil
	}
	if v, err := decodeYAML(name, data); err == nil {
		return v, nil
	}
	if v, err := decodeTOML(name, data); err == nil {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s: invalid JSON, YAML or TOML", ErrInvalidDocument, name)
}

func decodeJSON(name string, data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
	}
	return v, nil
}

func decodeYAML(name string, data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
	}
	return v, nil
}

func decodeTOML(name string, data []byte) (any, error) {
	v := make(map[string]any)
	if _, err := toml.Decode(string(data), &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
	}
	return v, nil
}

// normalize re-encodes a decoded document as JSON so every format reaches
// the schema with the same value types.
func normalize(v any) ([]byte, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var instance any
	if err := dec.Decode(&instance); err != nil {
		return nil, nil, err
	}
	return data, instance, nil
}

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("fieldset: add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("fieldset: compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// IsDocumentFile reports whether path has a field set document extension.
func IsDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
