package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formmask/pkg/field"
	"github.com/goliatone/go-formmask/pkg/validation"
)

// ExtensionKey is the schema extension carrying field options. Its value is
// either a kind name or an object using the field set document keys.
const ExtensionKey = "x-formmask"

// OrderExtensionKey on the component schema lists property names in prompt
// order; unlisted properties follow sorted by name.
const OrderExtensionKey = "x-formmask-order"

var formatKinds = map[string]validation.Kind{
	"email":       validation.KindEmail,
	"date":        validation.KindDate,
	"time":        validation.KindTime,
	"phone":       validation.KindPhone,
	"tel":         validation.KindPhone,
	"cpf":         validation.KindCpfCnpj,
	"cnpj":        validation.KindCpfCnpj,
	"cpf-cnpj":    validation.KindCpfCnpj,
	"cep":         validation.KindCep,
	"postal-code": validation.KindCep,
	"year":        validation.KindYear,
	"plate":       validation.KindPlate,
	"decimal":     validation.KindDecimal,
	"double":      validation.KindDecimal,
	"float":       validation.KindDecimal,
}

// FieldsFromSchema loads raw (JSON or YAML) and returns a field for every
// string or number property of the component schema schemaName. Every
// returned configuration resolves.
func FieldsFromSchema(ctx context.Context, raw []byte, schemaName string) ([]field.Config, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if doc.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	schema := ref.Value

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var fields []field.Config
	for _, name := range propertyOrder(schema) {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		cfg, ok, err := fieldFromProperty(name, prop.Value, required[name])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if _, err := cfg.Resolve(); err != nil {
			return nil, fmt.Errorf("openapi: schema %q property %q: %w", schemaName, name, err)
		}
		fields = append(fields, cfg)
	}
	return fields, nil
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool) (field.Config, bool, error) {
	typ := schemaType(prop.Type)
	if typ != "string" && typ != "number" && typ != "integer" {
		return field.Config{}, false, nil
	}

	cfg := field.Config{
		Name:     name,
		Label:    strings.TrimSpace(prop.Title),
		Pattern:  kindFor(typ, prop.Format),
		Required: field.Bool(required),
	}
	if cfg.Label == "" {
		cfg.Label = name
	}
	if prop.MinLength > 0 {
		cfg.MinLength = field.Int(int(prop.MinLength))
	}
	if prop.MaxLength != nil {
		cfg.MaxLength = field.Int(int(*prop.MaxLength))
	}

	if ext, ok := prop.Extensions[ExtensionKey]; ok {
		if err := applyExtension(&cfg, ext); err != nil {
			return field.Config{}, false, fmt.Errorf("%w: property %q: %w", ErrInvalidExtension, name, err)
		}
	}
	cfg.Name = name
	return cfg, true, nil
}

// applyExtension overlays the extension on cfg. Only keys present in the
// extension change cfg.
func applyExtension(cfg *field.Config, ext any) error {
	switch v := ext.(type) {
	case string:
		kind, err := validation.ParseKind(v)
		if err != nil {
			return err
		}
		cfg.Pattern = kind
		return nil
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return err
		}
		return applyExtension(cfg, decoded)
	default:
		return fmt.Errorf("unsupported value %T", ext)
	}
}

func kindFor(typ, format string) validation.Kind {
	if kind, ok := formatKinds[strings.ToLower(strings.TrimSpace(format))]; ok {
		return kind
	}
	if typ == "number" {
		return validation.KindDecimal
	}
	return validation.KindDefault
}

func propertyOrder(schema *openapi3.Schema) []string {
	var out []string
	seen := make(map[string]struct{}, len(schema.Properties))
	if listed, ok := schema.Extensions[OrderExtensionKey].([]any); ok {
		for _, item := range listed {
			name, ok := item.(string)
			if !ok {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
