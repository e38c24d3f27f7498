// Package fieldset loads named field configurations from JSON, YAML or TOML
// documents.
//
// A document holds a "fields" map keyed by field name and an optional
// "order" list. Every document is checked against an embedded JSON Schema
// and every field is resolved at load time, so a Store only ever holds
// bindable configurations.
package fieldset
