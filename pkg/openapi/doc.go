// Package openapi derives field configurations from the component schemas of
// an OpenAPI 3 document.
//
// Each string or number property of the named schema becomes a field. The
// kind is taken from an "x-formmask" extension when present, otherwise from
// the property format; length bounds, title and the schema's required list
// fill the rest.
package openapi
