// Package messages renders the user-facing text of a validation verdict.
//
// The engine only reports an ErrorKind; this package turns it into a
// sentence for a locale using pongo2 templates from a built-in catalog
// (pt-BR and en), a caller-supplied Translator, or both.
package messages
