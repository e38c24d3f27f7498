package openapi

import "errors"

var (
	// ErrInvalidDocument wraps kin-openapi load and validation failures.
	ErrInvalidDocument = errors.New("openapi: invalid document")
	// ErrSchemaNotFound is returned when the named component schema is absent.
	ErrSchemaNotFound = errors.New("openapi: schema not found")
	// ErrInvalidExtension is returned for malformed x-formmask values.
	ErrInvalidExtension = errors.New("openapi: invalid x-formmask extension")
	// ErrHTTPDisabled is returned when a URL source is loaded without an
	// HTTP client.
	ErrHTTPDisabled = errors.New("openapi: http support disabled")
)
