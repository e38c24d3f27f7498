package openapi

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind enumerates where a document can be read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies an OpenAPI document.
type Source struct {
	kind     SourceKind
	location string
}

// Kind returns the source modality.
func (s Source) Kind() SourceKind { return s.kind }

// Location returns the path or URL of the document.
func (s Source) Location() string { return s.location }

// SourceFromFile points at a file on disk.
func SourceFromFile(path string) Source {
	return Source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS points at a file inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return Source{kind: SourceKindFS, location: name}
}

// SourceFromURL validates raw and points at an HTTP or HTTPS document.
func SourceFromURL(raw string) (Source, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return Source{}, fmt.Errorf("openapi: invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Source{}, fmt.Errorf("openapi: unsupported URL scheme %q", u.Scheme)
	}
	return Source{kind: SourceKindURL, location: raw}, nil
}

// ParseSource treats http(s) locations as URLs and anything else as a file
// path.
func ParseSource(location string) (Source, error) {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return SourceFromURL(location)
	}
	if strings.TrimSpace(location) == "" {
		return Source{}, errors.New("openapi: empty source")
	}
	return SourceFromFile(location), nil
}
