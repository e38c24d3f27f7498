// Package testsupport holds fixture and golden file helpers shared by the
// package tests.
package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formmask/pkg/field"
)

// UpdateEnv names the environment variable that rewrites golden files.
const UpdateEnv = "UPDATE_GOLDENS"

// MustReadFixture reads a fixture and fails the test when it is missing.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// MustLoadFields loads a JSON golden file holding field configurations.
func MustLoadFields(t *testing.T, path string) []field.Config {
	t.Helper()

	var out []field.Config
	if err := json.Unmarshal(MustReadFixture(t, path), &out); err != nil {
		t.Fatalf("unmarshal fields golden: %v", err)
	}
	return out
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set and
// reports whether it did; callers return early when it did.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv(UpdateEnv) == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareFields fails the test with a (-want +got) diff when the field
// configurations differ.
func CompareFields(t *testing.T, want, got []field.Config) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
