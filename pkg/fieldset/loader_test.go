package fieldset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formmask/pkg/field"
	"github.com/goliatone/go-formmask/pkg/fieldset"
	"github.com/goliatone/go-formmask/pkg/validation"
)

const contactJSON = `{
  "order": ["phone", "email"],
  "fields": {
    "phone": {"label": "Telefone", "pattern": "phone", "required": true, "mask_min_length": 3},
    "email": {"label": "Email", "pattern": "email"}
  }
}`

const addressYAML = `
fields:
  cep:
    label: CEP
    pattern: zip
  plate:
    label: Placa
    pattern: vehicle_plate
    max_length: 7
`

const billingTOML = `
[fields.amount]
label = "Valor"
pattern = "decimal"
digits_before_separator = 6
digits_after_separator = 2
`

func TestLoadFS_MixedFormats(t *testing.T) {
	store, err := fieldset.LoadFS(fstest.MapFS{
		"contact.json":        {Data: []byte(contactJSON)},
		"nested/address.yaml": {Data: []byte(addressYAML)},
		"billing.toml":        {Data: []byte(billingTOML)},
		"README.md":           {Data: []byte("ignored")},
	})
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}

	if diff := cmp.Diff([]string{"phone", "email", "amount", "cep", "plate"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	phone, ok := store.Field("phone")
	if !ok {
		t.Fatalf("phone field missing")
	}
	want := field.Config{
		Name:          "phone",
		Label:         "Telefone",
		Pattern:       validation.KindPhone,
		Required:      field.Bool(true),
		MaskMinLength: field.Int(3),
	}
	if diff := cmp.Diff(want, phone); diff != "" {
		t.Fatalf("phone config mismatch (-want +got):\n%s", diff)
	}

	amount, ok := store.Resolved("amount")
	if !ok || amount.Decimal == nil || amount.Decimal.Before() != 6 || amount.Decimal.After() != 2 {
		t.Fatalf("unexpected decimal resolution: %+v", amount)
	}
	if store.Source("cep") != "nested/address.yaml" {
		t.Fatalf("unexpected source %q", store.Source("cep"))
	}

	plate, err := store.Bind("plate")
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	field.Replay(context.Background(), plate, "ABC1D23")
	if plate.Text() != "ABC-1D23" || !plate.Verdict().Valid {
		t.Fatalf("unexpected plate binding state %q %+v", plate.Text(), plate.Verdict())
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := []struct {
		name   string
		files  fstest.MapFS
		target error
	}{
		{
			name: "duplicate field",
			files: fstest.MapFS{
				"a.json": {Data: []byte(`{"fields": {"phone": {"pattern": "phone"}}}`)},
				"b.yaml": {Data: []byte("fields:\n  phone:\n    pattern: phone\n")},
			},
			target: fieldset.ErrDuplicateField,
		},
		{
			name:   "unknown property",
			files:  fstest.MapFS{"a.json": {Data: []byte(`{"fields": {"phone": {"colour": "red"}}}`)}},
			target: fieldset.ErrInvalidDocument,
		},
		{
			name:   "unknown pattern",
			files:  fstest.MapFS{"a.yaml": {Data: []byte("fields:\n  id:\n    pattern: ssn\n")}},
			target: fieldset.ErrInvalidDocument,
		},
		{
			name:   "negative length",
			files:  fstest.MapFS{"a.toml": {Data: []byte("[fields.name]\nmax_length = -1\n")}},
			target: fieldset.ErrInvalidDocument,
		},
		{
			name:   "missing fields",
			files:  fstest.MapFS{"a.json": {Data: []byte(`{"order": []}`)}},
			target: fieldset.ErrInvalidDocument,
		},
		{
			name:   "empty file",
			files:  fstest.MapFS{"a.yaml": {Data: []byte("  \n")}},
			target: fieldset.ErrInvalidDocument,
		},
		{
			name:   "mask without placeholders",
			files:  fstest.MapFS{"a.json": {Data: []byte(`{"fields": {"code": {"mask": "--"}}}`)}},
			target: field.ErrInvalidConfig,
		},
		{
			name:   "order names unknown field",
			files:  fstest.MapFS{"a.json": {Data: []byte(`{"order": ["ghost"], "fields": {"phone": {"pattern": "phone"}}}`)}},
			target: fieldset.ErrUnknownField,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fieldset.LoadFS(tc.files)
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestParse_FallsBackAcrossFormats(t *testing.T) {
	doc, err := fieldset.Parse("fields.conf", []byte("fields:\n  year:\n    pattern: year\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Fields["year"].Pattern != validation.KindYear || doc.Fields["year"].Name != "year" {
		t.Fatalf("unexpected document %+v", doc)
	}

	doc, err = fieldset.Parse("fields.conf", []byte("[fields.hour]\npattern = \"time\"\n"))
	if err != nil {
		t.Fatalf("Parse toml fallback: %v", err)
	}
	if doc.Fields["hour"].Pattern != validation.KindTime {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestStore_EmptyAndUnknown(t *testing.T) {
	store, err := fieldset.LoadFS(nil)
	if err != nil {
		t.Fatalf("LoadFS(nil): %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	if _, err := store.Bind("phone"); !errors.Is(err, fieldset.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("filesystem watcher test")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "contact.json"), []byte(contactJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores := make(chan *fieldset.Store, 4)
	errs := make(chan error, 4)
	done := make(chan error, 1)
	go func() {
		done <- fieldset.Watch(ctx, dir,
			func(s *fieldset.Store) { stores <- s },
			func(err error) { errs <- err },
		)
	}()

	first := receive(t, stores)
	if len(first.Names()) != 2 {
		t.Fatalf("expected initial store with two fields, got %v", first.Names())
	}

	if err := os.WriteFile(filepath.Join(dir, "billing.toml"), []byte(billingTOML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	second := receive(t, stores)
	if _, ok := second.Field("amount"); !ok {
		t.Fatalf("expected reloaded store to hold amount, got %v", second.Names())
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"fields": 1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case err := <-errs:
		if !errors.Is(err, fieldset.ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload error")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned %v", err)
	}
}

func receive(t *testing.T, stores <-chan *fieldset.Store) *fieldset.Store {
	t.Helper()
	select {
	case s := <-stores:
		return s
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for store")
		return nil
	}
}
