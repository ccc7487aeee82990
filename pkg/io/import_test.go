package io

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/depgraphs/pkg/errors"
)

func TestReadPackages(t *testing.T) {
	input := `{
		"foo": {"requires": ["bar", "baz"], "version": "1.0"},
		"bar": {},
		"baz": {"requires": null},
		"qux": {"requires": []}
	}`

	idx, err := ReadPackages(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPackages() error: %v", err)
	}

	if got, want := idx.Names(), []string{"foo", "bar", "baz", "qux"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	foo, _ := idx.Get("foo")
	if !slices.Equal(foo.Requires, []string{"bar", "baz"}) {
		t.Errorf("foo.Requires = %v, want [bar baz]", foo.Requires)
	}
	for _, name := range []string{"bar", "baz", "qux"} {
		p, _ := idx.Get(name)
		if p.HasRequires() {
			t.Errorf("%s should have no requires, got %v", name, p.Requires)
		}
	}
}

func TestReadPackagesDuplicateKey(t *testing.T) {
	input := `{"a": {"requires": ["x"]}, "b": {}, "a": {"requires": ["y"]}}`

	idx, err := ReadPackages(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPackages() error: %v", err)
	}
	if got := idx.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", got)
	}
	a, _ := idx.Get("a")
	if !slices.Equal(a.Requires, []string{"y"}) {
		t.Errorf("a.Requires = %v, want [y]", a.Requires)
	}
}

func TestReadPackagesEmptyObject(t *testing.T) {
	idx, err := ReadPackages(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadPackages() error: %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestReadPackagesEmptyNames(t *testing.T) {
	input := `{"odd": {"requires": ["", "y"]}, "": {"requires": ["x"]}}`

	idx, err := ReadPackages(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPackages() error: %v", err)
	}
	if got := idx.Names(); !slices.Equal(got, []string{"odd", ""}) {
		t.Errorf("Names() = %q, want [odd \"\"]", got)
	}
	odd, _ := idx.Get("odd")
	if !slices.Equal(odd.Requires, []string{"", "y"}) {
		t.Errorf("odd.Requires = %q, want [\"\" y]", odd.Requires)
	}
}

func TestReadPackagesErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"malformed", `{"foo": `, ""},
		{"empty input", ``, ""},
		{"top-level array", `[1, 2]`, "must be an object"},
		{"top-level string", `"foo"`, "must be an object"},
		{"entry is string", `{"foo": "bar"}`, "package foo"},
		{"entry is null", `{"foo": null}`, "entry must be an object"},
		{"requires is string", `{"foo": {"requires": "bar"}}`, "package foo"},
		{"requires has number", `{"foo": {"requires": ["bar", 1]}}`, "package foo"},
		{"requires has null", `{"foo": {"requires": ["bar", null]}}`, "requires[1]"},
		{"trailing data", `{"foo": {}} {"bar": {}}`, "unexpected data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPackages(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadPackages() expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidMetadata) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidMetadata)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestImportPackages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"foo": {"requires": ["bar"]}}`), 0644); err != nil {
		t.Fatal(err)
	}

	idx, err := ImportPackages(path)
	if err != nil {
		t.Fatalf("ImportPackages() error: %v", err)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestImportPackagesMissingFile(t *testing.T) {
	_, err := ImportPackages(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestImportPackagesInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`not json`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportPackages(path)
	if !errors.Is(err, errors.ErrCodeInvalidMetadata) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeInvalidMetadata)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should mention path", err)
	}
}
