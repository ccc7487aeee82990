package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/depgraphs/pkg/deps"
	"github.com/matzehuels/depgraphs/pkg/errors"
)

// entry is the consumed part of one package object. Pointer elements let
// null dependency names be told apart from empty strings.
type entry struct {
	Requires []*string `json:"requires"`
}

var jsonNull = []byte("null")

// ReadPackages decodes a package metadata document from r into an [deps.Index].
//
// The input must be a JSON object whose values are objects:
//
//	{
//	  "foo": {"requires": ["bar", "baz"]},
//	  "bar": {"requires": null},
//	  "baz": {}
//	}
//
// Each entry may carry a "requires" field holding an array of strings, or
// null. All other fields are ignored. Packages keep the order in which they
// appear in the document.
//
// ReadPackages returns an error with code [errors.ErrCodeInvalidMetadata] if:
//   - The JSON is malformed or has trailing data
//   - The top-level value is not an object
//   - An entry is not an object
//   - "requires" is not an array of strings, or holds null
//
// Empty names are accepted here; they fail later, when the package's graph
// is built, so only that package is affected.
//
// Errors name the offending package. ReadPackages does not close r.
func ReadPackages(r io.Reader) (*deps.Index, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "decode")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New(errors.ErrCodeInvalidMetadata, "top-level value must be an object")
	}

	idx := &deps.Index{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "decode")
		}
		name, _ := tok.(string)

		pkg, err := decodeEntry(dec, name)
		if err != nil {
			return nil, err
		}
		idx.Put(pkg)
	}

	// Closing brace of the top-level object.
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "decode")
	}
	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		return nil, errors.New(errors.ErrCodeInvalidMetadata, "unexpected data after top-level object")
	}

	return idx, nil
}

func decodeEntry(dec *json.Decoder, name string) (deps.Package, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return deps.Package{}, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "package %s", name)
	}
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return deps.Package{}, errors.New(errors.ErrCodeInvalidMetadata, "package %s: entry must be an object", name)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return deps.Package{}, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "package %s", name)
	}

	pkg := deps.Package{Name: name}
	if e.Requires == nil {
		return pkg, nil
	}
	pkg.Requires = make([]string, 0, len(e.Requires))
	for i, dep := range e.Requires {
		if dep == nil {
			return deps.Package{}, errors.New(errors.ErrCodeInvalidMetadata, "package %s: requires[%d] must be a string", name, i)
		}
		pkg.Requires = append(pkg.Requires, *dep)
	}
	return pkg, nil
}

// ImportPackages reads the metadata document at path and returns the decoded index.
//
// ImportPackages opens the file, decodes it using [ReadPackages], and closes
// the file. A missing file yields [errors.ErrCodeFileNotFound]; any other open
// failure yields [errors.ErrCodeInvalidInput]. Decoding failures
// keep the code set by [ReadPackages] and are prefixed with the file path.
func ImportPackages(path string) (*deps.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	idx, err := ReadPackages(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return idx, nil
}
