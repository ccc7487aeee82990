// Package io reads and writes package metadata documents.
//
// # Overview
//
// depgraphs consumes a single JSON document mapping package names to
// package objects. Only the "requires" field of each object matters:
//
//	{
//	  "foo": {"requires": ["bar", "baz"], "version": "1.2"},
//	  "bar": {"requires": []},
//	  "baz": {}
//	}
//
// # Import
//
// Use [ImportPackages] to read a file, or [ReadPackages] to read from any
// io.Reader:
//
//	idx, err := io.ImportPackages("/var/lib/slpkg/repos/ponce/data.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding is strict about the parts it consumes: an entry that is not an
// object, or a "requires" value that is not a list of non-empty strings,
// fails the whole load with an error naming the package. Nothing is
// partially loaded.
//
// The returned [deps.Index] keeps document order, so packages are
// processed in the order they appear in the file.
//
// # Export
//
// [WriteJSON] writes an index back out in the same shape, reduced to the
// "requires" field. The data server uses it for its normalized view.
//
// [deps.Index]: github.com/matzehuels/depgraphs/pkg/deps.Index
package io
