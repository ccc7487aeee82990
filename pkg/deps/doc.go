// Package deps defines the package metadata model read by depgraphs.
//
// # Overview
//
// The input document is a JSON object keyed by package name (the slpkg
// repository data.json layout). Each value is an object whose optional
// "requires" field lists direct dependency names:
//
//	{
//	  "foo": {"requires": ["bar", "baz"], "version": "1.0"},
//	  "bar": {}
//	}
//
// [Package] keeps the name and the dependency list; everything else in an
// entry is ignored. [Index] holds every package in document order.
//
// Decoding lives in [io]; this package only holds the types.
//
// [io]: github.com/matzehuels/depgraphs/pkg/io
package deps
