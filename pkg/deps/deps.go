package deps

import (
	"iter"
	"slices"
)

// Package is one entry of the package metadata document.
// Only the dependency list is consumed; other fields of an entry are ignored.
type Package struct {
	Name     string   // Top-level key in the metadata document
	Requires []string // Direct dependency names, in declaration order (may be nil)
}

// HasRequires reports whether the package declares at least one dependency.
// Packages without dependencies produce no diagram.
func (p Package) HasRequires() bool { return len(p.Requires) > 0 }

// Index is the loaded metadata mapping from package name to [Package].
//
// Unlike a Go map, Index remembers the order in which names appeared in the
// document so that diagrams are produced in a stable, reproducible order.
// When a name appears more than once, the last entry wins but keeps the
// position of the first.
//
// The zero value is an empty index ready for use. Index is not safe for
// concurrent modification.
type Index struct {
	names []string
	pkgs  map[string]Package
}

// NewIndex creates an index from pkgs, in order.
func NewIndex(pkgs ...Package) *Index {
	idx := &Index{}
	for _, p := range pkgs {
		idx.Put(p)
	}
	return idx
}

// Put inserts p or replaces the entry with the same name.
func (idx *Index) Put(p Package) {
	if idx.pkgs == nil {
		idx.pkgs = make(map[string]Package)
	}
	if _, exists := idx.pkgs[p.Name]; !exists {
		idx.names = append(idx.names, p.Name)
	}
	idx.pkgs[p.Name] = p
}

// Get returns the package with the given name.
func (idx *Index) Get(name string) (Package, bool) {
	p, ok := idx.pkgs[name]
	return p, ok
}

// Len returns the number of distinct package names.
func (idx *Index) Len() int { return len(idx.names) }

// Names returns package names in document order.
func (idx *Index) Names() []string { return slices.Clone(idx.names) }

// All iterates over packages in document order.
func (idx *Index) All() iter.Seq[Package] {
	return func(yield func(Package) bool) {
		for _, name := range idx.names {
			if !yield(idx.pkgs[name]) {
				return
			}
		}
	}
}

// WithRequires returns the number of packages that declare dependencies.
func (idx *Index) WithRequires() int {
	n := 0
	for _, name := range idx.names {
		if idx.pkgs[name].HasRequires() {
			n++
		}
	}
	return n
}
