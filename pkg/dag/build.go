package dag

import "strings"

// SanitizeID maps an arbitrary name to an identifier that is safe both as a
// Graphviz node ID and as a file name component.
//
// Every character outside [A-Za-z0-9_-] is replaced with a single '_'. The
// result has one character per input character, in the same order. Bytes that
// are not valid UTF-8 are replaced one by one. SanitizeID is idempotent.
//
// Distinct names may sanitize to the same ID ("a/b" and "a.b" both become
// "a_b"); such collisions are not resolved.
func SanitizeID(name string) string {
	return strings.Map(func(r rune) rune {
		if isIDRune(r) {
			return r
		}
		return '_'
	}, name)
}

func isIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

// ForPackage builds the diagram for one package: a package node for name and
// one dependency node plus one edge per entry of requires.
//
// All IDs go through [SanitizeID]. Dependencies that sanitize to the same ID
// share one node, but every entry still gets its own edge, so the graph has
// exactly len(requires) edges. When a dependency sanitizes to the package's
// own ID, the later declaration wins and the node is styled as a dependency.
//
// ForPackage returns an error only if a sanitized ID is empty, which happens
// for empty names.
func ForPackage(name string, requires []string) (*DAG, error) {
	g := New()
	src := SanitizeID(name)
	if err := g.PutNode(Node{ID: src, Kind: NodeKindPackage}); err != nil {
		return nil, err
	}
	for _, dep := range requires {
		dst := SanitizeID(dep)
		if err := g.PutNode(Node{ID: dst, Kind: NodeKindDependency}); err != nil {
			return nil, err
		}
		if err := g.AddEdge(Edge{From: src, To: dst}); err != nil {
			return nil, err
		}
	}
	return g, nil
}
