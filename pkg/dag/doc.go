// Package dag models the per-package dependency diagram.
//
// # Overview
//
// Each diagram depgraphs renders has two levels: one package node and the
// package's direct dependencies below it, connected package → dependency.
// The graph is built fresh for every package and discarded once rendered.
//
// # Building a Diagram
//
// [ForPackage] builds the graph from a package name and its requires list:
//
//	g, err := dag.ForPackage("foo", []string{"bar", "baz"})
//	// nodes: foo (package), bar, baz (dependencies)
//	// edges: foo→bar, foo→baz
//
// Lower-level construction is available through [New], [DAG.AddNode],
// [DAG.PutNode] and [DAG.AddEdge].
//
// # Identifiers
//
// Node IDs are produced by [SanitizeID], which replaces every character
// outside [A-Za-z0-9_-] with '_'. The same IDs name the output files, so a
// package "a/b" is drawn as node a_b and written to a_b_dependencies.png.
//
// Sanitization is lossy. Dependencies whose names collapse to the same ID are
// drawn as one node with one edge per original entry; two packages that
// collapse to the same ID overwrite each other's output file. Neither case
// is detected.
//
// # Node Kinds
//
//   - [NodeKindPackage]: the source node, drawn as a light-blue box
//   - [NodeKindDependency]: a sink node, drawn as a light-gray ellipse
package dag
