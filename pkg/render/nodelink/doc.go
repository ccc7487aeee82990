// Package nodelink renders dependency diagrams as node-link images.
//
// # Overview
//
// This package turns a [dag.DAG] into Graphviz DOT and hands it to a
// rendering backend that lays it out and rasterizes it. The package node is
// a filled light-blue box; each dependency is a filled light-gray ellipse,
// with one arrow per declared dependency.
//
// # Usage
//
// Pick a backend and render a diagram to a file:
//
//	r, err := nodelink.New(nodelink.BackendGraphviz, "")
//	path := nodelink.OutputPath("dependency_graphs", "foo", nodelink.FormatPNG)
//	err = r.Render(ctx, g, nodelink.FormatPNG, path)
//
// Or get the DOT source directly:
//
//	dot := nodelink.ToDOT(g)
//
// # Backends
//
// Two [Renderer] implementations are provided:
//
//   - [GraphvizRenderer] (backend "graphviz", the default) runs Graphviz in
//     process via [github.com/goccy/go-graphviz]. Nothing needs to be installed.
//   - [CommandRenderer] (backend "dot") runs the dot executable. The DOT
//     source is written to an intermediate .gv file which is always removed.
//
// Tests and callers that need a different backend can implement [Renderer]
// or wrap a function with [RenderFunc].
//
// # Errors
//
// Backend failures are returned with code RENDER_FAILED from
// [github.com/matzehuels/depgraphs/pkg/errors]. A failed render never leaves a
// file at the output path.
//
// [dag.DAG]: github.com/matzehuels/depgraphs/pkg/dag.DAG
package nodelink
