package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depgraphs/pkg/dag"
	"github.com/matzehuels/depgraphs/pkg/errors"
)

// Node styles, as Graphviz attribute lists.
const (
	packageAttrs    = `shape=box, style=filled, fillcolor=lightblue`
	dependencyAttrs = `shape=ellipse, style=filled, fillcolor=lightgray`
)

// ToDOT converts a diagram to Graphviz DOT source.
//
// The package node is drawn as a filled light-blue box and dependencies as
// filled light-gray ellipses. Nodes and edges are written in insertion
// order, one edge statement per [dag.Edge], so parallel edges are kept.
func ToDOT(g *dag.DAG) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")

	for _, n := range g.Nodes() {
		attrs := dependencyAttrs
		if n.IsPackage() {
			attrs = packageAttrs
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// GraphvizRenderer renders diagrams with Graphviz compiled to WebAssembly
// and run in-process. No external tools are required.
type GraphvizRenderer struct{}

// Render lays out g and writes it to path in the given format.
// The image is rendered to memory first, so a failed render leaves no file.
func (r *GraphvizRenderer) Render(ctx context.Context, g *dag.DAG, format Format, path string) error {
	data, err := r.RenderBytes(ctx, g, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
	}
	return nil
}

// RenderBytes lays out g and returns the encoded image.
func (r *GraphvizRenderer) RenderBytes(ctx context.Context, g *dag.DAG, format Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(ToDOT(g)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.Format(format), &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
