// Package pkg provides the libraries behind depgraphs.
//
// # Overview
//
// depgraphs reads a package metadata file and renders one diagram per
// package showing the package and its direct dependencies. The pkg
// directory is organized into these areas:
//
//  1. [deps] and [io] - The package index and its JSON codec
//  2. [dag] - Per-package graphs and name sanitization
//  3. [render/nodelink] - DOT generation and the rendering backends
//  4. [pipeline] - Orchestration (load → render, per-package isolation)
//  5. [publish] - Optional upload of rendered diagrams to S3-compatible storage
//  6. [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
//	data.json
//	    ↓
//	[io] package (decode into an ordered index)
//	    ↓
//	[dag] package (one graph per package with requires)
//	    ↓
//	[render/nodelink] package (DOT → Graphviz → PNG/SVG)
//	    ↓
//	<output_dir>/<name>_dependencies.png
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/depgraphs/pkg/dag"
//	    "github.com/matzehuels/depgraphs/pkg/io"
//	    "github.com/matzehuels/depgraphs/pkg/render/nodelink"
//	)
//
//	idx, _ := io.ImportPackages("data.json")
//	pkg, _ := idx.Get("foo")
//	g, _ := dag.ForPackage(pkg.Name, pkg.Requires)
//	path := nodelink.OutputPath("out", dag.SanitizeID(pkg.Name), nodelink.FormatPNG)
//	_ = (&nodelink.GraphvizRenderer{}).Render(ctx, g, nodelink.FormatPNG, path)
//
// Most callers use [pipeline.Runner], which applies the skip rule, reports
// progress and keeps going when a single package fails to render.
package pkg
