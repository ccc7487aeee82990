package nodelink

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/matzehuels/depgraphs/pkg/dag"
	"github.com/matzehuels/depgraphs/pkg/errors"
)

// Format is an output image format.
type Format string

// Supported output formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = FormatPNG

// Backend names accepted by [New].
const (
	BackendGraphviz = "graphviz" // in-process Graphviz (WebAssembly)
	BackendDot      = "dot"      // external dot executable
)

// DefaultBackend is the backend used when none is configured.
const DefaultBackend = BackendGraphviz

// ValidateFormat checks that f is a supported output format.
func ValidateFormat(f Format) error {
	switch f {
	case FormatPNG, FormatSVG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg)", string(f))
}

// Renderer lays out a diagram and writes the image to path.
//
// Implementations must not leave a file at path when they fail, and must
// remove any intermediate files they create. A failure is returned as an
// error with code [errors.ErrCodeRenderFailed].
type Renderer interface {
	Render(ctx context.Context, g *dag.DAG, format Format, path string) error
}

// RenderFunc adapts a function to the [Renderer] interface.
type RenderFunc func(ctx context.Context, g *dag.DAG, format Format, path string) error

// Render calls f.
func (f RenderFunc) Render(ctx context.Context, g *dag.DAG, format Format, path string) error {
	return f(ctx, g, format, path)
}

// New returns the renderer for the named backend.
// dotPath is only used by the dot backend; empty means "dot" from PATH.
func New(backend, dotPath string) (Renderer, error) {
	switch backend {
	case "", BackendGraphviz:
		return &GraphvizRenderer{}, nil
	case BackendDot:
		return &CommandRenderer{Path: dotPath}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidBackend, "invalid backend: %q (must be one of: graphviz, dot)", backend)
}

// OutputPath returns the file a package's diagram is written to:
// <dir>/<id>_dependencies.<format>, where id is the sanitized package name.
func OutputPath(dir, id string, format Format) string {
	return filepath.Join(dir, fmt.Sprintf("%s_dependencies.%s", id, format))
}
