package nodelink

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/matzehuels/depgraphs/pkg/dag"
	"github.com/matzehuels/depgraphs/pkg/errors"
)

// defaultDotPath is the executable looked up on PATH when none is configured.
const defaultDotPath = "dot"

// CommandRenderer renders diagrams by shelling out to the Graphviz dot tool.
// Requires Graphviz: brew install graphviz (macOS), apt install graphviz (Linux).
type CommandRenderer struct {
	// Path is the dot executable. Empty means "dot" looked up on PATH.
	Path string
}

// Render writes the DOT source next to path as <base>.gv, runs
// dot -T<format> -o <path> <base>.gv, and removes the source file again
// whether or not dot succeeded. On failure any partial output is removed and
// the error carries dot's stderr.
func (r *CommandRenderer) Render(ctx context.Context, g *dag.DAG, format Format, path string) error {
	bin := r.Path
	if bin == "" {
		bin = defaultDotPath
	}
	if _, err := exec.LookPath(bin); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "%s export requires Graphviz. Install with:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz", format)
	}

	src := sourcePath(path)
	if err := os.WriteFile(src, []byte(ToDOT(g)), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", src)
	}
	defer os.Remove(src)

	cmd := exec.CommandContext(ctx, bin, "-T"+string(format), "-o", path, src)

	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		_ = os.Remove(path)
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "%s: %s", filepath.Base(bin), strings.TrimSpace(errBuf.String()))
	}
	return nil
}

// sourcePath returns the intermediate DOT file used for an output path.
func sourcePath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".gv"
}
