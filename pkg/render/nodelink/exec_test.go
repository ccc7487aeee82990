package nodelink

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matzehuels/depgraphs/pkg/dag"
	"github.com/matzehuels/depgraphs/pkg/errors"
)

// fakeDot writes an executable shell script standing in for dot.
func fakeDot(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "dot")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommandRenderer_Success(t *testing.T) {
	// Arguments: -T<format> -o <out> <src>. Copy the source to the output.
	bin := fakeDot(t, `cp "$4" "$3"`+"\n")
	dir := t.TempDir()
	out := OutputPath(dir, "foo", FormatPNG)
	g, _ := dag.ForPackage("foo", []string{"bar"})

	r := &CommandRenderer{Path: bin}
	if err := r.Render(context.Background(), g, FormatPNG, out); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != ToDOT(g) {
		t.Errorf("dot received unexpected source:\n%s", data)
	}
	if _, err := os.Stat(sourcePath(out)); !os.IsNotExist(err) {
		t.Error("intermediate .gv file should be removed")
	}
}

func TestCommandRenderer_Failure(t *testing.T) {
	bin := fakeDot(t, "echo 'syntax error in line 1' >&2\ntouch \"$3\"\nexit 1\n")
	dir := t.TempDir()
	out := OutputPath(dir, "z", FormatPNG)
	g, _ := dag.ForPackage("z", []string{"y"})

	err := (&CommandRenderer{Path: bin}).Render(context.Background(), g, FormatPNG, out)
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Fatalf("Render() error = %v, want code %s", err, errors.ErrCodeRenderFailed)
	}
	if !strings.Contains(err.Error(), "syntax error in line 1") {
		t.Errorf("error %q should include stderr", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("failed render should leave no output file")
	}
	if _, err := os.Stat(sourcePath(out)); !os.IsNotExist(err) {
		t.Error("intermediate .gv file should be removed after failure")
	}
}

func TestCommandRenderer_MissingExecutable(t *testing.T) {
	out := OutputPath(t.TempDir(), "foo", FormatPNG)
	g, _ := dag.ForPackage("foo", []string{"bar"})

	r := &CommandRenderer{Path: filepath.Join(t.TempDir(), "no-such-dot")}
	err := r.Render(context.Background(), g, FormatPNG, out)
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("Render() error = %v, want code %s", err, errors.ErrCodeRenderFailed)
	}
}

func TestSourcePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"out/foo_dependencies.png", "out/foo_dependencies.gv"},
		{"out/foo_dependencies.svg", "out/foo_dependencies.gv"},
		{"foo", "foo.gv"},
	}
	for _, tt := range tests {
		if got := sourcePath(tt.in); got != tt.want {
			t.Errorf("sourcePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
