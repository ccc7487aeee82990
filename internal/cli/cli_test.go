package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depgraphs/pkg/errors"
	"github.com/matzehuels/depgraphs/pkg/observability"
)

// testCLI returns a CLI whose environment is env plus an empty config home.
func testCLI(t *testing.T, env map[string]string) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Cleanup(observability.Reset)

	merged := map[string]string{"XDG_CONFIG_HOME": t.TempDir()}
	for k, v := range env {
		merged[k] = v
	}

	var out bytes.Buffer
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.Stdout = &out
	c.Getenv = func(k string) string { return merged[k] }
	return c, &out
}

// fakeDot writes an executable shell script standing in for dot.
// It copies the DOT source to the output, failing for sources mentioning "z".
func fakeDot(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	script := `#!/bin/sh
# Arguments: -T<format> -o <out> <src>
if grep -q '"z"' "$4"; then
  echo "Error: renderer crashed" >&2
  exit 1
fi
cp "$4" "$3"
`
	path := filepath.Join(t.TempDir(), "dot")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestGenerate(t *testing.T) {
	input := writeFile(t, "data.json", `{
		"foo": {"requires": ["bar", "baz"]},
		"bar": {},
		"z": {"requires": ["y"]},
		"a/b": {"requires": ["c d"]}
	}`)
	outDir := filepath.Join(t.TempDir(), "graphs")
	c, out := testCLI(t, nil)

	err := execute(t, c, "generate", "-i", input, "-o", outDir, "--dot", fakeDot(t))
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"Graph saved: " + filepath.Join(outDir, "foo_dependencies.png"),
		"⚠️ Error processing z:",
		"Graph saved: " + filepath.Join(outDir, "a_b_dependencies.png"),
		"All dependency graphs generated successfully!",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), out.String())
	}
	for i := range want {
		if !strings.Contains(lines[i], want[i]) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want[i])
		}
	}
	if !strings.Contains(lines[1], "renderer crashed") {
		t.Errorf("warning should include the backend error, got %q", lines[1])
	}

	for _, name := range []string{"foo_dependencies.png", "a_b_dependencies.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	for _, name := range []string{"z_dependencies.png", "bar_dependencies.png", "z_dependencies.gv"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); !os.IsNotExist(err) {
			t.Errorf("%s should not exist", name)
		}
	}
}

func TestRootRunsGenerate(t *testing.T) {
	input := writeFile(t, "data.json", `{"foo": {}}`)
	outDir := filepath.Join(t.TempDir(), "graphs")
	c, out := testCLI(t, nil)

	if err := execute(t, c, "--input", input, "--output-dir", outDir); err != nil {
		t.Fatalf("root command failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "All dependency graphs generated successfully!" {
		t.Errorf("output = %q, want only the completion line", got)
	}
}

func TestGenerateLoadFailure(t *testing.T) {
	c, out := testCLI(t, nil)

	err := execute(t, c, "generate", "-i", filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("error = %v, want code %s", err, errors.ErrCodeFileNotFound)
	}
	if out.Len() != 0 {
		t.Errorf("no console output expected on load failure, got %q", out.String())
	}
}

func TestGenerateInvalidFormat(t *testing.T) {
	c, _ := testCLI(t, nil)

	err := execute(t, c, "generate", "--format", "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestGenerateFromEnvironment(t *testing.T) {
	input := writeFile(t, "data.json", `{"x": {"requires": ["y"]}, "y": {"requires": ["x"]}}`)
	outDir := filepath.Join(t.TempDir(), "graphs")
	c, _ := testCLI(t, map[string]string{
		envInput:     input,
		envOutputDir: outDir,
		envDot:       fakeDot(t),
	})

	if err := execute(t, c, "generate"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, name := range []string{"x_dependencies.png", "y_dependencies.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRegisterHooks(t *testing.T) {
	c, _ := testCLI(t, nil)
	c.registerHooks()

	if _, ok := observability.Pipeline().(*logHooks); !ok {
		t.Error("pipeline hooks not registered")
	}
	if _, ok := observability.HTTP().(*logHooks); !ok {
		t.Error("HTTP hooks not registered")
	}
}

func TestCompletion(t *testing.T) {
	c, _ := testCLI(t, nil)
	root := c.RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})

	if err := root.Execute(); err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if !strings.Contains(buf.String(), "depgraphs") {
		t.Error("completion script should mention depgraphs")
	}
}
