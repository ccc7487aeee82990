// Package pipeline renders one dependency diagram per package.
//
// The pipeline has two stages:
//
//  1. Load: read the package metadata document once (see [io.ImportPackages])
//  2. Render: for every package declaring dependencies, build its graph
//     (see [dag.ForPackage]) and write it to the output directory
//
// A load failure aborts the run. A render failure only affects the package
// being rendered: it is reported and the run moves on to the next package.
//
// # Usage
//
//	renderer, err := nodelink.New(cfg.Backend, cfg.DotPath)
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(renderer, reporter, logger)
//	result, err := runner.Run(ctx, cfg)
//	if err != nil {
//	    return err // input could not be loaded
//	}
//	fmt.Println(len(result.Rendered), "diagrams written")
package pipeline

import (
	"strings"
	"time"

	"github.com/matzehuels/depgraphs/pkg/errors"
	"github.com/matzehuels/depgraphs/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultInputPath is the slpkg repository metadata file.
	DefaultInputPath = "/var/lib/slpkg/repos/ponce/data.json"

	// DefaultOutputDir is the directory diagrams are written to,
	// relative to the working directory.
	DefaultOutputDir = "dependency_graphs"

	// DefaultFormat is the default image format.
	DefaultFormat = nodelink.DefaultFormat

	// DefaultBackend is the default rendering backend.
	DefaultBackend = nodelink.DefaultBackend
)

// =============================================================================
// Config - Pipeline Configuration
// =============================================================================

// Config contains all configuration for one pipeline run.
type Config struct {
	InputPath string          `toml:"input" json:"input"`
	OutputDir string          `toml:"output_dir" json:"output_dir"`
	Format    nodelink.Format `toml:"format" json:"format"`
	Backend   string          `toml:"backend" json:"backend"`
	DotPath   string          `toml:"dot" json:"dot,omitempty"`
}

// DefaultConfig returns a Config holding the default values.
func DefaultConfig() Config {
	return Config{
		InputPath: DefaultInputPath,
		OutputDir: DefaultOutputDir,
		Format:    DefaultFormat,
		Backend:   DefaultBackend,
	}
}

// SetDefaults fills every empty field with its default value.
func (c *Config) SetDefaults() {
	if strings.TrimSpace(c.InputPath) == "" {
		c.InputPath = DefaultInputPath
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
}

// Validate sets defaults and checks the format and backend names.
// It is safe to call multiple times.
func (c *Config) Validate() error {
	c.SetDefaults()
	if err := nodelink.ValidateFormat(c.Format); err != nil {
		return err
	}
	switch c.Backend {
	case nodelink.BackendGraphviz, nodelink.BackendDot:
	default:
		return errors.New(errors.ErrCodeInvalidBackend, "invalid backend: %q (must be one of: graphviz, dot)", c.Backend)
	}
	if c.DotPath != "" && c.Backend != nodelink.BackendDot {
		return errors.New(errors.ErrCodeInvalidConfig, "dot path is only used by the %q backend", nodelink.BackendDot)
	}
	return nil
}

// =============================================================================
// Result - Run Outcome
// =============================================================================

// Stage names the step a package failed in.
type Stage string

const (
	StageRender  Stage = "render"
	StagePublish Stage = "publish"
)

// Output is one diagram written during a run.
type Output struct {
	Package string // package name as it appears in the input
	Path    string // file written
	Nodes   int
	Edges   int
}

// Failure is a per-package error that did not stop the run.
type Failure struct {
	Package string
	Stage   Stage
	Err     error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return string(f.Stage) + " " + f.Package + ": " + f.Err.Error()
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error { return f.Err }

// Result contains the outcome of a pipeline run.
type Result struct {
	// Rendered lists the diagrams written, in input order.
	Rendered []Output

	// Skipped lists packages without dependencies.
	Skipped []string

	// Failed lists per-package failures, in input order.
	Failed []Failure

	// Stats contains timing and count information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Packages   int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// OK reports whether every package rendered without failures.
func (r *Result) OK() bool { return len(r.Failed) == 0 }
