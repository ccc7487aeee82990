package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depgraphs/pkg/dag"
	"github.com/matzehuels/depgraphs/pkg/deps"
	"github.com/matzehuels/depgraphs/pkg/errors"
	pkgio "github.com/matzehuels/depgraphs/pkg/io"
	"github.com/matzehuels/depgraphs/pkg/observability"
	"github.com/matzehuels/depgraphs/pkg/publish"
	"github.com/matzehuels/depgraphs/pkg/render/nodelink"
)

// Runner executes the load → render pipeline.
//
// Packages are rendered one at a time in input order. The Runner keeps no
// state between runs, so the same Runner can be used for several runs.
type Runner struct {
	Renderer  nodelink.Renderer
	Reporter  Reporter
	Logger    *log.Logger
	Publisher publish.Publisher // optional
	RunID     string            // prefix for published files
}

// NewRunner creates a runner with the given renderer.
// If reporter is nil, a NopReporter is used.
// If logger is nil, log.Default() is used.
func NewRunner(renderer nodelink.Renderer, reporter Reporter, logger *log.Logger) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Renderer: renderer,
		Reporter: reporter,
		Logger:   logger,
	}
}

// Run loads cfg.InputPath and renders a diagram for every package that
// declares dependencies.
//
// Run returns an error only if the configuration is invalid, the input
// cannot be loaded, or ctx is cancelled. Per-package failures are reported
// through the Reporter and collected in Result.Failed.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r.Renderer == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no renderer configured")
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, cfg.InputPath)
	idx, err := pkgio.ImportPackages(cfg.InputPath)
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, cfg.InputPath, 0, result.Stats.LoadTime, err)
		return nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, cfg.InputPath, idx.Len(), result.Stats.LoadTime, nil)
	result.Stats.Packages = idx.Len()

	r.Logger.Debug("loaded package metadata",
		"path", cfg.InputPath,
		"packages", idx.Len(),
		"with_requires", idx.WithRequires(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Render
	renderStart := time.Now()
	for pkg := range idx.All() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !pkg.HasRequires() {
			result.Skipped = append(result.Skipped, pkg.Name)
			continue
		}
		r.renderPackage(ctx, cfg, pkg, result)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered diagrams",
		"rendered", len(result.Rendered),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
		"duration", result.Stats.RenderTime)

	r.Reporter.Done(result)
	return result, nil
}

func (r *Runner) renderPackage(ctx context.Context, cfg Config, pkg deps.Package, result *Result) {
	g, err := dag.ForPackage(pkg.Name, pkg.Requires)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeRenderFailed, err, "build graph")
		r.fail(result, Failure{Package: pkg.Name, Stage: StageRender, Err: err})
		return
	}

	root := dag.SanitizeID(pkg.Name)
	path := nodelink.OutputPath(cfg.OutputDir, root, cfg.Format)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, pkg.Name)
	err = r.render(ctx, cfg, g, path)
	observability.Pipeline().OnRenderComplete(ctx, pkg.Name, path, time.Since(start), err)
	if err != nil {
		r.fail(result, Failure{Package: pkg.Name, Stage: StageRender, Err: err})
		return
	}

	result.Rendered = append(result.Rendered, Output{
		Package: pkg.Name,
		Path:    path,
		Nodes:   g.NodeCount(),
		Edges:   g.EdgeCount(),
	})
	r.Reporter.Saved(pkg.Name, path)

	if r.Publisher == nil {
		return
	}
	if err := r.Publisher.Publish(ctx, r.RunID, path); err != nil {
		r.fail(result, Failure{Package: pkg.Name, Stage: StagePublish, Err: err})
	}
}

// render creates the output directory on every call, so a directory removed
// mid-run is recreated for the next package.
func (r *Runner) render(ctx context.Context, cfg Config, g *dag.DAG, path string) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "create output directory %s", cfg.OutputDir)
	}
	return r.Renderer.Render(ctx, g, cfg.Format, path)
}

func (r *Runner) fail(result *Result, f Failure) {
	result.Failed = append(result.Failed, f)
	r.Logger.Debug("package failed", "package", f.Package, "stage", f.Stage, "error", f.Err)
	r.Reporter.Failed(f)
}
