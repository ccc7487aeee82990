package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraphs/pkg/pipeline"
	"github.com/matzehuels/depgraphs/pkg/publish"
	"github.com/matzehuels/depgraphs/pkg/render/nodelink"
)

// generateCommand creates the generate command. The root command runs the
// same action when no subcommand is given.
func (c *CLI) generateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Render a dependency diagram for every package with dependencies",
		Long: `Render a dependency diagram for every package with dependencies.

Each diagram shows the package (box) and its direct dependencies (ellipses)
and is written to <output-dir>/<package>_dependencies.<format>. Package names
are sanitized: every character other than letters, digits, '_' and '-'
becomes '_'.

A package that fails to render is reported and skipped. When
ARTIFACT_S3_ENDPOINT is set, every diagram is also uploaded to the bucket
under <run id>/<file name>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd)
		},
	}
}

func (c *CLI) runGenerate(cmd *cobra.Command) error {
	s, err := c.resolve(cmd.Flags().Changed)
	if err != nil {
		return err
	}

	renderer, err := nodelink.New(s.Pipeline.Backend, s.Pipeline.DotPath)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := c.Logger.With("run", runID)
	ctx := withLogger(cmd.Context(), logger)

	reporter := newConsoleReporter(c.Stdout)
	runner := pipeline.NewRunner(renderer, reporter, logger)
	runner.RunID = runID

	if s.Publish.Enabled() {
		pub, err := publish.NewS3Publisher(s.Publish)
		if err != nil {
			return err
		}
		runner.Publisher = &trackingPublisher{next: pub, keys: &reporter.published}
		logger.Debug("publishing enabled", "endpoint", s.Publish.Endpoint, "bucket", s.Publish.Bucket)
	}

	logger.Debug("generating diagrams",
		"input", s.Pipeline.InputPath,
		"output_dir", s.Pipeline.OutputDir,
		"format", s.Pipeline.Format,
		"backend", s.Pipeline.Backend)

	prog := newProgress(logger)
	result, err := runner.Run(ctx, s.Pipeline)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d of %d packages", len(result.Rendered), len(result.Rendered)+countRenderFailures(result)))
	return nil
}

func countRenderFailures(r *pipeline.Result) int {
	n := 0
	for _, f := range r.Failed {
		if f.Stage == pipeline.StageRender {
			n++
		}
	}
	return n
}

// trackingPublisher records the object keys of successful uploads.
type trackingPublisher struct {
	next publish.Publisher
	keys *[]string
}

func (p *trackingPublisher) Publish(ctx context.Context, runID, path string) error {
	if err := p.next.Publish(ctx, runID, path); err != nil {
		return err
	}
	*p.keys = append(*p.keys, publish.ObjectKey(runID, path))
	return nil
}
