// Package cli implements the depgraphs command-line interface.
//
// The CLI renders one dependency diagram per package of a package metadata
// file and can serve that file and the rendered diagrams over HTTP. It is
// built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The commands are:
//   - generate: Render the diagrams (also the default action of the root command)
//   - serve: Serve the metadata file and rendered diagrams over HTTP
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Settings are read from built-in defaults, then the TOML config file,
// then DEPGRAPHS_* environment variables, then flags. Later sources win.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so that observability events carry the
// run identifier.
//
// # Example
//
//	import "github.com/matzehuels/depgraphs/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: level-filtered, writing to w, with
// short "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a generate run for the closing summary line.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 42 of 43 packages (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches the run-scoped logger so hooks and HTTP handlers log
// through it.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger set by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
