package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depgraphs/pkg/observability"
)

// logHooks writes observability events as debug log lines.
// Events carrying a context logger (see withLogger) are written there.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) from(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return h.logger
}

func (h *logHooks) OnLoadStart(ctx context.Context, path string) {
	h.from(ctx).Debug("loading package metadata", "path", path)
}

func (h *logHooks) OnLoadComplete(ctx context.Context, path string, count int, d time.Duration, err error) {
	if err != nil {
		h.from(ctx).Debug("load failed", "path", path, "duration", d, "error", err)
		return
	}
	h.from(ctx).Debug("loaded package metadata", "path", path, "packages", count, "duration", d)
}

func (h *logHooks) OnRenderStart(ctx context.Context, pkg string) {
	h.from(ctx).Debug("rendering", "package", pkg)
}

func (h *logHooks) OnRenderComplete(ctx context.Context, pkg, output string, d time.Duration, err error) {
	if err != nil {
		h.from(ctx).Debug("render failed", "package", pkg, "duration", d, "error", err)
		return
	}
	h.from(ctx).Debug("rendered", "package", pkg, "output", output, "duration", d)
}

func (h *logHooks) OnPublish(ctx context.Context, key string, size int64, d time.Duration, err error) {
	if err != nil {
		h.from(ctx).Debug("publish failed", "key", key, "duration", d, "error", err)
		return
	}
	h.from(ctx).Debug("published", "key", key, "bytes", size, "duration", d)
}

func (h *logHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	h.from(ctx).Debug("request", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.PublishHooks  = (*logHooks)(nil)
	_ observability.HTTPHooks     = (*logHooks)(nil)
)
