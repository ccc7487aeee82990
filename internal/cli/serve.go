package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraphs/pkg/errors"
	pkgio "github.com/matzehuels/depgraphs/pkg/io"
	"github.com/matzehuels/depgraphs/pkg/observability"
)

const (
	// shutdownTimeout bounds how long in-flight requests may take after an interrupt.
	shutdownTimeout = 5 * time.Second

	readHeaderTimeout = 10 * time.Second
)

// serveCommand creates the serve command, which exposes the metadata file
// and the rendered diagrams over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the package metadata and rendered diagrams over HTTP",
		Long: `Serve the package metadata and rendered diagrams over HTTP.

Routes:
  GET /data       the metadata file, re-read on every request
  GET /packages   the packages and their requires lists, in file order
  GET /graphs/*   rendered diagrams from the output directory
  GET /healthz    liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.resolve(cmd.Flags().Changed)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				s.Addr = addr
			}
			return c.runServe(cmd.Context(), s)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, s settings) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           newRouter(s, c.Logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Server is running", "addr", s.Addr, "input", s.Pipeline.InputPath, "graphs", s.Pipeline.OutputDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	c.Logger.Info("Server stopped")
	return ctx.Err()
}

// newRouter builds the HTTP routes for the given settings.
func newRouter(s settings, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), logger)))
		})
	})
	r.Use(observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/data", dataHandler(s.Pipeline.InputPath))
	r.Get("/packages", packagesHandler(s.Pipeline.InputPath))
	r.Handle("/graphs/*", http.StripPrefix("/graphs/", http.FileServer(http.Dir(s.Pipeline.OutputDir))))

	return r
}

// observe reports every response to the HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// dataHandler serves the metadata file unchanged apart from whitespace.
func dataHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(path)
		if err != nil {
			loggerFromContext(r.Context()).Debug("read data file", "path", path, "error", err)
			http.Error(w, "Error reading data file", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			http.Error(w, "Error parsing JSON", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

// packagesHandler serves the normalized package index.
func packagesHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := pkgio.ImportPackages(path)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, errors.ErrCodeInvalidMetadata) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, errors.UserMessage(err), status)
			return
		}

		var buf bytes.Buffer
		if err := pkgio.WriteJSON(idx, &buf); err != nil {
			http.Error(w, errors.UserMessage(err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}
