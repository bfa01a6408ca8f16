package main

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-meta/internal/config"
	"github.com/vango-dev/vango-meta/pkg/meta"
	"github.com/vango-dev/vango-meta/pkg/middleware"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

const shutdownTimeout = 5 * time.Second

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
{{.Head}}
</head>
<body>
<h1>{{.Controller}} / {{.Action}}</h1>
</body>
</html>
`))

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a demo server rendering head tags per route",
		Long: `Start an HTTP server that renders a page for every
/{controller}/{action} route with the configured head tags.

Query parameters override page values: ?title=, ?lang=, ?description=.

Endpoints:
  /{controller}/{action}  demo page
  /healthz                liveness probe
  /metrics                Prometheus metrics

Examples:
  vango-meta serve
  vango-meta serve --port=9090 --config site/meta.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, slog.Default())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	handler, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	success(os.Stdout, "Serving on http://%s", cfg.Address())
	info(os.Stdout, "Press Ctrl+C to stop")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer builds the demo router.
func newServer(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	observer := middleware.Prometheus()
	factory, err := cfg.Factory(meta.WithObserver(observer), meta.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
		}),
	))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	page := pageHandler(logger)
	r.With(middleware.Meta(factory, middleware.WithRequestResolver(func(r *http.Request) meta.Request {
		return meta.Request{Controller: "Pages", Action: "home", Path: r.URL.Path}
	}))).Get("/", page)
	r.With(middleware.Meta(factory)).Get("/{controller}/{action}", page)

	return r, nil
}

func pageHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg, ok := meta.FromContext(r.Context())
		if !ok {
			http.Error(w, "meta registry missing", http.StatusInternalServerError)
			return
		}
		reg.SetCanonical(meta.Auto[routepath.Target]())

		q := r.URL.Query()
		if lang := q.Get("lang"); lang != "" {
			reg.SetLanguage(meta.Of(lang))
		}
		if title := q.Get("title"); title != "" {
			reg.SetTitle(meta.Of(title))
		}
		if description := q.Get("description"); description != "" {
			if err := reg.SetDescription(description, ""); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		head, err := middleware.Head(r, meta.WithImplode("\n"))
		if err != nil {
			logger.ErrorContext(r.Context(), "render head", slog.Any("error", err))
			http.Error(w, "failed to render head tags", http.StatusInternalServerError)
			return
		}

		req := reg.Request()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, struct {
			Head               template.HTML
			Controller, Action string
		}{template.HTML(head), req.Controller, req.Action}); err != nil {
			logger.ErrorContext(r.Context(), "write page", slog.Any("error", err))
		}
	}
}
