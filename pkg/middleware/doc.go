// Package middleware wires meta registries into HTTP servers and exports
// their telemetry.
//
// # Meta Middleware
//
// Meta creates one meta.Registry per request from the chi route parameters
// and stores it in the request context:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry())
//	r.With(middleware.Meta(factory)).Get("/{controller}/{action}", func(w http.ResponseWriter, r *http.Request) {
//	    reg, _ := meta.FromContext(r.Context())
//	    reg.SetTitle(meta.Of("Hello"))
//	    head, err := middleware.Head(r)
//	    // ...
//	})
//
// # OpenTelemetry Middleware
//
// OpenTelemetry wraps every request in a server span carrying the method,
// path, status code, chi route pattern and the controller and action
// parameters. Render spans started by OutContext nest below it.
//
// # Prometheus Metrics
//
// Prometheus returns a meta.Observer collecting:
//   - vango_meta_renders_total: Renders by header and status
//   - vango_meta_render_duration_seconds: Render duration histogram
//   - vango_meta_render_errors_total: Failed renders by error type
//
// Expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
package middleware
