package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/vango-meta/pkg/meta"
)

// ErrNoRegistry is returned by Head when the request carries no registry.
var ErrNoRegistry = errors.New("middleware: no meta registry in request context")

// RegistryFactory creates the registry for one request.
type RegistryFactory func(req meta.Request) *meta.Registry

// MetaConfig configures the Meta middleware.
type MetaConfig struct {
	// ControllerParam is the chi URL parameter naming the controller
	// (default: "controller").
	ControllerParam string

	// ActionParam is the chi URL parameter naming the action
	// (default: "action").
	ActionParam string

	// Resolve overrides how the meta request is derived from the HTTP
	// request. If nil, the chi URL parameters and the URL path are used.
	Resolve func(r *http.Request) meta.Request
}

// MetaOption configures the Meta middleware.
type MetaOption func(*MetaConfig)

// WithParamNames sets the chi URL parameters read for controller and action.
func WithParamNames(controller, action string) MetaOption {
	return func(c *MetaConfig) {
		c.ControllerParam = controller
		c.ActionParam = action
	}
}

// WithRequestResolver sets a custom meta request resolver.
func WithRequestResolver(resolve func(r *http.Request) meta.Request) MetaOption {
	return func(c *MetaConfig) {
		c.Resolve = resolve
	}
}

// Meta creates middleware that stores a fresh meta.Registry in every
// request context. Handlers fetch it with meta.FromContext.
//
// chi resolves URL parameters during routing, so mount the middleware on
// the routes that need it rather than on the root router:
//
//	r.With(middleware.Meta(factory)).Get("/{controller}/{action}", page)
func Meta(factory RegistryFactory, opts ...MetaOption) func(http.Handler) http.Handler {
	config := MetaConfig{
		ControllerParam: "controller",
		ActionParam:     "action",
	}
	for _, opt := range opts {
		opt(&config)
	}
	resolve := config.Resolve
	if resolve == nil {
		resolve = func(r *http.Request) meta.Request {
			return meta.Request{
				Controller: chi.URLParam(r, config.ControllerParam),
				Action:     chi.URLParam(r, config.ActionParam),
				Path:       r.URL.Path,
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg := factory(resolve(r))
			next.ServeHTTP(w, r.WithContext(meta.NewContext(r.Context(), reg)))
		})
	}
}

// Head renders every head tag of the registry stored in r.
func Head(r *http.Request, opts ...meta.OutOption) (string, error) {
	reg, ok := meta.FromContext(r.Context())
	if !ok {
		return "", ErrNoRegistry
	}
	return reg.OutContext(r.Context(), "", opts...)
}
