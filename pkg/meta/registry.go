package meta

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vango-meta/internal/errors"
	"github.com/vango-dev/vango-meta/pkg/render"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

// tracerName is the instrumentation scope for render spans.
const tracerName = "github.com/vango-dev/vango-meta/pkg/meta"

// TagRenderer formats head tags. *render.Renderer implements it.
type TagRenderer interface {
	Tag(name, text string, attrs ...render.Attr) string
	Meta(attrs ...render.Attr) string
	Link(attrs ...render.Attr) string
	Charset(charset string) string
	Icon(url string) string
	Asset(url string) string
}

// URLBuilder resolves canonical targets. *routepath.Builder implements it.
type URLBuilder interface {
	Build(t routepath.Target, full bool) (string, error)
}

// Observer is notified after each header render.
type Observer interface {
	ObserveRender(header string, d time.Duration, err error)
}

// Registry accumulates the meta headers of one page and renders them.
// It is request-scoped and not safe for concurrent use.
type Registry struct {
	html TagRenderer
	urls URLBuilder
	req  Request

	state State

	multiLanguage bool
	debug         bool
	layers        []State
	locale        func() string
	translate     func(string) string

	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLayers sets the configuration layers, lowest precedence first:
// global config, constructor options, page overrides.
func WithLayers(layers ...State) Option {
	return func(r *Registry) {
		r.layers = append(r.layers, layers...)
	}
}

// WithMultiLanguage controls whether description and keywords may be set
// and rendered for languages other than the page language (default: true).
func WithMultiLanguage(enabled bool) Option {
	return func(r *Registry) {
		r.multiLanguage = enabled
	}
}

// WithDebug makes Out join tags with newlines by default.
func WithDebug(debug bool) Option {
	return func(r *Registry) {
		r.debug = debug
	}
}

// WithLocale overrides the system locale lookup used for auto-detected
// languages.
func WithLocale(locale func() string) Option {
	return func(r *Registry) {
		r.locale = locale
	}
}

// WithTranslator sets a translation function applied to the humanized
// controller and action names of the default title.
func WithTranslator(translate func(string) string) Option {
	return func(r *Registry) {
		r.translate = translate
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithObserver sets an observer notified after each header render.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observer = o
	}
}

// WithTracer sets the tracer used by OutContext (default: the global
// OpenTelemetry provider).
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) {
		r.tracer = t
	}
}

// New creates a Registry for one request. A nil html or urls falls back to
// render.New(render.Config{}) and a routepath.Builder on DefaultBaseURL.
func New(html TagRenderer, urls URLBuilder, req Request, opts ...Option) *Registry {
	r := &Registry{
		html:          html,
		urls:          urls,
		req:           req,
		multiLanguage: true,
		locale:        SystemLocale,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.html == nil {
		r.html = render.New(render.Config{})
	}
	if r.urls == nil {
		b, _ := routepath.NewBuilder("")
		r.urls = b
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	r.state = configure(req, r.translate, r.layers)
	r.layers = nil
	return r
}

// Apply merges a page-level override layer on top of the current state.
func (r *Registry) Apply(layer State) {
	r.state = r.state.merge(layer)
}

// State returns a copy of the current state.
func (r *Registry) State() State {
	return r.state.Clone()
}

// Request returns the request the registry was created for.
func (r *Registry) Request() Request {
	return r.req
}

// MultiLanguage reports whether multi-language output is enabled.
func (r *Registry) MultiLanguage() bool {
	return r.multiLanguage
}

// SetMultiLanguage toggles multi-language output.
func (r *Registry) SetMultiLanguage(enabled bool) {
	r.multiLanguage = enabled
}

// SetTitle sets the page title. Auto derives it from the request.
func (r *Registry) SetTitle(v Value[string]) {
	r.state.Title = v
}

// SetCharset sets the charset. Auto uses the renderer's default.
func (r *Registry) SetCharset(v Value[string]) {
	r.state.Charset = v
}

// SetIcon sets the favicon URL. Auto uses the renderer's default.
func (r *Registry) SetIcon(v Value[string]) {
	r.state.Icon = v
}

// SetLanguage sets the page language. Auto detects it from the system locale.
func (r *Registry) SetLanguage(v Value[string]) {
	r.state.Language = v
}

// SetCanonical sets the canonical target. Auto uses the request path.
func (r *Registry) SetCanonical(v Value[routepath.Target]) {
	r.state.Canonical = v
}

// SetRobots replaces the robots directives. Off suppresses the tag.
func (r *Registry) SetRobots(v Value[Robots]) {
	r.state.Robots = v
}

// MergeRobots merges flags onto the current robots directives, starting from
// DefaultRobots when none are set.
func (r *Registry) MergeRobots(flags ...RobotsFlag) {
	cur, ok := r.state.Robots.Get()
	if !ok || cur.IsRaw() {
		cur = DefaultRobots()
	}
	r.state.Robots = Of(cur.With(flags...))
}

// SetDescription stores a description for lang. An empty lang means the
// page language, or Wildcard when none is set.
func (r *Registry) SetDescription(text, lang string) error {
	key, err := r.languageKey("description", lang)
	if err != nil {
		return err
	}
	r.state.Description.rekey(r.state.defaultKey())
	r.state.Description.Set(key, text)
	return nil
}

// SetKeywords stores keywords for lang. An empty lang means the page
// language, or Wildcard when none is set.
func (r *Registry) SetKeywords(keywords []string, lang string) error {
	key, err := r.languageKey("keywords", lang)
	if err != nil {
		return err
	}
	r.state.Keywords.rekey(r.state.defaultKey())
	r.state.Keywords.Set(key, keywords...)
	return nil
}

// languageKey resolves the storage key for a per-language value and enforces
// the multi-language setting.
func (r *Registry) languageKey(header, lang string) (string, error) {
	if lang == "" {
		return r.state.defaultKey(), nil
	}
	page := r.state.pageLanguage()
	if !r.multiLanguage && page != "" && lang != page {
		r.logger.Warn("meta: language differs from page language",
			slog.String("header", header),
			slog.String("lang", lang),
			slog.String("page_lang", page))
		return "", errors.New("M001").
			WithDetailf("%s for %q, page language is %q", header, lang, page).
			WithSuggestion("Enable multiLanguage or set the value for the page language")
	}
	return lang, nil
}

// SetCustom stores a custom name/content meta entry.
func (r *Registry) SetCustom(name string, v Value[string]) error {
	if name == "" {
		return errors.New("M002").WithDetail("custom meta entry")
	}
	r.state.Custom.Set(name, v)
	return nil
}

// SetHTTPEquiv stores an http-equiv entry.
func (r *Registry) SetHTTPEquiv(typ string, v Value[string]) error {
	if typ == "" {
		return errors.New("M002").WithDetail("http-equiv type")
	}
	r.state.HTTPEquiv.Set(typ, v)
	return nil
}

// SetHeader stores a generic header such as "og:title". Names of built-in
// headers are rejected.
func (r *Registry) SetHeader(name string, v Value[string]) error {
	if name == "" {
		return errors.New("M002").WithDetail("header name")
	}
	if _, builtin := dispatch[name]; builtin {
		return errors.New("M002").WithDetailf("%q is a built-in header, use its setter", name)
	}
	r.state.Headers.Set(name, v)
	return nil
}

// AddSizesIcon stores an icon link of the given square size. A prefix such
// as "apple-touch-" is prepended to the rel value; attrs are appended to the
// link. Adding the same URL again replaces the earlier entry.
func (r *Registry) AddSizesIcon(url string, size int, prefix string, attrs ...render.Attr) error {
	if url == "" {
		return errors.New("M002").WithDetail("icon URL")
	}
	r.state.SizesIcons = upsertIcon(r.state.SizesIcons, SizesIcon{
		URL:    url,
		Size:   size,
		Prefix: prefix,
		Attrs:  slices.Clone(render.Attrs(attrs)),
	})
	return nil
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying r.
func NewContext(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}

// FromContext returns the registry stored in ctx.
func FromContext(ctx context.Context) (*Registry, bool) {
	r, ok := ctx.Value(ctxKey{}).(*Registry)
	return r, ok && r != nil
}
