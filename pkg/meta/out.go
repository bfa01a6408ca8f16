package meta

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Header names accepted by Out.
const (
	HeaderTitle       = "title"
	HeaderCharset     = "charset"
	HeaderIcon        = "icon"
	HeaderSizesIcon   = "sizesIcon"
	HeaderCanonical   = "canonical"
	HeaderLanguage    = "language"
	HeaderRobots      = "robots"
	HeaderDescription = "description"
	HeaderKeywords    = "keywords"
	HeaderHTTPEquiv   = "http-equiv"
	HeaderCustom      = "custom"
)

type headerFunc func(r *Registry, o *outConfig) (string, error)

func plain(f func(r *Registry) string) headerFunc {
	return func(r *Registry, _ *outConfig) (string, error) {
		return f(r), nil
	}
}

// headerOrder is the order in which Out renders the built-in headers.
var headerOrder = []string{
	HeaderTitle,
	HeaderCharset,
	HeaderIcon,
	HeaderSizesIcon,
	HeaderCanonical,
	HeaderLanguage,
	HeaderRobots,
	HeaderDescription,
	HeaderKeywords,
	HeaderHTTPEquiv,
	HeaderCustom,
}

var dispatch = map[string]headerFunc{
	HeaderTitle:     plain((*Registry).Title),
	HeaderCharset:   plain((*Registry).Charset),
	HeaderIcon:      plain((*Registry).Icon),
	HeaderSizesIcon: plain((*Registry).SizesIcons),
	HeaderCanonical: func(r *Registry, o *outConfig) (string, error) {
		return r.Canonical(o.full)
	},
	HeaderLanguage:    plain((*Registry).Language),
	HeaderRobots:      plain((*Registry).Robots),
	HeaderDescription: plain(func(r *Registry) string { return r.Description("") }),
	HeaderKeywords:    plain(func(r *Registry) string { return r.Keywords("") }),
	HeaderHTTPEquiv:   plain(func(r *Registry) string { return r.HTTPEquiv("") }),
	HeaderCustom:      plain(func(r *Registry) string { return r.Custom("") }),
}

// Headers returns the built-in header names in render order.
func Headers() []string {
	return slices.Clone(headerOrder)
}

type outConfig struct {
	skip    []string
	implode *string
	full    bool
}

// OutOption configures Out.
type OutOption func(*outConfig)

// WithSkip leaves the named headers out of a full render.
func WithSkip(headers ...string) OutOption {
	return func(o *outConfig) {
		o.skip = append(o.skip, headers...)
	}
}

// WithImplode sets the separator placed between rendered headers.
// The default is "" ("\n" in debug mode).
func WithImplode(sep string) OutOption {
	return func(o *outConfig) {
		o.implode = &sep
	}
}

// WithFullCanonical renders canonical links with the builder's base URL.
func WithFullCanonical(full bool) OutOption {
	return func(o *outConfig) {
		o.full = full
	}
}

// Out renders header, or every header when header is empty. See OutContext.
func (r *Registry) Out(header string, opts ...OutOption) (string, error) {
	return r.OutContext(context.Background(), header, opts...)
}

// OutContext renders header, or every header when header is empty.
//
// A full render walks the built-in headers in a fixed order followed by the
// generic headers in insertion order, skips WithSkip names, drops empty
// output and joins the rest with the implode separator. Unknown header
// names render as generic name/content tags.
func (r *Registry) OutContext(ctx context.Context, header string, opts ...OutOption) (string, error) {
	o := &outConfig{}
	for _, opt := range opts {
		opt(o)
	}
	sep := ""
	if r.debug {
		sep = "\n"
	}
	if o.implode != nil {
		sep = *o.implode
	}

	spanHeader := header
	if spanHeader == "" {
		spanHeader = "*"
	}
	_, span := r.tracer.Start(ctx, "meta.Out",
		trace.WithAttributes(attribute.String("meta.header", spanHeader)))
	defer span.End()

	var (
		out string
		err error
	)
	if header != "" {
		out, err = r.renderHeader(header, o)
	} else {
		var results []string
		results, err = r.renderAll(o)
		out = strings.Join(results, sep)
		span.SetAttributes(attribute.Int("meta.tags", len(results)))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return out, nil
}

func (r *Registry) renderAll(o *outConfig) ([]string, error) {
	names := append(slices.Clone(headerOrder), r.state.Headers.Names()...)
	results := make([]string, 0, len(names))
	for _, name := range names {
		if slices.Contains(o.skip, name) {
			continue
		}
		out, err := r.renderHeader(name, o)
		if err != nil {
			return nil, err
		}
		if out == "" {
			continue
		}
		results = append(results, out)
	}
	return results, nil
}

func (r *Registry) renderHeader(name string, o *outConfig) (string, error) {
	start := time.Now()
	var (
		out string
		err error
	)
	if f, ok := dispatch[name]; ok {
		out, err = f(r, o)
	} else {
		out = r.Header(name)
	}
	if r.observer != nil {
		r.observer.ObserveRender(name, time.Since(start), err)
	}
	return out, err
}
