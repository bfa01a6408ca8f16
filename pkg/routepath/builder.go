package routepath

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// DefaultBaseURL is used for full URLs when no base is configured.
const DefaultBaseURL = "http://localhost"

// ErrIncompleteRoute is returned for route descriptors without a controller.
var ErrIncompleteRoute = errors.New("route has no controller")

// Route describes a controller action in dashed-route form:
// /{prefix}/{plugin}/{controller}/{action}/{pass...}
type Route struct {
	Prefix     string
	Plugin     string
	Controller string
	Action     string
	Pass       []string
	Query      url.Values
	Fragment   string
}

// Target is either a literal path/URL or a route descriptor.
type Target struct {
	Path  string
	Route *Route
}

// Path returns a target for a literal path or URL.
func Path(p string) Target {
	return Target{Path: p}
}

// To returns a target for a route descriptor.
func To(r Route) Target {
	return Target{Route: &r}
}

// IsRoute reports whether the target is a route descriptor.
func (t Target) IsRoute() bool {
	return t.Route != nil
}

// String returns the literal path or a debug form of the route.
func (t Target) String() string {
	if t.Route == nil {
		return t.Path
	}
	return fmt.Sprintf("route(%s::%s)", t.Route.Controller, t.Route.Action)
}

// Builder resolves targets to URLs.
type Builder struct {
	baseURL string
}

// NewBuilder creates a Builder. An empty baseURL uses DefaultBaseURL.
func NewBuilder(baseURL string) (*Builder, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", baseURL)
	}
	return &Builder{baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// BaseURL returns the base used for full URLs.
func (b *Builder) BaseURL() string {
	return b.baseURL
}

// Build resolves t to a URL path, prefixed with the base URL when full is set.
// Absolute literal URLs are returned unchanged.
func (b *Builder) Build(t Target, full bool) (string, error) {
	var (
		path string
		err  error
	)
	if t.Route != nil {
		path, err = buildRoute(*t.Route)
	} else {
		if IsAbsoluteURL(t.Path) {
			return t.Path, nil
		}
		path, err = buildPath(t.Path)
	}
	if err != nil {
		return "", err
	}
	if full {
		return b.baseURL + path, nil
	}
	return path, nil
}

func buildPath(p string) (string, error) {
	p, fragment, _ := strings.Cut(p, "#")
	res, err := CanonicalizePath(p)
	if err != nil {
		return "", err
	}
	out := res.String()
	if fragment != "" {
		out += "#" + fragment
	}
	return out, nil
}

func buildRoute(r Route) (string, error) {
	if r.Controller == "" {
		return "", ErrIncompleteRoute
	}

	segments := make([]string, 0, 4+len(r.Pass))
	for _, s := range []string{r.Prefix, r.Plugin, r.Controller} {
		if s != "" {
			segments = append(segments, Dasherize(s))
		}
	}
	action := r.Action
	if action == "" {
		action = "index"
	}
	if action != "index" || len(r.Pass) > 0 {
		segments = append(segments, Dasherize(action))
	}
	for _, p := range r.Pass {
		segments = append(segments, url.PathEscape(p))
	}

	out := "/" + strings.Join(segments, "/")
	if len(r.Query) > 0 {
		out += "?" + r.Query.Encode()
	}
	if r.Fragment != "" {
		out += "#" + url.PathEscape(r.Fragment)
	}
	return out, nil
}

// Dasherize converts "ControllerName" or "controller_name" to "controller-name".
func Dasherize(s string) string {
	return strings.Join(Words(s), "-")
}

// Words splits a CamelCase, camelCase, snake_case or dashed identifier into
// lowercase words. Acronyms stay together: "HTMLParser" -> ["html", "parser"].
func Words(s string) []string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}
