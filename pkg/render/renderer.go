package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/vango-dev/vango-meta/pkg/assets"
)

const (
	// DefaultCharset is used when Charset is called without a value.
	DefaultCharset = "utf-8"

	// DefaultFavicon is used when Icon is called without a URL.
	DefaultFavicon = "/favicon.ico"

	// iconType is the MIME type announced for favicon links.
	iconType = "image/x-icon"
)

// Config configures the tag renderer.
type Config struct {
	// Charset is the site encoding (default: "utf-8").
	Charset string

	// Favicon is the default favicon URL (default: "/favicon.ico").
	Favicon string

	// StripTags removes markup from text and content attributes before escaping.
	StripTags bool

	// Assets rewrites icon hrefs, typically to fingerprinted names.
	Assets assets.Resolver
}

// Renderer formats head tags. It holds no per-request state and is safe for
// concurrent use.
type Renderer struct {
	config Config
	policy *bluemonday.Policy
}

// New creates a Renderer with the given configuration.
func New(config Config) *Renderer {
	if config.Charset == "" {
		config.Charset = DefaultCharset
	}
	if config.Favicon == "" {
		config.Favicon = DefaultFavicon
	}
	r := &Renderer{config: config}
	if config.StripTags {
		r.policy = bluemonday.StrictPolicy()
	}
	return r
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// Tag renders <name attrs>text</name>.
func (r *Renderer) Tag(name, text string, attrs ...Attr) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	b.WriteString(r.attrs(attrs).String())
	b.WriteByte('>')
	b.WriteString(EscapeHTML(r.strip(text)))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
	return b.String()
}

// Meta renders a self-closing <meta> element.
func (r *Renderer) Meta(attrs ...Attr) string {
	return "<meta" + r.attrs(attrs).String() + "/>"
}

// Link renders a self-closing <link> element.
func (r *Renderer) Link(attrs ...Attr) string {
	return "<link" + r.attrs(attrs).String() + "/>"
}

// Charset renders <meta charset>. An empty charset uses the configured one.
func (r *Renderer) Charset(charset string) string {
	if charset == "" {
		charset = strings.ToLower(r.config.Charset)
	}
	return r.Meta(A("charset", charset))
}

// Asset returns the href to emit for url.
func (r *Renderer) Asset(url string) string {
	if r.config.Assets == nil || url == "" {
		return url
	}
	return r.config.Assets.Asset(url)
}

// Icon renders the icon and shortcut icon links for url. An empty url uses
// the configured favicon.
func (r *Renderer) Icon(url string) string {
	if url == "" {
		url = r.config.Favicon
	}
	url = r.Asset(url)
	return r.Link(A("href", url), A("type", iconType), A("rel", "icon")) +
		r.Link(A("href", url), A("type", iconType), A("rel", "shortcut icon"))
}

// attrs applies markup stripping to content attributes.
func (r *Renderer) attrs(attrs []Attr) Attrs {
	if r.policy == nil {
		return attrs
	}
	out := make(Attrs, len(attrs))
	for i, attr := range attrs {
		if attr.Key == "content" {
			attr.Value = r.strip(attr.Value)
		}
		out[i] = attr
	}
	return out
}

// strip removes markup when StripTags is enabled. bluemonday escapes what it
// keeps, so the result is unescaped again before our own escaping.
func (r *Renderer) strip(s string) string {
	if r.policy == nil || !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(r.policy.Sanitize(s))
}
