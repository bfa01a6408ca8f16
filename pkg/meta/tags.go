package meta

import (
	"strconv"
	"strings"

	"github.com/vango-dev/vango-meta/internal/errors"
	"github.com/vango-dev/vango-meta/pkg/render"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

// Title renders the <title> tag.
func (r *Registry) Title() string {
	var title string
	switch v := r.state.Title; {
	case v.IsAuto():
		title = DefaultTitle(r.req, r.translate)
	case v.IsSet():
		title, _ = v.Get()
	}
	if title == "" {
		return ""
	}
	return r.html.Tag("title", title)
}

// Charset renders the charset meta tag.
func (r *Registry) Charset() string {
	v := r.state.Charset
	if v.IsOff() || v.IsUnset() {
		return ""
	}
	charset, _ := v.Get()
	return r.html.Charset(charset)
}

// Icon renders the favicon links.
func (r *Registry) Icon() string {
	v := r.state.Icon
	if v.IsOff() || v.IsUnset() {
		return ""
	}
	url, _ := v.Get()
	return r.html.Icon(url)
}

// SizesIcon renders the sized icon link stored for url.
func (r *Registry) SizesIcon(url string) string {
	for _, icon := range r.state.SizesIcons {
		if icon.URL == url {
			return r.sizesIcon(icon)
		}
	}
	return ""
}

// SizesIcons renders every sized icon link in insertion order.
func (r *Registry) SizesIcons() string {
	var b strings.Builder
	for _, icon := range r.state.SizesIcons {
		b.WriteString(r.sizesIcon(icon))
	}
	return b.String()
}

func (r *Registry) sizesIcon(icon SizesIcon) string {
	attrs := render.Attrs{
		render.A("href", r.html.Asset(icon.URL)),
		render.A("rel", icon.Prefix+"icon"),
	}
	if icon.Size > 0 {
		size := strconv.Itoa(icon.Size)
		attrs = append(attrs, render.A("sizes", size+"x"+size))
	}
	attrs = attrs.Merge(icon.Attrs.Without("prefix", "size"))
	return r.html.Link(attrs...)
}

// language returns the effective page language: the configured value, or
// the system locale when auto-detected.
func (r *Registry) language() string {
	switch v := r.state.Language; {
	case v.IsAuto():
		return r.detectLanguage()
	case v.IsSet():
		lang, _ := v.Get()
		return lang
	}
	return ""
}

// Language renders the http-equiv language tag.
func (r *Registry) Language() string {
	lang := r.language()
	if lang == "" {
		return ""
	}
	return r.html.Meta(render.A("http-equiv", "language"), render.A("content", lang))
}

// Robots renders the robots meta tag.
func (r *Registry) Robots() string {
	var robots Robots
	switch v := r.state.Robots; {
	case v.IsAuto():
		robots = DefaultRobots()
	case v.IsSet():
		robots, _ = v.Get()
	default:
		return ""
	}
	return r.html.Meta(render.A("name", "robots"), render.A("content", robots.String()))
}

// Description renders the description tag for lang, or for every stored
// language when lang is empty.
func (r *Registry) Description(lang string) string {
	r.state.Description.rekey(r.state.defaultKey())
	return r.localized("description", r.state.Description, lang, " ")
}

// Keywords renders the keywords tag for lang, or for every stored language
// when lang is empty. Multiple keywords are joined with commas.
func (r *Registry) Keywords(lang string) string {
	r.state.Keywords.rekey(r.state.defaultKey())
	return r.localized("keywords", r.state.Keywords, lang, ",")
}

// localized renders a per-language header. Without a language it walks the
// stored languages in order; the Wildcard entry is skipped once an explicit
// language exists, and with multi-language output disabled only the page
// language (and Wildcard) is rendered.
func (r *Registry) localized(name string, l Localized, lang, sep string) string {
	if l.IsOff() {
		return ""
	}
	if lang != "" {
		return r.localizedTag(name, l, lang, sep)
	}

	page := r.state.pageLanguage()
	var b strings.Builder
	for _, key := range l.Langs() {
		if key == Wildcard && l.Len() > 1 {
			continue
		}
		if !r.multiLanguage && page != "" && key != Wildcard && key != page {
			continue
		}
		b.WriteString(r.localizedTag(name, l, key, sep))
	}
	return b.String()
}

func (r *Registry) localizedTag(name string, l Localized, lang, sep string) string {
	values, ok := l.Get(lang)
	if !ok {
		return ""
	}
	attrs := []render.Attr{
		render.A("name", name),
		render.A("content", strings.Join(values, sep)),
	}
	if lang != Wildcard {
		attrs = append(attrs, render.A("lang", lang))
	}
	return r.html.Meta(attrs...)
}

// Custom renders the custom meta entry name, or every entry when name is
// empty.
func (r *Registry) Custom(name string) string {
	return r.entries(r.state.Custom, name, "name")
}

// HTTPEquiv renders the http-equiv entry typ, or every entry when typ is
// empty.
func (r *Registry) HTTPEquiv(typ string) string {
	return r.entries(r.state.HTTPEquiv, typ, "http-equiv")
}

func (r *Registry) entries(e Entries, name, attr string) string {
	if name != "" {
		content, ok := e.Get(name).Get()
		if !ok {
			return ""
		}
		return r.html.Meta(render.A(attr, name), render.A("content", content))
	}
	var b strings.Builder
	for _, n := range e.Names() {
		b.WriteString(r.entries(e, n, attr))
	}
	return b.String()
}

// Header renders a generic header. A name containing a colon, such as
// "og:title", renders name="title" plus property="og:title".
func (r *Registry) Header(name string) string {
	content, ok := r.state.Headers.Get(name).Get()
	if !ok {
		return ""
	}
	attrs := []render.Attr{render.A("name", name), render.A("content", content)}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		attrs[0].Value = name[i+1:]
		attrs = append(attrs, render.A("property", name))
	}
	return r.html.Meta(attrs...)
}

// Canonical renders the canonical link. Relative paths and routes go through
// the URL builder, which adds the base URL when full is set; absolute URLs
// pass through and Auto uses the raw request path.
func (r *Registry) Canonical(full bool) (string, error) {
	var href string
	switch v := r.state.Canonical; {
	case v.IsAuto():
		href = r.req.Path
		if href == "" {
			href = "/"
		}
	case v.IsSet():
		target, _ := v.Get()
		if !target.IsRoute() && routepath.IsAbsoluteURL(target.Path) {
			href = target.Path
			break
		}
		built, err := r.urls.Build(target, full)
		if err != nil {
			r.logger.Warn("meta: canonical URL build failed",
				"target", target.String(), "error", err)
			return "", errors.New("M003").WithDetail(target.String()).Wrap(err)
		}
		href = built
	default:
		return "", nil
	}
	return r.html.Link(render.A("rel", "canonical"), render.A("href", href)), nil
}
