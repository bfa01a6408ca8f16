// Package render formats the HTML head tags used by vango-meta.
//
// A Renderer turns ordered attribute lists into self-closing <meta> and
// <link> elements and wraps text in container tags such as <title>. All
// attribute values and text are escaped; attribute order is preserved
// exactly as given so output is stable across runs.
//
// # Basic Usage
//
//	r := render.New(render.Config{})
//
//	r.Tag("title", "Home")
//	// <title>Home</title>
//
//	r.Meta(render.A("name", "robots"), render.A("content", "index,follow"))
//	// <meta name="robots" content="index,follow"/>
//
//	r.Icon("")
//	// <link href="/favicon.ico" type="image/x-icon" rel="icon"/><link href="/favicon.ico" type="image/x-icon" rel="shortcut icon"/>
//
// # Defaults
//
// Charset("") and Icon("") fall back to Config.Charset ("utf-8") and
// Config.Favicon ("/favicon.ico").
//
// # Markup Stripping
//
// With Config.StripTags set, text content and content attributes are passed
// through bluemonday's strict policy first, so descriptions sourced from
// rich text lose their markup before they are escaped.
//
// # Fingerprinted Icons
//
// Config.Assets, usually built from a pkg/assets manifest, rewrites icon
// hrefs before they are rendered. Callers building their own links use
// Renderer.Asset.
package render
