// Package meta collects the head tags of a page and renders them.
//
// A Registry is created once per request. It starts from built-in defaults
// merged with configuration layers (global config, constructor options,
// page overrides) and is then adjusted by setters while the page is built:
//
//	reg := meta.New(render.New(render.Config{}), builder, meta.Request{
//		Controller: "Articles",
//		Action:     "view",
//		Path:       r.URL.Path,
//	})
//	reg.SetLanguage(meta.Of("de"))
//	_ = reg.SetDescription("Ein Artikel", "")
//	head, err := reg.Out("")
//
// Fields are Value types with four states. Unset leaves lower layers in
// place, Auto derives the value from the request or environment, Off
// suppresses the tag and Of sets a concrete value.
//
// Description and keywords are stored per language. The Wildcard language
// "*" holds values for no particular language and is only rendered when no
// explicit language is present.
package meta
