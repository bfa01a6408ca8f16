package meta

import (
	"slices"

	"github.com/vango-dev/vango-meta/pkg/render"
)

// Wildcard is the language key for values with no specific language.
const Wildcard = "*"

// unkeyed marks values that were configured without a language; they are
// keyed to the page language (or Wildcard) once the layers are merged.
const unkeyed = ""

// Localized maps language tags to values, keeping insertion order.
type Localized struct {
	off    bool
	langs  []string
	values map[string][]string
}

// LocalizedOff returns a Localized value that suppresses the tag.
func LocalizedOff() Localized {
	return Localized{off: true}
}

// Text returns a Localized value for the page language. The language is
// resolved when the value is merged into a registry.
func Text(values ...string) Localized {
	var l Localized
	l.Set(unkeyed, values...)
	return l
}

// IsZero reports whether l carries nothing, not even a suppression.
func (l Localized) IsZero() bool {
	return !l.off && len(l.langs) == 0
}

// IsOff reports whether the tag is suppressed.
func (l Localized) IsOff() bool { return l.off }

// Len returns the number of languages.
func (l Localized) Len() int { return len(l.langs) }

// Langs returns the language keys in insertion order.
func (l Localized) Langs() []string {
	return slices.Clone(l.langs)
}

// Get returns the values for lang.
func (l Localized) Get(lang string) ([]string, bool) {
	v, ok := l.values[lang]
	return v, ok
}

// Set stores values for lang. Setting a value clears a suppression.
func (l *Localized) Set(lang string, values ...string) {
	if l.values == nil {
		l.values = make(map[string][]string)
	}
	if _, ok := l.values[lang]; !ok {
		l.langs = append(l.langs, lang)
	}
	l.values[lang] = slices.Clone(values)
	l.off = false
}

// With returns a copy of l with values stored for lang.
func (l Localized) With(lang string, values ...string) Localized {
	out := l.Clone()
	out.Set(lang, values...)
	return out
}

// Clone returns a deep copy.
func (l Localized) Clone() Localized {
	out := Localized{off: l.off, langs: slices.Clone(l.langs)}
	if l.values != nil {
		out.values = make(map[string][]string, len(l.values))
		for k, v := range l.values {
			out.values[k] = slices.Clone(v)
		}
	}
	return out
}

// rekey moves the unkeyed entry to lang, keeping its position.
func (l *Localized) rekey(lang string) {
	v, ok := l.values[unkeyed]
	if !ok {
		return
	}
	delete(l.values, unkeyed)
	i := slices.Index(l.langs, unkeyed)
	if _, exists := l.values[lang]; exists {
		l.langs = slices.Delete(l.langs, i, i+1)
	} else {
		l.langs[i] = lang
	}
	l.values[lang] = v
}

// Entries is an ordered name to value map used for custom, http-equiv and
// generic headers.
type Entries struct {
	names  []string
	values map[string]Value[string]
}

// Set stores v under name.
func (e *Entries) Set(name string, v Value[string]) {
	if e.values == nil {
		e.values = make(map[string]Value[string])
	}
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}
	e.values[name] = v
}

// Get returns the value stored under name.
func (e Entries) Get(name string) Value[string] {
	return e.values[name]
}

// Has reports whether name is present.
func (e Entries) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns the names in insertion order.
func (e Entries) Names() []string {
	return slices.Clone(e.names)
}

// Len returns the number of entries.
func (e Entries) Len() int { return len(e.names) }

// Clone returns a copy.
func (e Entries) Clone() Entries {
	out := Entries{names: slices.Clone(e.names)}
	if e.values != nil {
		out.values = make(map[string]Value[string], len(e.values))
		for k, v := range e.values {
			out.values[k] = v
		}
	}
	return out
}

// SizesIcon is an icon link with an explicit size, e.g. an apple-touch-icon.
type SizesIcon struct {
	URL    string
	Size   int
	Prefix string
	Attrs  render.Attrs
}

// upsertIcon replaces the icon with the same URL or appends it.
func upsertIcon(icons []SizesIcon, icon SizesIcon) []SizesIcon {
	for i := range icons {
		if icons[i].URL == icon.URL {
			icons[i] = icon
			return icons
		}
	}
	return append(icons, icon)
}
