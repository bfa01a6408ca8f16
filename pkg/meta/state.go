package meta

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vango-dev/vango-meta/pkg/routepath"
)

// State holds every meta header of one page. A State passed as a
// configuration layer only overrides the fields it sets.
type State struct {
	Title     Value[string]
	Charset   Value[string]
	Icon      Value[string]
	Language  Value[string]
	Canonical Value[routepath.Target]
	Robots    Value[Robots]

	Description Localized
	Keywords    Localized

	Custom    Entries
	HTTPEquiv Entries

	// Headers holds generic name/content headers such as "og:title".
	Headers Entries

	SizesIcons []SizesIcon
}

// Request is the part of the current request the registry reads.
type Request struct {
	Controller string
	Action     string

	// Path is the raw request path used for auto-detected canonical links.
	Path string
}

// Defaults returns the built-in base layer: charset and icon auto-detected,
// robots denying index, follow and archive.
func Defaults() State {
	return State{
		Charset: Auto[string](),
		Icon:    Auto[string](),
		Robots:  Of(DefaultRobots()),
	}
}

// Configure merges layers in increasing precedence on top of Defaults.
// Robots flag lists merge key-wise, every other field is replaced by the
// highest layer that sets it. An unset title is derived from the request's
// controller and action. Description and keywords given without a language
// are keyed to the merged page language, or Wildcard.
func Configure(req Request, layers ...State) State {
	s := configure(req, nil, layers)
	s.resolveLanguages()
	return s
}

func configure(req Request, translate func(string) string, layers []State) State {
	s := Defaults()
	for _, l := range layers {
		s = s.merge(l)
	}
	if s.Title.IsUnset() {
		if title := DefaultTitle(req, translate); title != "" {
			s.Title = Of(title)
		}
	}
	return s
}

// merge returns s with layer l applied.
func (s State) merge(l State) State {
	s.Title = l.Title.Or(s.Title)
	s.Charset = l.Charset.Or(s.Charset)
	s.Icon = l.Icon.Or(s.Icon)
	s.Language = l.Language.Or(s.Language)
	s.Canonical = l.Canonical.Or(s.Canonical)

	cur, curOK := s.Robots.Get()
	next, nextOK := l.Robots.Get()
	if curOK && nextOK {
		s.Robots = Of(cur.Merge(next))
	} else {
		s.Robots = l.Robots.Or(s.Robots)
	}

	if !l.Description.IsZero() {
		s.Description = l.Description.Clone()
	}
	if !l.Keywords.IsZero() {
		s.Keywords = l.Keywords.Clone()
	}
	if l.Custom.Len() > 0 {
		s.Custom = l.Custom.Clone()
	}
	if l.HTTPEquiv.Len() > 0 {
		s.HTTPEquiv = l.HTTPEquiv.Clone()
	}
	if l.Headers.Len() > 0 {
		s.Headers = l.Headers.Clone()
	}
	if len(l.SizesIcons) > 0 {
		s.SizesIcons = slices.Clone(l.SizesIcons)
	}
	return s
}

// resolveLanguages keys values configured without a language to the page
// language, or Wildcard when none is set. Registries key each field lazily
// on first use instead, so a language set after the layers still applies.
func (s *State) resolveLanguages() {
	s.Description.rekey(s.defaultKey())
	s.Keywords.rekey(s.defaultKey())
}

// defaultKey is the storage key for values given without a language.
func (s State) defaultKey() string {
	if lang := s.pageLanguage(); lang != "" {
		return lang
	}
	return Wildcard
}

// pageLanguage returns the explicitly configured language, if any.
func (s State) pageLanguage() string {
	lang, _ := s.Language.Get()
	return lang
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.Description = s.Description.Clone()
	s.Keywords = s.Keywords.Clone()
	s.Custom = s.Custom.Clone()
	s.HTTPEquiv = s.HTTPEquiv.Clone()
	s.Headers = s.Headers.Clone()
	s.SizesIcons = slices.Clone(s.SizesIcons)
	return s
}

// DefaultTitle returns "<Controller> - <Action>" with both names humanized,
// or "" when either is missing. translate, if non-nil, is applied to each
// humanized name.
func DefaultTitle(req Request, translate func(string) string) string {
	if req.Controller == "" || req.Action == "" {
		return ""
	}
	controller := Humanize(req.Controller)
	action := Humanize(req.Action)
	if translate != nil {
		controller = translate(controller)
		action = translate(action)
	}
	return controller + " - " + action
}

// Humanize turns "ControllerName" or "controller_name" into "Controller Name".
func Humanize(s string) string {
	return cases.Title(language.Und).String(strings.Join(routepath.Words(s), " "))
}
