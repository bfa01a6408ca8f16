package meta

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

const jsonLayer = `{
	"title": "Shop",
	"charset": false,
	"language": "de",
	"canonical": {"controller": "Articles", "action": "view", "pass": ["7"], "query": {"page": "2"}},
	"robots": {"index": true, "follow": true},
	"description": {"de": "Laden", "en": "Shop"},
	"keywords": {"*": ["x"], "de": ["laden", "kaufen"]},
	"custom": {"viewport": "width=device-width", "theme-color": false},
	"http-equiv": {"expires": "0"},
	"sizesIcons": [{"url": "/a.png", "size": 32, "type": "image/png"}],
	"og:title": "Shop"
}`

const yamlLayer = `
title: Shop
charset: false
language: de
canonical:
  controller: Articles
  action: view
  pass: ["7"]
  query:
    page: "2"
robots:
  index: true
  follow: true
description:
  de: Laden
  en: Shop
keywords:
  "*": [x]
  de: [laden, kaufen]
custom:
  viewport: width=device-width
  theme-color: false
httpEquiv:
  expires: "0"
sizesIcons:
  - url: /a.png
    size: 32
    type: image/png
og:title: Shop
`

func checkDecodedLayer(t *testing.T, s State) {
	t.Helper()

	if got, _ := s.Title.Get(); got != "Shop" {
		t.Errorf("Title = %v, want Shop", s.Title)
	}
	if !s.Charset.IsOff() {
		t.Errorf("Charset = %v, want off", s.Charset)
	}
	if !s.Icon.IsUnset() {
		t.Errorf("Icon = %v, want unset", s.Icon)
	}
	target, ok := s.Canonical.Get()
	if !ok || !target.IsRoute() {
		t.Fatalf("Canonical = %v, want route", s.Canonical)
	}
	if target.Route.Controller != "Articles" || target.Route.Query.Get("page") != "2" {
		t.Errorf("Canonical route = %+v", target.Route)
	}
	robots, _ := s.Robots.Get()
	if got := robots.String(); got != "index,follow" {
		t.Errorf("Robots = %q, want %q", got, "index,follow")
	}
	if diff := cmp.Diff([]string{"de", "en"}, s.Description.Langs()); diff != "" {
		t.Errorf("Description langs mismatch (-want +got):\n%s", diff)
	}
	if got, _ := s.Keywords.Get("de"); !cmp.Equal(got, []string{"laden", "kaufen"}) {
		t.Errorf("Keywords[de] = %v", got)
	}
	if diff := cmp.Diff([]string{"viewport", "theme-color"}, s.Custom.Names()); diff != "" {
		t.Errorf("Custom names mismatch (-want +got):\n%s", diff)
	}
	if !s.Custom.Get("theme-color").IsOff() {
		t.Errorf("Custom[theme-color] = %v, want off", s.Custom.Get("theme-color"))
	}
	if got, _ := s.HTTPEquiv.Get("expires").Get(); got != "0" {
		t.Errorf("HTTPEquiv[expires] = %q, want 0", got)
	}
	if len(s.SizesIcons) != 1 || s.SizesIcons[0].Size != 32 {
		t.Fatalf("SizesIcons = %+v", s.SizesIcons)
	}
	if v, _ := s.SizesIcons[0].Attrs.Get("type"); v != "image/png" {
		t.Errorf("SizesIcons[0] type = %q", v)
	}
	if got, _ := s.Headers.Get("og:title").Get(); got != "Shop" {
		t.Errorf("Headers[og:title] = %q, want Shop", got)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(jsonLayer))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	checkDecodedLayer(t, s)
}

func TestUnmarshalYAML(t *testing.T) {
	var s State
	if err := yaml.Unmarshal([]byte(yamlLayer), &s); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	checkDecodedLayer(t, s)
}

func TestDecodedLayerRenders(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(jsonLayer))
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRegistry(t, WithLayers(s))

	want := strings.Join([]string{
		`<title>Shop</title>`,
		iconTags,
		`<link href="/a.png" rel="icon" sizes="32x32" type="image/png"/>`,
		`<link rel="canonical" href="/articles/view/7?page=2"/>`,
		`<meta http-equiv="language" content="de"/>`,
		`<meta name="robots" content="index,follow,noarchive"/>`,
		`<meta name="description" content="Laden" lang="de"/><meta name="description" content="Shop" lang="en"/>`,
		`<meta name="keywords" content="laden,kaufen" lang="de"/>`,
		`<meta http-equiv="expires" content="0"/>`,
		`<meta name="viewport" content="width=device-width"/>`,
		`<meta name="title" content="Shop" property="og:title"/>`,
	}, "\n")
	got := mustOut(t, r, "", WithImplode("\n"))
	if diff := cmp.Diff(strings.Split(want, "\n"), strings.Split(got, "\n")); diff != "" {
		t.Errorf("Out() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, s State)
	}{
		{
			name:  "auto values",
			input: `{"title": true, "language": true, "canonical": true, "robots": true}`,
			check: func(t *testing.T, s State) {
				if !s.Title.IsAuto() || !s.Language.IsAuto() || !s.Canonical.IsAuto() || !s.Robots.IsAuto() {
					t.Errorf("got %v %v %v %v, want auto", s.Title, s.Language, s.Canonical, s.Robots)
				}
			},
		},
		{
			name:  "off values",
			input: `{"robots": false, "description": false, "canonical": false}`,
			check: func(t *testing.T, s State) {
				if !s.Robots.IsOff() || !s.Description.IsOff() || !s.Canonical.IsOff() {
					t.Errorf("got %v %v %v, want off", s.Robots, s.Description.IsOff(), s.Canonical)
				}
			},
		},
		{
			name:  "raw robots and plain text",
			input: `{"robots": "noindex,follow", "description": "Hi", "keywords": ["a", "b"], "canonical": "/x"}`,
			check: func(t *testing.T, s State) {
				robots, _ := s.Robots.Get()
				if !robots.IsRaw() || robots.String() != "noindex,follow" {
					t.Errorf("Robots = %v", robots)
				}
				if got, _ := s.Keywords.Get(unkeyed); !cmp.Equal(got, []string{"a", "b"}) {
					t.Errorf("Keywords = %v", got)
				}
				if target, _ := s.Canonical.Get(); target.Path != "/x" {
					t.Errorf("Canonical = %v", target)
				}
			},
		},
		{
			name:  "null leaves unset",
			input: `{"title": null}`,
			check: func(t *testing.T, s State) {
				if !s.Title.IsUnset() {
					t.Errorf("Title = %v, want unset", s.Title)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			if err := s.UnmarshalJSON([]byte(tt.input)); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not an object", `["x"]`, "expected map"},
		{"robots flag not bool", `{"robots": {"index": "yes"}}`, "meta.robots"},
		{"description true", `{"description": true}`, "meta.description"},
		{"unknown route key", `{"canonical": {"controler": "x"}}`, "unknown route key"},
		{"icon without url", `{"sizesIcons": [{"size": 16}]}`, "url is required"},
		{"bad size", `{"sizesIcons": [{"url": "/a", "size": "big"}]}`, "size"},
		{"title object", `{"title": {}}`, "meta.title"},
		{"syntax", `{"title": `, "EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			err := s.UnmarshalJSON([]byte(tt.input))
			if err == nil {
				t.Fatal("UnmarshalJSON() error = nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("UnmarshalJSON() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
