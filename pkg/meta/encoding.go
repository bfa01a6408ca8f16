package meta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-meta/pkg/render"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

// UnmarshalJSON decodes a configuration layer. Key order is preserved for
// robots flags and per-language values.
//
//	{
//	  "title": "Shop",
//	  "canonical": true,
//	  "robots": {"index": true},
//	  "description": {"de": "Laden", "en": "Shop"},
//	  "keywords": ["shop", "store"],
//	  "custom": {"viewport": "width=device-width, initial-scale=1"},
//	  "og:title": "Shop"
//	}
func (s *State) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := readJSON(dec)
	if err != nil {
		return err
	}
	return s.decode(n)
}

// UnmarshalYAML decodes a configuration layer from YAML with the same
// schema as UnmarshalJSON.
func (s *State) UnmarshalYAML(value *yaml.Node) error {
	n, err := fromYAML(value)
	if err != nil {
		return err
	}
	return s.decode(n)
}

type nodeKind uint8

const (
	nullNode nodeKind = iota
	boolNode
	scalarNode
	mapNode
	listNode
)

// node is an order-preserving document tree shared by the JSON and YAML
// decoders.
type node struct {
	kind  nodeKind
	b     bool
	str   string
	keys  []string
	vals  []*node
	items []*node
}

func (n *node) describe() string {
	switch n.kind {
	case nullNode:
		return "null"
	case boolNode:
		return "bool"
	case mapNode:
		return "map"
	case listNode:
		return "list"
	default:
		return "string"
	}
}

func readJSON(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return &node{kind: nullNode}, nil
	case bool:
		return &node{kind: boolNode, b: t}, nil
	case string:
		return &node{kind: scalarNode, str: t}, nil
	case json.Number:
		return &node{kind: scalarNode, str: t.String()}, nil
	case json.Delim:
		switch t {
		case '{':
			n := &node{kind: mapNode}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				n.keys = append(n.keys, key)
				n.vals = append(n.vals, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		case '[':
			n := &node{kind: listNode}
			for dec.More() {
				item, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				n.items = append(n.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

func fromYAML(y *yaml.Node) (*node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &node{kind: nullNode}, nil
		}
		return fromYAML(y.Content[0])
	case yaml.AliasNode:
		return fromYAML(y.Alias)
	case yaml.ScalarNode:
		switch y.Tag {
		case "!!null":
			return &node{kind: nullNode}, nil
		case "!!bool":
			var b bool
			if err := y.Decode(&b); err != nil {
				return nil, err
			}
			return &node{kind: boolNode, b: b}, nil
		}
		return &node{kind: scalarNode, str: y.Value}, nil
	case yaml.MappingNode:
		n := &node{kind: mapNode}
		for i := 0; i+1 < len(y.Content); i += 2 {
			val, err := fromYAML(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			n.keys = append(n.keys, y.Content[i].Value)
			n.vals = append(n.vals, val)
		}
		return n, nil
	case yaml.SequenceNode:
		n := &node{kind: listNode}
		for _, c := range y.Content {
			item, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, item)
		}
		return n, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", y.Line)
}

func (s *State) decode(n *node) error {
	if n.kind == nullNode {
		return nil
	}
	if n.kind != mapNode {
		return fmt.Errorf("meta: expected map, got %s", n.describe())
	}
	for i, key := range n.keys {
		if err := s.decodeField(key, n.vals[i]); err != nil {
			return fmt.Errorf("meta.%s: %w", key, err)
		}
	}
	return nil
}

func (s *State) decodeField(key string, v *node) error {
	var err error
	switch key {
	case HeaderTitle:
		s.Title, err = decodeText(v)
	case HeaderCharset:
		s.Charset, err = decodeText(v)
	case HeaderIcon:
		s.Icon, err = decodeText(v)
	case HeaderLanguage:
		s.Language, err = decodeText(v)
	case HeaderCanonical:
		s.Canonical, err = decodeCanonical(v)
	case HeaderRobots:
		s.Robots, err = decodeRobots(v)
	case HeaderDescription:
		s.Description, err = decodeLocalized(v)
	case HeaderKeywords:
		s.Keywords, err = decodeLocalized(v)
	case HeaderCustom:
		s.Custom, err = decodeEntries(v)
	case HeaderHTTPEquiv, "httpEquiv":
		s.HTTPEquiv, err = decodeEntries(v)
	case HeaderSizesIcon, "sizesIcons":
		s.SizesIcons, err = decodeSizesIcons(v)
	default:
		var val Value[string]
		val, err = decodeText(v)
		if err == nil && !val.IsUnset() {
			s.Headers.Set(key, val)
		}
	}
	return err
}

// decodeText maps null to Unset, true to Auto, false to Off and scalars to
// a concrete value.
func decodeText(v *node) (Value[string], error) {
	switch v.kind {
	case nullNode:
		return Value[string]{}, nil
	case boolNode:
		if v.b {
			return Auto[string](), nil
		}
		return Off[string](), nil
	case scalarNode:
		return Of(v.str), nil
	}
	return Value[string]{}, fmt.Errorf("expected string or bool, got %s", v.describe())
}

func decodeCanonical(v *node) (Value[routepath.Target], error) {
	switch v.kind {
	case nullNode:
		return Value[routepath.Target]{}, nil
	case boolNode:
		if v.b {
			return Auto[routepath.Target](), nil
		}
		return Off[routepath.Target](), nil
	case scalarNode:
		return Of(routepath.Path(v.str)), nil
	case mapNode:
		var rt routepath.Route
		for i, key := range v.keys {
			val := v.vals[i]
			switch key {
			case "prefix":
				rt.Prefix = val.str
			case "plugin":
				rt.Plugin = val.str
			case "controller":
				rt.Controller = val.str
			case "action":
				rt.Action = val.str
			case "fragment", "#":
				rt.Fragment = val.str
			case "pass":
				for _, item := range val.items {
					rt.Pass = append(rt.Pass, item.str)
				}
			case "query", "?":
				if val.kind != mapNode {
					return Value[routepath.Target]{}, fmt.Errorf("query: expected map, got %s", val.describe())
				}
				rt.Query = url.Values{}
				for j, qk := range val.keys {
					rt.Query.Add(qk, val.vals[j].str)
				}
			default:
				return Value[routepath.Target]{}, fmt.Errorf("unknown route key %q", key)
			}
		}
		return Of(routepath.To(rt)), nil
	}
	return Value[routepath.Target]{}, fmt.Errorf("expected string, bool or route map, got %s", v.describe())
}

func decodeRobots(v *node) (Value[Robots], error) {
	switch v.kind {
	case nullNode:
		return Value[Robots]{}, nil
	case boolNode:
		if v.b {
			return Auto[Robots](), nil
		}
		return Off[Robots](), nil
	case scalarNode:
		return Of(RawRobots(v.str)), nil
	case mapNode:
		flags := make([]RobotsFlag, 0, len(v.keys))
		for i, key := range v.keys {
			val := v.vals[i]
			if val.kind != boolNode {
				return Value[Robots]{}, fmt.Errorf("%s: expected bool, got %s", key, val.describe())
			}
			flags = append(flags, RobotsFlag{Name: key, Allow: val.b})
		}
		return Of(RobotsFlags(flags...)), nil
	}
	return Value[Robots]{}, fmt.Errorf("expected bool, string or flag map, got %s", v.describe())
}

func decodeLocalized(v *node) (Localized, error) {
	switch v.kind {
	case nullNode:
		return Localized{}, nil
	case boolNode:
		if v.b {
			return Localized{}, fmt.Errorf("true is not a valid value")
		}
		return LocalizedOff(), nil
	case scalarNode, listNode:
		values, err := decodeStrings(v)
		if err != nil {
			return Localized{}, err
		}
		return Text(values...), nil
	case mapNode:
		var l Localized
		for i, lang := range v.keys {
			values, err := decodeStrings(v.vals[i])
			if err != nil {
				return Localized{}, fmt.Errorf("%s: %w", lang, err)
			}
			l.Set(lang, values...)
		}
		return l, nil
	}
	return Localized{}, fmt.Errorf("unexpected %s", v.describe())
}

func decodeStrings(v *node) ([]string, error) {
	switch v.kind {
	case scalarNode:
		return []string{v.str}, nil
	case listNode:
		out := make([]string, 0, len(v.items))
		for _, item := range v.items {
			if item.kind != scalarNode {
				return nil, fmt.Errorf("expected string list item, got %s", item.describe())
			}
			out = append(out, item.str)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected string or list, got %s", v.describe())
}

func decodeEntries(v *node) (Entries, error) {
	var e Entries
	if v.kind == nullNode {
		return e, nil
	}
	if v.kind != mapNode {
		return e, fmt.Errorf("expected map, got %s", v.describe())
	}
	for i, name := range v.keys {
		val, err := decodeText(v.vals[i])
		if err != nil {
			return Entries{}, fmt.Errorf("%s: %w", name, err)
		}
		if val.IsUnset() {
			continue
		}
		e.Set(name, val)
	}
	return e, nil
}

func decodeSizesIcons(v *node) ([]SizesIcon, error) {
	if v.kind == nullNode {
		return nil, nil
	}
	if v.kind != listNode {
		return nil, fmt.Errorf("expected list, got %s", v.describe())
	}
	icons := make([]SizesIcon, 0, len(v.items))
	for idx, item := range v.items {
		if item.kind != mapNode {
			return nil, fmt.Errorf("[%d]: expected map, got %s", idx, item.describe())
		}
		var icon SizesIcon
		for i, key := range item.keys {
			val := item.vals[i]
			switch key {
			case "url":
				icon.URL = val.str
			case "size":
				size, err := strconv.Atoi(val.str)
				if err != nil {
					return nil, fmt.Errorf("[%d].size: %w", idx, err)
				}
				icon.Size = size
			case "prefix":
				icon.Prefix = val.str
			default:
				icon.Attrs = append(icon.Attrs, render.A(key, val.str))
			}
		}
		if icon.URL == "" {
			return nil, fmt.Errorf("[%d]: url is required", idx)
		}
		icons = upsertIcon(icons, icon)
	}
	return icons, nil
}

// ReadJSON decodes a configuration layer from r.
func ReadJSON(r io.Reader) (State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return State{}, err
	}
	var s State
	if err := s.UnmarshalJSON(data); err != nil {
		return State{}, err
	}
	return s, nil
}
