package render

import "strings"

// Attr is a single HTML attribute.
type Attr struct {
	Key   string
	Value string
}

// A is shorthand for Attr{Key: key, Value: value}.
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Attrs is an ordered attribute list.
type Attrs []Attr

// Get returns the value for key.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key in place, or appends it.
func (a Attrs) Set(key, value string) Attrs {
	for i, attr := range a {
		if attr.Key == key {
			out := append(Attrs(nil), a...)
			out[i].Value = value
			return out
		}
	}
	return append(append(Attrs(nil), a...), Attr{Key: key, Value: value})
}

// Without returns a copy with the given keys removed.
func (a Attrs) Without(keys ...string) Attrs {
	out := make(Attrs, 0, len(a))
outer:
	for _, attr := range a {
		for _, k := range keys {
			if attr.Key == k {
				continue outer
			}
		}
		out = append(out, attr)
	}
	return out
}

// Merge appends the attributes of b whose keys are not already in a.
func (a Attrs) Merge(b Attrs) Attrs {
	out := append(Attrs(nil), a...)
	for _, attr := range b {
		if _, ok := out.Get(attr.Key); !ok {
			out = append(out, attr)
		}
	}
	return out
}

// String formats the list as ` key="value"` pairs.
func (a Attrs) String() string {
	var b strings.Builder
	for _, attr := range a {
		if attr.Key == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(attr.Value))
		b.WriteByte('"')
	}
	return b.String()
}
