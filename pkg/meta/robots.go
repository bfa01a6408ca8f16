package meta

import "strings"

// RobotsFlag is a single crawler directive such as index or follow.
type RobotsFlag struct {
	Name  string
	Allow bool
}

// Allow returns a flag that renders as name.
func Allow(name string) RobotsFlag {
	return RobotsFlag{Name: name, Allow: true}
}

// Deny returns a flag that renders as "no" + name.
func Deny(name string) RobotsFlag {
	return RobotsFlag{Name: name}
}

// String renders the flag as its name when allowed, "no"+name otherwise.
func (f RobotsFlag) String() string {
	if f.Allow {
		return f.Name
	}
	return "no" + f.Name
}

// Robots is either an ordered list of flags or a raw directive string.
type Robots struct {
	flags []RobotsFlag
	raw   string
	isRaw bool
}

// DefaultRobots denies index, follow and archive, in that order.
func DefaultRobots() Robots {
	return RobotsFlags(Deny("index"), Deny("follow"), Deny("archive"))
}

// RobotsFlags returns a flag-based Robots value. A repeated name keeps its
// first position and its last setting.
func RobotsFlags(flags ...RobotsFlag) Robots {
	return Robots{}.With(flags...)
}

// RawRobots returns a Robots value rendered verbatim, e.g.
// "noindex,nofollow,archive".
func RawRobots(s string) Robots {
	return Robots{raw: s, isRaw: true}
}

// IsRaw reports whether r holds a raw directive string.
func (r Robots) IsRaw() bool { return r.isRaw }

// Flags returns a copy of the flags in render order.
func (r Robots) Flags() []RobotsFlag {
	return append([]RobotsFlag(nil), r.flags...)
}

// Lookup returns the flag with the given name.
func (r Robots) Lookup(name string) (RobotsFlag, bool) {
	for _, f := range r.flags {
		if f.Name == name {
			return f, true
		}
	}
	return RobotsFlag{}, false
}

// With merges flags key-wise: existing names keep their position and take
// the new setting, new names are appended. Merging onto a raw value starts
// from an empty flag list.
func (r Robots) With(flags ...RobotsFlag) Robots {
	out := Robots{flags: make([]RobotsFlag, 0, len(r.flags)+len(flags))}
	if !r.isRaw {
		out.flags = append(out.flags, r.flags...)
	}
	for _, f := range flags {
		if f.Name == "" {
			continue
		}
		replaced := false
		for i := range out.flags {
			if out.flags[i].Name == f.Name {
				out.flags[i].Allow = f.Allow
				replaced = true
				break
			}
		}
		if !replaced {
			out.flags = append(out.flags, f)
		}
	}
	return out
}

// Merge layers o on top of r. Flag lists merge key-wise; a raw o replaces r.
func (r Robots) Merge(o Robots) Robots {
	if o.isRaw {
		return o
	}
	if r.isRaw {
		return RobotsFlags(o.flags...)
	}
	return r.With(o.flags...)
}

// String renders the comma-separated content attribute.
func (r Robots) String() string {
	if r.isRaw {
		return r.raw
	}
	parts := make([]string, len(r.flags))
	for i, f := range r.flags {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}
