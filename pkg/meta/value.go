package meta

import "fmt"

type valueState uint8

const (
	stateUnset valueState = iota
	stateAuto
	stateOff
	stateSet
)

// Value is a tri-state field value: Unset, Auto (derive at render time),
// Off (suppress the tag) or a concrete value.
//
// The zero Value is Unset. In a configuration layer an Unset field leaves
// the lower layer's value in place.
type Value[T any] struct {
	state valueState
	v     T
}

// Of returns a Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{state: stateSet, v: v}
}

// Auto returns a Value that is derived from the request or environment
// when rendered.
func Auto[T any]() Value[T] {
	return Value[T]{state: stateAuto}
}

// Off returns a Value that suppresses its tag.
func Off[T any]() Value[T] {
	return Value[T]{state: stateOff}
}

// IsUnset reports whether no value has been configured.
func (v Value[T]) IsUnset() bool { return v.state == stateUnset }

// IsAuto reports whether the value is derived at render time.
func (v Value[T]) IsAuto() bool { return v.state == stateAuto }

// IsOff reports whether the tag is suppressed.
func (v Value[T]) IsOff() bool { return v.state == stateOff }

// IsSet reports whether the value holds a concrete value.
func (v Value[T]) IsSet() bool { return v.state == stateSet }

// Get returns the concrete value and whether there is one.
func (v Value[T]) Get() (T, bool) {
	return v.v, v.state == stateSet
}

// Or returns v unless it is Unset, in which case fallback is returned.
func (v Value[T]) Or(fallback Value[T]) Value[T] {
	if v.state == stateUnset {
		return fallback
	}
	return v
}

// String implements fmt.Stringer for debugging output.
func (v Value[T]) String() string {
	switch v.state {
	case stateAuto:
		return "auto"
	case stateOff:
		return "off"
	case stateSet:
		return fmt.Sprint(v.v)
	default:
		return "unset"
	}
}
