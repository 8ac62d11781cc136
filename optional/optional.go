// Package optional provides Value[T], a container holding nothing or
// exactly one T, as a typed alternative to nil-pointer conventions. The
// only way to read a Value is the comma-ok Get or a composition like Or
// and Map; there is no unchecked accessor that could blow up at a
// distance.
package optional

// Value holds nothing or exactly one T. The zero Value is empty, and
// assignment is a plain struct copy.
type Value[T any] struct {
	value T
	ok    bool
}

// Some returns a Value holding v.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, ok: true}
}

// None returns an empty Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr converts a nullable pointer: nil becomes an empty Value, non-nil
// copies the pointee. The conversion is deliberately spelled out rather
// than implicit, so a reader always sees where a nil check happened.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the held value and whether one is present. When empty, the
// returned T is the zero value and must not be used.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.ok
}

// IsSome reports whether a value is present.
func (v Value[T]) IsSome() bool {
	return v.ok
}

// IsNone reports whether the Value is empty.
func (v Value[T]) IsNone() bool {
	return !v.ok
}

// Or returns the held value, or fallback when empty.
func (v Value[T]) Or(fallback T) T {
	if v.ok {
		return v.value
	}
	return fallback
}

// Ptr returns a pointer to a copy of the held value, or nil when empty. It
// round-trips with FromPtr and feeds APIs that speak nullable pointers;
// writes through the pointer do not affect the Value.
func (v Value[T]) Ptr() *T {
	if !v.ok {
		return nil
	}
	c := v.value
	return &c
}

// Map applies f to the held value, producing a Value of the result type.
// An empty input produces an empty output and f is not called.
func Map[T, U any](v Value[T], f func(T) U) Value[U] {
	if !v.ok {
		return None[U]()
	}
	return Some(f(v.value))
}
