package optional

// Ref is the borrow counterpart of Value: it optionally refers to a T owned
// elsewhere, never copies it, and is itself trivially copyable. Writes
// through the pointer returned by Get are visible to the owner. The zero
// Ref refers to nothing.
type Ref[T any] struct {
	p *T
}

// RefOf wraps a possibly-nil pointer. A nil p yields an empty Ref.
func RefOf[T any](p *T) Ref[T] {
	return Ref[T]{p: p}
}

// Get returns the referent and whether one is present.
func (r Ref[T]) Get() (*T, bool) {
	return r.p, r.p != nil
}

// IsSome reports whether the Ref refers to something.
func (r Ref[T]) IsSome() bool {
	return r.p != nil
}

// IsNone reports whether the Ref is empty.
func (r Ref[T]) IsNone() bool {
	return r.p == nil
}
