// Package span provides Span[T], a non-owning read window over a slice
// whose accessors treat out-of-bounds use as a precondition violation
// rather than a runtime panic: violations raise a fatal failed-requirement
// exception through the diag process fallback handler, so they surface in
// the same stream, with the same rendering, as every other contract breach.
//
// A Span never allocates; keeping the backing storage alive is the
// caller's business, exactly as with a plain slice.
package span

import (
	"context"

	"github.com/franghie/keel/diag"
)

// Span is a view of a []T. The zero Span is empty.
type Span[T any] struct {
	items []T
}

// Of wraps items. The Span aliases the slice: element writes through
// Items() are visible to the caller's storage.
func Of[T any](items []T) Span[T] {
	return Span[T]{items: items}
}

// Len returns the number of elements in view.
func (s Span[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the view has no elements.
func (s Span[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// At returns the element at index i. An out-of-range i is a fatal
// precondition violation; At does not return from it.
func (s Span[T]) At(i int) T {
	if i < 0 || i >= len(s.items) {
		violate("expected 0 <= index < length",
			diag.Val("index", i), diag.Val("length", len(s.items)))
	}
	return s.items[i]
}

// Front returns the first element. The span must be non-empty.
func (s Span[T]) Front() T {
	if len(s.items) == 0 {
		violate("expected length > 0", diag.Lit("front of empty span"))
	}
	return s.items[0]
}

// Back returns the last element. The span must be non-empty.
func (s Span[T]) Back() T {
	if len(s.items) == 0 {
		violate("expected length > 0", diag.Lit("back of empty span"))
	}
	return s.items[len(s.items)-1]
}

// Slice returns the sub-view [start, end). Bounds must satisfy
// 0 <= start <= end <= Len().
func (s Span[T]) Slice(start, end int) Span[T] {
	if start < 0 || end < start || end > len(s.items) {
		violate("expected 0 <= start <= end <= length",
			diag.Val("start", start), diag.Val("end", end),
			diag.Val("length", len(s.items)))
	}
	return Span[T]{items: s.items[start:end]}
}

// Items exposes the raw window for iteration. Mutating elements mutates the
// viewed storage.
func (s Span[T]) Items() []T {
	return s.items
}

// violate reports a bounds violation. Span methods carry no context, so
// dispatch goes to the process fallback handler; the reported location is
// the caller of the accessor.
func violate(condition string, args ...diag.Arg) {
	diag.RaiseFatalSkip(context.Background(), 2, diag.FailedRequirement, condition, args...)
}
