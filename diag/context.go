package diag

import (
	"context"
	"path/filepath"
	"runtime"
	"strconv"
)

// contextKey namespaces the values this package stores in a context.Context.
type contextKey string

const (
	handlerKey contextKey = "keel_diag_handler"
	frameKey   contextKey = "keel_diag_context_frame"
)

// contextFrame is one breadcrumb of the context chain. Frames form an
// immutable singly linked list from innermost to outermost; the chain is
// only rendered when an exception is raised, so an abandoned frame costs a
// small allocation and nothing more.
type contextFrame struct {
	file        string
	line        int
	description string
	args        []Arg
	parent      *contextFrame
}

func (f *contextFrame) render() string {
	return f.file + ":" + strconv.Itoa(f.line) + ": context: " + joinParts(f.description, f.args)
}

// WithContext pushes a breadcrumb describing what the code is about to do.
// Every exception raised under the returned context carries the breadcrumb
// lines, outermost first, ahead of its own failure line. Plain log calls do
// not consult the chain. The description and args are captured now but
// rendered only when a failure actually needs them.
//
// Typical use at the top of an operation:
//
//	ctx = diag.WithContext(ctx, "processing request", diag.Val("peer", peer))
func WithContext(ctx context.Context, description string, args ...Arg) context.Context {
	_, file, line, _ := runtime.Caller(1)
	parent, _ := ctx.Value(frameKey).(*contextFrame)
	f := &contextFrame{
		file:        filepath.Base(file),
		line:        line,
		description: description,
		args:        args,
		parent:      parent,
	}
	return context.WithValue(ctx, frameKey, f)
}

// contextLines renders the chain active in ctx, outermost frame first.
// Returns nil when no frames are bound.
func contextLines(ctx context.Context) []string {
	f, _ := ctx.Value(frameKey).(*contextFrame)
	if f == nil {
		return nil
	}
	var inner []string
	for ; f != nil; f = f.parent {
		inner = append(inner, f.render())
	}
	out := make([]string, len(inner))
	for i, line := range inner {
		out[len(inner)-1-i] = line
	}
	return out
}
