package diag

import (
	"context"
	"sync"
)

// Handler receives every diagnostic event the engine emits. Exactly one of
// its methods is called per event, synchronously, on the calling goroutine.
//
// Implementations must be safe for concurrent use: the same handler value
// may be bound in contexts handed to many goroutines.
type Handler interface {
	// LogMessage receives one rendered log record, already filtered by the
	// process threshold. text is a complete line (or lines) ending in '\n',
	// formatted "severity: file:line: body\n".
	LogMessage(sev Severity, text string)

	// OnRecoverableException receives an exception whose raise site can
	// continue. Returning transfers control back to the raise site's
	// recovery path.
	OnRecoverableException(ex *Exception)

	// OnFatalException receives an exception whose raise site cannot
	// continue. It must not return normally: panic to unwind, or terminate
	// the process. If it does return, the engine panics with the exception.
	OnFatalException(ex *Exception)
}

// WithHandler binds h as the active handler for everything using the
// returned context. The previous binding (and ultimately the process
// fallback) stays in effect for the original ctx, so letting the returned
// context go out of scope is all the teardown there is.
//
// A handler that wants to delegate can capture the original ctx and call
// back into the engine with it; the nearest enclosing binding then sees the
// event.
func WithHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey, h)
}

// ActiveHandler returns the handler bound nearest in ctx, or the process
// fallback when none is bound.
func ActiveHandler(ctx context.Context) Handler {
	if h, ok := ctx.Value(handlerKey).(Handler); ok {
		return h
	}
	return FallbackHandler()
}

// fallbackMu guards fallbackHandler. Dispatch takes the read lock only when
// no handler is bound in the context.
var (
	fallbackMu      sync.RWMutex
	fallbackHandler Handler = NewStderrHandler()
)

// FallbackHandler returns the process-wide handler used when a context
// carries no binding. The default writes to standard error and exits the
// process on fatal exceptions.
func FallbackHandler() Handler {
	fallbackMu.RLock()
	defer fallbackMu.RUnlock()
	return fallbackHandler
}

// SetFallbackHandler replaces the process-wide fallback handler and returns
// a function that restores the previous one. Intended for process setup and
// for tests:
//
//	restore := diag.SetFallbackHandler(rec)
//	defer restore()
func SetFallbackHandler(h Handler) func() {
	fallbackMu.Lock()
	prev := fallbackHandler
	fallbackHandler = h
	fallbackMu.Unlock()
	return func() {
		fallbackMu.Lock()
		fallbackHandler = prev
		fallbackMu.Unlock()
	}
}
