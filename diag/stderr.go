package diag

import (
	"io"
	"os"
	"sync"
)

// StderrHandler is the built-in handler of last resort: it writes every
// event to standard error and, on a fatal exception, terminates the
// process. It is the initial process fallback (see SetFallbackHandler).
type StderrHandler struct {
	mu   sync.Mutex
	out  io.Writer
	exit func(code int)
}

// StderrOption configures a StderrHandler.
type StderrOption func(*StderrHandler)

// WithOutput redirects the handler's writes, replacing os.Stderr.
func WithOutput(w io.Writer) StderrOption {
	return func(h *StderrHandler) { h.out = w }
}

// WithExitFunc replaces os.Exit as the fatal-exception terminator. The
// replacement does not need to return, but the handler stays well behaved
// if it does: it panics with the exception so the fatal contract holds.
func WithExitFunc(exit func(code int)) StderrOption {
	return func(h *StderrHandler) { h.exit = exit }
}

// NewStderrHandler builds a handler writing to os.Stderr and exiting via
// os.Exit, unless options say otherwise.
func NewStderrHandler(opts ...StderrOption) *StderrHandler {
	h := &StderrHandler{out: os.Stderr, exit: os.Exit}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// write serializes output so concurrent goroutines cannot interleave lines.
func (h *StderrHandler) write(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	io.WriteString(h.out, text)
}

// LogMessage writes the already-rendered record as-is.
func (h *StderrHandler) LogMessage(_ Severity, text string) {
	h.write(text)
}

// OnRecoverableException writes the exception's rendering, prefixed with its
// severity, and returns so the raise site can continue.
func (h *StderrHandler) OnRecoverableException(ex *Exception) {
	h.write(ex.Severity.String() + ": " + ex.Error() + "\n")
}

// OnFatalException writes the exception's rendering and terminates the
// process with a nonzero status. There is nothing to unwind to when no
// handler was ever registered.
func (h *StderrHandler) OnFatalException(ex *Exception) {
	h.write(ex.Severity.String() + ": " + ex.Error() + "\n")
	h.exit(1)
	panic(ex)
}
