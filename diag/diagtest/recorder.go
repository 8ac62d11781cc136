// Package diagtest provides a diag.Handler that records events as text, for
// asserting on exact diagnostic output in tests.
package diagtest

import (
	"strings"
	"sync"

	"github.com/franghie/keel/diag"
)

// Unwind is the panic value a Recorder uses to leave a fatal raise site.
// Tests recover it (usually via CatchUnwind) to inspect the exception.
type Unwind struct {
	Ex *diag.Exception
}

// Recorder implements diag.Handler by appending one annotated line group
// per event to an internal buffer:
//
//	log message: warning: file.go:10: text
//	recoverable exception: file.go:11: bug in code: expected a == b
//	fatal exception: file.go:12: requirement not met: expected n > 0
//
// Exception renderings have their trailing "stack: ..." line removed so
// tests can compare exact strings. Fatal exceptions additionally panic with
// Unwind, honoring the requirement that a fatal handler never returns.
type Recorder struct {
	mu   sync.Mutex
	buf  strings.Builder
	last *diag.Exception

	logs         int
	recoverables int
	fatals       int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) LogMessage(_ diag.Severity, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs++
	r.buf.WriteString("log message: ")
	r.buf.WriteString(text)
}

func (r *Recorder) OnRecoverableException(ex *diag.Exception) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recoverables++
	r.last = ex
	r.buf.WriteString("recoverable exception: ")
	r.buf.WriteString(withoutStack(ex.Error()))
	r.buf.WriteString("\n")
}

func (r *Recorder) OnFatalException(ex *diag.Exception) {
	r.mu.Lock()
	r.fatals++
	r.last = ex
	r.buf.WriteString("fatal exception: ")
	r.buf.WriteString(withoutStack(ex.Error()))
	r.buf.WriteString("\n")
	r.mu.Unlock()
	panic(Unwind{Ex: ex})
}

// Text returns everything recorded so far.
func (r *Recorder) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

// Take returns everything recorded so far and clears the buffer, so
// consecutive assertions each see only their own events.
func (r *Recorder) Take() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.buf.String()
	r.buf.Reset()
	return out
}

// Reset clears the buffer, counters, and last exception.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf.Reset()
	r.last = nil
	r.logs, r.recoverables, r.fatals = 0, 0, 0
}

// LastException returns the most recently recorded exception, or nil.
func (r *Recorder) LastException() *diag.Exception {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Logs returns the number of log records seen.
func (r *Recorder) Logs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logs
}

// Recoverables returns the number of recoverable exceptions seen.
func (r *Recorder) Recoverables() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recoverables
}

// Fatals returns the number of fatal exceptions seen.
func (r *Recorder) Fatals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fatals
}

// CatchUnwind runs fn and captures the Unwind panic a Recorder raises for a
// fatal exception, returning the exception. It returns nil when fn finishes
// without a fatal raise. Panics that are not Unwind propagate.
func CatchUnwind(fn func()) (ex *diag.Exception) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		u, ok := r.(Unwind)
		if !ok {
			panic(r)
		}
		ex = u.Ex
	}()
	fn()
	return nil
}

// withoutStack drops the final "stack: ..." line from an exception
// rendering, when present.
func withoutStack(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 && strings.HasPrefix(s[i+1:], "stack: ") {
		return s[:i]
	}
	return s
}
