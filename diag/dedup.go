package diag

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DedupHandler wraps another handler and suppresses repeated identical log
// records: each distinct rendered line passes through at most limit times,
// followed by a single notice that further repeats are being dropped.
// Records are identified by the 64-bit hash of their full text, so two call
// sites producing byte-identical lines share a budget and a call site whose
// argument values change is never suppressed.
//
// Exceptions are never deduplicated; both exception methods forward
// unconditionally.
type DedupHandler struct {
	inner Handler
	limit uint64

	mu   sync.Mutex
	seen map[uint64]uint64
}

// NewDedupHandler wraps inner. limit is the number of times each distinct
// record is let through; 0 disables suppression entirely.
func NewDedupHandler(inner Handler, limit int) *DedupHandler {
	return &DedupHandler{
		inner: inner,
		limit: uint64(limit),
		seen:  make(map[uint64]uint64),
	}
}

// LogMessage forwards text unless its suppression budget is spent. The
// first dropped repeat is replaced by a suppression notice so the stream
// never goes silent without saying so.
func (h *DedupHandler) LogMessage(sev Severity, text string) {
	if h.limit > 0 {
		key := xxhash.Sum64String(text)
		h.mu.Lock()
		count := h.seen[key]
		h.seen[key] = count + 1
		h.mu.Unlock()
		if count >= h.limit {
			if count == h.limit {
				h.inner.LogMessage(sev, strings.TrimSuffix(text, "\n")+" (further repeats suppressed)\n")
			}
			return
		}
	}
	h.inner.LogMessage(sev, text)
}

// OnRecoverableException forwards to the wrapped handler.
func (h *DedupHandler) OnRecoverableException(ex *Exception) {
	h.inner.OnRecoverableException(ex)
}

// OnFatalException forwards to the wrapped handler.
func (h *DedupHandler) OnFatalException(ex *Exception) {
	h.inner.OnFatalException(ex)
}

// Reset forgets all suppression counts, restoring every record's budget.
func (h *DedupHandler) Reset() {
	h.mu.Lock()
	h.seen = make(map[uint64]uint64)
	h.mu.Unlock()
}
