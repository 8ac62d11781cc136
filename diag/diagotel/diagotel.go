// Package diagotel mirrors diagnostic exceptions onto an OpenTelemetry
// span, then hands them to an inner handler. Code that already carries a
// span for an operation wraps its handler once and every failure inside
// the operation shows up on the trace:
//
//	ctx, span := tracer.Start(ctx, "rebuild-index")
//	defer span.End()
//	ctx = diag.WithHandler(ctx, diagotel.New(handler, span))
package diagotel

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/franghie/keel/diag"
)

// Handler decorates an inner diag.Handler with span recording. Log records
// pass through untouched; exceptions are recorded on the span before the
// inner handler sees them.
type Handler struct {
	inner diag.Handler
	span  trace.Span
}

var _ diag.Handler = (*Handler)(nil)

// New wraps inner so exceptions are mirrored onto span. A nil or
// non-recording span disables the mirroring and leaves a plain
// pass-through.
func New(inner diag.Handler, span trace.Span) *Handler {
	return &Handler{inner: inner, span: span}
}

// LogMessage forwards to the inner handler.
func (h *Handler) LogMessage(sev diag.Severity, text string) {
	h.inner.LogMessage(sev, text)
}

// OnRecoverableException records the exception on the span and forwards.
func (h *Handler) OnRecoverableException(ex *diag.Exception) {
	h.record(ex, false)
	h.inner.OnRecoverableException(ex)
}

// OnFatalException records the exception on the span, marks the span's
// status as error, and forwards; the inner handler owns the unwind.
func (h *Handler) OnFatalException(ex *diag.Exception) {
	h.record(ex, true)
	h.inner.OnFatalException(ex)
}

func (h *Handler) record(ex *diag.Exception, fatal bool) {
	if h.span == nil || !h.span.IsRecording() {
		return
	}
	h.span.RecordError(ex, trace.WithAttributes(
		attribute.String("diag.nature", ex.Nature.String()),
		attribute.String("code.filepath", ex.File),
		attribute.Int("code.lineno", ex.Line),
	))
	if fatal {
		h.span.SetStatus(codes.Error, ex.Description)
	}
}
