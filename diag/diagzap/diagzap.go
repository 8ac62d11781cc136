// Package diagzap adapts a zap.Logger into a diag.Handler, so diagnostic
// events land in the same structured stream as the rest of an
// application's logging.
//
// Log records keep their rendered "severity: file:line: body" text as the
// zap message. Exceptions log the description as the message with nature,
// location, context chain, and stack attached as fields. Debug-severity
// records map to zap's debug level; enable that level on the logger if
// they must appear.
package diagzap

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/franghie/keel/diag"
)

// Handler forwards diagnostic events to a zap.Logger. Every record carries
// a diag_handler field identifying the handler instance, so interleaved
// streams from several handlers stay distinguishable.
type Handler struct {
	logger *zap.Logger
	id     string
}

var _ diag.Handler = (*Handler)(nil)

// Option configures a Handler.
type Option func(*Handler)

// WithInstanceID fixes the diag_handler field value instead of generating
// one. Useful when tests assert on the field.
func WithInstanceID(id string) Option {
	return func(h *Handler) { h.id = id }
}

// New wraps logger. The handler gets a fresh uuid instance id unless
// WithInstanceID overrides it.
func New(logger *zap.Logger, opts ...Option) *Handler {
	h := &Handler{id: uuid.NewString()}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = logger.With(zap.String("diag_handler", h.id))
	return h
}

// ID returns the handler's instance id.
func (h *Handler) ID() string {
	return h.id
}

// LogMessage logs the rendered record, minus its trailing newline, at the
// level matching sev.
func (h *Handler) LogMessage(sev diag.Severity, text string) {
	if ce := h.logger.Check(zapLevel(sev), strings.TrimSuffix(text, "\n")); ce != nil {
		ce.Write()
	}
}

// OnRecoverableException logs the exception at error level and returns,
// letting the raise site continue.
func (h *Handler) OnRecoverableException(ex *diag.Exception) {
	h.logger.Error(ex.Description, exceptionFields(ex)...)
}

// OnFatalException logs the exception at error level, then panics with it.
// zap's own fatal level is not used because it would end the process
// before any enclosing recover could run; the unwind stays with the
// caller.
func (h *Handler) OnFatalException(ex *diag.Exception) {
	h.logger.Error(ex.Description, exceptionFields(ex)...)
	panic(ex)
}

// Close flushes the underlying logger, giving up when ctx expires first.
func (h *Handler) Close(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- h.logger.Sync() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func exceptionFields(ex *diag.Exception) []zap.Field {
	fields := []zap.Field{
		zap.String("nature", ex.Nature.String()),
		zap.String("severity", ex.Severity.String()),
		zap.String("file", ex.File),
		zap.Int("line", ex.Line),
	}
	if len(ex.Context) > 0 {
		fields = append(fields, zap.Strings("context", ex.Context))
	}
	if len(ex.Stack) > 0 {
		fields = append(fields, zap.Stringers("stack", ex.Stack))
	}
	return fields
}

func zapLevel(sev diag.Severity) zapcore.Level {
	switch sev {
	case diag.Debug:
		return zapcore.DebugLevel
	case diag.Info:
		return zapcore.InfoLevel
	case diag.Warning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
