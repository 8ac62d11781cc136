// Package diag is a small substrate for reporting failures: leveled log
// records, assertion exceptions carrying source location and breadcrumb
// context, and pluggable handling of both.
//
// Reporting goes through package-level functions that take a
// context.Context. The context carries two things: the active Handler,
// bound with WithHandler, and a chain of breadcrumb frames, pushed with
// WithContext. When nothing is bound, the process fallback handler applies
// (standard error, exit on fatal).
//
//	ctx = diag.WithContext(ctx, "loading config", diag.Val("path", path))
//	diag.Require(ctx, n > 0, "n > 0", diag.Val("n", n))
//	if !diag.Check(ctx, fits(), "fits()") {
//		return
//	}
//
// Fatal raises never return: the handler panics or ends the process.
// Recoverable raises return control to the call site after the handler has
// seen the exception, so a false result from Check or Validate means "the
// handler let us continue, clean up and move on".
//
// Subpackages adapt handlers to common sinks: diagzap forwards to a
// zap.Logger, diagotel mirrors exceptions onto a trace span, diagtest
// records events for assertions in tests.
package diag
