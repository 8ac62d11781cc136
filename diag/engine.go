package diag

import (
	"context"
	"path/filepath"
	"runtime"
	"strconv"
)

// Log delivers one log record to the active handler, unless sev is below
// the process threshold. The record renders as
// "severity: file:line: msg; name = value; ...\n" with file and line taken
// from the call site. An empty msg is omitted, leaving only the args.
func Log(ctx context.Context, sev Severity, msg string, args ...Arg) {
	if sev < MinSeverity() {
		return
	}
	logAt(ctx, sev, 1, msg, args)
}

// Dbg logs at Debug severity, which no threshold filters out. It exists for
// temporary instrumentation while chasing a problem; grep for Dbg before
// committing.
func Dbg(ctx context.Context, msg string, args ...Arg) {
	logAt(ctx, Debug, 1, msg, args)
}

func logAt(ctx context.Context, sev Severity, skip int, msg string, args []Arg) {
	_, file, line, _ := runtime.Caller(skip + 1)
	text := sev.String() + ": " + filepath.Base(file) + ":" + strconv.Itoa(line) +
		": " + joinParts(msg, args) + "\n"
	ActiveHandler(ctx).LogMessage(sev, text)
}

// Assert checks an internal invariant. If cond is false it raises a fatal
// Bug exception whose description is "expected <condition>" plus the args;
// the active handler then unwinds or terminates, so Assert only returns
// when cond is true. condition should be the source text of the predicate:
//
//	diag.Assert(ctx, n > 0, "n > 0", diag.Val("n", n))
func Assert(ctx context.Context, cond bool, condition string, args ...Arg) {
	if cond {
		return
	}
	raise(ctx, Bug, true, conditionHead(condition), args, 1)
}

// Check is the recoverable form of Assert. If cond is false it raises a
// recoverable Bug exception and, once the handler returns, reports false so
// the caller can run its recovery path:
//
//	if !diag.Check(ctx, n > 0, "n > 0", diag.Val("n", n)) {
//		return
//	}
func Check(ctx context.Context, cond bool, condition string, args ...Arg) bool {
	if cond {
		return true
	}
	raise(ctx, Bug, false, conditionHead(condition), args, 1)
	return false
}

// Require checks a precondition on caller-supplied input. It behaves like
// Assert but raises a FailedRequirement exception, pointing the blame at
// the caller rather than at this program's own logic.
func Require(ctx context.Context, cond bool, condition string, args ...Arg) {
	if cond {
		return
	}
	raise(ctx, FailedRequirement, true, conditionHead(condition), args, 1)
}

// Validate is the recoverable form of Require: it raises a recoverable
// FailedRequirement exception when cond is false and reports the condition's
// value either way.
func Validate(ctx context.Context, cond bool, condition string, args ...Arg) bool {
	if cond {
		return true
	}
	raise(ctx, FailedRequirement, false, conditionHead(condition), args, 1)
	return false
}

// Fail unconditionally raises a fatal Bug exception; it marks code that
// must be unreachable. The description is msg plus the args, with no
// "expected" lead-in since there is no condition.
func Fail(ctx context.Context, msg string, args ...Arg) {
	raise(ctx, Bug, true, msg, args, 1)
}

// RaiseFatal raises a fatal exception of an arbitrary nature. The active
// handler must not return; if it does, RaiseFatal panics with the
// exception.
func RaiseFatal(ctx context.Context, nature Nature, description string, args ...Arg) {
	raise(ctx, nature, true, description, args, 1)
}

// RaiseRecoverable raises a recoverable exception of an arbitrary nature
// and returns once the active handler has consumed it.
func RaiseRecoverable(ctx context.Context, nature Nature, description string, args ...Arg) {
	raise(ctx, nature, false, description, args, 1)
}

// RaiseFatalSkip is RaiseFatal with the reported source location moved skip
// extra frames up the stack. Wrappers that raise on behalf of their caller
// use it so the exception points at the caller, not at the wrapper.
func RaiseFatalSkip(ctx context.Context, skip int, nature Nature, description string, args ...Arg) {
	raise(ctx, nature, true, description, args, skip+1)
}

// RaiseRecoverableSkip is RaiseRecoverable with the reported source
// location moved skip extra frames up the stack.
func RaiseRecoverableSkip(ctx context.Context, skip int, nature Nature, description string, args ...Arg) {
	raise(ctx, nature, false, description, args, skip+1)
}

func conditionHead(condition string) string {
	if condition == "" {
		return ""
	}
	return "expected " + condition
}

// raise builds the exception and dispatches it. skip counts stack frames
// between raise's caller and the user code the exception should blame.
func raise(ctx context.Context, nature Nature, fatal bool, head string, args []Arg, skip int) {
	sev := Fatal
	if !fatal {
		sev = Error
	}
	_, file, line, _ := runtime.Caller(skip + 1)
	ex := &Exception{
		Nature:      nature,
		Severity:    sev,
		File:        filepath.Base(file),
		Line:        line,
		Description: nature.leadIn() + joinParts(head, args),
		Context:     contextLines(ctx),
		Stack:       captureStack(skip + 1),
	}
	h := ActiveHandler(ctx)
	if !fatal {
		h.OnRecoverableException(ex)
		return
	}
	h.OnFatalException(ex)
	// The fatal contract says the handler never returns. Enforce it.
	panic(ex)
}
