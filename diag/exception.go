package diag

import (
	"strconv"
	"strings"
)

// Nature classifies what kind of failure an exception reports, independent
// of how severe it is. The nature decides the lead-in phrase of the rendered
// description and gives callers above a stable way to branch on failure kind
// without parsing text.
type Nature int8

const (
	// Bug marks a broken invariant in this program. Raised by Assert, Check,
	// and Fail.
	Bug Nature = iota
	// FailedRequirement marks a precondition violation: the caller misused
	// an interface. Raised by Require and Validate.
	FailedRequirement
	// OSError marks a failed operating system call. Raised by the sysx
	// wrappers.
	OSError
	// Disconnected marks a lost peer or closed channel. Reserved for
	// network layers built on top of this package.
	Disconnected
	// Overloaded marks a failure due to resource exhaustion, where retrying
	// later could succeed.
	Overloaded
	// Unknown marks a failure that fits none of the other natures.
	Unknown
)

var natureNames = [...]string{
	Bug:               "bug",
	FailedRequirement: "failed requirement",
	OSError:           "os error",
	Disconnected:      "disconnected",
	Overloaded:        "overloaded",
	Unknown:           "unknown",
}

func (n Nature) String() string {
	if n < Bug || int(n) >= len(natureNames) {
		return "nature(" + strconv.Itoa(int(n)) + ")"
	}
	return natureNames[n]
}

// leadIn returns the phrase that opens the rendered description for this
// nature.
func (n Nature) leadIn() string {
	switch n {
	case Bug:
		return "bug in code: "
	case FailedRequirement:
		return "requirement not met: "
	case OSError:
		return "error from OS: "
	case Disconnected:
		return "disconnected: "
	case Overloaded:
		return "overloaded: "
	default:
		return "unknown error: "
	}
}

// Exception describes one failure: where it was detected, what kind it is,
// and the context chain that was active when it was raised. Exceptions are
// built by the raise functions and delivered to the active Handler; everyone
// downstream must treat them as read-only.
type Exception struct {
	// Nature classifies the failure kind.
	Nature Nature
	// Severity is Fatal for the fatal raise path and Error for the
	// recoverable one.
	Severity Severity
	// File is the base name of the source file that detected the failure.
	File string
	// Line is the line within File.
	Line int
	// Description is the full rendered description, lead-in included, e.g.
	// "bug in code: expected a == b; a = 1; b = 2".
	Description string
	// Context holds the rendered context frames that were active at raise
	// time, outermost first. Each entry is a full line of the form
	// "file:line: context: description; args".
	Context []string
	// Stack is the call stack captured at raise time, innermost first.
	Stack []Frame
}

// Error renders the exception as multi-line text: the context lines
// outermost first, then "file:line: description", then a final
// "stack: ..." line.
func (e *Exception) Error() string {
	var b strings.Builder
	for _, c := range e.Context {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	b.WriteString(e.File)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(e.Line))
	b.WriteString(": ")
	b.WriteString(e.Description)
	if s := renderStack(e.Stack); s != "" {
		b.WriteByte('\n')
		b.WriteString(s)
	}
	return b.String()
}
