package diag

import (
	"strings"

	"github.com/franghie/keel/internal/strutil"
)

// Arg is one extra value attached to a log message, context frame, or
// exception. Named args render as "name = value"; literals render as their
// text alone.
type Arg struct {
	Name  string
	Value any
}

// Val builds a named argument. It renders as "name = value".
func Val(name string, value any) Arg {
	return Arg{Name: name, Value: value}
}

// Lit builds a bare literal argument. It renders as the text itself, with no
// "name =" prefix. Use it for short annotations that need no value.
func Lit(text string) Arg {
	return Arg{Value: text}
}

// Err builds a named argument for an error value. It renders as
// "error = <err>". A nil err renders as "error = <nil>".
func Err(err error) Arg {
	if err == nil {
		return Arg{Name: "error", Value: "<nil>"}
	}
	return Arg{Name: "error", Value: err.Error()}
}

// render produces the textual form of a single argument.
func (a Arg) render() string {
	v := strutil.Stringify(a.Value)
	if a.Name == "" {
		return v
	}
	return a.Name + " = " + v
}

// joinParts assembles the body of a diagnostic line: the head text (if any)
// followed by each argument, separated by "; ".
func joinParts(head string, args []Arg) string {
	if len(args) == 0 {
		return head
	}
	parts := make([]string, 0, len(args)+1)
	if head != "" {
		parts = append(parts, head)
	}
	for _, a := range args {
		parts = append(parts, a.render())
	}
	return strings.Join(parts, "; ")
}
