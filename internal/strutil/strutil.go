// Package strutil holds small string helpers shared by the diagnostic
// packages. It deliberately knows nothing about severities, handlers, or
// exceptions.
package strutil

import (
	"fmt"
	"strings"
)

// controlCharReplacer escapes control characters that would let a logged
// value forge extra lines in the line-oriented diagnostic stream (CWE-117).
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// SanitizeLine escapes control characters in s so the result stays on one
// physical line.
func SanitizeLine(s string) string {
	return controlCharReplacer.Replace(s)
}

// Stringify renders an arbitrary value for inclusion in a diagnostic line.
// String values are sanitized; everything else goes through fmt unchanged.
func Stringify(v any) string {
	if s, ok := v.(string); ok {
		return SanitizeLine(s)
	}
	return fmt.Sprint(v)
}
