package diag

import (
	"fmt"
	"sync/atomic"
)

// Severity classifies a log message or exception.
//
// The ordering is significant: a message is delivered to the active handler
// only when its severity is at or above the process threshold (see
// SetMinSeverity). Debug ranks above Fatal so that debug lines placed during
// an investigation are never filtered out.
type Severity int8

const (
	// Info reports something interesting but not worrying.
	Info Severity = iota
	// Warning reports a condition a maintainer should know about, where the
	// current call can still complete.
	Warning
	// Error reports an operation that failed but left the process able to
	// continue with other work.
	Error
	// Fatal reports a condition the process cannot continue past.
	Fatal
	// Debug marks temporary lines added while chasing a problem. They always
	// pass the threshold; grep for "debug" before committing.
	Debug
)

var severityNames = [...]string{
	Info:    "info",
	Warning: "warning",
	Error:   "error",
	Fatal:   "fatal",
	Debug:   "debug",
}

// String returns the lowercase name used in rendered log lines.
func (s Severity) String() string {
	if s < Info || int(s) >= len(severityNames) {
		return fmt.Sprintf("severity(%d)", int8(s))
	}
	return severityNames[s]
}

// ParseSeverity converts a severity name back to its value. "warn" is
// accepted as a synonym for "warning".
func ParseSeverity(name string) (Severity, error) {
	for s, n := range severityNames {
		if n == name {
			return Severity(s), nil
		}
	}
	if name == "warn" {
		return Warning, nil
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

// minSeverity holds the process-wide delivery threshold. It is read on
// every Log call, so it is an atomic rather than a mutex-guarded value.
var minSeverity atomic.Int32

func init() {
	minSeverity.Store(int32(Warning))
}

// MinSeverity returns the current delivery threshold.
func MinSeverity() Severity {
	return Severity(minSeverity.Load())
}

// SetMinSeverity sets the process-wide delivery threshold and returns the
// previous one. Messages below the threshold are dropped before the active
// handler sees them. Exceptions are not subject to the threshold.
func SetMinSeverity(s Severity) Severity {
	return Severity(minSeverity.Swap(int32(s)))
}
