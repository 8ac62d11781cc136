package diag

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// maxStackDepth bounds the number of frames captured per exception.
const maxStackDepth = 32

// Frame is one entry of an exception's captured call stack.
type Frame struct {
	Function string
	File     string
	Line     int
}

// String renders the frame as "Function@file.go:line". Only the base name
// of the file is kept; the function keeps its package qualifier.
func (f Frame) String() string {
	return f.Function + "@" + filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
}

// captureStack records the calling goroutine's stack. skip counts frames to
// drop beyond captureStack itself, so skip = 0 makes the caller of
// captureStack the first frame.
func captureStack(skip int) []Frame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	out := make([]Frame, 0, n)
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			out = append(out, Frame{
				Function: trimFuncName(fr.Function),
				File:     fr.File,
				Line:     fr.Line,
			})
		}
		if !more {
			break
		}
	}
	return out
}

// trimFuncName reduces a fully qualified function name to "pkg.Func".
func trimFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// renderStack produces the single "stack: ..." line appended to an
// exception's text, or "" when no frames were captured.
func renderStack(frames []Frame) string {
	if len(frames) == 0 {
		return ""
	}
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = f.String()
	}
	return "stack: " + strings.Join(parts, " ")
}
