//go:build unix

// Package sysx runs operating system calls under the diag failure
// discipline: interrupted calls are retried, failed calls raise an OSError
// exception carrying the call's name and the platform error string, and
// successful calls hand their result back untouched.
//
//	fd := sysx.Call(ctx, "open(path)", func() (int, error) {
//		return unix.Open(path, unix.O_RDONLY, 0)
//	})
//
// The recoverable forms return the call's own failure sentinel (for fds,
// -1) along with false, so the caller's variable ends up exactly as the raw
// call would have left it.
package sysx

import (
	"context"
	"errors"

	"golang.org/x/sys/unix"

	"github.com/franghie/keel/diag"
)

// Do runs op, retrying while it fails with EINTR. Any other failure raises
// a fatal OSError exception described as "call: <error string>" plus args;
// Do then does not return.
func Do(ctx context.Context, call string, op func() error, args ...diag.Arg) {
	for {
		err := op()
		if err == nil {
			return
		}
		if interrupted(err) {
			continue
		}
		raiseOS(ctx, true, call, err, args)
		return
	}
}

// CheckDo is the recoverable form of Do: on a non-EINTR failure it raises a
// recoverable OSError exception and reports false once the handler has
// consumed it.
func CheckDo(ctx context.Context, call string, op func() error, args ...diag.Arg) bool {
	for {
		err := op()
		if err == nil {
			return true
		}
		if interrupted(err) {
			continue
		}
		raiseOS(ctx, false, call, err, args)
		return false
	}
}

// Call runs a result-carrying op, retrying while it fails with EINTR. Any
// other failure raises a fatal OSError exception; Call then does not
// return. On success the op's result is returned.
func Call[T any](ctx context.Context, call string, op func() (T, error), args ...diag.Arg) T {
	for {
		v, err := op()
		if err == nil {
			return v
		}
		if interrupted(err) {
			continue
		}
		raiseOS(ctx, true, call, err, args)
		return v
	}
}

// CheckCall is the recoverable form of Call. On a non-EINTR failure it
// raises a recoverable OSError exception and returns the failed op's result
// as-is (the call's error sentinel) along with false.
func CheckCall[T any](ctx context.Context, call string, op func() (T, error), args ...diag.Arg) (T, bool) {
	for {
		v, err := op()
		if err == nil {
			return v, true
		}
		if interrupted(err) {
			continue
		}
		raiseOS(ctx, false, call, err, args)
		return v, false
	}
}

// interrupted reports whether err is EINTR, directly or wrapped.
func interrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}

// failText extracts the platform error string. When err carries an errno,
// only the errno's own text is used, so wrappers like os.PathError do not
// duplicate the call name already in the description.
func failText(err error) string {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno.Error()
	}
	return err.Error()
}

func raiseOS(ctx context.Context, fatal bool, call string, err error, args []diag.Arg) {
	desc := call + ": " + failText(err)
	if fatal {
		diag.RaiseFatalSkip(ctx, 2, diag.OSError, desc, args...)
		return
	}
	diag.RaiseRecoverableSkip(ctx, 2, diag.OSError, desc, args...)
}
