package diagtest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franghie/keel/diag"
	"github.com/franghie/keel/diag/diagtest"
)

func TestRecorder_TakeClearsBetweenAssertions(t *testing.T) {
	rec := diagtest.NewRecorder()

	rec.LogMessage(diag.Warning, "warning: a.go:1: one\n")
	assert.Equal(t, "log message: warning: a.go:1: one\n", rec.Take())
	assert.Equal(t, "", rec.Take())

	rec.LogMessage(diag.Error, "error: a.go:2: two\n")
	assert.Equal(t, "log message: error: a.go:2: two\n", rec.Text())
	// Text does not clear
	assert.Equal(t, "log message: error: a.go:2: two\n", rec.Text())
	assert.Equal(t, 2, rec.Logs())
}

func TestRecorder_StripsStackLineFromExceptions(t *testing.T) {
	rec := diagtest.NewRecorder()
	ctx := diag.WithHandler(context.Background(), rec)

	diag.RaiseRecoverable(ctx, diag.Bug, "boom")

	require.NotNil(t, rec.LastException())
	assert.Contains(t, rec.LastException().Error(), "stack: ")
	assert.NotContains(t, rec.Text(), "stack: ")
	assert.Contains(t, rec.Text(), "recoverable exception: ")
}

func TestRecorder_FatalPanicsWithUnwind(t *testing.T) {
	rec := diagtest.NewRecorder()

	ex := &diag.Exception{Nature: diag.Bug, Severity: diag.Fatal, File: "a.go", Line: 1, Description: "bug in code: x"}
	defer func() {
		r := recover()
		u, ok := r.(diagtest.Unwind)
		require.True(t, ok)
		assert.Same(t, ex, u.Ex)
		assert.Equal(t, 1, rec.Fatals())
	}()
	rec.OnFatalException(ex)
	t.Fatal("OnFatalException returned")
}

func TestCatchUnwind_ReturnsNilWithoutFatal(t *testing.T) {
	assert.Nil(t, diagtest.CatchUnwind(func() {}))
}

func TestCatchUnwind_PropagatesForeignPanics(t *testing.T) {
	defer func() {
		assert.Equal(t, "unrelated", recover())
	}()
	diagtest.CatchUnwind(func() { panic("unrelated") })
	t.Fatal("panic did not propagate")
}

func TestRecorder_ResetClearsEverything(t *testing.T) {
	rec := diagtest.NewRecorder()
	ctx := diag.WithHandler(context.Background(), rec)

	diag.Log(ctx, diag.Warning, "x")
	diag.RaiseRecoverable(ctx, diag.Bug, "y")
	rec.Reset()

	assert.Equal(t, "", rec.Text())
	assert.Equal(t, 0, rec.Logs())
	assert.Equal(t, 0, rec.Recoverables())
	assert.Nil(t, rec.LastException())
}
