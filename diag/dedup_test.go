package diag_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franghie/keel/diag"
	"github.com/franghie/keel/diag/diagtest"
)

func TestDedupHandler_SuppressesRepeatedIdenticalLines(t *testing.T) {
	rec := diagtest.NewRecorder()
	ctx := diag.WithHandler(context.Background(), diag.NewDedupHandler(rec, 2))

	// same statement, same rendered text every iteration
	for i := 0; i < 5; i++ {
		diag.Log(ctx, diag.Warning, "spam")
	}

	// two real records plus a single suppression notice
	assert.Equal(t, 3, rec.Logs())
	assert.Equal(t, 1, strings.Count(rec.Text(), "(further repeats suppressed)"))

	// a different line has its own budget
	diag.Log(ctx, diag.Warning, "not spam")
	assert.Equal(t, 4, rec.Logs())
}

func TestDedupHandler_ChangingArgsAreNeverSuppressed(t *testing.T) {
	rec := diagtest.NewRecorder()
	ctx := diag.WithHandler(context.Background(), diag.NewDedupHandler(rec, 1))

	for i := 0; i < 4; i++ {
		diag.Log(ctx, diag.Warning, "tick", diag.Val("i", i))
	}
	assert.Equal(t, 4, rec.Logs())
}

func TestDedupHandler_ZeroLimitDisablesSuppression(t *testing.T) {
	rec := diagtest.NewRecorder()
	ctx := diag.WithHandler(context.Background(), diag.NewDedupHandler(rec, 0))

	for i := 0; i < 3; i++ {
		diag.Log(ctx, diag.Warning, "always")
	}
	assert.Equal(t, 3, rec.Logs())
}

func TestDedupHandler_ExceptionsPassThrough(t *testing.T) {
	rec := diagtest.NewRecorder()
	ctx := diag.WithHandler(context.Background(), diag.NewDedupHandler(rec, 1))

	for i := 0; i < 3; i++ {
		diag.RaiseRecoverable(ctx, diag.Overloaded, "queue full")
	}
	assert.Equal(t, 3, rec.Recoverables())

	ex := diagtest.CatchUnwind(func() {
		diag.Fail(ctx, "still fatal through dedup")
	})
	require.NotNil(t, ex)
	assert.Equal(t, 1, rec.Fatals())
}

func TestDedupHandler_ResetRestoresBudgets(t *testing.T) {
	rec := diagtest.NewRecorder()
	dedup := diag.NewDedupHandler(rec, 1)
	ctx := diag.WithHandler(context.Background(), dedup)

	for i := 0; i < 3; i++ {
		diag.Log(ctx, diag.Warning, "burst")
	}
	// one record and one notice
	assert.Equal(t, 2, rec.Logs())

	dedup.Reset()
	for i := 0; i < 3; i++ {
		diag.Log(ctx, diag.Warning, "burst")
	}
	assert.Equal(t, 4, rec.Logs())
}
