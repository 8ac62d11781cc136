package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franghie/keel/diag"
)

func TestSeverity_Names(t *testing.T) {
	assert.Equal(t, "info", diag.Info.String())
	assert.Equal(t, "warning", diag.Warning.String())
	assert.Equal(t, "error", diag.Error.String())
	assert.Equal(t, "fatal", diag.Fatal.String())
	assert.Equal(t, "debug", diag.Debug.String())
	assert.Equal(t, "severity(9)", diag.Severity(9).String())
}

func TestSeverity_Ordering(t *testing.T) {
	// Debug outranks everything so no threshold can silence it.
	assert.True(t, diag.Info < diag.Warning)
	assert.True(t, diag.Warning < diag.Error)
	assert.True(t, diag.Error < diag.Fatal)
	assert.True(t, diag.Fatal < diag.Debug)
}

func TestParseSeverity(t *testing.T) {
	for _, name := range []string{"info", "warning", "error", "fatal", "debug"} {
		sev, err := diag.ParseSeverity(name)
		require.NoError(t, err)
		assert.Equal(t, name, sev.String())
	}

	// "warn" normalizes to warning
	sev, err := diag.ParseSeverity("warn")
	require.NoError(t, err)
	assert.Equal(t, diag.Warning, sev)

	_, err = diag.ParseSeverity("loud")
	assert.Error(t, err)
}

func TestSetMinSeverity_SwapsAndReturnsPrevious(t *testing.T) {
	prev := diag.SetMinSeverity(diag.Error)
	defer diag.SetMinSeverity(prev)

	assert.Equal(t, diag.Warning, prev)
	assert.Equal(t, diag.Error, diag.MinSeverity())

	again := diag.SetMinSeverity(diag.Info)
	defer diag.SetMinSeverity(diag.Error)
	assert.Equal(t, diag.Error, again)
	assert.Equal(t, diag.Info, diag.MinSeverity())
}
