package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/franghie/keel/diag"
)

func TestNature_Names(t *testing.T) {
	assert.Equal(t, "bug", diag.Bug.String())
	assert.Equal(t, "failed requirement", diag.FailedRequirement.String())
	assert.Equal(t, "os error", diag.OSError.String())
	assert.Equal(t, "disconnected", diag.Disconnected.String())
	assert.Equal(t, "overloaded", diag.Overloaded.String())
	assert.Equal(t, "unknown", diag.Unknown.String())
}

func TestException_ErrorRendering(t *testing.T) {
	ex := &diag.Exception{
		Nature:      diag.Bug,
		Severity:    diag.Fatal,
		File:        "widget.go",
		Line:        41,
		Description: "bug in code: expected a == b; a = 1; b = 2",
	}
	assert.Equal(t, "widget.go:41: bug in code: expected a == b; a = 1; b = 2", ex.Error())
}

func TestException_ErrorRendersContextOutermostFirst(t *testing.T) {
	ex := &diag.Exception{
		Nature:      diag.FailedRequirement,
		Severity:    diag.Error,
		File:        "widget.go",
		Line:        9,
		Description: "requirement not met: expected n > 0",
		Context: []string{
			"outer.go:3: context: loading config",
			"inner.go:7: context: parsing entry; index = 2",
		},
	}
	want := "outer.go:3: context: loading config\n" +
		"inner.go:7: context: parsing entry; index = 2\n" +
		"widget.go:9: requirement not met: expected n > 0"
	assert.Equal(t, want, ex.Error())
}

func TestException_ErrorAppendsStackLine(t *testing.T) {
	ex := &diag.Exception{
		Nature:      diag.Bug,
		Severity:    diag.Fatal,
		File:        "widget.go",
		Line:        5,
		Description: "bug in code: boom",
		Stack: []diag.Frame{
			{Function: "widget.Explode", File: "/src/widget/widget.go", Line: 5},
			{Function: "main.main", File: "/src/cmd/main.go", Line: 17},
		},
	}
	want := "widget.go:5: bug in code: boom\n" +
		"stack: widget.Explode@widget.go:5 main.main@main.go:17"
	assert.Equal(t, want, ex.Error())
}
