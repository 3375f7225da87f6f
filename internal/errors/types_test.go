package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		loc      SourceLocation
		expected string
	}{
		{SourceLocation{}, "unknown location"},
		{SourceLocation{File: "a.go"}, "a.go"},
		{SourceLocation{File: "a.go", Line: 3}, "a.go:3"},
		{SourceLocation{File: "a.go", Line: 3, Column: 7}, "a.go:3:7"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestBaseError_Error(t *testing.T) {
	err := New(GenerationErrorCode, "boom")
	assert.Equal(t, "boom", err.Error())

	err.WithLocation(SourceLocation{File: "a.go", Line: 1, Column: 2})
	assert.Equal(t, "a.go:1:2: boom", err.Error())
	assert.Equal(t, GenerationErrorCode, err.ErrorCode())
}

func TestWrappers_PreserveCause(t *testing.T) {
	err := WrapFileSystemError("write", "person_builder.go", fs.ErrPermission)

	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
	assert.True(t, stderrors.Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "failed to write file 'person_builder.go'")
	assert.Contains(t, err.Error(), "permission denied")

	syntax := WrapParseError("annotation", stderrors.New("unexpected token"))
	assert.Equal(t, SyntaxErrorCode, syntax.ErrorCode())

	module := WrapModuleError("/tmp/x", stderrors.New("no go.mod"))
	assert.NotEmpty(t, module.Suggestions())
}

func TestMultipleErrors(t *testing.T) {
	var multi MultipleErrors
	assert.NoError(t, multi.ErrorOrNil())

	multi.Add(NewSyntaxError("bad annotation"))
	assert.Equal(t, "bad annotation", multi.Error())

	multi.Add(WrapTemplateError("builder", "execute", fs.ErrClosed))
	require.Error(t, multi.ErrorOrNil())
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
	assert.True(t, multi.HasCode(TemplateErrorCode))
	assert.False(t, multi.HasCode(ModuleErrorCode))
	assert.True(t, stderrors.Is(&multi, fs.ErrClosed))
}
