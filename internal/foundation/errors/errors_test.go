package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderProducesClassifiedError(t *testing.T) {
	cause := stderrors.New("boom")
	err := NewError(CategoryConfig, "decode failed").
		WithContext("path", "docsite.yaml").
		WithCause(cause).
		Fatal().
		Build()

	assert.Equal(t, CategoryConfig, err.Category())
	assert.True(t, err.IsFatal())
	assert.Equal(t, "[config] decode failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	path, ok := err.Context().GetString("path")
	require.True(t, ok)
	assert.Equal(t, "docsite.yaml", path)
}

func TestAsClassifiedFindsWrappedError(t *testing.T) {
	inner := ValidationError("sidebar invalid").Build()
	wrapped := fmt.Errorf("load: %w", inner)

	got, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, HasCategory(wrapped, CategoryValidation))
	assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := NotFoundError("variant not found").Build()
	derived := base.WithContext("variant", "staging")

	_, ok := base.Context().Get("variant")
	assert.False(t, ok)
	v, ok := derived.Context().GetString("variant")
	require.True(t, ok)
	assert.Equal(t, "staging", v)
}

func TestCLIErrorAdapterExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad").Build(), 2},
		{"not found", NotFoundError("missing").Build(), 3},
		{"config", ConfigError("bad yaml").Build(), 7},
		{"render", RenderError("write failed").Build(), 11},
		{"wrapped config", fmt.Errorf("outer: %w", ConfigError("x").Build()), 7},
		{"unclassified", stderrors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapterFormatsIssues(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)
	err := ValidationError("configuration has 2 problems").
		WithContext("issues", []string{"sidebar[0].label: must not be empty", "base: must start with /"}).
		Build()

	var out bytes.Buffer
	code := adapter.Report(&out, err)

	assert.Equal(t, 2, code)
	assert.Equal(t, "Error: configuration has 2 problems\n  - sidebar[0].label: must not be empty\n  - base: must start with /\n", out.String())
}
