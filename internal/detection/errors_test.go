package detection

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageError_Error(t *testing.T) {
	err := NewDimensionError(StageCells, "cell %d is empty", 3)
	assert.Equal(t, "cells: DimensionError: cell 3 is empty", err.Error())

	load := NewLoadError("missing.bmp", fs.ErrNotExist)
	assert.Contains(t, load.Error(), "load: LoadError: cannot load missing.bmp")
	assert.Contains(t, load.Error(), "caused by: file does not exist")
}

func TestStageError_IsMatchesKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"load", NewLoadError("x.png", nil), ErrLoad},
		{"structure", NewInsufficientStructure(StageGrid, "none"), ErrInsufficientStructure},
		{"dimension", NewDimensionError(StageWordRegion, "empty"), ErrDimension},
		{"memory", NewMemoryError(StageLetters, 10, 5), ErrMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.target))
			wrapped := fmt.Errorf("extract: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.target))
		})
	}

	assert.False(t, errors.Is(NewDimensionError(StageGrid, "x"), ErrMemory))
	assert.True(t, errors.Is(NewLoadError("a", fs.ErrNotExist), fs.ErrNotExist))
}

func TestKindOfAndStageOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewMemoryError(StageLetters, 100, 10))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindMemory, kind)
	assert.Equal(t, StageLetters, StageOf(err))

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.Empty(t, StageOf(errors.New("plain")))
}

func TestStageError_ToMap(t *testing.T) {
	m := NewMemoryError(StageLetters, 100, 10).ToMap()
	assert.Equal(t, "letters", m["stage"])
	assert.Equal(t, "MemoryError", m["kind"])
	assert.Equal(t, 100, m["pixels"])
	assert.Equal(t, 10, m["limit"])
	assert.NotContains(t, m, "cause")

	m = NewLoadError("a.bmp", errors.New("boom")).ToMap()
	assert.Equal(t, "boom", m["cause"])
	assert.Equal(t, "a.bmp", m["path"])
}
