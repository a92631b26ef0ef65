package detection

import (
	"errors"
	"fmt"
)

// Kind classifies why a stage failed.
type Kind string

const (
	// KindLoad means the source image is missing or cannot be decoded.
	KindLoad Kind = "LoadError"
	// KindInsufficientStructure means projection analysis found no plausible
	// dividers or bands even after the relaxed fallback.
	KindInsufficientStructure Kind = "InsufficientStructure"
	// KindDimension means a computed region is degenerate or below a stage's
	// minimum size.
	KindDimension Kind = "DimensionError"
	// KindMemory means a stage refused an allocation larger than its limit.
	KindMemory Kind = "MemoryError"
)

// Stage names used in StageError.
const (
	StageLoad       = "load"
	StageBinarize   = "binarize"
	StageDeskew     = "deskew"
	StageGrid       = "grid"
	StageCells      = "cells"
	StageWordRegion = "word_region"
	StageLines      = "lines"
	StageWords      = "words"
	StageLetters    = "letters"
)

// Sentinels for errors.Is. A StageError matches the sentinel of its Kind.
var (
	ErrLoad                  = &StageError{Kind: KindLoad}
	ErrInsufficientStructure = &StageError{Kind: KindInsufficientStructure}
	ErrDimension             = &StageError{Kind: KindDimension}
	ErrMemory                = &StageError{Kind: KindMemory}
)

// StageError is the single failure a stage reports once its fallback
// ladder is exhausted.
type StageError struct {
	Stage   string
	Kind    Kind
	Message string
	Details map[string]interface{}
	Cause   error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Message)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return msg
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Is matches sentinels by Kind.
func (e *StageError) Is(target error) bool {
	t, ok := target.(*StageError)
	if !ok {
		return false
	}
	return t.Stage == "" && t.Message == "" && t.Kind == e.Kind
}

// ToMap flattens the error for JSON responses.
func (e *StageError) ToMap() map[string]interface{} {
	result := map[string]interface{}{
		"stage":   e.Stage,
		"kind":    string(e.Kind),
		"message": e.Message,
	}
	for k, v := range e.Details {
		result[k] = v
	}
	if e.Cause != nil {
		result["cause"] = e.Cause.Error()
	}
	return result
}

// Factory functions

func NewLoadError(path string, cause error) *StageError {
	return &StageError{
		Stage:   StageLoad,
		Kind:    KindLoad,
		Message: fmt.Sprintf("cannot load %s", path),
		Details: map[string]interface{}{"path": path},
		Cause:   cause,
	}
}

func NewInsufficientStructure(stage, format string, args ...interface{}) *StageError {
	return &StageError{
		Stage:   stage,
		Kind:    KindInsufficientStructure,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewDimensionError(stage, format string, args ...interface{}) *StageError {
	return &StageError{
		Stage:   stage,
		Kind:    KindDimension,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewMemoryError(stage string, pixels, limit int) *StageError {
	return &StageError{
		Stage:   stage,
		Kind:    KindMemory,
		Message: fmt.Sprintf("%d pixels exceeds limit of %d", pixels, limit),
		Details: map[string]interface{}{"pixels": pixels, "limit": limit},
	}
}

// KindOf returns the Kind of the first StageError in err's chain.
func KindOf(err error) (Kind, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

// StageOf returns the stage name of the first StageError in err's chain.
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
