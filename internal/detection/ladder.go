package detection

import (
	"errors"
	"fmt"

	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// Strategy is one rung of a fallback ladder.
type Strategy[T any] struct {
	Name string
	Run  func() (T, error)
}

// Ladder is an ordered list of strategies for one stage. Run tries them in
// order and returns the first success together with the winning name.
type Ladder[T any] struct {
	Stage      string
	Strategies []Strategy[T]
}

// Run executes the ladder. When every strategy fails the error of the last
// one is returned; non-stage errors are wrapped as InsufficientStructure.
func (l Ladder[T]) Run() (T, string, error) {
	var zero T
	var lastErr error
	for _, s := range l.Strategies {
		v, err := s.Run()
		if err == nil {
			logging.Debug("%s: strategy %q succeeded", l.Stage, s.Name)
			return v, s.Name, nil
		}
		logging.Debug("%s: strategy %q failed: %v", l.Stage, s.Name, err)
		lastErr = err
	}

	if lastErr == nil {
		return zero, "", NewInsufficientStructure(l.Stage, "no strategies configured")
	}
	var se *StageError
	if errors.As(lastErr, &se) {
		return zero, "", lastErr
	}
	return zero, "", &StageError{
		Stage:   l.Stage,
		Kind:    KindInsufficientStructure,
		Message: fmt.Sprintf("all %d strategies failed", len(l.Strategies)),
		Cause:   lastErr,
	}
}
