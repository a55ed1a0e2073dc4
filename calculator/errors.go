package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrStopped is returned by Step and the run modes once the engine has
	// reached its terminal state.
	ErrStopped = errors.New("calculator: engine stopped")

	// ErrInterrupted is returned when a run ends early on the hub's stop signal.
	ErrInterrupted = errors.New("calculator: run interrupted")

	ErrInvalidState = errors.New("calculator: invalid initial state")
	ErrInvalidRun   = errors.New("calculator: invalid run settings")
)

// SimulationError reports the step at which a run failed.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("calculator: step %d (t=%.4g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
