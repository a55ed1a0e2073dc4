package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConverged is returned when the residual is still above the
	// tolerance after MaxIterations.
	ErrNotConverged = errors.New("solver: did not converge")

	// ErrBreakdown is returned when ρ or ω vanishes and the iteration cannot
	// continue.
	ErrBreakdown = errors.New("solver: BiCGSTAB breakdown")

	ErrDimensionMismatch = errors.New("solver: dimension mismatch")
)

// ConvergenceError carries the state of a failed solve.
type ConvergenceError struct {
	Iterations int
	Residual   float64 // relative residual ‖r‖/‖b‖
	Tolerance  float64
	Err        error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (relative residual %.3e, tolerance %.1e)", e.Err, e.Iterations, e.Residual, e.Tolerance)
}

func (e *ConvergenceError) Unwrap() error {
	return e.Err
}
