package operator

import "errors"

var (
	// ErrInvalidStep is returned for a non-positive or non-finite Δt or Δx.
	ErrInvalidStep = errors.New("operator: time step and spacing must be positive and finite")

	// ErrInvalidPotential is returned for an empty potential or one holding NaN/Inf.
	ErrInvalidPotential = errors.New("operator: invalid potential")

	// ErrDimensionMismatch is returned when a 2D potential is not n² long.
	ErrDimensionMismatch = errors.New("operator: dimension mismatch")

	// ErrBadOffsets is returned by NewBanded for unsorted, duplicate or
	// out-of-range band offsets.
	ErrBadOffsets = errors.New("operator: invalid band offsets")
)
