package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid is returned for a non-positive length, fewer than two
	// points or a non-finite extent.
	ErrInvalidGrid = errors.New("grid: invalid grid")

	// ErrInvalidGeometry is returned when well or slit parameters do not map
	// onto a non-empty index range inside the grid.
	ErrInvalidGeometry = errors.New("grid: invalid geometry")
)

// GeometryError carries the offending parameter. It unwraps to
// ErrInvalidGrid or ErrInvalidGeometry.
type GeometryError struct {
	Field  string
	Value  float64
	Reason string
	Err    error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: %s=%g %s", e.Err, e.Field, e.Value, e.Reason)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}

func gridError(field string, value float64, reason string) error {
	return &GeometryError{Field: field, Value: value, Reason: reason, Err: ErrInvalidGrid}
}

func geometryError(field string, value float64, reason string) error {
	return &GeometryError{Field: field, Value: value, Reason: reason, Err: ErrInvalidGeometry}
}
