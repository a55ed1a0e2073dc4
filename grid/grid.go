// Package grid builds the uniform spatial grids and the static potentials
// sampled on them.
//
// Physical coordinates are converted to indices by rounding to the nearest
// index with ties to even. A rounded range that falls outside the grid or
// collapses to zero cells is reported as ErrInvalidGeometry; nothing is
// clamped.
package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Axis is a uniform coordinate axis from Min to Min+Length inclusive.
type Axis struct {
	Min     float64
	Spacing float64
	Points  int

	coords []float64
}

func NewAxis(length float64, points int) (Axis, error) {
	if points < 2 {
		return Axis{}, gridError("points", float64(points), "must be at least 2")
	}
	if !(length > 0) || math.IsInf(length, 0) {
		return Axis{}, gridError("length", length, "must be positive and finite")
	}
	coords := floats.Span(make([]float64, points), 0, length)
	return Axis{
		Min:     0,
		Spacing: length / float64(points-1),
		Points:  points,
		coords:  coords,
	}, nil
}

// Coords returns a copy of the axis coordinates.
func (a Axis) Coords() []float64 {
	c := make([]float64, len(a.coords))
	copy(c, a.coords)
	return c
}

func (a Axis) At(i int) float64 {
	return a.coords[i]
}

func (a Axis) Length() float64 {
	return a.Spacing * float64(a.Points-1)
}

// Index converts a physical coordinate to the nearest grid index.
// The result may lie outside [0, Points).
func (a Axis) Index(x float64) int {
	return int(math.RoundToEven((x - a.Min) / a.Spacing))
}

// Locate is Index for a single coordinate that must fall on the grid.
func (a Axis) Locate(field string, x float64) (int, error) {
	if math.IsNaN(x) {
		return 0, geometryError(field, x, "is not a number")
	}
	i := a.Index(x)
	if i < 0 || i >= a.Points {
		return 0, geometryError(field, x, "lies outside the grid")
	}
	return i, nil
}

// IndexRange converts the physical interval [from, to) to a half-open index
// range. The range must be non-empty and lie inside the axis; the end may
// equal Points.
func (a Axis) IndexRange(field string, from, to float64) (Region, error) {
	if math.IsNaN(from) || math.IsNaN(to) {
		return Region{}, geometryError(field, math.NaN(), "is not a number")
	}
	r := Region{Start: a.Index(from), End: a.Index(to)}
	if r.Start < 0 {
		return Region{}, geometryError(field, from, "starts before the grid")
	}
	if r.End > a.Points {
		return Region{}, geometryError(field, to, "ends after the grid")
	}
	if r.End <= r.Start {
		return Region{}, geometryError(field, to-from, "is narrower than one cell")
	}
	return r, nil
}

// Region is a half-open index range [Start, End).
type Region struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Region) Len() int {
	return r.End - r.Start
}

func (r Region) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Grid1D is the grid of the tunneling scenario.
type Grid1D struct {
	X Axis
}

func NewGrid1D(length float64, points int) (Grid1D, error) {
	x, err := NewAxis(length, points)
	if err != nil {
		return Grid1D{}, err
	}
	return Grid1D{X: x}, nil
}

func (g Grid1D) Size() int {
	return g.X.Points
}

// Cell is the integration weight Δx.
func (g Grid1D) Cell() float64 {
	return g.X.Spacing
}

// Grid2D is an N×N grid with Δy = Δx. States are flattened row-major with
// y as the row: p = iy*N + ix.
type Grid2D struct {
	Axis Axis
}

func NewGrid2D(length float64, points int) (Grid2D, error) {
	a, err := NewAxis(length, points)
	if err != nil {
		return Grid2D{}, err
	}
	return Grid2D{Axis: a}, nil
}

// N is the number of points per axis.
func (g Grid2D) N() int {
	return g.Axis.Points
}

func (g Grid2D) Size() int {
	return g.Axis.Points * g.Axis.Points
}

func (g Grid2D) Index(ix, iy int) int {
	return iy*g.Axis.Points + ix
}

// Cell is the integration weight Δx².
func (g Grid2D) Cell() float64 {
	return g.Axis.Spacing * g.Axis.Spacing
}
