// Package observer holds snapshot consumers for calculator runs. None of them
// mutate the snapshots they receive.
package observer

import (
	"fmt"
	"math"
	"sync"

	"schrodinger/calculator"
	"schrodinger/wavefunction"
)

// Func adapts a function to calculator.Observer.
type Func func(s calculator.Snapshot)

func (f Func) Observe(s calculator.Snapshot) {
	f(s)
}

// RegionNorm records the probability held by indices [From, To) at every
// observed step.
type RegionNorm struct {
	Cell     float64
	From, To int

	Steps  []int
	Values []float64
}

func NewRegionNorm(cell float64, from, to int) *RegionNorm {
	return &RegionNorm{Cell: cell, From: from, To: to}
}

func (r *RegionNorm) Observe(s calculator.Snapshot) {
	r.Steps = append(r.Steps, s.Step)
	r.Values = append(r.Values, wavefunction.RegionNorm(s.Psi, r.Cell, r.From, r.To))
}

// Last is the most recent value, zero before the first observation.
func (r *RegionNorm) Last() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	return r.Values[len(r.Values)-1]
}

// CrossSection sums |ψ|² along column Column of an N×N state over every
// observed step, one entry per row.
type CrossSection struct {
	N      int
	Column int

	mu    sync.Mutex
	sum   []float64
	count int
}

func NewCrossSection(n, column int) (*CrossSection, error) {
	if n < 2 || column < 0 || column >= n {
		return nil, fmt.Errorf("observer: column %d outside a %d×%d grid", column, n, n)
	}
	return &CrossSection{N: n, Column: column, sum: make([]float64, n)}, nil
}

func (c *CrossSection) Observe(s calculator.Snapshot) {
	if len(s.Psi) != c.N*c.N {
		panic(fmt.Sprintf("observer: snapshot of length %d for a %d×%d grid", len(s.Psi), c.N, c.N))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for iy := 0; iy < c.N; iy++ {
		v := s.Psi[iy*c.N+c.Column]
		c.sum[iy] += real(v)*real(v) + imag(v)*imag(v)
	}
	c.count++
}

// Pattern returns a copy of the accumulated sums.
func (c *CrossSection) Pattern() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64(nil), c.sum...)
}

func (c *CrossSection) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// NormDrift tracks the largest |‖ψ‖² - Initial| seen.
type NormDrift struct {
	Cell    float64
	Initial float64

	Max  float64
	Last float64
}

func NewNormDrift(cell, initial float64) *NormDrift {
	return &NormDrift{Cell: cell, Initial: initial, Last: initial}
}

func (d *NormDrift) Observe(s calculator.Snapshot) {
	d.Last = wavefunction.Norm(s.Psi, d.Cell)
	if drift := math.Abs(d.Last - d.Initial); drift > d.Max {
		d.Max = drift
	}
}

// Relative is Max / Initial.
func (d *NormDrift) Relative() float64 {
	if d.Initial == 0 {
		return 0
	}
	return d.Max / d.Initial
}
