package operator

import (
	"fmt"
	"math"
)

type options struct {
	workers int
}

// Option configures Build1D and Build2D.
type Option func(*options)

// WithWorkers splits every banded product across w goroutines. Values below
// 2 keep the product serial.
func WithWorkers(w int) Option {
	return func(o *options) {
		o.workers = w
	}
}

// Coefficients returns a = i/Δt and b = 1/(4Δx²) in atomic units.
func Coefficients(dt, dx float64) (complex128, float64) {
	return complex(0, 1/dt), 1 / (4 * dx * dx)
}

// Build1D returns the tridiagonal Crank-Nicolson pair for potential v:
//
//	A = (a - 2b - V/2) on the diagonal, b on the off-diagonals
//	B = (a + 2b + V/2) on the diagonal, -b on the off-diagonals
//
// so that A·ψ(t+Δt) = B·ψ(t).
func Build1D(v []float64, dt, dx float64, opts ...Option) (*Banded, *Banded, error) {
	if err := validate(v, dt, dx); err != nil {
		return nil, nil, err
	}
	n := len(v)
	a, b := Coefficients(dt, dx)
	offsets := []int{-1, 0, 1}
	am, err := NewBanded(n, offsets)
	if err != nil {
		return nil, nil, err
	}
	bm, err := NewBanded(n, offsets)
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i < n; i++ {
		half := complex(v[i]/2, 0)
		am.set(i, 0, a-complex(2*b, 0)-half)
		bm.set(i, 0, a+complex(2*b, 0)+half)
		am.set(i, -1, complex(b, 0))
		am.set(i, 1, complex(b, 0))
		bm.set(i, -1, complex(-b, 0))
		bm.set(i, 1, complex(-b, 0))
	}
	attach(am, bm, opts)
	return am, bm, nil
}

// Build2D returns the pentadiagonal pair for an n×n grid flattened as
// p = iy*n + ix, with diagonal a ∓ 4b ∓ V/2 and couplings at ±1 and ±n.
// The ±1 couplings between p = m·n-1 and p = m·n belong to different rows
// of the grid and are zero.
func Build2D(v []float64, n int, dt, dx float64, opts ...Option) (*Banded, *Banded, error) {
	if err := validate(v, dt, dx); err != nil {
		return nil, nil, err
	}
	if n < 2 || len(v) != n*n {
		return nil, nil, fmt.Errorf("%w: potential length %d for a %d×%d grid", ErrDimensionMismatch, len(v), n, n)
	}
	size := n * n
	a, b := Coefficients(dt, dx)
	offsets := []int{-n, -1, 0, 1, n}
	am, err := NewBanded(size, offsets)
	if err != nil {
		return nil, nil, err
	}
	bm, err := NewBanded(size, offsets)
	if err != nil {
		return nil, nil, err
	}

	cb := complex(b, 0)
	for p := 0; p < size; p++ {
		half := complex(v[p]/2, 0)
		am.set(p, 0, a-complex(4*b, 0)-half)
		bm.set(p, 0, a+complex(4*b, 0)+half)

		am.set(p, -n, cb)
		am.set(p, n, cb)
		bm.set(p, -n, -cb)
		bm.set(p, n, -cb)

		if p%n != 0 {
			am.set(p, -1, cb)
			bm.set(p, -1, -cb)
		}
		if (p+1)%n != 0 {
			am.set(p, 1, cb)
			bm.set(p, 1, -cb)
		}
	}
	attach(am, bm, opts)
	return am, bm, nil
}

func validate(v []float64, dt, dx float64) error {
	if !(dt > 0) || !(dx > 0) || math.IsInf(dt, 0) || math.IsInf(dx, 0) {
		return fmt.Errorf("%w: dt=%g dx=%g", ErrInvalidStep, dt, dx)
	}
	if len(v) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPotential)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: V[%d]=%g", ErrInvalidPotential, i, x)
		}
	}
	return nil
}

func attach(am, bm *Banded, opts []Option) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 2 {
		return
	}
	for _, m := range []*Banded{am, bm} {
		m := m
		m.exec = newExecutor(o.workers, func(t task) {
			m.mulRows(t.dst, t.x, t.start, t.end)
		})
		m.exec.run()
	}
}
