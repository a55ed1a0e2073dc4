// Package solver implements the stabilized bi-conjugate gradient method for
// general complex linear systems given only a matrix-vector product.
package solver

import (
	"fmt"

	"gonum.org/v1/gonum/cmplxs"
)

const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 1000
)

// MatVec computes dst = A·src. dst and src never alias.
type MatVec func(dst, src []complex128)

// Settings controls a solve. Zero fields take the defaults.
type Settings struct {
	// Tolerance on the relative residual ‖b - A·x‖ / ‖b‖.
	Tolerance     float64
	MaxIterations int
}

func (s Settings) withDefaults() Settings {
	if s.Tolerance <= 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = DefaultMaxIterations
	}
	return s
}

// Stats describes the last solve.
type Stats struct {
	Iterations   int
	MatVecs      int
	ResidualNorm float64 // relative
}

// BiCGSTAB owns the work vectors for systems of one dimension, so that
// repeated solves (one per time step) do not allocate.
type BiCGSTAB struct {
	n        int
	settings Settings

	r, rhat, p, v, s, t []complex128
}

func NewBiCGSTAB(n int, settings Settings) *BiCGSTAB {
	return &BiCGSTAB{
		n:        n,
		settings: settings.withDefaults(),
		r:        make([]complex128, n),
		rhat:     make([]complex128, n),
		p:        make([]complex128, n),
		v:        make([]complex128, n),
		s:        make([]complex128, n),
		t:        make([]complex128, n),
	}
}

func (sv *BiCGSTAB) Settings() Settings {
	return sv.settings
}

// Solve finds x with A·x = b. On entry x holds the initial guess; on return
// it holds the best iterate, also when an error is returned.
func (sv *BiCGSTAB) Solve(a MatVec, b, x []complex128) (Stats, error) {
	if len(b) != sv.n || len(x) != sv.n {
		return Stats{}, fmt.Errorf("%w: dimension %d, b %d, x %d", ErrDimensionMismatch, sv.n, len(b), len(x))
	}
	var st Stats

	bnorm := cmplxs.Norm(b, 2)
	if bnorm == 0 {
		for i := range x {
			x[i] = 0
		}
		return st, nil
	}
	tol := sv.settings.Tolerance * bnorm

	// r = b - A·x
	a(sv.r, x)
	st.MatVecs++
	cmplxs.SubTo(sv.r, b, sv.r)
	rnorm := cmplxs.Norm(sv.r, 2)
	st.ResidualNorm = rnorm / bnorm
	if rnorm <= tol {
		return st, nil
	}

	copy(sv.rhat, sv.r)
	for i := range sv.p {
		sv.p[i] = 0
		sv.v[i] = 0
	}
	rho, alpha, omega := complex128(1), complex128(1), complex128(1)

	for st.Iterations < sv.settings.MaxIterations {
		st.Iterations++

		rhoNext := cmplxs.Dot(sv.rhat, sv.r)
		if rhoNext == 0 || omega == 0 {
			return st, sv.fail(st, ErrBreakdown)
		}
		beta := (rhoNext / rho) * (alpha / omega)
		rho = rhoNext

		// p = r + β(p - ω·v)
		cmplxs.AddScaled(sv.p, -omega, sv.v)
		cmplxs.Scale(beta, sv.p)
		cmplxs.Add(sv.p, sv.r)

		a(sv.v, sv.p)
		st.MatVecs++
		den := cmplxs.Dot(sv.rhat, sv.v)
		if den == 0 {
			return st, sv.fail(st, ErrBreakdown)
		}
		alpha = rho / den

		// s = r - α·v
		cmplxs.AddScaledTo(sv.s, sv.r, -alpha, sv.v)
		if snorm := cmplxs.Norm(sv.s, 2); snorm <= tol {
			cmplxs.AddScaled(x, alpha, sv.p)
			st.ResidualNorm = snorm / bnorm
			return st, nil
		}

		a(sv.t, sv.s)
		st.MatVecs++
		tt := cmplxs.Dot(sv.t, sv.t)
		if tt == 0 {
			return st, sv.fail(st, ErrBreakdown)
		}
		omega = cmplxs.Dot(sv.t, sv.s) / tt

		// x += α·p + ω·s,  r = s - ω·t
		cmplxs.AddScaled(x, alpha, sv.p)
		cmplxs.AddScaled(x, omega, sv.s)
		cmplxs.AddScaledTo(sv.r, sv.s, -omega, sv.t)

		rnorm = cmplxs.Norm(sv.r, 2)
		st.ResidualNorm = rnorm / bnorm
		if rnorm <= tol {
			return st, nil
		}
	}
	return st, sv.fail(st, ErrNotConverged)
}

func (sv *BiCGSTAB) fail(st Stats, err error) error {
	return &ConvergenceError{
		Iterations: st.Iterations,
		Residual:   st.ResidualNorm,
		Tolerance:  sv.settings.Tolerance,
		Err:        err,
	}
}
