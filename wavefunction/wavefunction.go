// Package wavefunction builds initial states and evaluates the derived
// quantities observers need: density, phase, probability within a region,
// peak position and mean momentum.
package wavefunction

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"schrodinger/grid"
)

var (
	ErrInvalidPacket = errors.New("wavefunction: invalid packet parameters")
	ErrZeroState     = errors.New("wavefunction: state has zero norm")
)

// Gaussian returns exp(-(x-x0)²/2σ²)·exp(ikx) sampled on x and normalized
// so that Σ|ψ|²Δx = 1.
func Gaussian(x []float64, dx, x0, sigma, k float64) ([]complex128, error) {
	if !(sigma > 0) || !(dx > 0) || len(x) == 0 {
		return nil, ErrInvalidPacket
	}
	psi := make([]complex128, len(x))
	for i, xi := range x {
		d := xi - x0
		psi[i] = cmplx.Rect(math.Exp(-d*d/(2*sigma*sigma)), k*xi)
	}
	if err := Normalize(psi, dx); err != nil {
		return nil, err
	}
	return psi, nil
}

// PlaneWave returns exp(-x(1+ik)) on every row of g. The state is left
// unnormalized: it models a source feeding an incoming wave, not a bound
// packet. For k > 0 the phase exp(-ikx) travels toward -x.
func PlaneWave(g grid.Grid2D, k float64) []complex128 {
	n := g.N()
	row := make([]complex128, n)
	for ix := 0; ix < n; ix++ {
		x := g.Axis.At(ix)
		row[ix] = cmplx.Exp(complex(-x, -k*x))
	}
	psi := make([]complex128, g.Size())
	for iy := 0; iy < n; iy++ {
		copy(psi[g.Index(0, iy):], row)
	}
	return psi
}

// Density writes |ψ|² into dst, allocating when dst is too short.
func Density(dst []float64, psi []complex128) []float64 {
	if len(dst) < len(psi) {
		dst = make([]float64, len(psi))
	}
	dst = dst[:len(psi)]
	for i, c := range psi {
		dst[i] = real(c)*real(c) + imag(c)*imag(c)
	}
	return dst
}

// Phase writes arg(ψ) into dst, allocating when dst is too short.
func Phase(dst []float64, psi []complex128) []float64 {
	if len(dst) < len(psi) {
		dst = make([]float64, len(psi))
	}
	dst = dst[:len(psi)]
	for i, c := range psi {
		dst[i] = cmplx.Phase(c)
	}
	return dst
}

// Norm is the total probability Σ|ψ|²·cell, cell being Δx or Δx².
func Norm(psi []complex128, cell float64) float64 {
	return RegionNorm(psi, cell, 0, len(psi))
}

// RegionNorm is the probability held by psi[from:to].
func RegionNorm(psi []complex128, cell float64, from, to int) float64 {
	var s float64
	for _, c := range psi[from:to] {
		s += real(c)*real(c) + imag(c)*imag(c)
	}
	return s * cell
}

func Normalize(psi []complex128, cell float64) error {
	n := Norm(psi, cell)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return ErrZeroState
	}
	s := complex(1/math.Sqrt(n), 0)
	for i := range psi {
		psi[i] *= s
	}
	return nil
}

// PeakIndex is the index of the largest |ψ|², or -1 for an empty state.
func PeakIndex(psi []complex128) int {
	if len(psi) == 0 {
		return -1
	}
	return floats.MaxIdx(Density(nil, psi))
}

// MeanMomentum is <k> of a 1D state sampled with spacing dx, evaluated in
// momentum space.
func MeanMomentum(psi []complex128, dx float64) float64 {
	n := len(psi)
	phi := fft.FFT(psi)
	p := Density(nil, phi)
	scale := 2 * math.Pi / (float64(n) * dx)
	var num float64
	for j, w := range p {
		f := j
		if j >= (n+1)/2 {
			f = j - n
		}
		num += float64(f) * scale * w
	}
	total := floats.Sum(p)
	if total == 0 {
		return 0
	}
	return num / total
}
