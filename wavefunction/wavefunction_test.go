package wavefunction

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schrodinger/grid"
)

func TestGaussianNormalized(t *testing.T) {
	g, err := grid.NewGrid1D(100, 1001)
	require.NoError(t, err)

	psi, err := Gaussian(g.X.Coords(), g.Cell(), 30, 2, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, Norm(psi, g.Cell()), 1e-12)
	assert.Equal(t, 300, PeakIndex(psi))

	// |ψ| follows the envelope, the phase follows kx.
	ratio := cmplx.Abs(psi[320]) / cmplx.Abs(psi[300])
	assert.InDelta(t, math.Exp(-4.0/8.0), ratio, 1e-12)
	assert.InDelta(t, 0.0, math.Remainder(cmplx.Phase(psi[300])-1.5*30, 2*math.Pi), 1e-9)
}

func TestPeakIndexEmpty(t *testing.T) {
	assert.Equal(t, -1, PeakIndex(nil))
	assert.Equal(t, 1, PeakIndex([]complex128{0, 2i, 1}))
}

func TestGaussianInvalid(t *testing.T) {
	_, err := Gaussian([]float64{0, 1}, 1, 0, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidPacket)
	_, err = Gaussian(nil, 1, 0, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidPacket)
	_, err = Gaussian([]float64{1000}, 1, 0, 1, 1)
	assert.ErrorIs(t, err, ErrZeroState)
}

func TestPlaneWaveIsNotNormalized(t *testing.T) {
	g, err := grid.NewGrid2D(10, 11)
	require.NoError(t, err)

	psi := PlaneWave(g, 3)
	require.Len(t, psi, 121)
	for iy := 0; iy < g.N(); iy++ {
		for ix := 0; ix < g.N(); ix++ {
			x := float64(ix)
			want := cmplx.Exp(complex(-x, -3*x))
			assert.InDelta(t, real(want), real(psi[g.Index(ix, iy)]), 1e-12)
			assert.InDelta(t, imag(want), imag(psi[g.Index(ix, iy)]), 1e-12)
		}
	}
	assert.Equal(t, complex(1, 0), psi[g.Index(0, 4)])
	assert.Greater(t, math.Abs(1.0-Norm(psi, g.Cell())), 1e-3)
}

func TestRegionNorm(t *testing.T) {
	psi := []complex128{1, 1i, complex(1, 1), 0}
	assert.InDelta(t, 4.0*0.5, Norm(psi, 0.5), 1e-15)
	assert.InDelta(t, 3.0, RegionNorm(psi, 1, 1, 3), 1e-15)
	assert.Equal(t, []float64{1, 1, 2, 0}, Density(nil, psi))

	ph := Phase(nil, psi)
	assert.InDelta(t, math.Pi/2, ph[1], 1e-15)
	assert.InDelta(t, math.Pi/4, ph[2], 1e-15)
}

func TestNormalizeZero(t *testing.T) {
	assert.ErrorIs(t, Normalize(make([]complex128, 4), 1), ErrZeroState)
}

func TestMeanMomentum(t *testing.T) {
	g, err := grid.NewGrid1D(100, 1001)
	require.NoError(t, err)
	for _, k := range []float64{-1, 0.5, 2, 4} {
		psi, err := Gaussian(g.X.Coords(), g.Cell(), 50, 3, k)
		require.NoError(t, err)
		assert.InDelta(t, k, MeanMomentum(psi, g.Cell()), 1e-3, "k=%v", k)
	}
}
