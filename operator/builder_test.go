package operator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoefficients(t *testing.T) {
	a, b := Coefficients(0.05, 0.1)
	assert.Equal(t, complex(0, 20), a)
	assert.InDelta(t, 25.0, b, 1e-12)
}

func TestBuild1D(t *testing.T) {
	v := []float64{0, 0, 5, 5, 0}
	am, bm, err := Build1D(v, 0.05, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 5, am.Dim())
	assert.Equal(t, []int{-1, 0, 1}, am.Offsets())

	a, b := Coefficients(0.05, 0.1)
	for i := range v {
		half := complex(v[i]/2, 0)
		assert.Equal(t, a-complex(2*b, 0)-half, am.At(i, i))
		assert.Equal(t, a+complex(2*b, 0)+half, bm.At(i, i))
		if i > 0 {
			assert.Equal(t, complex(b, 0), am.At(i, i-1))
			assert.Equal(t, complex(-b, 0), bm.At(i, i-1))
		}
		if i < len(v)-1 {
			assert.Equal(t, complex(b, 0), am.At(i, i+1))
			assert.Equal(t, complex(-b, 0), bm.At(i, i+1))
		}
	}
	assert.Equal(t, complex128(0), am.At(0, 2))
	// 越界的带元素保持为零
	assert.Equal(t, complex128(0), am.Band(-1)[0])
	assert.Equal(t, complex128(0), am.Band(1)[4])
	assert.Nil(t, am.Band(3))
}

func TestBuildIsIdempotent(t *testing.T) {
	v := make([]float64, 400)
	for i := range v {
		v[i] = math.Sin(float64(i)) * 3
	}
	a1, b1, err := Build2D(v, 20, 0.01, 0.05)
	require.NoError(t, err)
	a2, b2, err := Build2D(v, 20, 0.01, 0.05)
	require.NoError(t, err)
	assert.True(t, a1.Equal(a2))
	assert.True(t, b1.Equal(b2))
	for _, d := range a1.Offsets() {
		assert.Equal(t, a1.Band(d), a2.Band(d))
		assert.Equal(t, b1.Band(d), b2.Band(d))
	}

	c1, d1, err := Build1D(v, 0.05, 0.1)
	require.NoError(t, err)
	c2, d2, err := Build1D(v, 0.05, 0.1)
	require.NoError(t, err)
	assert.True(t, c1.Equal(c2))
	assert.True(t, d1.Equal(d2))
	assert.False(t, c1.Equal(d1))
}

func TestBuild2DRowWrapIsZero(t *testing.T) {
	const n = 7
	v := make([]float64, n*n)
	v[10] = 100
	am, bm, err := Build2D(v, n, 0.05, 0.1)
	require.NoError(t, err)
	assert.Equal(t, []int{-n, -1, 0, 1, n}, am.Offsets())

	_, b := Coefficients(0.05, 0.1)
	cb := complex(b, 0)
	for _, m := range []struct {
		op  *Banded
		off complex128
	}{{am, cb}, {bm, -cb}} {
		for p := 0; p < n*n; p++ {
			if p+1 < n*n {
				if (p+1)%n == 0 {
					assert.Equal(t, complex128(0), m.op.At(p, p+1), "p=%d", p)
					assert.Equal(t, complex128(0), m.op.At(p+1, p), "p=%d", p)
				} else {
					assert.Equal(t, m.off, m.op.At(p, p+1), "p=%d", p)
					assert.Equal(t, m.off, m.op.At(p+1, p), "p=%d", p)
				}
			}
			if p+n < n*n {
				assert.Equal(t, m.off, m.op.At(p, p+n), "p=%d", p)
				assert.Equal(t, m.off, m.op.At(p+n, p), "p=%d", p)
			}
		}
	}

	a, _ := Coefficients(0.05, 0.1)
	assert.Equal(t, a-complex(4*b, 0)-50, am.At(10, 10))
	assert.Equal(t, a+complex(4*b, 0)+50, bm.At(10, 10))
}

func TestBuildInvalid(t *testing.T) {
	_, _, err := Build1D([]float64{0, 0}, 0, 0.1)
	assert.ErrorIs(t, err, ErrInvalidStep)
	_, _, err = Build1D([]float64{0, 0}, 0.1, -1)
	assert.ErrorIs(t, err, ErrInvalidStep)
	_, _, err = Build1D(nil, 0.1, 0.1)
	assert.ErrorIs(t, err, ErrInvalidPotential)
	_, _, err = Build1D([]float64{0, math.NaN()}, 0.1, 0.1)
	assert.ErrorIs(t, err, ErrInvalidPotential)
	_, _, err = Build2D(make([]float64, 10), 3, 0.1, 0.1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
