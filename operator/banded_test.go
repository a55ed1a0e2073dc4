package operator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denseMulVec(m *Banded, x []complex128) []complex128 {
	y := make([]complex128, m.Dim())
	for i := 0; i < m.Dim(); i++ {
		for j := 0; j < m.Dim(); j++ {
			y[i] += m.At(i, j) * x[j]
		}
	}
	return y
}

func testVector(n int) []complex128 {
	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(math.Cos(0.3*float64(i)), math.Sin(0.7*float64(i))+0.1)
	}
	return x
}

func TestNewBandedInvalid(t *testing.T) {
	_, err := NewBanded(0, []int{0})
	assert.ErrorIs(t, err, ErrBadOffsets)
	_, err = NewBanded(4, []int{0, 0})
	assert.ErrorIs(t, err, ErrBadOffsets)
	_, err = NewBanded(4, []int{-4, 0})
	assert.ErrorIs(t, err, ErrBadOffsets)

	m, err := NewBanded(4, []int{1, -1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{-1, 0, 1}, m.Offsets())
}

func TestMulVecMatchesDense(t *testing.T) {
	v := make([]float64, 36)
	for i := range v {
		v[i] = float64(i % 5)
	}
	am, bm, err := Build2D(v, 6, 0.02, 0.2)
	require.NoError(t, err)

	x := testVector(36)
	for _, m := range []*Banded{am, bm} {
		got := make([]complex128, 36)
		m.MulVec(got, x)
		want := denseMulVec(m, x)
		for i := range want {
			assert.InDelta(t, real(want[i]), real(got[i]), 1e-9)
			assert.InDelta(t, imag(want[i]), imag(got[i]), 1e-9)
		}
	}
}

func TestMulVecParallelIsIdentical(t *testing.T) {
	v := make([]float64, 2500)
	for i := range v {
		v[i] = float64(i%7) * 0.5
	}
	as, bs, err := Build2D(v, 50, 0.05, 0.1)
	require.NoError(t, err)
	ap, bp, err := Build2D(v, 50, 0.05, 0.1, WithWorkers(4))
	require.NoError(t, err)
	defer ap.Close()
	defer bp.Close()

	x := testVector(2500)
	for _, pair := range [][2]*Banded{{as, ap}, {bs, bp}} {
		serial := make([]complex128, 2500)
		parallel := make([]complex128, 2500)
		pair[0].MulVec(serial, x)
		for k := 0; k < 3; k++ {
			pair[1].MulVec(parallel, x)
			assert.Equal(t, serial, parallel)
		}
	}
}

func TestMulVecFewerRowsThanWorkers(t *testing.T) {
	am, _, err := Build1D([]float64{1, 2, 3}, 0.1, 0.1, WithWorkers(8))
	require.NoError(t, err)
	defer am.Close()

	x := testVector(3)
	got := make([]complex128, 3)
	am.MulVec(got, x)
	assert.Equal(t, denseMulVec(am, x), got)
}

func TestMulVecLengthMismatchPanics(t *testing.T) {
	am, _, err := Build1D([]float64{1, 2, 3}, 0.1, 0.1)
	require.NoError(t, err)
	assert.Panics(t, func() { am.MulVec(make([]complex128, 2), make([]complex128, 3)) })
}

func TestExecutorCoversEveryRowOnce(t *testing.T) {
	counts := make([]int, 10)
	e := newExecutor(3, func(t task) {
		for i := t.start; i < t.end; i++ {
			counts[i]++
		}
	})
	e.run()
	defer e.stop()

	e.dispatchTask(task{start: 2, end: 9})
	e.dispatchTask(task{start: 5, end: 5})
	assert.Equal(t, []int{0, 0, 1, 1, 1, 1, 1, 1, 1, 0}, counts)
}
