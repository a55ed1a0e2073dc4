package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWell(t *testing.T) {
	g, err := NewGrid1D(100, 1001)
	require.NoError(t, err)

	v, r, err := Well(g, WellGeometry{Start: 50, Width: 1, Height: 5})
	require.NoError(t, err)
	assert.Equal(t, Region{Start: 500, End: 510}, r)
	require.Len(t, v, 1001)
	for i, x := range v {
		if r.Contains(i) {
			assert.Equal(t, 5.0, x)
		} else {
			assert.Equal(t, 0.0, x, "index %d", i)
		}
	}
}

func TestWellInvalid(t *testing.T) {
	g, err := NewGrid1D(100, 1001)
	require.NoError(t, err)

	_, _, err = Well(g, WellGeometry{Start: 50, Width: 0, Height: 5})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, _, err = Well(g, WellGeometry{Start: 95, Width: 10, Height: 5})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, _, err = Well(g, WellGeometry{Start: 50, Width: 0.01, Height: 5})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestDoubleSlit(t *testing.T) {
	g, err := NewGrid2D(10, 101)
	require.NoError(t, err)

	geo := SlitGeometry{BarrierX: 5, Thickness: 0.2, Width: 0.6, Separation: 2, Center: 5, Height: 1e5}
	v, layout, err := DoubleSlit(g, geo)
	require.NoError(t, err)
	require.Len(t, v, g.Size())

	assert.Equal(t, Region{Start: 50, End: 52}, layout.Columns)
	assert.Equal(t, Region{Start: 37, End: 43}, layout.Openings[0])
	assert.Equal(t, Region{Start: 57, End: 63}, layout.Openings[1])

	for iy := 0; iy < g.N(); iy++ {
		open := layout.Openings[0].Contains(iy) || layout.Openings[1].Contains(iy)
		for ix := 0; ix < g.N(); ix++ {
			want := 0.0
			if !open && layout.Columns.Contains(ix) {
				want = geo.Height
			}
			require.Equal(t, want, v[g.Index(ix, iy)], "ix=%d iy=%d", ix, iy)
		}
	}
}

func TestDoubleSlitInvalid(t *testing.T) {
	g, err := NewGrid2D(10, 101)
	require.NoError(t, err)
	base := SlitGeometry{BarrierX: 5, Thickness: 0.2, Width: 0.6, Separation: 2, Center: 5, Height: 1e5}

	overlap := base
	overlap.Separation = 0.5
	_, _, err = DoubleSlit(g, overlap)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	touching := base
	touching.Separation = 0.62
	_, _, err = DoubleSlit(g, touching)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	outside := base
	outside.Center = 9.5
	_, _, err = DoubleSlit(g, outside)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	noWall := base
	noWall.Height = 0
	_, _, err = DoubleSlit(g, noWall)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}
