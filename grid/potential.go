package grid

import "math"

// WellGeometry describes the 1D barrier: V = Height on [Start, Start+Width).
// Height is finite so the packet can tunnel.
type WellGeometry struct {
	Start  float64
	Width  float64
	Height float64
}

// Well samples the barrier potential on g and returns the barrier index range.
func Well(g Grid1D, geo WellGeometry) ([]float64, Region, error) {
	if !(geo.Width > 0) {
		return nil, Region{}, geometryError("well width", geo.Width, "must be positive")
	}
	if math.IsNaN(geo.Height) || math.IsInf(geo.Height, 0) {
		return nil, Region{}, geometryError("well height", geo.Height, "must be finite")
	}
	r, err := g.X.IndexRange("well", geo.Start, geo.Start+geo.Width)
	if err != nil {
		return nil, Region{}, err
	}
	v := make([]float64, g.Size())
	for i := r.Start; i < r.End; i++ {
		v[i] = geo.Height
	}
	return v, r, nil
}

// SlitGeometry describes a wall at x in [BarrierX, BarrierX+Thickness) with
// two openings of the given Width centred at Center ± Separation/2 along y.
type SlitGeometry struct {
	BarrierX   float64
	Thickness  float64
	Width      float64
	Separation float64
	Center     float64
	Height     float64
}

// SlitLayout is the index form of a SlitGeometry.
type SlitLayout struct {
	Columns  Region    `json:"columns"`
	Openings [2]Region `json:"openings"`
}

// DoubleSlit samples the double-slit wall on g. The wall height should be
// large compared to the incident energy so that the wall reflects everything
// outside the openings.
func DoubleSlit(g Grid2D, geo SlitGeometry) ([]float64, SlitLayout, error) {
	switch {
	case !(geo.Thickness > 0):
		return nil, SlitLayout{}, geometryError("slit thickness", geo.Thickness, "must be positive")
	case !(geo.Width > 0):
		return nil, SlitLayout{}, geometryError("slit width", geo.Width, "must be positive")
	case !(geo.Separation > geo.Width):
		return nil, SlitLayout{}, geometryError("slit separation", geo.Separation, "must exceed the slit width")
	case !(geo.Height > 0) || math.IsInf(geo.Height, 0):
		return nil, SlitLayout{}, geometryError("wall height", geo.Height, "must be positive and finite")
	}

	var (
		layout SlitLayout
		err    error
	)
	layout.Columns, err = g.Axis.IndexRange("barrier", geo.BarrierX, geo.BarrierX+geo.Thickness)
	if err != nil {
		return nil, SlitLayout{}, err
	}
	half := geo.Width / 2
	lower := geo.Center - geo.Separation/2
	upper := geo.Center + geo.Separation/2
	layout.Openings[0], err = g.Axis.IndexRange("lower slit", lower-half, lower+half)
	if err != nil {
		return nil, SlitLayout{}, err
	}
	layout.Openings[1], err = g.Axis.IndexRange("upper slit", upper-half, upper+half)
	if err != nil {
		return nil, SlitLayout{}, err
	}
	// 两缝之间至少保留一格墙
	if layout.Openings[0].End >= layout.Openings[1].Start {
		return nil, SlitLayout{}, geometryError("slit separation", geo.Separation, "leaves no wall between the openings")
	}

	v := make([]float64, g.Size())
	for iy := 0; iy < g.N(); iy++ {
		if layout.Openings[0].Contains(iy) || layout.Openings[1].Contains(iy) {
			continue
		}
		for ix := layout.Columns.Start; ix < layout.Columns.End; ix++ {
			v[g.Index(ix, iy)] = geo.Height
		}
	}
	return v, layout, nil
}
