package scenario

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"schrodinger/calculator"
	"schrodinger/grid"
	"schrodinger/model"
	"schrodinger/observer"
	"schrodinger/operator"
	"schrodinger/wavefunction"
)

// Interference is |ψ|² summed over every step along the screen column.
type Interference struct {
	ScreenX float64   `yaml:"screen_x" json:"screen_x"`
	Column  int       `yaml:"column" json:"column"`
	Steps   int       `yaml:"steps" json:"steps"`
	Y       []float64 `yaml:"y" json:"y"`
	Pattern []float64 `yaml:"pattern" json:"pattern"`
}

// DoubleSlit is a 2D plane wave aimed at a wall with two openings.
type DoubleSlit struct {
	Grid      grid.Grid2D
	Potential []float64
	Layout    grid.SlitLayout
	Screen    int // column of the accumulated cross-section

	params model.Params
	a, b   *operator.Banded
}

func NewDoubleSlit(p model.Params) (*DoubleSlit, error) {
	g, err := grid.NewGrid2D(p.Grid2D.Length, p.Grid2D.Points)
	if err != nil {
		return nil, err
	}
	s := p.Slit
	v, layout, err := grid.DoubleSlit(g, grid.SlitGeometry{
		BarrierX:   s.BarrierX,
		Thickness:  s.Thickness,
		Width:      s.Width,
		Separation: s.Separation,
		Center:     s.Center,
		Height:     s.Height,
	})
	if err != nil {
		return nil, err
	}
	screen, err := g.Axis.Locate("slit.screen_x", s.ScreenX)
	if err != nil {
		return nil, err
	}
	if screen < layout.Columns.End {
		return nil, fmt.Errorf("%w: screen column %d is not behind the wall", grid.ErrInvalidGeometry, screen)
	}
	a, b, err := operator.Build2D(v, g.N(), p.Run2D.TimeStep, g.Axis.Spacing, operator.WithWorkers(p.Run2D.Workers))
	if err != nil {
		return nil, err
	}
	return &DoubleSlit{
		Grid:      g,
		Potential: v,
		Layout:    layout,
		Screen:    screen,
		params:    p,
		a:         a,
		b:         b,
	}, nil
}

func (d *DoubleSlit) Close() {
	d.a.Close()
	d.b.Close()
}

// Engine returns a fresh engine started from the unnormalized plane wave.
func (d *DoubleSlit) Engine(hub *calculator.CalcHub) (calculator.Calculator, error) {
	psi := wavefunction.PlaneWave(d.Grid, d.params.Plane.Wavenumber)
	c, err := calculator.New(d.a, d.b, psi,
		calculator.WithSolver(solverSettings(d.params)),
		calculator.WithTimeStep(d.params.Run2D.TimeStep),
		calculator.WithCell(d.Grid.Cell()),
		calculator.WithHub(hub),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Interfere runs Run2D.Steps steps, accumulating the screen column after
// every step. Extra observers receive a snapshot every Run2D.SnapshotEvery
// steps. Cancelling ctx stops the run between steps and returns the pattern
// gathered so far together with ctx's error.
func Interfere(ctx context.Context, p model.Params, observers ...calculator.Observer) (Interference, error) {
	if err := ctx.Err(); err != nil {
		return Interference{}, err
	}
	d, err := NewDoubleSlit(p)
	if err != nil {
		return Interference{}, err
	}
	defer d.Close()

	hub := calculator.NewCalcHub()
	stop := context.AfterFunc(ctx, hub.StopSignal)
	defer stop()

	c, err := d.Engine(hub)
	if err != nil {
		return Interference{}, err
	}
	cs, err := observer.NewCrossSection(d.Grid.N(), d.Screen)
	if err != nil {
		return Interference{}, err
	}

	every := p.Run2D.SnapshotEvery
	all := []calculator.Observer{cs}
	if len(observers) > 0 && every > 0 {
		all = append(all, observer.Func(func(s calculator.Snapshot) {
			if s.Step%every == 0 {
				for _, o := range observers {
					o.Observe(s)
				}
			}
		}))
	}

	runErr := c.Run(p.Run2D.Steps, 1, all...)
	res := Interference{
		ScreenX: d.Grid.Axis.At(d.Screen),
		Column:  d.Screen,
		Steps:   cs.Count(),
		Y:       d.Grid.Axis.Coords(),
		Pattern: cs.Pattern(),
	}
	if errors.Is(runErr, calculator.ErrInterrupted) && ctx.Err() != nil {
		return res, ctx.Err()
	}
	if runErr != nil {
		return res, runErr
	}
	log.WithFields(log.Fields{
		"steps":  res.Steps,
		"column": res.Column,
		"norm":   c.Norm(),
	}).Info("interference run finished")
	return res, nil
}
