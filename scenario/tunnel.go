// Package scenario wires grids, potentials, initial states and the engine
// into the two experiments: a tunneling energy sweep and double-slit
// interference.
package scenario

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"schrodinger/calculator"
	"schrodinger/grid"
	"schrodinger/model"
	"schrodinger/operator"
	"schrodinger/solver"
	"schrodinger/wavefunction"
)

// TransmissionPoint is the outcome of one barrier run.
type TransmissionPoint struct {
	Energy       float64 `yaml:"energy" json:"energy"`
	Wavenumber   float64 `yaml:"wavenumber" json:"wavenumber"`
	Momentum     float64 `yaml:"momentum" json:"momentum"` // <k> of the initial packet
	Transmission float64 `yaml:"transmission" json:"transmission"`
	Steps        int     `yaml:"steps" json:"steps"`
	Armed        bool    `yaml:"armed" json:"armed"`
}

// Tunneling is a 1D barrier problem with operators built once and shared by
// every packet launched at it.
type Tunneling struct {
	Grid      grid.Grid1D
	Potential []float64
	Barrier   grid.Region

	params model.Params
	a, b   *operator.Banded
}

func NewTunneling(p model.Params) (*Tunneling, error) {
	g, err := grid.NewGrid1D(p.Grid.Length, p.Grid.Points)
	if err != nil {
		return nil, err
	}
	v, barrier, err := grid.Well(g, grid.WellGeometry{
		Start:  p.Well.Start,
		Width:  p.Well.Width,
		Height: p.Well.Height,
	})
	if err != nil {
		return nil, err
	}
	if barrier.End >= g.Size() {
		return nil, fmt.Errorf("%w: barrier reaches the end of the grid", grid.ErrInvalidGeometry)
	}
	a, b, err := operator.Build1D(v, p.Run.TimeStep, g.Cell(), operator.WithWorkers(p.Run.Workers))
	if err != nil {
		return nil, err
	}
	return &Tunneling{Grid: g, Potential: v, Barrier: barrier, params: p, a: a, b: b}, nil
}

// Close releases the operator workers.
func (t *Tunneling) Close() {
	t.a.Close()
	t.b.Close()
}

// Packet is the configured Gaussian with wavenumber k.
func (t *Tunneling) Packet(k float64) ([]complex128, error) {
	pk := t.params.Packet
	return wavefunction.Gaussian(t.Grid.X.Coords(), t.Grid.Cell(), pk.Center, pk.Width, k)
}

// Engine returns a fresh engine for a packet with wavenumber k.
func (t *Tunneling) Engine(k float64, hub *calculator.CalcHub) (calculator.Calculator, error) {
	psi, err := t.Packet(k)
	if err != nil {
		return nil, err
	}
	c, err := calculator.New(t.a, t.b, psi,
		calculator.WithSolver(solverSettings(t.params)),
		calculator.WithTimeStep(t.params.Run.TimeStep),
		calculator.WithCell(t.Grid.Cell()),
		calculator.WithHub(hub),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Transmission launches a packet of kinetic energy e (k = √2E) at the barrier
// and measures the transmitted fraction.
func (t *Tunneling) Transmission(e float64, hub *calculator.CalcHub) (TransmissionPoint, error) {
	k := math.Sqrt(2 * e)
	c, err := t.Engine(k, hub)
	if err != nil {
		return TransmissionPoint{}, err
	}
	pt := TransmissionPoint{
		Energy:     e,
		Wavenumber: k,
		Momentum:   wavefunction.MeanMomentum(c.Psi(), t.Grid.Cell()),
	}
	res, err := c.RunTransmission(calculator.TransmissionSettings{
		Beyond:    t.Barrier.End,
		Threshold: t.params.Sweep.Threshold,
		MaxSteps:  t.params.Sweep.MaxSteps,
	})
	if err != nil {
		return pt, fmt.Errorf("energy %g: %w", e, err)
	}
	pt.Transmission = res.Fraction
	pt.Steps = res.Steps
	pt.Armed = res.Armed
	return pt, nil
}

// Energies returns Count energies spaced evenly over [EnergyMin, EnergyMax].
func Energies(s model.SweepCfg) []float64 {
	if s.Count == 1 {
		return []float64{s.EnergyMin}
	}
	return floats.Span(make([]float64, s.Count), s.EnergyMin, s.EnergyMax)
}

// Sweep measures the transmission at every configured energy. Runs are
// independent and execute on up to Sweep.Workers goroutines; the first
// failure cancels the rest.
func Sweep(ctx context.Context, p model.Params) ([]TransmissionPoint, error) {
	t, err := NewTunneling(p)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	energies := Energies(p.Sweep)
	points := make([]TransmissionPoint, len(energies))
	var done int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Sweep.Workers)
	for i, e := range energies {
		i, e := i, e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hub := calculator.NewCalcHub()
			stop := context.AfterFunc(ctx, hub.StopSignal)
			defer stop()

			pt, err := t.Transmission(e, hub)
			if err != nil {
				return err
			}
			points[i] = pt
			log.WithFields(log.Fields{
				"energy":       e,
				"transmission": pt.Transmission,
				"steps":        pt.Steps,
				"done":         atomic.AddInt32(&done, 1),
				"total":        len(energies),
			}).Info("sweep point finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func solverSettings(p model.Params) solver.Settings {
	return solver.Settings{
		Tolerance:     p.Solver.Tolerance,
		MaxIterations: p.Solver.MaxIterations,
	}
}
