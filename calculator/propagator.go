package calculator

import (
	"fmt"
	"math"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"schrodinger/operator"
	"schrodinger/solver"
	"schrodinger/wavefunction"
)

type State int

const (
	Ready     State = iota // 算子与初始态已就绪
	Advancing              // 推进中
	Stopped                // 终止态
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Advancing:
		return "advancing"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type options struct {
	settings solver.Settings
	dt       float64
	cell     float64
	hub      *CalcHub
}

type Option func(*options)

func WithSolver(s solver.Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}

// WithTimeStep sets Δt, used only to stamp snapshots and errors.
func WithTimeStep(dt float64) Option {
	return func(o *options) {
		o.dt = dt
	}
}

// WithCell sets the cell volume used for norms: Δx in 1D, Δx² in 2D.
func WithCell(cell float64) Option {
	return func(o *options) {
		o.cell = cell
	}
}

func WithHub(h *CalcHub) Option {
	return func(o *options) {
		o.hub = h
	}
}

// propagator advances ψ by solving A·ψ(t+Δt) = B·ψ(t) once per step.
type propagator struct {
	a, b *operator.Banded

	psi  []complex128 // 当前态
	rhs  []complex128 // B·ψ
	next []complex128 // 求解缓冲，初值为当前态

	solver *solver.BiCGSTAB
	last   solver.Stats

	dt   float64
	cell float64
	step int

	state   State
	calcHub *CalcHub

	mu sync.Mutex // 保护psi，Psi()可在运行中被其他goroutine调用
}

// New returns an engine in the Ready state. psi0 is copied.
func New(a, b *operator.Banded, psi0 []complex128, opts ...Option) (*propagator, error) {
	o := options{dt: 1, cell: 1}
	for _, opt := range opts {
		opt(&o)
	}
	n := len(psi0)
	if a == nil || b == nil || n == 0 || a.Dim() != n || b.Dim() != n {
		return nil, fmt.Errorf("%w: state length %d does not match the operators", ErrInvalidState, n)
	}
	for i, c := range psi0 {
		if math.IsNaN(real(c)) || math.IsNaN(imag(c)) || math.IsInf(real(c), 0) || math.IsInf(imag(c), 0) {
			return nil, fmt.Errorf("%w: ψ[%d]=%v", ErrInvalidState, i, c)
		}
	}
	if o.hub == nil {
		o.hub = NewCalcHub()
	}
	return &propagator{
		a:       a,
		b:       b,
		psi:     append([]complex128(nil), psi0...),
		rhs:     make([]complex128, n),
		next:    make([]complex128, n),
		solver:  solver.NewBiCGSTAB(n, o.settings),
		dt:      o.dt,
		cell:    o.cell,
		state:   Ready,
		calcHub: o.hub,
	}, nil
}

func (p *propagator) GetCalcHub() *CalcHub {
	return p.calcHub
}

func (p *propagator) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Steps is the number of completed steps.
func (p *propagator) Steps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.step
}

// LastStats returns the solver statistics of the last step.
func (p *propagator) LastStats() solver.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *propagator) Psi() []complex128 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]complex128(nil), p.psi...)
}

func (p *propagator) Norm() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return wavefunction.Norm(p.psi, p.cell)
}

// Step advances one Δt. A solver failure is fatal: the engine moves to
// Stopped and ψ keeps the last converged state.
func (p *propagator) Step() error {
	if p.State() == Stopped {
		return ErrStopped
	}

	p.b.MulVec(p.rhs, p.psi)
	copy(p.next, p.psi)
	stats, err := p.solver.Solve(p.a.MulVec, p.rhs, p.next)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = stats
	if err != nil {
		p.state = Stopped
		return &SimulationError{
			Step:    p.step + 1,
			Time:    float64(p.step+1) * p.dt,
			Wrapped: err,
		}
	}
	p.psi, p.next = p.next, p.psi
	p.step++
	p.state = Advancing
	return nil
}

func (p *propagator) snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Step: p.step,
		Time: float64(p.step) * p.dt,
		Psi:  append([]complex128(nil), p.psi...),
	}
}

func (p *propagator) finish() {
	p.mu.Lock()
	p.state = Stopped
	p.mu.Unlock()
}

// Run advances steps times and hands a snapshot to every observer each
// every steps (never when every <= 0). The stop signal of the hub is checked
// before each step. The engine is Stopped when Run returns.
func (p *propagator) Run(steps, every int, observers ...Observer) error {
	if steps < 0 {
		return fmt.Errorf("%w: steps=%d", ErrInvalidRun, steps)
	}
	if p.State() == Stopped {
		return ErrStopped
	}
	defer p.finish()

	start := time.Now()
	iterations := 0
	for s := 1; s <= steps; s++ {
		if p.calcHub.stopRequested() {
			log.WithFields(log.Fields{"step": p.Steps(), "steps": steps}).Info("run interrupted")
			return ErrInterrupted
		}
		if err := p.Step(); err != nil {
			log.WithError(err).Error("run aborted")
			return err
		}
		iterations += p.LastStats().Iterations
		if every > 0 && s%every == 0 && len(observers) > 0 {
			snap := p.snapshot()
			for _, o := range observers {
				o.Observe(snap)
			}
		}
	}

	log.WithFields(log.Fields{
		"steps":      steps,
		"iterations": iterations,
		"norm":       p.Norm(),
		"elapsed":    time.Since(start),
	}).Debug("run finished")
	return nil
}
