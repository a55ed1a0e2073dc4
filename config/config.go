// Package config reads simulation parameters from an ini file.
package config

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/ini.v1"

	"schrodinger/model"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Default returns the parameters used for every key absent from the file.
func Default() model.Params {
	p, _ := loadParams(ini.Empty())
	return p
}

// Load reads path. An empty path yields the defaults.
func Load(path string) (model.Params, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return model.Params{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return loadParams(file)
}

// Parse reads ini text, as sent by a client or embedded in tests.
func Parse(data []byte) (model.Params, error) {
	file, err := ini.Load(data)
	if err != nil {
		return model.Params{}, fmt.Errorf("config: parse: %w", err)
	}
	return loadParams(file)
}

func loadParams(file *ini.File) (model.Params, error) {
	grid := file.Section("grid")
	grid2d := file.Section("grid2d")
	packet := file.Section("packet")
	well := file.Section("well")
	plane := file.Section("plane")
	slit := file.Section("slit")
	run := file.Section("run")
	run2d := file.Section("run2d")
	sv := file.Section("solver")
	sweep := file.Section("sweep")
	server := file.Section("server")
	logging := file.Section("log")

	r := &reader{}
	p := model.Params{
		Mode: file.Section("").Key("mode").MustString(model.Mode1D),
		Grid: model.GridCfg{
			Length: r.float(grid, "length", 100),
			Points: r.int(grid, "points", 1001),
		},
		Grid2D: model.GridCfg{
			Length: r.float(grid2d, "length", 10),
			Points: r.int(grid2d, "points", 101),
		},
		Packet: model.PacketCfg{
			Center:     r.float(packet, "center", 25),
			Width:      r.float(packet, "width", 5),
			Wavenumber: r.float(packet, "wavenumber", 2),
		},
		Well: model.WellCfg{
			Start:  r.float(well, "start", 50),
			Width:  r.float(well, "width", 1),
			Height: r.float(well, "height", 5),
		},
		Plane: model.PlaneCfg{
			Wavenumber: r.float(plane, "wavenumber", -10),
		},
		Slit: model.SlitCfg{
			BarrierX:   r.float(slit, "barrier_x", 5),
			Thickness:  r.float(slit, "thickness", 0.2),
			Width:      r.float(slit, "width", 0.6),
			Separation: r.float(slit, "separation", 2),
			Center:     r.float(slit, "center", 5),
			Height:     r.float(slit, "height", 1e5),
			ScreenX:    r.float(slit, "screen_x", 7.5),
		},
		Run: model.RunCfg{
			TimeStep:      r.float(run, "time_step", 0.05),
			Steps:         r.int(run, "steps", 2000),
			SnapshotEvery: r.int(run, "snapshot_every", 10),
			Workers:       r.int(run, "workers", 1),
		},
		Run2D: model.RunCfg{
			TimeStep:      r.float(run2d, "time_step", 0.005),
			Steps:         r.int(run2d, "steps", 600),
			SnapshotEvery: r.int(run2d, "snapshot_every", 10),
			Workers:       r.int(run2d, "workers", 4),
		},
		Solver: model.SolverCfg{
			Tolerance:     r.float(sv, "tolerance", 1e-10),
			MaxIterations: r.int(sv, "max_iterations", 1000),
		},
		Sweep: model.SweepCfg{
			EnergyMin: r.float(sweep, "energy_min", 0.5),
			EnergyMax: r.float(sweep, "energy_max", 9),
			Count:     r.int(sweep, "count", 18),
			Threshold: r.float(sweep, "threshold", 1e-5),
			MaxSteps:  r.int(sweep, "max_steps", 20000),
			Workers:   r.int(sweep, "workers", 4),
		},
		Server: model.ServerCfg{
			Addr:    server.Key("addr").MustString(":9000"),
			History: r.int(server, "history", 64),
		},
		Log: model.LogCfg{
			Level:  logging.Key("level").MustString("info"),
			Format: logging.Key("format").MustString("text"),
		},
	}
	if r.err != nil {
		return p, r.err
	}
	return p, Validate(p)
}

// reader keeps defaults for absent keys and records the first key whose
// value does not parse.
type reader struct {
	err error
}

func (r *reader) float(s *ini.Section, name string, def float64) float64 {
	if !s.HasKey(name) {
		return def
	}
	v, err := s.Key(name).Float64()
	if err != nil {
		r.fail(s, name, err)
		return def
	}
	return v
}

func (r *reader) int(s *ini.Section, name string, def int) int {
	if !s.HasKey(name) {
		return def
	}
	v, err := s.Key(name).Int()
	if err != nil {
		r.fail(s, name, err)
		return def
	}
	return v
}

func (r *reader) fail(s *ini.Section, name string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s.%s: %v", ErrInvalidConfig, s.Name(), name, err)
	}
}

// Validate rejects values no run can use. Geometry that does not fit the
// grid is reported later by package grid.
func Validate(p model.Params) error {
	bad := func(field string, v interface{}) error {
		return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, v)
	}
	positive := func(x float64) bool {
		return x > 0 && !math.IsInf(x, 0)
	}

	if p.Mode != model.Mode1D && p.Mode != model.Mode2D {
		return bad("mode", p.Mode)
	}
	for name, g := range map[string]model.GridCfg{"grid": p.Grid, "grid2d": p.Grid2D} {
		if !positive(g.Length) {
			return bad(name+".length", g.Length)
		}
		if g.Points < 2 {
			return bad(name+".points", g.Points)
		}
	}
	if !positive(p.Packet.Width) {
		return bad("packet.width", p.Packet.Width)
	}
	for name, r := range map[string]model.RunCfg{"run": p.Run, "run2d": p.Run2D} {
		switch {
		case !positive(r.TimeStep):
			return bad(name+".time_step", r.TimeStep)
		case r.Steps < 0:
			return bad(name+".steps", r.Steps)
		case r.SnapshotEvery < 0:
			return bad(name+".snapshot_every", r.SnapshotEvery)
		case r.Workers < 1:
			return bad(name+".workers", r.Workers)
		}
	}
	if !positive(p.Solver.Tolerance) {
		return bad("solver.tolerance", p.Solver.Tolerance)
	}
	if p.Solver.MaxIterations < 1 {
		return bad("solver.max_iterations", p.Solver.MaxIterations)
	}
	s := p.Sweep
	switch {
	case !positive(s.EnergyMin):
		return bad("sweep.energy_min", s.EnergyMin)
	case s.EnergyMax < s.EnergyMin || math.IsInf(s.EnergyMax, 0):
		return bad("sweep.energy_max", s.EnergyMax)
	case s.Count < 1:
		return bad("sweep.count", s.Count)
	case !positive(s.Threshold):
		return bad("sweep.threshold", s.Threshold)
	case s.MaxSteps < 1:
		return bad("sweep.max_steps", s.MaxSteps)
	case s.Workers < 1:
		return bad("sweep.workers", s.Workers)
	}
	if p.Server.History < 0 {
		return bad("server.history", p.Server.History)
	}
	return nil
}
