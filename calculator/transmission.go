package calculator

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"schrodinger/wavefunction"
)

const (
	DefaultThreshold = 1e-5
	DefaultMaxSteps  = 20000
)

// TransmissionSettings selects the region beyond a barrier: indices
// [Beyond, n) of the state.
type TransmissionSettings struct {
	Beyond    int
	Threshold float64
	MaxSteps  int
}

type Transmission struct {
	Steps       int
	Transmitted float64 // probability in [Beyond, n) when the run ended
	Total       float64
	// Fraction is Transmitted / Total, or 0 when the run never armed.
	Fraction float64
	// Armed is false when the transmitted mass never reached Threshold
	// within MaxSteps.
	Armed bool
}

// RunTransmission steps until the probability that has passed the barrier
// stops growing. It watches the mass beyond the barrier, [Beyond, n), not
// the mass inside the barrier.
//
// Monitoring arms once the transmitted mass first reaches Threshold, so the
// empty region of the first steps does not end the run. After that the run
// ends at the first step whose mass is no greater than the previous one or
// has fallen below Threshold. A run that never arms within MaxSteps reports
// a Fraction of 0 since everything it measured is below Threshold. This is
// a heuristic and may end early when the
// transmitted mass oscillates.
func (p *propagator) RunTransmission(ts TransmissionSettings) (Transmission, error) {
	n := len(p.psi)
	if ts.Beyond <= 0 || ts.Beyond >= n {
		return Transmission{}, fmt.Errorf("%w: region [%d, %d)", ErrInvalidRun, ts.Beyond, n)
	}
	if ts.Threshold <= 0 {
		ts.Threshold = DefaultThreshold
	}
	if ts.MaxSteps <= 0 {
		ts.MaxSteps = DefaultMaxSteps
	}
	if p.State() == Stopped {
		return Transmission{}, ErrStopped
	}
	defer p.finish()

	var res Transmission
	prev := 0.0
	for res.Steps < ts.MaxSteps {
		if p.calcHub.stopRequested() {
			return res, ErrInterrupted
		}
		if err := p.Step(); err != nil {
			return res, err
		}
		res.Steps++

		cur := p.regionNorm(ts.Beyond, n)
		res.Transmitted = cur
		if !res.Armed {
			if cur >= ts.Threshold {
				res.Armed = true
			}
			prev = cur
			continue
		}
		if cur <= prev || cur < ts.Threshold {
			break
		}
		prev = cur
	}

	res.Total = p.Norm()
	if res.Armed && res.Total > 0 {
		res.Fraction = res.Transmitted / res.Total
	}
	fields := log.Fields{
		"steps":       res.Steps,
		"transmitted": res.Transmitted,
		"fraction":    res.Fraction,
		"total":       res.Total,
	}
	if !res.Armed {
		log.WithFields(fields).Warn("transmitted mass never reached the threshold")
	} else {
		log.WithFields(fields).Debug("transmission run finished")
	}
	return res, nil
}

func (p *propagator) regionNorm(from, to int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return wavefunction.RegionNorm(p.psi, p.cell, from, to)
}
