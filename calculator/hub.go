package calculator

import "sync"

// CalcHub carries the cooperative stop signal between the engine and
// whoever drives it (the websocket hub, the CLI's signal handler).
type CalcHub struct {
	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

func NewCalcHub() *CalcHub {
	return &CalcHub{stop: make(chan struct{})}
}

// StartSignal re-arms the hub for a new run.
func (ch *CalcHub) StartSignal() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.stop = make(chan struct{})
	ch.stopped = false
}

// StopSignal asks the running loop to stop before its next step. Calling it
// more than once is a no-op.
func (ch *CalcHub) StopSignal() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if !ch.stopped {
		close(ch.stop)
		ch.stopped = true
	}
}

// Stop returns the channel closed by StopSignal.
func (ch *CalcHub) Stop() <-chan struct{} {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.stop
}

func (ch *CalcHub) stopRequested() bool {
	select {
	case <-ch.Stop():
		return true
	default:
		return false
	}
}
