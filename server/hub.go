package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"schrodinger/calculator"
	"schrodinger/config"
	"schrodinger/deque"
	"schrodinger/model"
	"schrodinger/observer"
	"schrodinger/scenario"
	"schrodinger/wavefunction"
)

// Hub serves one websocket connection: it owns the parameters set by the
// client, at most one running simulation and the recent frame history.
type Hub struct {
	calcHub *calculator.CalcHub
	params  model.Params
	history *deque.ArrDeque[model.Frame]

	// request
	msg chan model.Msg
	// response
	send chan model.Msg

	done chan struct{} // 连接关闭

	mu      sync.Mutex // protects params, history, running and closing
	running bool
	closing bool
	wg      sync.WaitGroup
}

func NewHub(params model.Params) *Hub {
	return &Hub{
		calcHub: calculator.NewCalcHub(),
		params:  params,
		history: deque.NewArrDeque[model.Frame](params.Server.History),
		msg:     make(chan model.Msg, 10),
		send:    make(chan model.Msg, 256),
		done:    make(chan struct{}),
	}
}

// reply queues a message for the write pump unless the connection is gone.
func (h *Hub) reply(typ, content string) {
	select {
	case h.send <- model.Msg{Type: typ, Content: content}:
	case <-h.done:
	}
}

func (h *Hub) replyJSON(typ string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("marshal reply")
		h.reply(model.MsgError, err.Error())
		return
	}
	h.reply(typ, string(data))
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			switch msg.Type {
			case model.MsgEnv:
				h.setEnv(msg.Content)
			case model.MsgStart:
				h.start()
			case model.MsgStop:
				h.stop()
			case model.MsgHistory:
				h.sendHistory()
			default:
				log.WithField("type", msg.Type).Warn("no such type")
				h.reply(model.MsgError, fmt.Sprintf("unknown message type %q", msg.Type))
			}
		case <-h.done:
			return
		}
	}
}

// setEnv overlays the JSON in content on the current parameters.
func (h *Hub) setEnv(content string) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		h.reply(model.MsgError, "cannot change the environment while running")
		return
	}
	p := h.params
	h.mu.Unlock()

	if content != "" {
		if err := json.Unmarshal([]byte(content), &p); err != nil {
			h.reply(model.MsgError, fmt.Sprintf("env: %v", err))
			return
		}
	}
	if err := config.Validate(p); err != nil {
		h.reply(model.MsgError, err.Error())
		return
	}

	h.mu.Lock()
	if p.Server.History != h.params.Server.History {
		h.history = deque.NewArrDeque[model.Frame](p.Server.History)
	}
	h.params = p
	h.mu.Unlock()
	h.replyJSON(model.MsgEnvSet, p)
}

func (h *Hub) start() {
	h.mu.Lock()
	if h.closing {
		h.mu.Unlock()
		return
	}
	if h.running {
		h.mu.Unlock()
		h.reply(model.MsgError, "already running")
		return
	}
	h.running = true
	h.history.Clear()
	p := h.params
	// 在锁内重新布防，close 之后不会再有新的模拟
	h.calcHub.StartSignal()
	h.wg.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.wg.Done()
		h.simulate(p)
	}()
}

func (h *Hub) stop() {
	h.mu.Lock()
	running := h.running
	h.mu.Unlock()
	if !running {
		h.reply(model.MsgStopped, "not running")
		return
	}
	h.calcHub.StopSignal()
}

func (h *Hub) sendHistory() {
	h.mu.Lock()
	frames := make([]model.Frame, 0, h.history.Size())
	// 头部为最新的帧，按时间顺序发送
	for i := h.history.Size() - 1; i >= 0; i-- {
		frames = append(frames, h.history.Get(i))
	}
	h.mu.Unlock()
	h.replyJSON(model.MsgHistory, frames)
}

func (h *Hub) remember(f model.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	limit := h.params.Server.History
	if limit == 0 {
		return
	}
	for h.history.Size() >= limit {
		h.history.RemoveLast()
	}
	h.history.AddFirst(f)
}

// simulate runs one animation and streams its frames.
func (h *Hub) simulate(p model.Params) {
	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	c, rows, cols, cell, cleanup, err := h.prepare(p)
	if err != nil {
		h.reply(model.MsgError, err.Error())
		return
	}
	defer cleanup()

	run := p.Run
	if p.Mode == model.Mode2D {
		run = p.Run2D
	}
	h.reply(model.MsgStarted, fmt.Sprintf("%s: %d steps", p.Mode, run.Steps))

	h.emit(buildFrame(0, 0, c.Norm(), rows, cols, c.Psi()))
	frames := observer.Func(func(s calculator.Snapshot) {
		h.emit(buildFrame(s.Step, s.Time, wavefunction.Norm(s.Psi, cell), rows, cols, s.Psi))
	})

	err = c.Run(run.Steps, run.SnapshotEvery, frames)
	switch {
	case errors.Is(err, calculator.ErrInterrupted):
		h.reply(model.MsgStopped, "stopped")
	case err != nil:
		log.WithError(err).Error("simulation failed")
		h.reply(model.MsgError, err.Error())
	default:
		h.reply(model.MsgFinished, fmt.Sprintf("%d steps", run.Steps))
	}
}

func (h *Hub) prepare(p model.Params) (c calculator.Calculator, rows, cols int, cell float64, cleanup func(), err error) {
	if p.Mode == model.Mode2D {
		d, err := scenario.NewDoubleSlit(p)
		if err != nil {
			return nil, 0, 0, 0, nil, err
		}
		c, err = d.Engine(h.calcHub)
		if err != nil {
			d.Close()
			return nil, 0, 0, 0, nil, err
		}
		return c, d.Grid.N(), d.Grid.N(), d.Grid.Cell(), d.Close, nil
	}

	t, err := scenario.NewTunneling(p)
	if err != nil {
		return nil, 0, 0, 0, nil, err
	}
	c, err = t.Engine(p.Packet.Wavenumber, h.calcHub)
	if err != nil {
		t.Close()
		return nil, 0, 0, 0, nil, err
	}
	return c, 1, t.Grid.Size(), t.Grid.Cell(), t.Close, nil
}

func (h *Hub) emit(f model.Frame) {
	h.remember(f)
	h.replyJSON(model.MsgFrame, f)
}

// close stops a running simulation and waits for it. A start request
// handled after close has begun is ignored.
func (h *Hub) close() {
	h.mu.Lock()
	h.closing = true
	h.mu.Unlock()
	h.calcHub.StopSignal()
	close(h.done)
	h.wg.Wait()
}
