package operator

import "sync"

// 基于行区间的任务分配
type task struct {
	start int
	end   int
	dst   []complex128
	x     []complex128
}

// executor splits a row range across a fixed set of worker goroutines and
// waits until every chunk has been processed.
type executor struct {
	workers      int
	dispatchChan chan task
	doneSoFar    chan struct{}
	quit         chan struct{}
	f            func(t task)

	mu sync.Mutex // one dispatch at a time
}

func newExecutor(workers int, f func(t task)) *executor {
	return &executor{
		workers:      workers,
		dispatchChan: make(chan task, workers*2),
		doneSoFar:    make(chan struct{}, workers*2),
		quit:         make(chan struct{}),
		f:            f,
	}
}

func (e *executor) run() {
	for i := 0; i < e.workers; i++ {
		go func() {
			for {
				select {
				case t := <-e.dispatchChan:
					e.f(t)
					e.doneSoFar <- struct{}{}
				case <-e.quit:
					return
				}
			}
		}()
	}
}

// dispatchTask blocks until all rows of t are done.
func (e *executor) dispatchTask(t task) {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := t.end - t.start
	if total <= 0 {
		return
	}
	taskLen, remainder := total/e.workers, total%e.workers
	if taskLen == 0 {
		taskLen, remainder = 1, 0
	}

	totalTasks := 0
	first := t.start
	for first < t.end {
		last := first + taskLen
		if remainder > 0 {
			last++
			remainder--
		}
		if last > t.end {
			last = t.end
		}
		e.dispatchChan <- task{start: first, end: last, dst: t.dst, x: t.x}
		totalTasks++
		first = last
	}
	for i := 0; i < totalTasks; i++ {
		<-e.doneSoFar
	}
}

func (e *executor) stop() {
	close(e.quit)
}
