// Package parallel runs independent jobs on a fixed set of goroutines.
//
// The render pipeline itself is single-threaded; the pool is used for work
// that happens after a frame is finished, such as encoding frame files.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines consuming jobs from per-worker queues.
//
// Jobs are handed to the worker with the shortest queue. A worker whose own
// queue is empty steals from the others before blocking.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func() error

	done    chan struct{}
	wg      sync.WaitGroup
	pending sync.WaitGroup
	running atomic.Bool

	errMu    sync.Mutex
	firstErr error
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func() error, workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func() error, queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return
		case job := <-myQueue:
			p.run(job)
		default:
			if stolen := p.steal(id); stolen != nil {
				p.run(stolen)
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case job := <-myQueue:
				p.run(job)
			}
		}
	}
}

func (p *WorkerPool) run(job func() error) {
	defer p.pending.Done()
	if err := job(); err != nil {
		p.errMu.Lock()
		if p.firstErr == nil {
			p.firstErr = err
		}
		p.errMu.Unlock()
	}
}

func (p *WorkerPool) drainQueue(queue chan func() error) {
	for {
		select {
		case job := <-queue:
			p.run(job)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() error {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case job := <-p.workQueues[i]:
			return job
		default:
		}
	}
	return nil
}

// Submit queues a job. It blocks while every queue is full.
// Submit reports false, without running fn, once the pool is closed.
func (p *WorkerPool) Submit(fn func() error) bool {
	if fn == nil || !p.running.Load() {
		return false
	}

	minIdx := 0
	minLen := len(p.workQueues[0])
	for i := 1; i < p.workers; i++ {
		if l := len(p.workQueues[i]); l < minLen {
			minLen = l
			minIdx = i
		}
	}

	p.pending.Add(1)
	select {
	case p.workQueues[minIdx] <- fn:
		return true
	case <-p.done:
		p.pending.Done()
		return false
	}
}

// Wait blocks until every submitted job has finished and returns the first
// error any of them reported.
func (p *WorkerPool) Wait() error {
	p.pending.Wait()
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.firstErr
}

// Close waits for queued jobs, then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
