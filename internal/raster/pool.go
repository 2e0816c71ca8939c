package raster

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Draw when the worker pool was shut down.
var ErrPoolClosed = errors.New("raster: worker pool is shut down")

// job is one unit of work: a vertex range or a band of scanlines.
type job struct {
	run  func()
	done *sync.WaitGroup
}

// WorkerPool runs raster jobs on a fixed set of goroutines.
type WorkerPool struct {
	jobQueue chan job
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a pool with the given number of workers and queue capacity.
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobQueue: make(chan job, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}
	return pool
}

// submit queues fn, blocking until there is room. It returns false when
// either ctx or the pool is done; fn then never runs and done is already released.
func (p *WorkerPool) submit(ctx context.Context, fn func(), done *sync.WaitGroup) bool {
	if p.ctx.Err() != nil || ctx.Err() != nil {
		return false
	}
	done.Add(1)
	select {
	case p.jobQueue <- job{run: fn, done: done}:
		return true
	case <-ctx.Done():
	case <-p.ctx.Done():
	}
	done.Done()
	return false
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case j, ok := <-p.jobQueue:
			if !ok {
				return
			}
			j.run()
			j.done.Done()
		case <-p.ctx.Done():
			// release anything still queued so waiters do not hang
			for {
				select {
				case j, ok := <-p.jobQueue:
					if !ok {
						return
					}
					j.done.Done()
				default:
					return
				}
			}
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

// stopErr explains a refused submit: the caller's ctx wins over a closed pool.
func (p *WorkerPool) stopErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}
	return nil
}

// Shutdown stops the workers and waits for them to exit. It must not be
// called while a Draw is in flight.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
