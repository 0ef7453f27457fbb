package gen

import (
	"context"
	"sync"
	"time"

	"voxelstream/internal/metrics"
)

// Job pairs a generation request with the channel its result is delivered
// on. Workers never touch shared world state; everything they need rides in
// the request snapshot.
type Job struct {
	Req        Request
	ResultChan chan<- Result
}

// WorkerPool runs chunk generation on a fixed set of goroutines.
type WorkerPool struct {
	jobQueue chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool starts workers goroutines consuming from a queue of the
// given size.
func NewWorkerPool(workers, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// Submit queues a job without blocking. Returns false when the queue is
// full; the caller is expected to retry on a later tick.
func (p *WorkerPool) Submit(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			start := time.Now()
			result := Generate(job.Req)
			metrics.GenDuration.Observe(time.Since(start).Seconds())
			metrics.ChunksGenerated.Inc()

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// QueueLen returns the number of queued, unstarted jobs.
func (p *WorkerPool) QueueLen() int {
	return len(p.jobQueue)
}

// Shutdown stops the workers and waits for them to exit.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
