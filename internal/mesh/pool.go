package mesh

import (
	"context"
	"sync"
	"time"

	"voxelstream/internal/metrics"
	"voxelstream/internal/vec"
	"voxelstream/internal/world/block"
)

// Job is a meshing request. Snapshot is a private copy of the chunk's voxel
// buffer taken by the submitter; workers never touch live chunk storage.
type Job struct {
	Coord      vec.ChunkCoord
	Snapshot   []block.ID
	Width      int
	Height     int
	ResultChan chan<- Result
}

// Result carries a finished mesh back to the submitter.
type Result struct {
	Coord vec.ChunkCoord
	Mesh  Data
}

// WorkerPool runs mesh builds on background goroutines.
type WorkerPool struct {
	jobQueue chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues a job without blocking. Returns false when the queue is
// full so the caller can retry on a later tick.
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
		case <-p.ctx.Done():
			return
		case job := <-p.jobQueue:
			start := time.Now()
			mesh := Build(job.Snapshot, job.Width, job.Height)
			metrics.MeshDuration.Observe(time.Since(start).Seconds())
			metrics.MeshesBuilt.Inc()
			select {
			case job.ResultChan <- Result{Coord: job.Coord, Mesh: mesh}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

func (p *WorkerPool) QueueLen() int { return len(p.jobQueue) }

func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
