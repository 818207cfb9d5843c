package meshing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mini-voxel/internal/world"

	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("mesh worker pool closed")

// MeshJob represents a meshing job request
type MeshJob struct {
	Chunk *world.Chunk
	Coord world.ChunkCoord
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord world.ChunkCoord
	Mesh  *Mesh
	Error error
}

// WorkerPool manages goroutines for mesh generation
type WorkerPool struct {
	mesher   *Mesher
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *zap.Logger
}

// NewWorkerPool creates a new mesh worker pool. Non-positive sizes fall back
// to a single worker and an unbuffered queue.
func NewWorkerPool(mesher *Mesher, workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		mesher:   mesher,
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
		logger:   mesher.logger.Named("pool"),
	}

	// Start worker goroutines
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued, ctx is done
// or the pool shuts down.
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job MeshJob) error {
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			mesh, err := p.mesher.BuildChunk(job.Chunk)
			if err != nil {
				p.logger.Warn("mesh job failed",
					zap.Int("worker", id),
					zap.Stringer("chunk", job.Coord),
					zap.Error(err))
			}

			result := MeshResult{
				Coord: job.Coord,
				Mesh:  mesh,
				Error: err,
			}

			// Send result back
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

// Shutdown stops the workers and waits for them to exit. Queued jobs that
// were not picked up are dropped. The queue is left open so late submitters
// see ErrPoolClosed instead of a panic.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// QueueLength returns the current number of jobs in the queue
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}

// MeshStore meshes every chunk of store in parallel. Failed chunks are left
// out of the result and their errors are joined.
func (p *WorkerPool) MeshStore(ctx context.Context, store *world.ChunkStore) (map[world.ChunkCoord]*Mesh, error) {
	return p.meshAll(ctx, store.AllChunks(), nil)
}

// RebuildDirty re-meshes only the dirty chunks of store and marks each
// successfully meshed chunk clean.
func (p *WorkerPool) RebuildDirty(ctx context.Context, store *world.ChunkStore) (map[world.ChunkCoord]*Mesh, error) {
	return p.meshAll(ctx, store.DirtyChunks(), func(c *world.Chunk) { c.SetClean() })
}

func (p *WorkerPool) meshAll(ctx context.Context, chunks []world.ChunkWithCoord, onSuccess func(*world.Chunk)) (map[world.ChunkCoord]*Mesh, error) {
	results := make(chan MeshResult, len(chunks))
	byCoord := make(map[world.ChunkCoord]*world.Chunk, len(chunks))

	submitted := 0
	var errs []error
	for _, cc := range chunks {
		byCoord[cc.Coord] = cc.Chunk
		job := MeshJob{Chunk: cc.Chunk, Coord: cc.Coord, ResultChan: results}
		if err := p.SubmitJobBlocking(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("submit chunk %v: %w", cc.Coord, err))
			break
		}
		submitted++
	}

	meshes := make(map[world.ChunkCoord]*Mesh, submitted)
	for i := 0; i < submitted; i++ {
		select {
		case res := <-results:
			if res.Error != nil {
				errs = append(errs, fmt.Errorf("chunk %v: %w", res.Coord, res.Error))
				continue
			}
			meshes[res.Coord] = res.Mesh
			if onSuccess != nil {
				onSuccess(byCoord[res.Coord])
			}
		case <-ctx.Done():
			return meshes, errors.Join(append(errs, ctx.Err())...)
		case <-p.ctx.Done():
			return meshes, errors.Join(append(errs, ErrPoolClosed)...)
		}
	}
	return meshes, errors.Join(errs...)
}
