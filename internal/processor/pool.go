package processor

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
)

// WorkerPool manages a fixed set of worker goroutines that execute submitted
// jobs. It is process-wide shared state: one pool is created at startup,
// shared by every batch invocation, and drained on shutdown via Stop.
type WorkerPool struct {
	// jobs carries submitted units of work to the workers
	jobs chan func()

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is used for cancellation and shutdown signaling
	ctx context.Context

	// cancel is the function to call to cancel the context
	cancel context.CancelFunc

	// logger for structured logging
	logger *slog.Logger
}

// WorkerPoolConfig holds configuration options for the worker pool.
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start.
	// If zero or negative, one worker per available CPU is used.
	WorkerCount int

	// QueueSize determines the buffer size of the job queue.
	// If zero or negative, a default of 100 is used.
	QueueSize int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults:
// one worker per available CPU and a queue of 100 jobs.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 0,
		QueueSize:   100,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration.
// The pool does not run jobs until Start is called.
func NewWorkerPool(config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		jobs:        make(chan func(), queueSize),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.With(slog.String("component", "worker_pool")),
	}
}

// WorkerCount returns the number of workers the pool runs.
func (p *WorkerPool) WorkerCount() int {
	return p.workerCount
}

// Start launches the worker goroutines.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Debug("worker pool started", slog.Int("worker_count", p.workerCount))
}

// Stop gracefully shuts down the pool. It signals all workers to exit after
// their current job and waits for them. Jobs still queued are dropped; jobs
// already running are allowed to finish. Submit returns ErrPoolStopped
// afterward.
func (p *WorkerPool) Stop() {
	p.cancel()
	p.wg.Wait()
	p.logger.Debug("worker pool stopped")
}

// Submit hands a job to the pool. It blocks while the queue is full.
// Returns ErrPoolStopped if the pool has been stopped, or the context error
// if ctx is done before the job could be queued.
func (p *WorkerPool) Submit(ctx context.Context, job func()) error {
	// Checked first so a stopped pool rejects deterministically even when
	// the buffered queue still has room.
	select {
	case <-p.ctx.Done():
		return ErrPoolStopped
	default:
	}

	select {
	case <-p.ctx.Done():
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

// worker pulls jobs off the queue until the pool is stopped.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", slog.Int("worker_id", id))

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("stopping worker", slog.Int("worker_id", id))
			return

		case job := <-p.jobs:
			job()
		}
	}
}
