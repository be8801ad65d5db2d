package processor

import "errors"

// Batch-level errors returned by ProcessAll. Per-item failures never surface
// through these; they are swallowed at the task boundary and only reduce the
// result set.
var (
	// ErrTimeout is returned when the aggregate deadline elapses before
	// every unit of work has reported back.
	ErrTimeout = errors.New("item processing timed out")

	// ErrInterrupted is returned when waiting for the batch is cancelled
	// externally, e.g. the caller's context is done.
	ErrInterrupted = errors.New("item processing interrupted")

	// ErrExecution is returned when the batch machinery itself fails,
	// e.g. listing ids fails or the pool rejects a submission. This is
	// distinct from an individual unit of work returning no result.
	ErrExecution = errors.New("item processing failed")

	// ErrPoolStopped is returned by Submit after the worker pool has been
	// stopped.
	ErrPoolStopped = errors.New("worker pool is stopped")
)
