package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rgordon/item-api/internal/domain"
	"github.com/rgordon/item-api/internal/store"
)

// Default batch parameters.
const (
	// DefaultTimeout is the aggregate deadline for a whole batch, measured
	// from submission of the last unit of work.
	DefaultTimeout = 30 * time.Second

	// DefaultItemDelay is the fixed delay each unit of work applies before
	// acting, modeling real per-item processing cost.
	DefaultItemDelay = 100 * time.Millisecond
)

// Config holds the tunable parameters of the batch processor.
type Config struct {
	// Timeout is the aggregate deadline for ProcessAll.
	// If zero or negative, DefaultTimeout is used.
	Timeout time.Duration

	// ItemDelay is the fixed per-item delay. Negative values are treated
	// as zero; zero is a legal value for tests.
	ItemDelay time.Duration
}

// BatchProcessor drives the concurrent status transition of every known item.
// It owns no persistent state; all per-batch state is transient and local to
// a single ProcessAll call, so concurrent invocations are safe and share only
// the injected worker pool.
type BatchProcessor struct {
	store  store.ItemStore
	pool   *WorkerPool
	config Config
	logger *slog.Logger
}

// NewBatchProcessor creates a BatchProcessor on top of the given store and
// shared worker pool.
func NewBatchProcessor(
	itemStore store.ItemStore,
	pool *WorkerPool,
	config Config,
	logger *slog.Logger,
) *BatchProcessor {
	if itemStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("item store cannot be nil for BatchProcessor")
	}
	if pool == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("worker pool cannot be nil for BatchProcessor")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.ItemDelay < 0 {
		config.ItemDelay = 0
	}

	return &BatchProcessor{
		store:  itemStore,
		pool:   pool,
		config: config,
		logger: logger.With(slog.String("component", "batch_processor")),
	}
}

// taskResult is the per-task tier of the two-tier result model: a unit of
// work ends with an item (success), a nil item (absent, a soft no-result),
// or an error (soft failure). None of these abort the batch.
type taskResult struct {
	item *domain.Item
	err  error
}

// ProcessAll transitions every item known at call time to PROCESSED and
// returns the items that were processed successfully. Result order follows
// completion order, not id order.
//
// The id set is a snapshot from FindAllIDs; items created afterward are not
// part of the batch. One unit of work runs per id on the shared pool, and the
// whole batch is bounded by the configured aggregate deadline measured from
// submission of the last unit.
//
// Failure handling is deliberately asymmetric: a unit that finds its item
// absent, or that fails fetching or persisting, is silently omitted from the
// result, while an elapsed deadline (ErrTimeout) or external cancellation
// (ErrInterrupted) fails the whole batch with no partial result. Items
// already persisted by completed units stay persisted even when the batch
// returns an error; there is no rollback.
//
// Units of work are not cancelled when ProcessAll stops waiting. They run on
// a context detached from the caller and may complete and persist afterward.
//
// Callers cannot distinguish "no items existed" from "every item failed
// softly" by the returned list alone; both yield an empty result.
func (p *BatchProcessor) ProcessAll(ctx context.Context) ([]*domain.Item, error) {
	ids, err := p.store.FindAllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing item ids: %v", ErrExecution, err)
	}

	p.logger.Debug("starting batch", slog.Int("item_count", len(ids)))

	results := make(chan taskResult, len(ids))

	// Detached from the caller so in-flight units outlive an abandoned wait.
	taskCtx := context.WithoutCancel(ctx)

	for _, id := range ids {
		err := p.pool.Submit(ctx, func() {
			results <- p.processItem(taskCtx, id)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: submitting work for item %d: %v", ErrExecution, id, err)
		}
	}

	// The deadline clock starts once the last unit has been submitted.
	timer := time.NewTimer(p.config.Timeout)
	defer timer.Stop()

	processed := make([]*domain.Item, 0, len(ids))
	for pending := len(ids); pending > 0; pending-- {
		select {
		case res := <-results:
			if res.err != nil {
				// Soft failure: log and omit.
				p.logger.Warn("item processing failed",
					slog.String("error", res.err.Error()))
				continue
			}
			if res.item == nil {
				// Absent item: soft no-result.
				continue
			}
			processed = append(processed, res.item)

		case <-timer.C:
			p.logger.Error("batch deadline elapsed",
				slog.Int("pending", pending),
				slog.Duration("timeout", p.config.Timeout))
			return nil, fmt.Errorf("%w after %s", ErrTimeout, p.config.Timeout)

		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
		}
	}

	p.logger.Info("batch completed",
		slog.Int("item_count", len(ids)),
		slog.Int("processed_count", len(processed)))
	return processed, nil
}

// processItem is the unit of work for a single id: wait the fixed delay,
// fetch the item, mark it PROCESSED, and persist it. An absent item yields
// an empty result rather than an error.
func (p *BatchProcessor) processItem(ctx context.Context, id int64) taskResult {
	time.Sleep(p.config.ItemDelay)

	item, err := p.store.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return taskResult{}
		}
		return taskResult{err: fmt.Errorf("fetching item %d: %w", id, err)}
	}

	item.Status = domain.ItemStatusProcessed

	saved, err := p.store.Save(ctx, item)
	if err != nil {
		return taskResult{err: fmt.Errorf("persisting item %d: %w", id, err)}
	}

	return taskResult{item: saved}
}
