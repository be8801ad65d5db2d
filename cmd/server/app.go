package main

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/rgordon/item-api/internal/config"
	"github.com/rgordon/item-api/internal/platform/postgres"
	"github.com/rgordon/item-api/internal/processor"
	"github.com/rgordon/item-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	itemStore store.ItemStore

	// The worker pool is process-wide: created once here, shared by every
	// batch invocation, and stopped in cleanup.
	workerPool *processor.WorkerPool
	processor  *processor.BatchProcessor
}

// newApplication creates an application instance with all dependencies
// initialized. It takes ownership of db; cleanup closes it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.itemStore = postgres.NewPostgresItemStore(db, logger)

	app.workerPool = processor.NewWorkerPool(processor.WorkerPoolConfig{
		WorkerCount: cfg.Processor.WorkerCount,
		QueueSize:   cfg.Processor.QueueSize,
	}, logger)
	app.workerPool.Start()
	logger.Info("worker pool started",
		slog.Int("worker_count", app.workerPool.WorkerCount()))

	app.processor = processor.NewBatchProcessor(app.itemStore, app.workerPool, processor.Config{
		Timeout:   time.Duration(cfg.Processor.TimeoutSeconds) * time.Second,
		ItemDelay: time.Duration(cfg.Processor.ItemDelayMillis) * time.Millisecond,
	}, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.workerPool != nil {
		app.workerPool.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection",
				slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
