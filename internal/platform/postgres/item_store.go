package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rgordon/item-api/internal/domain"
	"github.com/rgordon/item-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// FindAll implements store.ItemStore.FindAll
// It retrieves every item in the store, ordered by ID for stable output.
func (s *PostgresItemStore) FindAll(ctx context.Context) ([]*domain.Item, error) {
	query := `
		SELECT id, name, description, status, email, created_at, updated_at
		FROM items
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	items := []*domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Status,
			&item.Email,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// FindByID implements store.ItemStore.FindByID
// It retrieves an item by its unique ID.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `
		SELECT id, name, description, status, email, created_at, updated_at
		FROM items
		WHERE id = $1`

	var item domain.Item
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Status,
		&item.Email,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: id %d", store.ErrItemNotFound, id)
		}
		return nil, MapError(err)
	}

	return &item, nil
}

// Save implements store.ItemStore.Save
// An item with a zero ID is inserted and receives a store-assigned ID.
// An item with an explicit ID is upserted, matching the write-in-place
// contract of the interface.
func (s *PostgresItemStore) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	now := time.Now().UTC()
	saved := *item
	saved.UpdatedAt = now

	if item.ID == 0 {
		query := `
			INSERT INTO items (name, description, status, email, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`

		saved.CreatedAt = now
		err := s.db.QueryRowContext(ctx, query,
			saved.Name, saved.Description, saved.Status, saved.Email, saved.CreatedAt, saved.UpdatedAt,
		).Scan(&saved.ID, &saved.CreatedAt)
		if err != nil {
			return nil, MapError(err)
		}

		s.logger.Debug("item created", slog.Int64("item_id", saved.ID))
		return &saved, nil
	}

	query := `
		INSERT INTO items (id, name, description, status, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    status = EXCLUDED.status,
		    email = EXCLUDED.email,
		    updated_at = EXCLUDED.updated_at
		RETURNING created_at`

	insertCreatedAt := saved.CreatedAt
	if insertCreatedAt.IsZero() {
		insertCreatedAt = now
	}
	err := s.db.QueryRowContext(ctx, query,
		saved.ID, saved.Name, saved.Description, saved.Status, saved.Email, insertCreatedAt, saved.UpdatedAt,
	).Scan(&saved.CreatedAt)
	if err != nil {
		return nil, MapError(err)
	}

	s.logger.Debug("item saved", slog.Int64("item_id", saved.ID))
	return &saved, nil
}

// DeleteByID implements store.ItemStore.DeleteByID
// Deleting an ID that does not exist is not an error; the row count is
// only logged. Callers that need a 404 must check existence first.
func (s *PostgresItemStore) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM items WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		s.logger.Debug("delete of missing item", slog.Int64("item_id", id))
	}

	return nil
}

// FindAllIDs implements store.ItemStore.FindAllIDs
// It retrieves a snapshot of every item ID in the store.
func (s *PostgresItemStore) FindAllIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM items ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}
