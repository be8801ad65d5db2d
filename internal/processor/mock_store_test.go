package processor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rgordon/item-api/internal/domain"
	"github.com/rgordon/item-api/internal/store"
)

// mockItemStore is an in-memory, call-counting store.ItemStore used by the
// processor tests. Behavior can be overridden per method via the Fn fields.
type mockItemStore struct {
	mu sync.Mutex

	items map[int64]*domain.Item

	findAllIDsCalls int
	findByIDCalls   map[int64]int
	saveCalls       int

	FindAllIDsFn func(ctx context.Context) ([]int64, error)
	FindByIDFn   func(ctx context.Context, id int64) (*domain.Item, error)
	SaveFn       func(ctx context.Context, item *domain.Item) (*domain.Item, error)
}

var _ store.ItemStore = (*mockItemStore)(nil)

func newMockItemStore(ids ...int64) *mockItemStore {
	items := make(map[int64]*domain.Item, len(ids))
	for _, id := range ids {
		items[id] = &domain.Item{
			ID:     id,
			Name:   fmt.Sprintf("item-%d", id),
			Status: domain.ItemStatusNew,
			Email:  fmt.Sprintf("item%d@example.com", id),
		}
	}
	return &mockItemStore{
		items:         items,
		findByIDCalls: make(map[int64]int),
	}
}

func (m *mockItemStore) FindAll(ctx context.Context) ([]*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]*domain.Item, 0, len(m.items))
	for _, item := range m.items {
		copied := *item
		items = append(items, &copied)
	}
	return items, nil
}

func (m *mockItemStore) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	m.mu.Lock()
	m.findByIDCalls[id]++
	fn := m.FindByIDFn
	item, ok := m.items[id]
	var copied domain.Item
	if ok {
		copied = *item
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, id)
	}
	if !ok {
		return nil, fmt.Errorf("%w: id %d", store.ErrItemNotFound, id)
	}
	return &copied, nil
}

func (m *mockItemStore) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	m.mu.Lock()
	m.saveCalls++
	fn := m.SaveFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, item)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *item
	m.items[item.ID] = &copied
	returned := copied
	return &returned, nil
}

func (m *mockItemStore) DeleteByID(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *mockItemStore) FindAllIDs(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	m.findAllIDsCalls++
	fn := m.FindAllIDsFn
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return ids, nil
}

func (m *mockItemStore) findAllIDsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findAllIDsCalls
}

func (m *mockItemStore) findByIDCount(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findByIDCalls[id]
}

func (m *mockItemStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

func (m *mockItemStore) itemStatus(id int64) domain.ItemStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return ""
	}
	return item.Status
}

// setupTestLogger returns a logger that discards all output.
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
