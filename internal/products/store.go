package products

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned when no product has the requested ID.
var ErrNotFound = errors.New("produto não encontrado")

// Store persists products as an insertion-ordered list. A non-finite
// FinalPrice is only guaranteed to read back non-finite: the SQLite and bbolt
// stores return NaN for +Inf and -Inf alike.
type Store interface {
	Append(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
}

// MemoryStore keeps products in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Product
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, p)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	m.items[i] = p
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.items = slices.Delete(m.items, i, i+1)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return Product{}, ErrNotFound
	}
	return m.items[i], nil
}

func (m *MemoryStore) List(_ context.Context) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items), nil
}

func (m *MemoryStore) indexOf(id string) int {
	return slices.IndexFunc(m.items, func(p Product) bool { return p.ID == id })
}
