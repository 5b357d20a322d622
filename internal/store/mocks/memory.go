// Package mocks provides in-memory store implementations for tests.
package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/store"
)

// MemoryProductStore is a thread-safe in-memory ProductStore.
type MemoryProductStore struct {
	mu       sync.Mutex
	products map[string]model.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[string]model.Product)}
}

func (m *MemoryProductStore) Create(_ context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if existing.SKU == p.SKU {
			return store.ErrDuplicate
		}
	}
	m.products[p.ID] = *p
	return nil
}

func (m *MemoryProductStore) GetByID(_ context.Context, id string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m *MemoryProductStore) List(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLocked(), nil
}

func (m *MemoryProductStore) ListLowStock(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Product
	for _, p := range m.sortedLocked() {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryProductStore) Update(_ context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return store.ErrNotFound
	}
	m.products[p.ID] = *p
	return nil
}

func (m *MemoryProductStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

// decrement applies conditional decrements for all items, or none of them.
// Called by MemoryOrderStore under its own lock to mimic the transactional
// behavior of the Postgres store.
func (m *MemoryProductStore) decrement(items []model.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// A product may appear on several lines; validate the combined quantity.
	need := make(map[string]int, len(items))
	for _, item := range items {
		need[item.ProductID] += item.Quantity
	}
	for id, qty := range need {
		p, ok := m.products[id]
		if !ok || p.Quantity < qty {
			return store.ErrInsufficientStock
		}
	}
	for id, qty := range need {
		p := m.products[id]
		p.Quantity -= qty
		m.products[id] = p
	}
	return nil
}

func (m *MemoryProductStore) sortedLocked() []model.Product {
	out := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MemorySupplierStore is a thread-safe in-memory SupplierStore.
type MemorySupplierStore struct {
	mu        sync.Mutex
	suppliers map[string]model.Supplier
}

func NewMemorySupplierStore() *MemorySupplierStore {
	return &MemorySupplierStore{suppliers: make(map[string]model.Supplier)}
}

func (m *MemorySupplierStore) Create(_ context.Context, s *model.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppliers[s.ID] = *s
	return nil
}

func (m *MemorySupplierStore) GetByID(_ context.Context, id string) (*model.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suppliers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (m *MemorySupplierStore) List(_ context.Context) ([]model.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Supplier, 0, len(m.suppliers))
	for _, s := range m.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemorySupplierStore) Update(_ context.Context, s *model.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[s.ID]; !ok {
		return store.ErrNotFound
	}
	m.suppliers[s.ID] = *s
	return nil
}

func (m *MemorySupplierStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.suppliers, id)
	return nil
}

func (m *MemorySupplierStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.suppliers), nil
}

// MemoryOrderStore is a thread-safe in-memory OrderStore. It needs the
// product store to apply stock decrements atomically with order creation.
type MemoryOrderStore struct {
	mu       sync.Mutex
	orders   map[string]model.Order
	products *MemoryProductStore
}

func NewMemoryOrderStore(products *MemoryProductStore) *MemoryOrderStore {
	return &MemoryOrderStore{
		orders:   make(map[string]model.Order),
		products: products,
	}
}

func (m *MemoryOrderStore) Create(_ context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.products.decrement(o.Items); err != nil {
		return err
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *MemoryOrderStore) GetByID(_ context.Context, id string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (m *MemoryOrderStore) List(_ context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryOrderStore) CountSince(_ context.Context, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.orders {
		if !o.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryOrderStore) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

func (m *MemoryOrderStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

// MemoryUserStore is a thread-safe in-memory UserStore.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]model.User)}
}

func (m *MemoryUserStore) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemoryUserStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}
