package store

import (
	"context"
	"errors"
	"time"

	"github.com/example/inventra/internal/model"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on unique-constraint violations (SKU, email).
	ErrDuplicate = errors.New("record already exists")
	// ErrInsufficientStock is returned when a conditional stock decrement
	// finds fewer units on hand than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductStore persists products.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListLowStock(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
}

// SupplierStore persists suppliers.
type SupplierStore interface {
	Create(ctx context.Context, s *model.Supplier) error
	GetByID(ctx context.Context, id string) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// OrderStore persists orders and their line items.
//
// Create commits the order and decrements stock for every line in a single
// transaction. Each decrement is conditional on enough quantity remaining, so
// two concurrent placements can never jointly oversell; if any line fails the
// whole order rolls back and ErrInsufficientStock is returned.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	Delete(ctx context.Context, id string) error
}

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Count(ctx context.Context) (int, error)
}
