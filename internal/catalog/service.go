// Package catalog manages products and suppliers.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/store"
)

// ErrValidation marks client-facing input failures.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type Service struct {
	products  store.ProductStore
	suppliers store.SupplierStore
}

func NewService(products store.ProductStore, suppliers store.SupplierStore) *Service {
	return &Service{products: products, suppliers: suppliers}
}

// ProductInput carries the fields accepted on product creation.
type ProductInput struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	ReorderLevel *int    `json:"reorderLevel"`
	Supplier     string  `json:"supplier"`
	ImageURL     string  `json:"imageUrl"`
}

// ProductPatch carries optional fields for partial updates. Nil means
// "leave unchanged".
type ProductPatch struct {
	Name         *string  `json:"name"`
	SKU          *string  `json:"sku"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price"`
	Quantity     *int     `json:"quantity"`
	ReorderLevel *int     `json:"reorderLevel"`
	Supplier     *string  `json:"supplier"`
	ImageURL     *string  `json:"imageUrl"`
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	if in.Name == "" {
		return nil, invalid("name is required")
	}
	if in.SKU == "" {
		return nil, invalid("sku is required")
	}
	if in.Category == "" {
		return nil, invalid("category is required")
	}
	if in.Price < 0 {
		return nil, invalid("price must not be negative")
	}
	if in.Quantity < 0 {
		return nil, invalid("quantity must not be negative")
	}

	reorderLevel := model.DefaultReorderLevel
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, invalid("reorderLevel must not be negative")
		}
		reorderLevel = *in.ReorderLevel
	}

	now := time.Now()
	p := &model.Product{
		ID:            uuid.NewString(),
		Name:          in.Name,
		SKU:           in.SKU,
		Category:      in.Category,
		Price:         in.Price,
		Quantity:      in.Quantity,
		ReorderLevel:  reorderLevel,
		SupplierID:    in.Supplier,
		LastRestocked: now,
		ImageURL:      in.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, invalid("sku %q already exists", in.SKU)
		}
		return nil, err
	}

	log.WithFields(log.Fields{"product": p.ID, "sku": p.SKU}).Info("product created")
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) ListLowStock(ctx context.Context) ([]model.Product, error) {
	return s.products.ListLowStock(ctx)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, invalid("price must not be negative")
		}
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, invalid("quantity must not be negative")
		}
		// Restock action: quantity raised through an explicit update.
		if *patch.Quantity > p.Quantity {
			p.LastRestocked = time.Now()
		}
		p.Quantity = *patch.Quantity
	}
	if patch.ReorderLevel != nil {
		if *patch.ReorderLevel < 0 {
			return nil, invalid("reorderLevel must not be negative")
		}
		p.ReorderLevel = *patch.ReorderLevel
	}
	if patch.Supplier != nil {
		p.SupplierID = *patch.Supplier
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	p.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, invalid("sku %q already exists", p.SKU)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// SupplierInput carries the fields accepted on supplier creation.
type SupplierInput struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
	Rating       *int   `json:"rating"`
}

// SupplierPatch carries optional fields for partial updates.
type SupplierPatch struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contactEmail"`
	ContactPhone *string `json:"contactPhone"`
	Address      *string `json:"address"`
	Rating       *int    `json:"rating"`
}

func (s *Service) CreateSupplier(ctx context.Context, in SupplierInput) (*model.Supplier, error) {
	if in.Name == "" {
		return nil, invalid("name is required")
	}
	if in.ContactEmail == "" {
		return nil, invalid("contactEmail is required")
	}
	if in.ContactPhone == "" {
		return nil, invalid("contactPhone is required")
	}
	if in.Address == "" {
		return nil, invalid("address is required")
	}

	rating := model.DefaultSupplierRating
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, invalid("rating must be between 1 and 5")
		}
		rating = *in.Rating
	}

	now := time.Now()
	sup := &model.Supplier{
		ID:           uuid.NewString(),
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Address:      in.Address,
		Rating:       rating,
		LastSupplied: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}

	log.WithField("supplier", sup.ID).Info("supplier created")
	return sup, nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *Service) UpdateSupplier(ctx context.Context, id string, patch SupplierPatch) (*model.Supplier, error) {
	sup, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		sup.Name = *patch.Name
	}
	if patch.ContactEmail != nil {
		sup.ContactEmail = *patch.ContactEmail
	}
	if patch.ContactPhone != nil {
		sup.ContactPhone = *patch.ContactPhone
	}
	if patch.Address != nil {
		sup.Address = *patch.Address
	}
	if patch.Rating != nil {
		if *patch.Rating < 1 || *patch.Rating > 5 {
			return nil, invalid("rating must be between 1 and 5")
		}
		sup.Rating = *patch.Rating
	}
	sup.UpdatedAt = time.Now()

	if err := s.suppliers.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

// DeleteSupplier removes a supplier. Products keep their supplier reference;
// it is a lookup-only weak reference and resolves to nothing afterwards.
func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	return s.suppliers.Delete(ctx, id)
}
