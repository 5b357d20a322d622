package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/store/mocks"
)

func newTestService() (*Service, *mocks.MemoryProductStore, *mocks.MemorySupplierStore) {
	products := mocks.NewMemoryProductStore()
	suppliers := mocks.NewMemorySupplierStore()
	return NewService(products, suppliers), products, suppliers
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func TestService_CreateProduct_Success(t *testing.T) {
	svc, _, _ := newTestService()

	p, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:     "Laptop",
		SKU:      "LT-1",
		Category: "Electronics",
		Price:    999.99,
		Quantity: 10,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Laptop", p.Name)
	assert.Equal(t, model.DefaultReorderLevel, p.ReorderLevel)
	assert.False(t, p.LastRestocked.IsZero())
}

func TestService_CreateProduct_DuplicateSKU(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	in := ProductInput{Name: "Laptop", SKU: "LT-1", Category: "Electronics", Price: 999.99, Quantity: 10}
	_, err := svc.CreateProduct(ctx, in)
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `sku "LT-1" already exists`)
}

func TestService_CreateProduct_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   ProductInput
	}{
		{"missing name", ProductInput{SKU: "S", Category: "C", Price: 1}},
		{"missing sku", ProductInput{Name: "N", Category: "C", Price: 1}},
		{"missing category", ProductInput{Name: "N", SKU: "S", Price: 1}},
		{"negative price", ProductInput{Name: "N", SKU: "S", Category: "C", Price: -1}},
		{"negative quantity", ProductInput{Name: "N", SKU: "S", Category: "C", Price: 1, Quantity: -1}},
		{"negative reorder level", ProductInput{Name: "N", SKU: "S", Category: "C", Price: 1, ReorderLevel: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tt.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestService_UpdateProduct_PartialPatch(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, ProductInput{
		Name: "Laptop", SKU: "LT-1", Category: "Electronics", Price: 999.99, Quantity: 10,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, p.ID, ProductPatch{Price: floatPtr(899.99)})
	require.NoError(t, err)

	assert.Equal(t, 899.99, updated.Price)
	// Untouched fields survive
	assert.Equal(t, "Laptop", updated.Name)
	assert.Equal(t, 10, updated.Quantity)
}

func TestService_UpdateProduct_RestockRaisesLastRestocked(t *testing.T) {
	svc, products, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, ProductInput{
		Name: "Laptop", SKU: "LT-1", Category: "Electronics", Price: 999.99, Quantity: 10,
	})
	require.NoError(t, err)

	// Backdate the restock marker so the bump is observable
	p.LastRestocked = time.Now().Add(-24 * time.Hour)
	require.NoError(t, products.Update(ctx, p))

	updated, err := svc.UpdateProduct(ctx, p.ID, ProductPatch{Quantity: intPtr(50)})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), updated.LastRestocked, time.Minute)

	// Lowering quantity is not a restock
	before := updated.LastRestocked
	updated, err = svc.UpdateProduct(ctx, p.ID, ProductPatch{Quantity: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, before, updated.LastRestocked)
}

func TestService_UpdateProduct_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateProduct(context.Background(), "missing", ProductPatch{Name: strPtr("X")})
	require.Error(t, err)
}

func TestService_CreateSupplier_DefaultRating(t *testing.T) {
	svc, _, _ := newTestService()

	s, err := svc.CreateSupplier(context.Background(), SupplierInput{
		Name:         "Acme",
		ContactEmail: "sales@acme.example.com",
		ContactPhone: "555-0100",
		Address:      "1 Acme Way",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSupplierRating, s.Rating)
}

func TestService_CreateSupplier_RatingBounds(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	in := SupplierInput{
		Name:         "Acme",
		ContactEmail: "sales@acme.example.com",
		ContactPhone: "555-0100",
		Address:      "1 Acme Way",
	}

	in.Rating = intPtr(0)
	_, err := svc.CreateSupplier(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	in.Rating = intPtr(6)
	_, err = svc.CreateSupplier(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	in.Rating = intPtr(5)
	s, err := svc.CreateSupplier(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Rating)
}

func TestService_DeleteSupplier_ProductsKeepReference(t *testing.T) {
	svc, products, _ := newTestService()
	ctx := context.Background()

	s, err := svc.CreateSupplier(ctx, SupplierInput{
		Name:         "Acme",
		ContactEmail: "sales@acme.example.com",
		ContactPhone: "555-0100",
		Address:      "1 Acme Way",
	})
	require.NoError(t, err)

	p, err := svc.CreateProduct(ctx, ProductInput{
		Name: "Laptop", SKU: "LT-1", Category: "Electronics", Price: 999.99, Quantity: 10,
		Supplier: s.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSupplier(ctx, s.ID))

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.SupplierID, "dangling supplier reference is kept")
}
