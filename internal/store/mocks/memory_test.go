package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/store"
)

func TestMemoryOrderStore_Create_RepeatedProductAggregated(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryProductStore()
	require.NoError(t, products.Create(ctx, &model.Product{ID: "p1", SKU: "SKU-1", Quantity: 5}))
	orders := NewMemoryOrderStore(products)

	// Lines for the same product count against stock together, so this
	// order needs 6 units and must be rejected outright.
	err := orders.Create(ctx, &model.Order{
		ID: "o1",
		Items: []model.OrderItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, store.ErrInsufficientStock)

	p, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)

	_, err = orders.GetByID(ctx, "o1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Within stock the repeated lines commit as one decrement.
	require.NoError(t, orders.Create(ctx, &model.Order{
		ID: "o2",
		Items: []model.OrderItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p1", Quantity: 2},
		},
	}))
	p, err = products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Quantity)
}
