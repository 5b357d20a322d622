package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_LowStock(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		reorderLevel int
		want         bool
	}{
		{"below threshold", 5, 10, true},
		{"at threshold", 10, 10, true},
		{"above threshold", 11, 10, false},
		{"empty stock", 0, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Quantity: tt.quantity, ReorderLevel: tt.reorderLevel}
			assert.Equal(t, tt.want, p.LowStock())
		})
	}
}

func TestProduct_CriticalStock(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		reorderLevel int
		want         bool
	}{
		{"at half threshold", 5, 10, true},
		{"just above half", 6, 10, false},
		{"odd threshold boundary", 2, 5, true},
		{"odd threshold above", 3, 5, false},
		{"empty stock", 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Quantity: tt.quantity, ReorderLevel: tt.reorderLevel}
			assert.Equal(t, tt.want, p.CriticalStock())
		})
	}
}

func TestProduct_StockValue(t *testing.T) {
	p := &Product{Quantity: 4, Price: 12.5}
	assert.Equal(t, 50.0, p.StockValue())
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "manager", "staff"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Processing", "Shipped", "Delivered"} {
		status, err := ParseOrderStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(valid), status)
	}

	_, err := ParseOrderStatus("Cancelled")
	assert.Error(t, err)

	// Enum values are case sensitive.
	_, err = ParseOrderStatus("pending")
	assert.Error(t, err)
}

func TestViewForRole(t *testing.T) {
	admin := ViewForRole(RoleAdmin)
	assert.True(t, admin.ShowRevenue)
	assert.Contains(t, admin.Sections, "users")

	manager := ViewForRole(RoleManager)
	assert.True(t, manager.CanManageOrders)
	assert.NotContains(t, manager.Sections, "users")

	staff := ViewForRole(RoleStaff)
	assert.True(t, staff.ShowTaskQueue)
	assert.False(t, staff.ShowRevenue)
	assert.False(t, staff.CanManageStock)

	// Unknown roles fall back to the most restricted view.
	unknown := ViewForRole(Role("intern"))
	assert.Equal(t, RoleStaff, unknown.Role)
}
