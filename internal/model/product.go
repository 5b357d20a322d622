package model

import "time"

// Product is a stocked inventory item. Quantity never goes below zero;
// it is only decremented through order placement.
type Product struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	SKU           string    `json:"sku" db:"sku"`
	Category      string    `json:"category" db:"category"`
	Price         float64   `json:"price" db:"price"`
	Quantity      int       `json:"quantity" db:"quantity"`
	ReorderLevel  int       `json:"reorderLevel" db:"reorder_level"`
	SupplierID    string    `json:"supplier,omitempty" db:"supplier_id"`
	LastRestocked time.Time `json:"lastRestocked" db:"last_restocked"`
	ImageURL      string    `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// DefaultReorderLevel applies when a product is created without a threshold.
const DefaultReorderLevel = 10

// LowStock reports whether the product is at or below its reorder level.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// CriticalStock reports whether the product is at or below half its reorder
// level. Integer form of quantity <= reorderLevel * 0.5.
func (p *Product) CriticalStock() bool {
	return 2*p.Quantity <= p.ReorderLevel
}

// StockValue is the monetary value of the units on hand.
func (p *Product) StockValue() float64 {
	return float64(p.Quantity) * p.Price
}
