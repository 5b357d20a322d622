package model

import (
	"fmt"
	"time"
)

// OrderStatus is the fulfilment state of an order. Transitions are not
// ordered: an authorized caller may set any status from any other.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// OrderItem is one line of an order. UnitPrice is the product price captured
// at placement time; later price changes never touch existing orders.
type OrderItem struct {
	ProductID   string  `json:"product" db:"product_id"`
	ProductName string  `json:"productName,omitempty" db:"product_name"`
	Quantity    int     `json:"quantity" db:"quantity"`
	UnitPrice   float64 `json:"unitPrice" db:"unit_price"`
}

// Order is a committed customer order.
type Order struct {
	ID            string      `json:"id" db:"id"`
	CustomerName  string      `json:"customerName" db:"customer_name"`
	CustomerEmail string      `json:"customerEmail" db:"customer_email"`
	Items         []OrderItem `json:"products"`
	TotalAmount   float64     `json:"totalAmount" db:"total_amount"`
	Status        OrderStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
}
