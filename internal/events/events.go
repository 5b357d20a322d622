// Package events defines the Kafka event envelope and payloads published by
// the inventory service and consumed by the notifier worker.
package events

import (
	"encoding/json"
	"time"
)

const (
	TypeOrderPlaced      = "OrderPlaced"
	TypeLowStockDetected = "LowStockDetected"
)

// Envelope wraps every published event.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// OrderLine mirrors an order line item for notification purposes.
type OrderLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderPlaced is published after an order commits.
type OrderPlaced struct {
	OrderID       string      `json:"order_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	TotalAmount   float64     `json:"total_amount"`
	Items         []OrderLine `json:"items"`
}

// LowStockItem is one product at or below its reorder level.
type LowStockItem struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
}

// LowStockDetected is published by the daily stock scan.
type LowStockDetected struct {
	Count int            `json:"count"`
	Items []LowStockItem `json:"items"`
}

// Wrap marshals a payload into an envelope.
func Wrap(eventType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Type:       eventType,
		OccurredAt: time.Now(),
		Data:       data,
	}, nil
}
