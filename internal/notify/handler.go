// Package notify consumes inventory events and sends the matching emails.
package notify

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/email"
	"github.com/example/inventra/internal/events"
)

// Mailer is the slice of the email service the handler needs.
type Mailer interface {
	SendOrderConfirmation(to, customerName, orderID string, total float64, items []email.OrderItem) error
	SendLowStockAlert(to string, items []email.StockItem) error
}

// Handler processes events for sending notifications
type Handler struct {
	mailer     Mailer
	alertEmail string
}

// NewHandler creates a new notification handler. alertEmail receives the
// low-stock summaries.
func NewHandler(mailer Mailer, alertEmail string) *Handler {
	return &Handler{mailer: mailer, alertEmail: alertEmail}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(_ context.Context, _, value []byte) error {
	var env events.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		log.WithField("err", err).Error("unmarshal event envelope")
		return err
	}

	switch env.Type {
	case events.TypeOrderPlaced:
		return h.handleOrderPlaced(env)
	case events.TypeLowStockDetected:
		return h.handleLowStock(env)
	}
	return nil
}

func (h *Handler) handleOrderPlaced(env events.Envelope) error {
	var e events.OrderPlaced
	if err := json.Unmarshal(env.Data, &e); err != nil {
		log.WithField("err", err).Error("unmarshal OrderPlaced event")
		return err
	}

	items := make([]email.OrderItem, 0, len(e.Items))
	for _, line := range e.Items {
		items = append(items, email.OrderItem{
			ProductID: line.ProductID,
			Name:      line.ProductName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := h.mailer.SendOrderConfirmation(e.CustomerEmail, e.CustomerName, e.OrderID, e.TotalAmount, items); err != nil {
		log.WithFields(log.Fields{"order": e.OrderID, "err": err}).Error("send order confirmation")
		return err
	}

	log.WithFields(log.Fields{"order": e.OrderID, "to": e.CustomerEmail}).Info("order confirmation sent")
	return nil
}

func (h *Handler) handleLowStock(env events.Envelope) error {
	if h.alertEmail == "" {
		return nil
	}

	var e events.LowStockDetected
	if err := json.Unmarshal(env.Data, &e); err != nil {
		log.WithField("err", err).Error("unmarshal LowStockDetected event")
		return err
	}
	if e.Count == 0 {
		return nil
	}

	items := make([]email.StockItem, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, email.StockItem{
			Name:         item.Name,
			SKU:          item.SKU,
			Quantity:     item.Quantity,
			ReorderLevel: item.ReorderLevel,
		})
	}

	if err := h.mailer.SendLowStockAlert(h.alertEmail, items); err != nil {
		log.WithFields(log.Fields{"count": e.Count, "err": err}).Error("send low stock alert")
		return err
	}

	log.WithField("count", e.Count).Info("low stock alert sent")
	return nil
}
