// Package scheduler runs the daily low-stock scan.
package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/events"
	"github.com/example/inventra/internal/store"
)

// Scanner scans for low-stock products once a day at a fixed hour, logs the
// count, and publishes a LowStockDetected event. No retries, no backoff: a
// failed scan waits for the next day.
type Scanner struct {
	products  store.ProductStore
	publisher events.Publisher
	hour      int
	now       func() time.Time
}

func NewScanner(products store.ProductStore, publisher events.Publisher, hour int) *Scanner {
	return &Scanner{
		products:  products,
		publisher: publisher,
		hour:      hour,
		now:       time.Now,
	}
}

// Run blocks until ctx is cancelled, scanning once per day.
func (s *Scanner) Run(ctx context.Context) {
	for {
		wait := time.Until(nextRun(s.now(), s.hour))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if _, err := s.Scan(ctx); err != nil {
				log.WithField("err", err).Error("low stock scan failed")
			}
		}
	}
}

// Scan runs one pass and returns the number of low-stock products.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	products, err := s.products.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}

	if len(products) == 0 {
		log.Info("low stock scan: all products sufficiently stocked")
		return 0, nil
	}

	log.WithField("count", len(products)).Warnf("alert: %d products are running low on stock", len(products))

	if s.publisher != nil {
		items := make([]events.LowStockItem, 0, len(products))
		for i := range products {
			items = append(items, events.LowStockItem{
				ProductID:    products[i].ID,
				Name:         products[i].Name,
				SKU:          products[i].SKU,
				Quantity:     products[i].Quantity,
				ReorderLevel: products[i].ReorderLevel,
			})
		}
		env, err := events.Wrap(events.TypeLowStockDetected, events.LowStockDetected{
			Count: len(items),
			Items: items,
		})
		if err != nil {
			return len(products), err
		}
		if err := s.publisher.Publish(ctx, "lowstock-scan", env); err != nil {
			log.WithField("err", err).Error("publish low stock event")
		}
	}

	return len(products), nil
}

// nextRun returns the next occurrence of hour o'clock after now.
func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
