// Package ordering implements order placement and lifecycle. Placement is the
// only path that decrements product stock; the commit is transactional, so a
// multi-line order either fully applies or leaves every quantity untouched.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/events"
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
	orders    store.OrderStore
	publisher events.Publisher
	now       func() time.Time
}

func NewService(products store.ProductStore, orders store.OrderStore, publisher events.Publisher) *Service {
	return &Service{
		products:  products,
		orders:    orders,
		publisher: publisher,
		now:       time.Now,
	}
}

// LineInput is one requested line item.
type LineInput struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// OrderInput carries the fields accepted on order placement.
type OrderInput struct {
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Products      []LineInput `json:"products"`
}

// Place validates every line against current stock, computes the total from
// current prices, and commits the order with the stock decrements. The store
// re-checks each decrement inside the transaction, so a concurrent placement
// that drains stock after our check makes the whole order fail instead of
// overselling.
func (s *Service) Place(ctx context.Context, in OrderInput) (*model.Order, error) {
	if in.CustomerName == "" {
		return nil, invalid("customerName is required")
	}
	if in.CustomerEmail == "" {
		return nil, invalid("customerEmail is required")
	}
	if len(in.Products) == 0 {
		return nil, invalid("order must contain at least one product")
	}

	var total float64
	items := make([]model.OrderItem, 0, len(in.Products))
	requested := make(map[string]int, len(in.Products))
	for _, line := range in.Products {
		if line.Quantity <= 0 {
			return nil, invalid("quantity must be positive")
		}
		p, err := s.products.GetByID(ctx, line.Product)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("product not found: %s: %w", line.Product, store.ErrNotFound)
			}
			return nil, err
		}
		// The same product may appear on several lines; stock must cover
		// the combined quantity, not each line in isolation.
		requested[p.ID] += line.Quantity
		if p.Quantity < requested[p.ID] {
			return nil, fmt.Errorf("%w for %s", store.ErrInsufficientStock, p.Name)
		}
		total += p.Price * float64(line.Quantity)
		items = append(items, model.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
		})
	}

	o := &model.Order{
		ID:            uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Items:         items,
		TotalAmount:   total,
		Status:        model.StatusPending,
		CreatedAt:     s.now(),
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order": o.ID,
		"total": o.TotalAmount,
		"lines": len(o.Items),
	}).Info("order placed")

	s.publishPlaced(ctx, o)
	return o, nil
}

// publishPlaced announces the order on Kafka. Best effort: placement already
// committed, so a broker failure only costs the notification.
func (s *Service) publishPlaced(ctx context.Context, o *model.Order) {
	if s.publisher == nil {
		return
	}

	lines := make([]events.OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, events.OrderLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	env, err := events.Wrap(events.TypeOrderPlaced, events.OrderPlaced{
		OrderID:       o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		TotalAmount:   o.TotalAmount,
		Items:         lines,
	})
	if err != nil {
		log.WithField("err", err).Error("wrap order event")
		return
	}
	if err := s.publisher.Publish(ctx, o.ID, env); err != nil {
		log.WithFields(log.Fields{"order": o.ID, "err": err}).Error("publish order event")
	}
}

func (s *Service) List(ctx context.Context) ([]model.Order, error) {
	return s.orders.List(ctx)
}

// SetStatus sets an order's status. Any of the four states may follow any
// other; there is no enforced ordering.
func (s *Service) SetStatus(ctx context.Context, id, rawStatus string) (*model.Order, error) {
	status, err := model.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

// Delete removes an order. Stock consumed by the order is not restored.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}
