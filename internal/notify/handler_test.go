package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inventra/internal/email"
	"github.com/example/inventra/internal/events"
)

type fakeMailer struct {
	confirmations []string
	alerts        [][]email.StockItem
}

func (f *fakeMailer) SendOrderConfirmation(to, _, _ string, _ float64, _ []email.OrderItem) error {
	f.confirmations = append(f.confirmations, to)
	return nil
}

func (f *fakeMailer) SendLowStockAlert(_ string, items []email.StockItem) error {
	f.alerts = append(f.alerts, items)
	return nil
}

func marshalEvent(t *testing.T, eventType string, payload any) []byte {
	t.Helper()
	env, err := events.Wrap(eventType, payload)
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	return data
}

func TestHandler_OrderPlaced(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewHandler(mailer, "ops@inventra.example")

	value := marshalEvent(t, events.TypeOrderPlaced, events.OrderPlaced{
		OrderID:       "order-1",
		CustomerName:  "John",
		CustomerEmail: "john@example.com",
		TotalAmount:   50,
		Items:         []events.OrderLine{{ProductID: "p1", ProductName: "Webcam", Quantity: 5, UnitPrice: 10}},
	})

	require.NoError(t, handler.HandleEvent(context.Background(), nil, value))
	assert.Equal(t, []string{"john@example.com"}, mailer.confirmations)
	assert.Empty(t, mailer.alerts)
}

func TestHandler_LowStockDetected(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewHandler(mailer, "ops@inventra.example")

	value := marshalEvent(t, events.TypeLowStockDetected, events.LowStockDetected{
		Count: 1,
		Items: []events.LowStockItem{{ProductID: "p1", Name: "Webcam", SKU: "WC-1", Quantity: 2, ReorderLevel: 15}},
	})

	require.NoError(t, handler.HandleEvent(context.Background(), nil, value))
	require.Len(t, mailer.alerts, 1)
	assert.Equal(t, "Webcam", mailer.alerts[0][0].Name)
}

func TestHandler_LowStock_EmptyScanIgnored(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewHandler(mailer, "ops@inventra.example")

	value := marshalEvent(t, events.TypeLowStockDetected, events.LowStockDetected{Count: 0})

	require.NoError(t, handler.HandleEvent(context.Background(), nil, value))
	assert.Empty(t, mailer.alerts)
}

func TestHandler_UnknownEventIgnored(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewHandler(mailer, "ops@inventra.example")

	value := marshalEvent(t, "SomethingElse", map[string]string{"k": "v"})

	require.NoError(t, handler.HandleEvent(context.Background(), nil, value))
	assert.Empty(t, mailer.confirmations)
	assert.Empty(t, mailer.alerts)
}

func TestHandler_MalformedEvent(t *testing.T) {
	handler := NewHandler(&fakeMailer{}, "ops@inventra.example")
	err := handler.HandleEvent(context.Background(), nil, []byte("not-json"))
	assert.Error(t, err)
}
