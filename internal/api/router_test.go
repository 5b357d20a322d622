package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inventra/internal/analytics"
	"github.com/example/inventra/internal/auth"
	"github.com/example/inventra/internal/catalog"
	"github.com/example/inventra/internal/insight"
	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/ordering"
	"github.com/example/inventra/internal/store/mocks"
)

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, string) (string, error) {
	return "generated insight", nil
}

type testServer struct {
	router     http.Handler
	jwtService *auth.JWTService
	products   *mocks.MemoryProductStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	products := mocks.NewMemoryProductStore()
	suppliers := mocks.NewMemorySupplierStore()
	orders := mocks.NewMemoryOrderStore(products)
	users := mocks.NewMemoryUserStore()

	jwtService := auth.NewJWTService("test-secret-key", 15*time.Minute)
	catalogSvc := catalog.NewService(products, suppliers)
	orderingSvc := ordering.NewService(products, orders, nil)
	analyticsSvc := analytics.NewService(products, orders, suppliers)
	insightSvc := insight.NewService(analyticsSvc, products, orders, stubGenerator{})

	router := NewRouter(
		NewAuthHandlers(users, jwtService),
		NewHandlers(catalogSvc, orderingSvc),
		NewAnalyticsHandlers(analyticsSvc, insightSvc),
		jwtService,
	)

	return &testServer{router: router, jwtService: jwtService, products: products}
}

func (ts *testServer) token(t *testing.T, role model.Role) string {
	t.Helper()
	token, _, err := ts.jwtService.GenerateToken("user-1", "user@example.com", role)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secretpassword",
		"role":     "manager",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, model.RoleManager, registered.User.Role)

	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "secretpassword",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Register_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secretpassword",
	}
	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "user already exists")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not authorized, no token")
}

func TestRouter_ProductMutationRequiresManagerRole(t *testing.T) {
	ts := newTestServer(t)
	product := map[string]any{
		"name": "Laptop", "sku": "LT-1", "category": "Electronics",
		"price": 999.99, "quantity": 10,
	}

	rec := ts.do(t, http.MethodPost, "/api/products", ts.token(t, model.RoleStaff), product)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/products", ts.token(t, model.RoleManager), product)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Staff can still read
	rec = ts.do(t, http.MethodGet, "/api/products", ts.token(t, model.RoleStaff), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ProductLifecycle(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, model.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/api/products", admin, map[string]any{
		"name": "Webcam", "sku": "WC-1", "category": "Accessories",
		"price": 49.99, "quantity": 2, "reorderLevel": 15,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = ts.do(t, http.MethodGet, "/api/products/lowstock", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var low []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &low))
	require.Len(t, low, 1)
	assert.Equal(t, created.ID, low[0].ID)

	rec = ts.do(t, http.MethodPatch, "/api/products/"+created.ID, admin, map[string]any{
		"quantity": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodDelete, "/api/products/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/products/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PlaceOrder(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, model.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/api/products", admin, map[string]any{
		"name": "Laptop", "sku": "LT-1", "category": "Electronics",
		"price": 1000.0, "quantity": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))

	// Staff may place orders
	staff := ts.token(t, model.RoleStaff)
	rec = ts.do(t, http.MethodPost, "/api/orders", staff, map[string]any{
		"customerName":  "Bob",
		"customerEmail": "bob@example.com",
		"products": []map[string]any{
			{"product": p.ID, "quantity": 3},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var o model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, 3000.0, o.TotalAmount)
	assert.Equal(t, model.StatusPending, o.Status)

	// Oversized order is rejected with 400
	rec = ts.do(t, http.MethodPost, "/api/orders", staff, map[string]any{
		"customerName":  "Bob",
		"customerEmail": "bob@example.com",
		"products": []map[string]any{
			{"product": p.ID, "quantity": 100},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient stock")

	// Status changes need manager or admin
	statusPath := fmt.Sprintf("/api/orders/%s/status", o.ID)
	rec = ts.do(t, http.MethodPatch, statusPath, staff, map[string]any{"status": "Shipped"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPatch, statusPath, admin, map[string]any{"status": "Shipped"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPatch, statusPath, admin, map[string]any{"status": "Cancelled"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AnalyticsAndInsights(t *testing.T) {
	ts := newTestServer(t)
	staff := ts.token(t, model.RoleStaff)

	rec := ts.do(t, http.MethodGet, "/api/analytics/dashboard", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "stats")
	assert.Contains(t, rec.Body.String(), "topProducts")

	rec = ts.do(t, http.MethodPost, "/api/analytics/ai-insights", staff, map[string]any{
		"query": "Which items are low on stock?",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "generated insight")

	rec = ts.do(t, http.MethodGet, "/api/analytics/report/weekly", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reportType":"weekly"`)

	rec = ts.do(t, http.MethodGet, "/api/analytics/smart-insights", staff, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/analytics/role-insights/manager", staff, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/analytics/role-insights/ghost", staff, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown role")

	rec = ts.do(t, http.MethodPost, "/api/analytics/predict-demand", staff, map[string]any{
		"productId": "missing",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
