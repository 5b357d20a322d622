package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/inventra/internal/api/middleware"
	"github.com/example/inventra/internal/auth"
	"github.com/example/inventra/internal/model"
)

// NewRouter wires the HTTP surface. Auth routes are public; everything else
// requires a valid bearer token, and mutations on products, suppliers, and
// order lifecycle additionally require the admin or manager role.
func NewRouter(authHandlers *AuthHandlers, handlers *Handlers, analyticsHandlers *AnalyticsHandlers, jwtService *auth.JWTService) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LogRequests)

	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/register", authHandlers.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandlers.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate(jwtService))

	manage := protected.NewRoute().Subrouter()
	manage.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))

	// Products
	protected.HandleFunc("/products", handlers.GetProducts).Methods(http.MethodGet)
	protected.HandleFunc("/products/lowstock", handlers.GetLowStockProducts).Methods(http.MethodGet)
	manage.HandleFunc("/products", handlers.CreateProduct).Methods(http.MethodPost)
	manage.HandleFunc("/products/{id}", handlers.UpdateProduct).Methods(http.MethodPatch)
	manage.HandleFunc("/products/{id}", handlers.DeleteProduct).Methods(http.MethodDelete)

	// Suppliers
	protected.HandleFunc("/suppliers", handlers.GetSuppliers).Methods(http.MethodGet)
	manage.HandleFunc("/suppliers", handlers.CreateSupplier).Methods(http.MethodPost)
	manage.HandleFunc("/suppliers/{id}", handlers.UpdateSupplier).Methods(http.MethodPatch)
	manage.HandleFunc("/suppliers/{id}", handlers.DeleteSupplier).Methods(http.MethodDelete)

	// Orders
	protected.HandleFunc("/orders", handlers.GetOrders).Methods(http.MethodGet)
	protected.HandleFunc("/orders", handlers.PlaceOrder).Methods(http.MethodPost)
	manage.HandleFunc("/orders/{id}/status", handlers.UpdateOrderStatus).Methods(http.MethodPatch)
	manage.HandleFunc("/orders/{id}", handlers.DeleteOrder).Methods(http.MethodDelete)

	// Analytics and AI insights
	protected.HandleFunc("/analytics/dashboard", analyticsHandlers.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/analytics/ai-insights", analyticsHandlers.AIInsights).Methods(http.MethodPost)
	protected.HandleFunc("/analytics/report/{reportType}", analyticsHandlers.GenerateReport).Methods(http.MethodGet)
	protected.HandleFunc("/analytics/predict-demand", analyticsHandlers.PredictDemand).Methods(http.MethodPost)
	protected.HandleFunc("/analytics/smart-insights", analyticsHandlers.SmartInsights).Methods(http.MethodGet)
	protected.HandleFunc("/analytics/role-insights/{role}", analyticsHandlers.RoleInsights).Methods(http.MethodGet)

	return r
}
