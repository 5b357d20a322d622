package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/inventra/internal/catalog"
	"github.com/example/inventra/internal/ordering"
)

// Handlers serves the product, supplier, and order routes.
type Handlers struct {
	catalog  *catalog.Service
	ordering *ordering.Service
}

func NewHandlers(catalogSvc *catalog.Service, orderingSvc *ordering.Service) *Handlers {
	return &Handlers{catalog: catalogSvc, ordering: orderingSvc}
}

// Product Handlers

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetLowStockProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListLowStock(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch catalog.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully")
}

// Supplier Handlers

func (h *Handlers) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var in catalog.SupplierInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.catalog.CreateSupplier(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, s)
}

func (h *Handlers) GetSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.catalog.ListSuppliers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}

func (h *Handlers) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch catalog.SupplierPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.catalog.UpdateSupplier(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (h *Handlers) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteSupplier(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Supplier deleted successfully")
}

// Order Handlers

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var in ordering.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.ordering.Place(r.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ordering.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.ordering.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.ordering.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Order deleted successfully")
}
