package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/inventra/internal/analytics"
	"github.com/example/inventra/internal/insight"
)

// AnalyticsHandlers serves the dashboard aggregates and AI insight routes.
type AnalyticsHandlers struct {
	analytics *analytics.Service
	insights  *insight.Service
}

func NewAnalyticsHandlers(analyticsSvc *analytics.Service, insightSvc *insight.Service) *AnalyticsHandlers {
	return &AnalyticsHandlers{analytics: analyticsSvc, insights: insightSvc}
}

func (h *AnalyticsHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	top, err := h.analytics.TopProducts(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"stats":       stats,
		"topProducts": top,
	})
}

func (h *AnalyticsHandlers) AIInsights(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.insights.Ask(r.Context(), req.Query))
}

func (h *AnalyticsHandlers) GenerateReport(w http.ResponseWriter, r *http.Request) {
	reportType := mux.Vars(r)["reportType"]
	respondJSON(w, http.StatusOK, h.insights.Report(r.Context(), reportType))
}

func (h *AnalyticsHandlers) PredictDemand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Days      int    `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == "" {
		respondMessage(w, http.StatusBadRequest, "productId is required")
		return
	}

	prediction, err := h.insights.PredictDemand(r.Context(), req.ProductID, req.Days)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prediction)
}

func (h *AnalyticsHandlers) SmartInsights(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.insights.Smart(r.Context()))
}

func (h *AnalyticsHandlers) RoleInsights(w http.ResponseWriter, r *http.Request) {
	role := mux.Vars(r)["role"]

	result, err := h.insights.ForRole(r.Context(), role)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
