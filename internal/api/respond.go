package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/catalog"
	"github.com/example/inventra/internal/insight"
	"github.com/example/inventra/internal/ordering"
	"github.com/example/inventra/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps the error taxonomy to HTTP statuses. Every error
// body is {"message": "..."}.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, catalog.ErrValidation),
		errors.Is(err, ordering.ErrValidation),
		errors.Is(err, insight.ErrUnknownRole):
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		// Internal detail stays in the log; clients get a generic body.
		log.WithField("err", err).Error("request failed")
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
