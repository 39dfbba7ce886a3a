package metrics

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"Whirligig/internal/blade"
	"Whirligig/internal/logging"
)

type Handler struct {
	Cache *Cache
	Log   *zap.Logger
}

// Calc accepts a parameter document (JSON, or YAML with preset/unit keys)
// and replies with its metrics. Degenerate geometry is still reported, with
// status 422.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	p, err := blade.Load(r.Body)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Cache.Calculate(p)
	status := StatusFor(err)
	if status == http.StatusBadRequest {
		http.Error(w, err.Error(), status)
		return
	}
	if status == http.StatusUnprocessableEntity && h.Log != nil {
		logging.FromContext(r.Context(), h.Log).Warn("degenerate blade", zap.Float64("exposed_length", p.ExposedLength))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res)
}

// StatusFor maps a calculation error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, blade.ErrInvalidParameters):
		return http.StatusBadRequest
	case errors.Is(err, ErrDegenerate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
