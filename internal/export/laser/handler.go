package laser

import (
	"net/http"

	"go.uber.org/zap"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/logging"
)

type Handler struct {
	Cache *metrics.Cache
	Log   *zap.Logger
}

func (h *Handler) SVG(w http.ResponseWriter, r *http.Request) {
	p, err := blade.Load(r.Body)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	m, err := h.Cache.Calculate(p)
	if err != nil {
		http.Error(w, err.Error(), metrics.StatusFor(err))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", "attachment; filename=\"blade.svg\"")
	if err := Write(w, p, m); err != nil && h.Log != nil {
		logging.FromContext(r.Context(), h.Log).Error("write svg", zap.Error(err))
	}
}
