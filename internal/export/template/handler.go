package template

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

// PNG renders the template. ?unit=mm switches the scale bar and caption.
func (h *Handler) PNG(w http.ResponseWriter, r *http.Request) {
	unit, err := blade.ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
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

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename=\"blade.png\"")
	if err := Render(w, p, m, unit); err != nil && h.Log != nil {
		logging.FromContext(r.Context(), h.Log).Error("render png", zap.Error(err))
	}
}
