package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/logging"
)

type Input struct {
	Meta
	Unit       blade.Unit      `json:"unit"`
	Parameters json.RawMessage `json:"parameters"`
}

type Handler struct {
	Cache *metrics.Cache
	Log   *zap.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	unit, err := blade.ParseUnit(string(input.Unit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := blade.Load(bytes.NewReader(input.Parameters))
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	m, err := h.Cache.Calculate(p)
	if err != nil {
		http.Error(w, err.Error(), metrics.StatusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := Write(&buf, p, m, unit, input.Meta); err != nil {
		if h.Log != nil {
			logging.FromContext(r.Context(), h.Log).Error("report", zap.Error(err))
		}
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"blade.pdf\"")
	w.Write(buf.Bytes())
}
