package batch

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/logging"
)

const maxUpload = 8 << 20

type Handler struct {
	Cache *metrics.Cache
	Log   *zap.Logger
}

func (h *Handler) JSON(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	out, err := Calculate(r.Context(), input.Items, h.Cache)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logDone(r, out)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Sheet takes a multipart "file" workbook. With ?output=xlsx the results
// come back as a workbook, otherwise as JSON.
func (h *Handler) Sheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	items, err := ImportSheet(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, err := Calculate(r.Context(), items, h.Cache)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logDone(r, out)

	if r.URL.Query().Get("output") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=\"blades.xlsx\"")
		if err := WriteSheet(w, out); err != nil {
			http.Error(w, "Workbook generation error", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) logDone(r *http.Request, out Output) {
	if h.Log == nil {
		return
	}
	logging.FromContext(r.Context(), h.Log).Info("batch evaluated",
		zap.Int("count", out.Count), zap.Int("failed", out.Failed))
}
