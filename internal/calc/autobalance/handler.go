package autobalance

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"Whirligig/internal/blade"
)

// Input carries a parameter document that may name a preset and unit, as
// accepted by blade.Load.
type Input struct {
	Parameters json.RawMessage `json:"parameters"`
	Target     float64         `json:"target_cg_percent"`
}

type Handler struct{}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	p, err := blade.Load(bytes.NewReader(input.Parameters))
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Balance(p, input.Target)
	if err != nil {
		if errors.Is(err, ErrTarget) || errors.Is(err, blade.ErrInvalidParameters) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
