package blade

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct{}

// Preset serves GET /presets/{style}. ?unit=mm returns lengths in millimeters.
func (h *Handler) Preset(w http.ResponseWriter, r *http.Request) {
	p, err := Preset(TipStyle(mux.Vars(r)["style"]))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	unit, err := ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if unit == Millimeters {
		p = ToMillimeters(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Switch serves POST /blade/tip-style/{style}: the posted parameters moved
// to another tip family.
func (h *Handler) Switch(w http.ResponseWriter, r *http.Request) {
	p, err := Load(r.Body)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	next, err := WithTipStyle(p, TipStyle(mux.Vars(r)["style"]))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(next)
}
