package contour

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Whirligig/internal/blade"
)

type PinHoleShape struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

type Response struct {
	Data     string        `json:"data"`
	Elements Path          `json:"elements"`
	Bounds   Rect          `json:"bounds"`
	PinHole  *PinHoleShape `json:"pin_hole,omitempty"`
}

type Handler struct{}

// Calc builds the outline for the posted parameters. Query values scale
// (units per inch, default 1) and kerf (default false) pick the rendition.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	scale := 1.0
	if v := r.URL.Query().Get("scale"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil || s <= 0 {
			http.Error(w, "Invalid scale", http.StatusBadRequest)
			return
		}
		scale = s
	}
	kerf := false
	if v := r.URL.Query().Get("kerf"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "Invalid kerf", http.StatusBadRequest)
			return
		}
		kerf = b
	}

	p, err := blade.Load(r.Body)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := blade.Validate(p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	path := Build(p, scale, kerf)
	res := Response{Data: path.Data(), Elements: path, Bounds: path.ControlBox()}
	if c, radius, ok := PinHoleCenter(p, scale); ok {
		res.PinHole = &PinHoleShape{Center: c, Radius: radius}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
