package physics

import (
	"math"

	"Whirligig/internal/blade"
)

const (
	HubDiameter = 3.0 // in
	HubRadius   = HubDiameter / 2

	// Slices is the midpoint-rule resolution over the exposed blade.
	Slices = 60

	// Epsilon floors every divisor. Results that hit it are flagged Degenerate.
	Epsilon = 1e-9
)

type Result struct {
	CGX             float64 `json:"cg_x"`
	CGPercent       float64 `json:"cg_percent"`
	MomentOfInertia float64 `json:"moment_of_inertia"`
	TotalArea       float64 `json:"total_area"`
	TabArea         float64 `json:"tab_area"`
	Degenerate      bool    `json:"degenerate"`
}

func Solve(p blade.Parameters) Result {
	return SolveN(p, Slices)
}

// SolveN integrates the planform with n midpoint slices. Area, first moment
// and second moment about the rotation axis (HubRadius in front of the root)
// are accumulated per unit thickness.
func SolveN(p blade.Parameters, n int) Result {
	if n < 1 {
		n = 1
	}

	// Tab sits hub-ward of the pivot; its centroid is at -TabLength/2.
	tabArea := p.TabLength * p.TabWidth
	totalArea := tabArea
	weightedX := -p.TabLength / 2 * tabArea
	inertia := 0.0

	dx := p.ExposedLength / float64(n)
	for i := 0; i < n; i++ {
		xMid := (float64(i) + 0.5) * dx
		width := 2 * blade.HalfWidthAt(xMid, p)
		area := width * dx

		totalArea += area
		weightedX += xMid * area
		r := HubRadius + xMid
		inertia += r * r * area
	}

	cgX := weightedX / math.Max(totalArea, Epsilon)
	return Result{
		CGX:             cgX,
		CGPercent:       100 * cgX / math.Max(p.ExposedLength, Epsilon),
		MomentOfInertia: inertia,
		TotalArea:       totalArea,
		TabArea:         tabArea,
		Degenerate:      totalArea < Epsilon || p.ExposedLength < Epsilon,
	}
}
