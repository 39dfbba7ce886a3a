package autobalance

import (
	"errors"
	"fmt"
	"math"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/classify"
	"Whirligig/internal/calc/physics"
)

// DefaultTarget is the middle of the sweet band, in percent of exposed length.
const DefaultTarget = 100 * (classify.SweetStartFraction + classify.SweetEndFraction) / 2

const (
	maxIterations = 60
	tolerance     = 0.01 // CG percent
)

var ErrTarget = errors.New("target CG must be in (0,100) percent")

type Result struct {
	Parameters  blade.Parameters `json:"parameters"`
	Field       string           `json:"field"`
	Value       float64          `json:"value"`
	CGPercent   float64          `json:"cg_percent"`
	Iterations  int              `json:"iterations"`
	Converged   bool             `json:"converged"`
	InSweetSpot bool             `json:"in_sweet_spot"`
	Notes       string           `json:"notes"`
}

// knob is the one parameter tuned for a tip style. CG grows with it.
type knob struct {
	field  string
	lo, hi float64
	set    func(*blade.Parameters, float64)
}

func knobFor(p blade.Parameters) knob {
	if p.TipStyle == blade.TipRounded {
		return knob{
			field: "tip_width",
			lo:    0.25 * p.RootWidth,
			hi:    2 * p.RootWidth,
			set:   func(p *blade.Parameters, v float64) { p.TipWidth = v },
		}
	}
	return knob{
		field: "width_position",
		lo:    0.05,
		hi:    0.95,
		set:   func(p *blade.Parameters, v float64) { p.WidthPosition = v },
	}
}

// Balance moves the swell (leaf) or the tip width (rounded) until the CG
// sits at target percent of the exposed length. A target of 0 means
// DefaultTarget. When the target is out of reach the closest end of the
// range is returned with Converged false.
func Balance(p blade.Parameters, target float64) (Result, error) {
	if target == 0 {
		target = DefaultTarget
	}
	if target <= 0 || target >= 100 || math.IsNaN(target) {
		return Result{}, fmt.Errorf("%w, got %g", ErrTarget, target)
	}
	if err := blade.Validate(p); err != nil {
		return Result{}, err
	}

	k := knobFor(p)
	cgAt := func(v float64) float64 {
		q := p
		k.set(&q, v)
		return physics.Solve(q).CGPercent
	}

	lo, hi := k.lo, k.hi
	fLo, fHi := cgAt(lo), cgAt(hi)
	value, iterations := 0.0, 0
	switch {
	case target <= fLo:
		value = lo
	case target >= fHi:
		value = hi
	default:
		for iterations < maxIterations {
			iterations++
			mid := (lo + hi) / 2
			f := cgAt(mid)
			if math.Abs(f-target) <= tolerance {
				lo, hi = mid, mid
				break
			}
			if f < target {
				lo = mid
			} else {
				hi = mid
			}
		}
		value = (lo + hi) / 2
	}

	tuned := p
	k.set(&tuned, value)
	m := physics.Solve(tuned)
	c := classify.Classify(tuned, m)
	res := Result{
		Parameters:  tuned,
		Field:       k.field,
		Value:       value,
		CGPercent:   m.CGPercent,
		Iterations:  iterations,
		Converged:   math.Abs(m.CGPercent-target) <= tolerance,
		InSweetSpot: c.InSweetSpot,
	}
	if res.Converged {
		res.Notes = fmt.Sprintf("Set %s to %.3f for CG at %.2f%%.", k.field, value, m.CGPercent)
	} else {
		res.Notes = fmt.Sprintf("Target %.2f%% is out of reach by %s alone; closest is %.2f%%.", target, k.field, m.CGPercent)
	}
	return res, nil
}
