package classify

import (
	"fmt"
	"math"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/physics"
)

type Sensitivity string

const (
	SensitivityLow      Sensitivity = "Low"
	SensitivityModerate Sensitivity = "Moderate"
	SensitivityHigh     Sensitivity = "High"
)

type Flywheel string

const (
	FlywheelSnappy    Flywheel = "Snappy"
	FlywheelSteady    Flywheel = "Steady"
	FlywheelHighCoast Flywheel = "HighCoast"
)

// Calibration for the 3in hub at 25 degrees pitch, lengths in inches.
// A different unit system needs new constants, not converted inputs.
const (
	SweetStartFraction = 0.35
	SweetEndFraction   = 0.42

	HubPitchDegrees   = 25.0
	TorqueReference   = 0.42
	CGReference       = 40.0
	InertiaNormalizer = 100.0

	heavyTipThreshold = 1.2
	moderateThreshold = 0.9
	highCoastScore    = 14.0
	steadyScore       = 8.0
)

type Result struct {
	SweetStart       float64     `json:"sweet_start"`
	SweetEnd         float64     `json:"sweet_end"`
	TorqueDifficulty float64     `json:"torque_difficulty"`
	FlywheelScore    float64     `json:"flywheel_score"`
	Sensitivity      Sensitivity `json:"sensitivity"`
	Flywheel         Flywheel    `json:"flywheel_rating"`
	InSweetSpot      bool        `json:"in_sweet_spot"`
	Advice           []string    `json:"advice,omitempty"`
}

func Classify(p blade.Parameters, m physics.Result) Result {
	res := Result{
		SweetStart: SweetStartFraction * p.ExposedLength,
		SweetEnd:   SweetEndFraction * p.ExposedLength,
	}

	pitchFactor := math.Sin(HubPitchDegrees * math.Pi / 180)
	res.TorqueDifficulty = (m.CGPercent / CGReference) * (pitchFactor / TorqueReference)
	res.Sensitivity = sensitivity(res.TorqueDifficulty)

	res.FlywheelScore = m.MomentOfInertia / InertiaNormalizer
	res.Flywheel = flywheel(res.FlywheelScore)

	res.InSweetSpot = m.CGX >= res.SweetStart && m.CGX <= res.SweetEnd
	res.Advice = advise(p, m, res)
	return res
}

func sensitivity(torqueDifficulty float64) Sensitivity {
	switch {
	case torqueDifficulty > heavyTipThreshold:
		return SensitivityLow // heavy tip
	case torqueDifficulty > moderateThreshold:
		return SensitivityModerate
	default:
		return SensitivityHigh
	}
}

func flywheel(score float64) Flywheel {
	switch {
	case score > highCoastScore:
		return FlywheelHighCoast
	case score > steadyScore:
		return FlywheelSteady
	default:
		return FlywheelSnappy
	}
}

func advise(p blade.Parameters, m physics.Result, res Result) []string {
	if m.Degenerate {
		return []string{"Geometry is degenerate; check exposed length and widths."}
	}
	var out []string
	switch {
	case m.CGX < res.SweetStart:
		out = append(out, fmt.Sprintf("CG is %.2f in short of the sweet spot; move mass toward the tip.", res.SweetStart-m.CGX))
		if p.TipStyle == blade.TipLeaf {
			out = append(out, "Move the swell outward or widen the tip.")
		} else {
			out = append(out, "Widen the tip or narrow the root.")
		}
	case m.CGX > res.SweetEnd:
		out = append(out, fmt.Sprintf("CG is %.2f in past the sweet spot; move mass toward the hub.", m.CGX-res.SweetEnd))
		if p.TipStyle == blade.TipLeaf {
			out = append(out, "Move the swell inward or sharpen the taper.")
		} else {
			out = append(out, "Narrow the tip or widen the root.")
		}
	}
	if res.Sensitivity == SensitivityLow {
		out = append(out, "Heavy tip: the rotor will need a stronger gust to start.")
	}
	if res.Flywheel == FlywheelSnappy {
		out = append(out, "Low inertia: expect the rotor to stall between gusts.")
	}
	return out
}
