package metrics

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/classify"
	"Whirligig/internal/calc/physics"
	"Whirligig/internal/contour"
)

var ErrDegenerate = errors.New("degenerate blade geometry")

// DerivedMetrics is everything computed from one parameter set.
type DerivedMetrics struct {
	CGX              float64              `json:"cg_x"`
	CGPercent        float64              `json:"cg_percent"`
	SweetStart       float64              `json:"sweet_start"`
	SweetEnd         float64              `json:"sweet_end"`
	Sensitivity      classify.Sensitivity `json:"sensitivity"`
	FlywheelRating   classify.Flywheel    `json:"flywheel_rating"`
	MomentOfInertia  float64              `json:"moment_of_inertia"`
	TotalArea        float64              `json:"total_area"`
	TorqueDifficulty float64              `json:"torque_difficulty"`
	FlywheelScore    float64              `json:"flywheel_score"`
	InSweetSpot      bool                 `json:"in_sweet_spot"`
	Degenerate       bool                 `json:"degenerate"`
	Advice           []string             `json:"advice,omitempty"`
}

// Derive runs the solver and classifier without validation.
func Derive(p blade.Parameters) DerivedMetrics {
	m := physics.Solve(p)
	c := classify.Classify(p, m)
	return DerivedMetrics{
		CGX:              m.CGX,
		CGPercent:        m.CGPercent,
		SweetStart:       c.SweetStart,
		SweetEnd:         c.SweetEnd,
		Sensitivity:      c.Sensitivity,
		FlywheelRating:   c.Flywheel,
		MomentOfInertia:  m.MomentOfInertia,
		TotalArea:        m.TotalArea,
		TorqueDifficulty: c.TorqueDifficulty,
		FlywheelScore:    c.FlywheelScore,
		InSweetSpot:      c.InSweetSpot,
		Degenerate:       m.Degenerate,
		Advice:           c.Advice,
	}
}

// Calculate validates p and derives its metrics. Degenerate geometry is
// returned alongside ErrDegenerate so callers can still inspect it.
func Calculate(p blade.Parameters) (DerivedMetrics, error) {
	if err := blade.Validate(p); err != nil {
		return DerivedMetrics{}, err
	}
	d := Derive(p)
	if d.Degenerate {
		return d, ErrDegenerate
	}
	return d, nil
}

type Evaluation struct {
	Metrics DerivedMetrics `json:"metrics"`
	Contour contour.Path   `json:"contour"`
}

// Evaluate computes metrics and the outline concurrently. Both only read p.
func Evaluate(ctx context.Context, p blade.Parameters, scale float64, kerf bool) (Evaluation, error) {
	var ev Evaluation
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := Calculate(p)
		ev.Metrics = d
		return err
	})
	g.Go(func() error {
		ev.Contour = contour.Build(p, scale, kerf)
		return nil
	})
	if err := g.Wait(); err != nil {
		return ev, fmt.Errorf("evaluate blade: %w", err)
	}
	return ev, ctx.Err()
}
