package blade

import (
	"errors"
	"fmt"
)

type TipStyle string

const (
	TipLeaf    TipStyle = "leaf"
	TipRounded TipStyle = "rounded"
)

var ErrInvalidParameters = errors.New("invalid blade parameters")

type PinHole struct {
	Present       bool    `json:"present" yaml:"present"`
	Diameter      float64 `json:"diameter" yaml:"diameter"`
	OffsetFromHub float64 `json:"offset_from_hub" yaml:"offset_from_hub"`
}

// Parameters describes one blade. All lengths are inches.
//
// TipRadius is a length for the rounded family and a 0..1 bluntness weight
// for the leaf family.
type Parameters struct {
	ExposedLength  float64  `json:"exposed_length" yaml:"exposed_length"`
	TabLength      float64  `json:"tab_length" yaml:"tab_length"`
	TabWidth       float64  `json:"tab_width" yaml:"tab_width"`
	RootWidth      float64  `json:"root_width" yaml:"root_width"`
	TipWidth       float64  `json:"tip_width" yaml:"tip_width"`
	TipRadius      float64  `json:"tip_radius" yaml:"tip_radius"`
	WidthPosition  float64  `json:"width_position" yaml:"width_position"`
	TaperSharpness float64  `json:"taper_sharpness" yaml:"taper_sharpness"`
	EdgeCurvature  float64  `json:"edge_curvature" yaml:"edge_curvature"`
	TipStyle       TipStyle `json:"tip_style" yaml:"tip_style"`
	KerfOffset     float64  `json:"kerf_offset" yaml:"kerf_offset"`
	PinHole        PinHole  `json:"pin_hole" yaml:"pin_hole"`
}

// MaxWidth is the widest of the tab, root and nominal tip widths.
func (p Parameters) MaxWidth() float64 {
	return max(p.RootWidth, p.TabWidth, p.TipWidth)
}

// TotalLength runs from the tab end to the tip.
func (p Parameters) TotalLength() float64 {
	return p.ExposedLength + p.TabLength
}

// Validate checks the input boundary rules. The geometry functions never call
// it; out-of-range values fed to them propagate as degenerate results.
func Validate(p Parameters) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(p.ExposedLength > 0, "exposed_length must be > 0, got %g", p.ExposedLength)
	check(p.TabLength >= 0, "tab_length must be >= 0, got %g", p.TabLength)
	check(p.TabWidth >= 0, "tab_width must be >= 0, got %g", p.TabWidth)
	check(p.RootWidth >= 0, "root_width must be >= 0, got %g", p.RootWidth)
	check(p.TipWidth >= 0, "tip_width must be >= 0, got %g", p.TipWidth)
	check(p.TipRadius >= 0, "tip_radius must be >= 0, got %g", p.TipRadius)
	check(p.KerfOffset >= 0, "kerf_offset must be >= 0, got %g", p.KerfOffset)

	switch p.TipStyle {
	case TipLeaf:
		check(p.WidthPosition > 0 && p.WidthPosition < 1, "width_position must be in (0,1), got %g", p.WidthPosition)
		check(p.TaperSharpness >= 0 && p.TaperSharpness <= 1, "taper_sharpness must be in [0,1], got %g", p.TaperSharpness)
		check(p.TipRadius <= 1, "tip_radius is a bluntness fraction for leaf tips and must be <= 1, got %g", p.TipRadius)
	case TipRounded:
		check(p.EdgeCurvature > 0 && p.EdgeCurvature < 1, "edge_curvature must be in (0,1), got %g", p.EdgeCurvature)
	default:
		errs = append(errs, fmt.Errorf("unknown tip_style %q", p.TipStyle))
	}

	if p.PinHole.Present {
		check(p.PinHole.Diameter >= 0, "pin_hole.diameter must be >= 0, got %g", p.PinHole.Diameter)
		check(p.PinHole.OffsetFromHub >= 0, "pin_hole.offset_from_hub must be >= 0, got %g", p.PinHole.OffsetFromHub)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParameters, errors.Join(errs...))
}
