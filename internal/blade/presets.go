package blade

import "fmt"

// LeafPreset is the default leaf blade. Its CG sits near 40.7% of the exposed
// length with the standard 3in hub.
func LeafPreset() Parameters {
	return Parameters{
		ExposedLength:  10.5,
		TabLength:      1.0,
		TabWidth:       2.25,
		RootWidth:      1.75,
		TipWidth:       2.5,
		TipRadius:      0.65,
		WidthPosition:  0.6,
		TaperSharpness: 0.4,
		EdgeCurvature:  0.5,
		TipStyle:       TipLeaf,
		KerfOffset:     0.008,
		PinHole: PinHole{
			Present:       true,
			Diameter:      0.125,
			OffsetFromHub: 0.5,
		},
	}
}

func RoundedPreset() Parameters {
	return Parameters{
		ExposedLength:  10.5,
		TabLength:      1.0,
		TabWidth:       2.25,
		RootWidth:      2.0,
		TipWidth:       2.0,
		TipRadius:      0.9,
		WidthPosition:  0.5,
		TaperSharpness: 0.0,
		EdgeCurvature:  0.5,
		TipStyle:       TipRounded,
		KerfOffset:     0.008,
		PinHole: PinHole{
			Present:       true,
			Diameter:      0.125,
			OffsetFromHub: 0.5,
		},
	}
}

func Preset(style TipStyle) (Parameters, error) {
	switch style {
	case TipLeaf:
		return LeafPreset(), nil
	case TipRounded:
		return RoundedPreset(), nil
	default:
		return Parameters{}, fmt.Errorf("unknown tip style %q", style)
	}
}

// WithTipStyle switches p to another family. Shared fields (lengths of the
// blade and tab, kerf, pin hole) carry over; every family-specific field is
// reset to the target preset so no leaf value leaks into a rounded blade or
// the other way round.
func WithTipStyle(p Parameters, style TipStyle) (Parameters, error) {
	next, err := Preset(style)
	if err != nil {
		return Parameters{}, err
	}
	next.ExposedLength = p.ExposedLength
	next.TabLength = p.TabLength
	next.TabWidth = p.TabWidth
	next.KerfOffset = p.KerfOffset
	next.PinHole = p.PinHole
	return next, nil
}

// Base is the starting point for a parameter document: the named preset
// (leaf when neither name is given) switched to style when style names the
// other family, so family fields never leak across a switch.
func Base(preset, style TipStyle) (Parameters, error) {
	if preset == "" {
		preset = style
	}
	if preset == "" {
		preset = TipLeaf
	}
	p, err := Preset(preset)
	if err != nil {
		return Parameters{}, err
	}
	if style == "" || style == p.TipStyle {
		return p, nil
	}
	return WithTipStyle(p, style)
}
