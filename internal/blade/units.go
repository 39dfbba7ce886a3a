package blade

import (
	"fmt"
	"strconv"
)

const MillimetersPerInch = 25.4

type Unit string

const (
	Inches      Unit = "in"
	Millimeters Unit = "mm"
)

func ParseUnit(s string) (Unit, error) {
	switch s {
	case "", "in", "inch", "inches":
		return Inches, nil
	case "mm", "millimeters", "millimetres":
		return Millimeters, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// ToDisplay converts an internal length to u.
func ToDisplay(inches float64, u Unit) float64 {
	if u == Millimeters {
		return inches * MillimetersPerInch
	}
	return inches
}

func FromDisplay(v float64, u Unit) float64 {
	if u == Millimeters {
		return v / MillimetersPerInch
	}
	return v
}

// Format renders an internal length for display, e.g. "3.675 in" or "63.50 mm".
func Format(inches float64, u Unit) string {
	if u == Millimeters {
		return strconv.FormatFloat(inches*MillimetersPerInch, 'f', 2, 64) + " mm"
	}
	return strconv.FormatFloat(inches, 'f', 3, 64) + " in"
}

// ToMillimeters returns a copy of p with every length in millimeters.
// Fractions, the tip style and the leaf bluntness are left alone.
func ToMillimeters(p Parameters) Parameters {
	return scaleLengths(p, MillimetersPerInch)
}

func FromMillimeters(p Parameters) Parameters {
	return scaleLengths(p, 1/MillimetersPerInch)
}

// Scale multiplies every length field by f.
func Scale(p Parameters, f float64) Parameters {
	return scaleLengths(p, f)
}

func scaleLengths(p Parameters, f float64) Parameters {
	p.ExposedLength *= f
	p.TabLength *= f
	p.TabWidth *= f
	p.RootWidth *= f
	p.TipWidth *= f
	if p.TipStyle != TipLeaf {
		p.TipRadius *= f
	}
	p.KerfOffset *= f
	p.PinHole.Diameter *= f
	p.PinHole.OffsetFromHub *= f
	return p
}
