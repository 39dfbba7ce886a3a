package blade

import "math"

// minProfileLength keeps the profile parameterisation finite for zero-length blades.
const minProfileLength = 0.1

// HalfWidthAt returns the half-width of the blade at x inches from the hub
// face. Negative x lies inside the tab.
func HalfWidthAt(x float64, p Parameters) float64 {
	if x < 0 {
		return p.TabWidth / 2
	}
	if p.TipStyle == TipRounded {
		return roundedHalfWidth(x, p)
	}
	return leafHalfWidth(x, p)
}

// leafHalfWidth eases from the root to the swell, then blends a power-law
// point with a quarter circle, weighted by bluntness, down to zero at the tip.
func leafHalfWidth(x float64, p Parameters) float64 {
	L := ProfileLength(p)
	hRoot := p.RootWidth / 2
	hMax := p.TipWidth / 2
	bX := L * p.WidthPosition

	if x <= bX {
		t := ratio(x, bX)
		return hRoot + (hMax-hRoot)*math.Sin(t*math.Pi/2)
	}

	t := clamp01(ratio(x-bX, L-bX))
	bluntness := clamp01(p.TipRadius)
	sharpnessExp := 1 + 3*p.TaperSharpness

	power := math.Pow(math.Max(1-t, 0), sharpnessExp)
	circle := math.Sqrt(math.Max(1-t*t, 0))
	return math.Max(hMax*(power*(1-bluntness)+circle*bluntness), 0)
}

// roundedHalfWidth follows t^p from root to tip width and is clipped by a
// circular cap of radius TipRadius at the tip.
func roundedHalfWidth(x float64, p Parameters) float64 {
	L := ProfileLength(p)
	hRoot := p.RootWidth / 2
	hMax := p.TipWidth / 2

	t := clamp01(x / L)
	w := hRoot + (hMax-hRoot)*math.Pow(t, EdgeExponent(p.EdgeCurvature))

	r := p.TipRadius
	if r > 0 && x > L-r {
		q := (x - (L - r)) / r
		w = math.Min(w, hMax*math.Sqrt(math.Max(1-q*q, 0)))
	}
	return math.Max(w, 0)
}

// EdgeExponent maps edge curvature to the rounded taper exponent:
// below 0.5 the exponent grows past 1, above 0.5 it drops below 1, and 0.5
// gives a straight taper.
func EdgeExponent(edgeCurvature float64) float64 {
	if edgeCurvature < 0.5 {
		return 1 + (0.5-edgeCurvature)*4
	}
	return 1 / (1 + (edgeCurvature-0.5)*4)
}

// Slope is d(half-width)/dx at x, by central difference.
func Slope(x float64, p Parameters) float64 {
	h := 1e-5 * ProfileLength(p)
	lo := math.Max(x-h, 0)
	hi := x + h
	return (HalfWidthAt(hi, p) - HalfWidthAt(lo, p)) / (hi - lo)
}

// ProfileLength is the exposed length the profile is parameterised over.
// It only differs from ExposedLength for near-zero blades.
func ProfileLength(p Parameters) float64 {
	return math.Max(p.ExposedLength, minProfileLength)
}

// SwellPosition is the x of maximum width for leaf blades.
func SwellPosition(p Parameters) float64 {
	return ProfileLength(p) * p.WidthPosition
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 1
	}
	return num / den
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
