package contour

import (
	"math"

	"Whirligig/internal/blade"
)

// segment is one piece of the +y half of the outline, running from the root
// toward the tip. Its start is the end of the previous segment.
type segment struct {
	kind ElementKind // QuadToKind or CubicToKind
	c1   Point
	c2   Point // unused for quads
	end  Point
}

// half is the +y side of the blade from the hub face to where the tip
// closure begins.
type half struct {
	start Point
	segs  []segment
}

// Build synthesizes the closed outline of p in units of scale per inch.
// With applyKerf every half-width, the tab end and the tip grow by
// KerfOffset. The path starts and ends at the -y corner of the tab end,
// runs along the -y edge to the tip and back along the mirrored +y edge.
// A non-positive scale yields an empty path.
func Build(p blade.Parameters, scale float64, applyKerf bool) Path {
	if scale <= 0 {
		return nil
	}
	k := 0.0
	if applyKerf {
		k = p.KerfOffset * scale
	}

	xTab := -p.TabLength*scale - k
	hTab := p.TabWidth/2*scale + k

	var h half
	var tip *segment
	if p.TipStyle == blade.TipRounded {
		h, tip = roundedHalf(p, scale, k)
	} else {
		h = leafHalf(p, scale, k)
	}

	var path Path
	path.MoveTo(Pt(xTab, -hTab))
	path.LineTo(Pt(0, -hTab))
	path.LineTo(h.start.Mirror())

	for _, s := range h.segs {
		emit(&path, s.kind, s.c1.Mirror(), s.c2.Mirror(), s.end.Mirror())
	}
	if tip != nil {
		emit(&path, tip.kind, tip.c1, tip.c2, tip.end)
	}
	for i := len(h.segs) - 1; i >= 0; i-- {
		s := h.segs[i]
		from := h.start
		if i > 0 {
			from = h.segs[i-1].end
		}
		// Reverse the segment: a cubic swaps its control points, a quad
		// keeps its one control point.
		c1 := s.c2
		if s.kind == QuadToKind {
			c1 = s.c1
		}
		emit(&path, s.kind, c1, s.c1, from)
	}

	path.LineTo(Pt(0, hTab))
	path.LineTo(Pt(xTab, hTab))
	path.LineTo(Pt(xTab, -hTab))
	path.ClosePath()
	return path
}

func emit(path *Path, kind ElementKind, c1, c2, end Point) {
	if kind == QuadToKind {
		path.QuadTo(c1, end)
		return
	}
	path.CubicTo(c1, c2, end)
}

// leafHalf fits four cubics through the profile: root to swell, swell to
// shoulder, shoulder to the tip approach, and the tip closure onto the axis.
// Knot heights are exact profile values and handles follow the profile
// slope. The profile has a corner at the swell, so the side arriving there is
// horizontal and the side leaving it takes the taper's one-sided slope.
func leafHalf(p blade.Parameters, scale, k float64) half {
	L := blade.ProfileLength(p)
	bX := blade.SwellPosition(p)
	d := L - bX
	sharp := clamp01(p.TaperSharpness)
	blunt := clamp01(p.TipRadius)

	knot := func(x float64) Point {
		return Pt(x*scale, blade.HalfWidthAt(x, p)*scale+k)
	}

	// Sharper tapers pull the approach knot back from the tip.
	xShoulder := bX + 0.5*d
	xApproach := bX + (0.85-0.15*sharp)*d

	root := knot(0)
	swell := knot(bX)
	shoulder := knot(xShoulder)
	approach := knot(xApproach)
	apex := Pt(L*scale+k, 0)

	dx := 1e-5 * L
	leave := (blade.HalfWidthAt(bX+dx, p) - blade.HalfWidthAt(bX, p)) / dx

	segs := []segment{
		hermite(root, swell, blade.Slope(0, p), 0),
		hermite(swell, shoulder, leave, blade.Slope(xShoulder, p)),
		hermite(shoulder, approach, blade.Slope(xShoulder, p), blade.Slope(xApproach, p)),
	}

	// Tip closure. Bluntness swings the end tangent from along the axis
	// (pointed) to across it (blunt); sharpness moves the apex handle inward.
	// The apex handle height puts the curve on the profile at t = 1/2.
	span := apex.X - approach.X
	c1 := Pt(approach.X+span/3, math.Max(approach.Y+blade.Slope(xApproach, p)*span/3, 0))
	c2x := apex.X - (1-blunt)*(span/3)*(1+0.5*sharp)
	xMid := (approach.X + 3*c1.X + 3*c2x + apex.X) / 8
	yMid := blade.HalfWidthAt(math.Min(xMid/scale, L), p)*scale + k
	c2 := Pt(c2x, math.Max((8*yMid-approach.Y-3*c1.Y)/3, 0))
	segs = append(segs, segment{kind: CubicToKind, c1: c1, c2: c2, end: apex})

	return half{start: root, segs: segs}
}

// hermite converts end points and dy/dx slopes to a cubic Bézier.
func hermite(a, b Point, ma, mb float64) segment {
	h := b.X - a.X
	return segment{
		kind: CubicToKind,
		c1:   Pt(a.X+h/3, math.Max(a.Y+ma*h/3, 0)),
		c2:   Pt(b.X-h/3, math.Max(b.Y-mb*h/3, 0)),
		end:  b,
	}
}

// roundedHalf carries the taper with two quadratics up to the start of the
// tip arc and returns the closing quadratic that spans the arc from the -y
// side to the +y side through the apex.
func roundedHalf(p blade.Parameters, scale, k float64) (half, *segment) {
	L := blade.ProfileLength(p)
	tipX := L*scale + k
	tipHalf := p.TipWidth/2*scale + k

	// The arc never starts behind the hub face.
	r := math.Min(p.TipRadius*scale, 0.3*p.TotalLength()*scale)
	r = max(min(r, tipHalf, L*scale), 0)

	knot := func(x float64) Point {
		return Pt(x*scale, blade.HalfWidthAt(x, p)*scale+k)
	}

	xArc := L - r/scale
	root := knot(0)
	mid := knot(xArc / 2)
	arc := knot(xArc)

	segs := []segment{
		throughProfile(p, root, mid, 0, xArc/2, scale, k),
		throughProfile(p, mid, arc, xArc/2, xArc, scale, k),
	}

	// A quadratic from (x, -y) to (x, y) with its control on the axis at
	// 2*tipX - x passes through (tipX, 0).
	tip := &segment{
		kind: QuadToKind,
		c1:   Pt(2*tipX-arc.X, 0),
		end:  arc,
	}
	return half{start: root, segs: segs}, tip
}

// throughProfile builds a quadratic from a to b whose control point is
// offset so the curve passes through the profile at the middle of [xa, xb].
func throughProfile(p blade.Parameters, a, b Point, xa, xb, scale, k float64) segment {
	xm := (xa + xb) / 2
	ym := blade.HalfWidthAt(xm, p)*scale + k
	return segment{
		kind: QuadToKind,
		c1:   Pt(xm*scale, 2*ym-(a.Y+b.Y)/2),
		end:  b,
	}
}

// PinHoleCenter is the centre of the alignment hole, OffsetFromHub back from
// the hub face on the long axis, and its radius, both in units of scale.
func PinHoleCenter(p blade.Parameters, scale float64) (Point, float64, bool) {
	if !p.PinHole.Present || p.PinHole.Diameter <= 0 {
		return Point{}, 0, false
	}
	return Pt(-p.PinHole.OffsetFromHub*scale, 0), p.PinHole.Diameter / 2 * scale, true
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
