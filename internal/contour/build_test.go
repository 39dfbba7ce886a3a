package contour

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Whirligig/internal/blade"
)

const eps = 1e-9

func kinds(p Path) []ElementKind {
	out := make([]ElementKind, len(p))
	for i, el := range p {
		out[i] = el.Kind
	}
	return out
}

func evalCubic(p0 Point, el Element, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Pt(
		a*p0.X+b*el.P0.X+c*el.P1.X+d*el.P2.X,
		a*p0.Y+b*el.P0.Y+c*el.P1.Y+d*el.P2.Y,
	)
}

func evalQuad(p0 Point, el Element, t float64) Point {
	u := 1 - t
	return Pt(
		u*u*p0.X+2*u*t*el.P0.X+t*t*el.P1.X,
		u*u*p0.Y+2*u*t*el.P0.Y+t*t*el.P1.Y,
	)
}

func TestBuildIsClosed(t *testing.T) {
	for _, p := range []blade.Parameters{blade.LeafPreset(), blade.RoundedPreset()} {
		for _, kerf := range []bool{false, true} {
			path := Build(p, 1, kerf)
			require.True(t, path.Closed(eps), "%s kerf=%v", p.TipStyle, kerf)

			start, _ := path.Start()
			end, _ := path.End()
			assert.Equal(t, start, end)
			assert.Equal(t, Pt(-p.TabLength-kerfOf(p, kerf), -(p.TabWidth/2+kerfOf(p, kerf))), start)
		}
	}
}

func kerfOf(p blade.Parameters, on bool) float64 {
	if on {
		return p.KerfOffset
	}
	return 0
}

func TestBuildIsMirrorSymmetric(t *testing.T) {
	for _, p := range []blade.Parameters{blade.LeafPreset(), blade.RoundedPreset()} {
		pts := Build(p, 96, true).Points()
		for _, pt := range pts {
			found := false
			for _, q := range pts {
				if q.Near(pt.Mirror(), 1e-9) {
					found = true
					break
				}
			}
			assert.True(t, found, "%s: no mirror for %s", p.TipStyle, pt)
		}
	}
}

func TestBuildLeafStructure(t *testing.T) {
	p := blade.LeafPreset()
	path := Build(p, 1, false)

	want := []ElementKind{
		MoveToKind, LineToKind, LineToKind,
		CubicToKind, CubicToKind, CubicToKind, CubicToKind,
		CubicToKind, CubicToKind, CubicToKind, CubicToKind,
		LineToKind, LineToKind, LineToKind, ClosePathKind,
	}
	require.Equal(t, want, kinds(path))

	bX := blade.SwellPosition(p)
	assert.True(t, path[2].P0.Near(Pt(0, -p.RootWidth/2), eps))
	assert.True(t, path[3].P2.Near(Pt(bX, -p.TipWidth/2), eps))
	assert.True(t, path[6].P2.Near(Pt(p.ExposedLength, 0), eps))
	assert.True(t, path[9].P2.Near(Pt(bX, p.TipWidth/2), eps))
	assert.True(t, path[10].P2.Near(Pt(0, p.RootWidth/2), eps))
}

func TestBuildLeafFollowsProfile(t *testing.T) {
	p := blade.LeafPreset()
	path := Build(p, 1, false)

	// Cubics on the -y side are elements 3..6. The three body segments stay
	// within kerf of the profile; the tip closure is steep near the apex, so
	// it is pinned to the profile at its midpoint.
	for i := 3; i <= 5; i++ {
		start, _ := path[i-1].End()
		for tt := 0.05; tt < 1; tt += 0.05 {
			pt := evalCubic(start, path[i], tt)
			want := blade.HalfWidthAt(pt.X, p)
			assert.InDelta(t, want, -pt.Y, p.KerfOffset, "segment %d t=%g", i, tt)
		}
	}
	start, _ := path[5].End()
	mid := evalCubic(start, path[6], 0.5)
	assert.InDelta(t, blade.HalfWidthAt(mid.X, p), -mid.Y, eps)
	for tt := 0.05; tt < 1; tt += 0.05 {
		pt := evalCubic(start, path[6], tt)
		assert.InDelta(t, blade.HalfWidthAt(pt.X, p), -pt.Y, 0.05, "tip t=%g", tt)
	}
}

func TestBuildLeafBluntness(t *testing.T) {
	pointed := blade.LeafPreset()
	pointed.TipRadius = 0
	blunt := blade.LeafPreset()
	blunt.TipRadius = 1

	// The apex handle sits back along the axis for a pointed tip and
	// directly above the apex for a blunt one.
	pp := Build(pointed, 1, false)
	bp := Build(blunt, 1, false)
	assert.Less(t, pp[6].P1.X, pointed.ExposedLength)
	assert.Less(t, -pp[6].P1.Y, 0.01)
	assert.InDelta(t, blunt.ExposedLength, bp[6].P1.X, eps)
	assert.Less(t, bp[6].P1.Y, 0.0)
}

func TestBuildLeafSharpnessPullsApproachInward(t *testing.T) {
	soft := blade.LeafPreset()
	soft.TaperSharpness = 0
	sharp := blade.LeafPreset()
	sharp.TaperSharpness = 1
	assert.Greater(t, Build(soft, 1, false)[5].P2.X, Build(sharp, 1, false)[5].P2.X)
}

func TestBuildRoundedStructure(t *testing.T) {
	p := blade.RoundedPreset()
	path := Build(p, 1, false)

	want := []ElementKind{
		MoveToKind, LineToKind, LineToKind,
		QuadToKind, QuadToKind,
		QuadToKind,
		QuadToKind, QuadToKind,
		LineToKind, LineToKind, LineToKind, ClosePathKind,
	}
	require.Equal(t, want, kinds(path))

	r := p.TipRadius
	arcStart := path[4].P1
	assert.InDelta(t, p.ExposedLength-r, arcStart.X, eps)
	assert.InDelta(t, -blade.HalfWidthAt(p.ExposedLength-r, p), arcStart.Y, eps)

	// The closing quadratic passes through the apex.
	apex := evalQuad(arcStart, path[5], 0.5)
	assert.True(t, apex.Near(Pt(p.ExposedLength, 0), eps), "apex %s", apex)
}

func TestBuildRoundedPassesThroughProfile(t *testing.T) {
	p := blade.RoundedPreset()
	p.RootWidth = 1.5
	p.TipWidth = 2.75
	p.EdgeCurvature = 0.2
	path := Build(p, 1, false)

	for _, i := range []int{3, 4} {
		start, _ := path[i-1].End()
		mid := evalQuad(start, path[i], 0.5)
		assert.InDelta(t, blade.HalfWidthAt(mid.X, p), -mid.Y, eps, "segment %d", i)
	}
}

func TestBuildRoundedArcRadiusIsClamped(t *testing.T) {
	p := blade.RoundedPreset()
	p.TipRadius = 50
	path := Build(p, 1, false)

	// r is limited by the tip half-width (1.0) before 0.3 * total length (3.45).
	arcStart := path[4].P1
	assert.InDelta(t, p.ExposedLength-p.TipWidth/2, arcStart.X, eps)

	p.TipWidth = 20
	path = Build(p, 1, false)
	assert.InDelta(t, p.ExposedLength-0.3*p.TotalLength(), path[4].P1.X, eps)
}

func TestBuildRoundedShortBladeArcRadius(t *testing.T) {
	p := blade.RoundedPreset()
	p.ExposedLength = 2
	p.TabLength = 1
	p.TipWidth = 3
	p.TipRadius = 0.85

	// 0.3 * total length is 0.9, so the full radius fits.
	path := Build(p, 1, false)
	assert.InDelta(t, 2-0.85, path[4].P1.X, eps)

	p.TipRadius = 1.2
	path = Build(p, 1, false)
	assert.InDelta(t, 2-0.9, path[4].P1.X, eps)

	// A long tab never pushes the arc start behind the hub face.
	p.ExposedLength = 0.5
	p.TabLength = 3
	p.TipRadius = 2
	path = Build(p, 1, false)
	assert.InDelta(t, 0, path[4].P1.X, eps)
}

func TestBuildRoundedReturnKeepsControlPoints(t *testing.T) {
	p := blade.RoundedPreset()
	path := Build(p, 1, true)

	// Elements 3,4 run out along -y; 6,7 come back along +y in reverse.
	assert.Equal(t, path[4].P0.Mirror(), path[6].P0)
	assert.Equal(t, path[3].P0.Mirror(), path[7].P0)
	assert.Greater(t, path[6].P0.Y, 0.0)
}

func TestBuildRoundedSquareTip(t *testing.T) {
	p := blade.RoundedPreset()
	p.TipRadius = 0
	path := Build(p, 1, false)
	assert.InDelta(t, p.ExposedLength, path[5].P0.X, eps)
	assert.InDelta(t, p.ExposedLength, path[5].P1.X, eps)
}

func TestBuildScalesLinearly(t *testing.T) {
	for _, p := range []blade.Parameters{blade.LeafPreset(), blade.RoundedPreset()} {
		unit := Build(p, 1, true)
		big := Build(p, 150, true)

		var want Path
		for _, el := range unit {
			want = append(want, el.mapPoints(func(pt Point) Point { return Pt(pt.X*150, pt.Y*150) }))
		}
		if diff := cmp.Diff(want, big, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("%s: scaled path mismatch (-want +got):\n%s", p.TipStyle, diff)
		}
	}
}

func TestBuildKerfGrowsOutline(t *testing.T) {
	for _, p := range []blade.Parameters{blade.LeafPreset(), blade.RoundedPreset()} {
		plain := Build(p, 1, false)
		cut := Build(p, 1, true)
		k := p.KerfOffset

		// Every point of the -y edge moves outward.
		for i := 2; i < 5; i++ {
			a, _ := plain[i].End()
			b, _ := cut[i].End()
			assert.InDelta(t, a.Y-k, b.Y, eps, "%s element %d", p.TipStyle, i)
		}

		pb, cb := plain.ControlBox(), cut.ControlBox()
		assert.InDelta(t, pb.X0-k, cb.X0, eps)
		assert.InDelta(t, pb.Y1+k, cb.Y1, eps)
		assert.Greater(t, cb.X1, pb.X1)
	}
}

func TestBuildKerfOffIgnoresKerf(t *testing.T) {
	p := blade.LeafPreset()
	q := p
	q.KerfOffset = 0.5
	assert.Equal(t, Build(p, 1, false), Build(q, 1, false))
}

func TestBuildNonPositiveScale(t *testing.T) {
	assert.Empty(t, Build(blade.LeafPreset(), 0, false))
	assert.Empty(t, Build(blade.LeafPreset(), -1, false))
}

func TestBuildHasNoNaN(t *testing.T) {
	p := blade.LeafPreset()
	p.ExposedLength = 0
	r := blade.RoundedPreset()
	r.ExposedLength = 0
	for _, q := range []blade.Parameters{p, r} {
		for _, pt := range Build(q, 1, true).Points() {
			require.False(t, math.IsNaN(pt.X) || math.IsNaN(pt.Y), "%s: %s", q.TipStyle, pt)
		}
	}
}

func TestPinHoleCenter(t *testing.T) {
	p := blade.LeafPreset()
	c, r, ok := PinHoleCenter(p, 2)
	require.True(t, ok)
	assert.Equal(t, Pt(-1, 0), c)
	assert.InDelta(t, 0.125, r, eps)

	p.PinHole.Present = false
	_, _, ok = PinHoleCenter(p, 2)
	assert.False(t, ok)
}
