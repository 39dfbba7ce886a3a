package contour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Mirror reflects the point across the long axis.
func (pt Point) Mirror() Point {
	return Point{X: pt.X, Y: -pt.Y}
}

func (pt Point) Translate(dx, dy float64) Point {
	return Point{X: pt.X + dx, Y: pt.Y + dy}
}

func (pt Point) Near(o Point, tol float64) bool {
	return math.Abs(pt.X-o.X) <= tol && math.Abs(pt.Y-o.Y) <= tol
}

type ElementKind int

const (
	MoveToKind ElementKind = iota + 1
	LineToKind
	QuadToKind
	CubicToKind
	ClosePathKind
)

func (k ElementKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case QuadToKind:
		return "QuadTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return "InvalidElement"
	}
}

func (k ElementKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ElementKind) UnmarshalText(b []byte) error {
	for kind := MoveToKind; kind <= ClosePathKind; kind++ {
		if kind.String() == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown path element %q", b)
}

// Element is one path command. The end point of the command is always its
// last used point: P0 for moves and lines, P1 for quads, P2 for cubics.
type Element struct {
	Kind ElementKind `json:"kind"`
	P0   Point       `json:"p0"`
	P1   Point       `json:"p1"`
	P2   Point       `json:"p2"`
}

func (el Element) String() string {
	return fmt.Sprintf("%s(%s, %s, %s)", el.Kind, el.P0, el.P1, el.P2)
}

// End returns the pen position after el. ClosePath has none.
func (el Element) End() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

func (el Element) points() []Point {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return []Point{el.P0}
	case QuadToKind:
		return []Point{el.P0, el.P1}
	case CubicToKind:
		return []Point{el.P0, el.P1, el.P2}
	default:
		return nil
	}
}

func (el Element) mapPoints(f func(Point) Point) Element {
	switch el.Kind {
	case MoveToKind, LineToKind:
		el.P0 = f(el.P0)
	case QuadToKind:
		el.P0, el.P1 = f(el.P0), f(el.P1)
	case CubicToKind:
		el.P0, el.P1, el.P2 = f(el.P0), f(el.P1), f(el.P2)
	}
	return el
}

// Path is a sequence of path elements.
type Path []Element

func (p *Path) MoveTo(pt Point) { *p = append(*p, Element{Kind: MoveToKind, P0: pt}) }

func (p *Path) LineTo(pt Point) { *p = append(*p, Element{Kind: LineToKind, P0: pt}) }

// QuadTo draws a quadratic Bézier with control point c.
func (p *Path) QuadTo(c, end Point) {
	*p = append(*p, Element{Kind: QuadToKind, P0: c, P1: end})
}

// CubicTo draws a cubic Bézier with control points c1 and c2.
func (p *Path) CubicTo(c1, c2, end Point) {
	*p = append(*p, Element{Kind: CubicToKind, P0: c1, P1: c2, P2: end})
}

func (p *Path) ClosePath() { *p = append(*p, Element{Kind: ClosePathKind}) }

// Start is the first MoveTo point.
func (p Path) Start() (Point, bool) {
	if len(p) == 0 || p[0].Kind != MoveToKind {
		return Point{}, false
	}
	return p[0].P0, true
}

// End is the last pen position, ignoring a trailing ClosePath.
func (p Path) End() (Point, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if pt, ok := p[i].End(); ok {
			return pt, true
		}
	}
	return Point{}, false
}

// Closed reports whether the path ends where it started and carries a ClosePath.
func (p Path) Closed(tol float64) bool {
	if len(p) < 2 || p[len(p)-1].Kind != ClosePathKind {
		return false
	}
	start, ok := p.Start()
	if !ok {
		return false
	}
	end, _ := p.End()
	return start.Near(end, tol)
}

// Points lists every end and control point in order.
func (p Path) Points() []Point {
	var out []Point
	for _, el := range p {
		out = append(out, el.points()...)
	}
	return out
}

func (p Path) Translate(dx, dy float64) Path {
	out := make(Path, len(p))
	for i, el := range p {
		out[i] = el.mapPoints(func(pt Point) Point { return pt.Translate(dx, dy) })
	}
	return out
}

type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// ControlBox is the bounding box of every end and control point. It contains
// the curve itself.
func (p Path) ControlBox() Rect {
	pts := p.Points()
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{X0: pts[0].X, Y0: pts[0].Y, X1: pts[0].X, Y1: pts[0].Y}
	for _, pt := range pts[1:] {
		r.X0 = math.Min(r.X0, pt.X)
		r.Y0 = math.Min(r.Y0, pt.Y)
		r.X1 = math.Max(r.X1, pt.X)
		r.Y1 = math.Max(r.Y1, pt.Y)
	}
	return r
}

// Data renders the path as SVG path data with absolute commands.
func (p Path) Data() string {
	var b strings.Builder
	for i, el := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch el.Kind {
		case MoveToKind:
			b.WriteString("M")
			writePts(&b, el.P0)
		case LineToKind:
			b.WriteString("L")
			writePts(&b, el.P0)
		case QuadToKind:
			b.WriteString("Q")
			writePts(&b, el.P0, el.P1)
		case CubicToKind:
			b.WriteString("C")
			writePts(&b, el.P0, el.P1, el.P2)
		case ClosePathKind:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func writePts(b *strings.Builder, pts ...Point) {
	for i, pt := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatNum(pt.X))
		b.WriteByte(',')
		b.WriteString(FormatNum(pt.Y))
	}
}

// FormatNum prints v with at most 5 decimals and no trailing zeros.
func FormatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 5, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
