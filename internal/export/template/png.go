package template

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/contour"
)

const (
	DPI = 150

	margin  = 0.5 // in
	caption = 0.6 // in, band under the part for the scale bar and text
)

// Size returns the image size in pixels.
func Size(p blade.Parameters) (width, height int) {
	return px(p.TotalLength() + 2*margin), px(p.MaxWidth() + 2*margin + caption)
}

// ScaleBar is the reference length drawn under the part for unit u.
func ScaleBar(u blade.Unit) (inches float64, label string) {
	if u == blade.Millimeters {
		return 50 / blade.MillimetersPerInch, "50 mm"
	}
	return 1, "1 in"
}

// Render draws a printable 1:1 template at DPI without the kerf offset.
func Render(w io.Writer, p blade.Parameters, m metrics.DerivedMetrics, u blade.Unit) error {
	dc := draw(p, m, u)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func Image(p blade.Parameters, m metrics.DerivedMetrics, u blade.Unit) image.Image {
	return draw(p, m, u).Image()
}

func draw(p blade.Parameters, m metrics.DerivedMetrics, u blade.Unit) *gg.Context {
	width, height := Size(p)
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	ox, oy := p.TabLength+margin, margin+p.MaxWidth()/2
	at := func(pt contour.Point) (float64, float64) {
		return (pt.X + ox) * DPI, (pt.Y + oy) * DPI
	}

	trace(dc, contour.Build(p, 1, false), at)
	dc.SetRGB(0.9, 0.9, 0.9)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()

	// hub face
	x, y0 := at(contour.Pt(0, -p.MaxWidth()/2))
	_, y1 := at(contour.Pt(0, p.MaxWidth()/2))
	dc.SetDash(4, 4)
	dc.SetRGB(0.5, 0.5, 0.5)
	dc.DrawLine(x, y0, x, y1)
	dc.Stroke()
	dc.SetDash()

	if c, r, ok := contour.PinHoleCenter(p, 1); ok {
		cx, cy := at(c)
		dc.DrawCircle(cx, cy, r*DPI)
		dc.SetRGB(1, 1, 1)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.Stroke()
	}

	barIn, label := ScaleBar(u)
	bx := margin * DPI
	by := (margin + p.MaxWidth() + caption/3) * DPI
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.DrawLine(bx, by, bx+barIn*DPI, by)
	dc.Stroke()
	dc.DrawStringAnchored(label, bx+barIn*DPI+8, by, 0, 0.35)

	dc.DrawString(Caption(m, u), bx, (margin+p.MaxWidth()+caption*0.85)*DPI)
	return dc
}

func trace(dc *gg.Context, path contour.Path, at func(contour.Point) (float64, float64)) {
	for _, el := range path {
		switch el.Kind {
		case contour.MoveToKind:
			dc.MoveTo(at(el.P0))
		case contour.LineToKind:
			dc.LineTo(at(el.P0))
		case contour.QuadToKind:
			x1, y1 := at(el.P0)
			x2, y2 := at(el.P1)
			dc.QuadraticTo(x1, y1, x2, y2)
		case contour.CubicToKind:
			x1, y1 := at(el.P0)
			x2, y2 := at(el.P1)
			x3, y3 := at(el.P2)
			dc.CubicTo(x1, y1, x2, y2, x3, y3)
		case contour.ClosePathKind:
			dc.ClosePath()
		}
	}
}

func Caption(m metrics.DerivedMetrics, u blade.Unit) string {
	return fmt.Sprintf("CG %s (%.1f%%)  sweet spot %s - %s  %s / %s",
		blade.Format(m.CGX, u), m.CGPercent,
		blade.Format(m.SweetStart, u), blade.Format(m.SweetEnd, u),
		m.Sensitivity, m.FlywheelRating)
}

func px(inches float64) int {
	return int(math.Round(inches * DPI))
}
