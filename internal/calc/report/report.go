package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/phpdave11/gofpdf"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/contour"
	"Whirligig/internal/export/template"
)

const (
	pageHeight   = 8.5 // in
	minPageWidth = 11.0
	margin       = 0.75
	partTop      = 1.6
)

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

// PageWidth is wide enough for the part at 1:1 with a margin on each side.
func PageWidth(p blade.Parameters) float64 {
	return math.Max(minPageWidth, p.TotalLength()+2*margin)
}

// Write renders a printable report with the outline at true size. Lengths
// in the text use unit u; the drawing is always 1:1.
func Write(w io.Writer, p blade.Parameters, m metrics.DerivedMetrics, u blade.Unit, meta Meta) error {
	if meta.Title == "" {
		meta.Title = "Whirligig Blade Template"
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: PageWidth(p), Ht: pageHeight},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 0.3, meta.Title)
	pdf.Ln(0.35)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 0.2, fmt.Sprintf("Project: %s    Author: %s    Date: %s",
		meta.Project, meta.Author, time.Now().Format("2006-01-02")))
	pdf.Ln(0.2)
	pdf.Cell(0, 0.2, fmt.Sprintf("%s tip, print at 100%% scale", p.TipStyle))

	ox := margin + p.TabLength
	oy := partTop + p.MaxWidth()/2
	drawOutline(pdf, contour.Build(p, 1, false), ox, oy)
	if c, r, ok := contour.PinHoleCenter(p, 1); ok {
		pdf.Circle(c.X+ox, c.Y+oy, r, "D")
	}

	// hub face
	pdf.SetDashPattern([]float64{0.05, 0.05}, 0)
	pdf.SetDrawColor(128, 128, 128)
	pdf.Line(ox, oy-p.MaxWidth()/2-0.1, ox, oy+p.MaxWidth()/2+0.1)
	pdf.SetDashPattern(nil, 0)
	pdf.SetDrawColor(0, 0, 0)

	y := partTop + p.MaxWidth() + 0.3
	barIn, label := template.ScaleBar(u)
	pdf.SetLineWidth(0.02)
	pdf.Line(margin, y, margin+barIn, y)
	pdf.SetLineWidth(0.01)
	pdf.Text(margin+barIn+0.1, y+0.05, label)

	pdf.SetXY(margin, y+0.3)
	table(pdf, rows(p, m, u))

	if len(m.Advice) > 0 || meta.Notes != "" {
		pdf.Ln(0.15)
		for _, a := range m.Advice {
			pdf.MultiCell(0, 0.2, "- "+a, "", "L", false)
		}
		if meta.Notes != "" {
			pdf.MultiCell(0, 0.2, meta.Notes, "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawOutline(pdf *gofpdf.Fpdf, path contour.Path, ox, oy float64) {
	pdf.SetLineWidth(0.01)
	for _, el := range path {
		switch el.Kind {
		case contour.MoveToKind:
			pdf.MoveTo(el.P0.X+ox, el.P0.Y+oy)
		case contour.LineToKind:
			pdf.LineTo(el.P0.X+ox, el.P0.Y+oy)
		case contour.QuadToKind:
			pdf.CurveTo(el.P0.X+ox, el.P0.Y+oy, el.P1.X+ox, el.P1.Y+oy)
		case contour.CubicToKind:
			pdf.CurveBezierCubicTo(el.P0.X+ox, el.P0.Y+oy, el.P1.X+ox, el.P1.Y+oy, el.P2.X+ox, el.P2.Y+oy)
		case contour.ClosePathKind:
			pdf.ClosePath()
		}
	}
	pdf.DrawPath("D")
}

type row struct{ name, value string }

func rows(p blade.Parameters, m metrics.DerivedMetrics, u blade.Unit) []row {
	f := func(v float64) string { return blade.Format(v, u) }
	out := []row{
		{"Exposed length", f(p.ExposedLength)},
		{"Tab", f(p.TabLength) + " x " + f(p.TabWidth)},
		{"Root / tip width", f(p.RootWidth) + " / " + f(p.TipWidth)},
		{"Centre of gravity", fmt.Sprintf("%s (%.1f%%)", f(m.CGX), m.CGPercent)},
		{"Sweet spot", f(m.SweetStart) + " - " + f(m.SweetEnd)},
		{"In sweet spot", fmt.Sprint(m.InSweetSpot)},
		{"Sensitivity", string(m.Sensitivity)},
		{"Flywheel", string(m.FlywheelRating)},
		{"Moment of inertia", fmt.Sprintf("%.1f", m.MomentOfInertia)},
		{"Area", fmt.Sprintf("%.2f", m.TotalArea)},
	}
	if p.PinHole.Present {
		out = append(out, row{"Pin hole", fmt.Sprintf("%s at %s", f(p.PinHole.Diameter), f(p.PinHole.OffsetFromHub))})
	}
	return out
}

func table(pdf *gofpdf.Fpdf, rs []row) {
	for _, r := range rs {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(1.8, 0.22, r.name, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(2.6, 0.22, r.value, "1", 1, "L", false, 0, "")
	}
}
