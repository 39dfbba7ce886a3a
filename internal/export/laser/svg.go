package laser

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/contour"
)

// Margin is the clearance kept around the part on every side, in inches.
const Margin = 0.5

const (
	stroke      = "#ff0000"
	strokeWidth = 0.001 // hairline, read as a vector cut by most laser drivers
)

// Canvas returns the document size in inches.
func Canvas(p blade.Parameters) (width, height float64) {
	return p.TotalLength() + 2*Margin, p.MaxWidth() + 2*Margin
}

// Origin is where the hub face sits on the centreline, in document inches.
func Origin(p blade.Parameters) contour.Point {
	_, h := Canvas(p)
	return contour.Pt(p.TabLength+Margin, h/2)
}

// Write emits a cut-ready SVG at 1 user unit per inch. The outline carries
// the kerf offset; the pin hole does not.
func Write(w io.Writer, p blade.Parameters, m metrics.DerivedMetrics) error {
	num := contour.FormatNum
	width, height := Canvas(p)
	o := Origin(p)
	path := contour.Build(p, 1, true).Translate(o.X, o.Y)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%sin\" height=\"%sin\" viewBox=\"0 0 %s %s\">\n",
		num(width), num(height), num(width), num(height))
	fmt.Fprintf(bw, "<title>%s blade</title>\n", escape(string(p.TipStyle)))
	fmt.Fprintf(bw, "<desc>%s</desc>\n", escape(Describe(p, m)))
	fmt.Fprintf(bw, "<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\"/>\n",
		path.Data(), stroke, num(strokeWidth))
	if c, r, ok := contour.PinHoleCenter(p, 1); ok {
		fmt.Fprintf(bw, "<circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\"/>\n",
			num(c.X+o.X), num(c.Y+o.Y), num(r), stroke, num(strokeWidth))
	}
	fmt.Fprintf(bw, "</svg>\n")
	return bw.Flush()
}

// Describe is a one-line summary of the part and its metrics.
func Describe(p blade.Parameters, m metrics.DerivedMetrics) string {
	return fmt.Sprintf("exposed %s, tab %s x %s, kerf %s; CG %s (%.1f%%), sweet spot %s to %s, sensitivity %s, flywheel %s",
		blade.Format(p.ExposedLength, blade.Inches),
		blade.Format(p.TabLength, blade.Inches),
		blade.Format(p.TabWidth, blade.Inches),
		blade.Format(p.KerfOffset, blade.Inches),
		blade.Format(m.CGX, blade.Inches), m.CGPercent,
		blade.Format(m.SweetStart, blade.Inches),
		blade.Format(m.SweetEnd, blade.Inches),
		m.Sensitivity, m.FlywheelRating)
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
