package laser

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
	"Whirligig/internal/contour"
)

type svgDoc struct {
	Width   string `xml:"width,attr"`
	Height  string `xml:"height,attr"`
	ViewBox string `xml:"viewBox,attr"`
	Desc    string `xml:"desc"`
	Path    struct {
		D      string `xml:"d,attr"`
		Fill   string `xml:"fill,attr"`
		Stroke string `xml:"stroke,attr"`
	} `xml:"path"`
	Circles []struct {
		CX string `xml:"cx,attr"`
		CY string `xml:"cy,attr"`
		R  string `xml:"r,attr"`
	} `xml:"circle"`
}

func render(t *testing.T, p blade.Parameters) svgDoc {
	t.Helper()
	m, err := metrics.Calculate(p)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, m))

	var doc svgDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	return doc
}

func TestCanvas(t *testing.T) {
	w, h := Canvas(blade.LeafPreset())
	assert.InDelta(t, 12.5, w, 1e-12)
	assert.InDelta(t, 3.5, h, 1e-12)
	assert.Equal(t, contour.Pt(1.5, 1.75), Origin(blade.LeafPreset()))
}

func TestWriteLeaf(t *testing.T) {
	p := blade.LeafPreset()
	doc := render(t, p)

	assert.Equal(t, "12.5in", doc.Width)
	assert.Equal(t, "3.5in", doc.Height)
	assert.Equal(t, "0 0 12.5 3.5", doc.ViewBox)
	assert.Equal(t, "none", doc.Path.Fill)
	assert.Equal(t, stroke, doc.Path.Stroke)

	want := contour.Build(p, 1, true).Translate(1.5, 1.75).Data()
	assert.Equal(t, want, doc.Path.D)

	require.Len(t, doc.Circles, 1)
	assert.Equal(t, "1", doc.Circles[0].CX)
	assert.Equal(t, "1.75", doc.Circles[0].CY)
	assert.Equal(t, "0.0625", doc.Circles[0].R)

	assert.Contains(t, doc.Desc, "exposed 10.500 in")
	assert.Contains(t, doc.Desc, "sensitivity Moderate")
}

func TestWriteFitsCanvas(t *testing.T) {
	// The leaf control polygon hugs the outline, so its box bounds the part.
	p := blade.LeafPreset()
	w, h := Canvas(p)
	o := Origin(p)
	box := contour.Build(p, 1, true).Translate(o.X, o.Y).ControlBox()
	assert.GreaterOrEqual(t, box.X0, 0.0)
	assert.GreaterOrEqual(t, box.Y0, 0.0)
	assert.LessOrEqual(t, box.X1, w)
	assert.LessOrEqual(t, box.Y1, h)

	r := blade.RoundedPreset()
	w, _ = Canvas(r)
	assert.Less(t, Origin(r).X+r.ExposedLength+r.KerfOffset, w)
}

func TestWriteWithoutPinHole(t *testing.T) {
	p := blade.RoundedPreset()
	p.PinHole.Present = false
	assert.Empty(t, render(t, p).Circles)
}

func TestHandlerSVG(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).SVG(rec, httptest.NewRequest(http.MethodPost, "/api/user/export/svg", strings.NewReader(`{"preset": "rounded"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<?xml"))

	rec = httptest.NewRecorder()
	(&Handler{}).SVG(rec, httptest.NewRequest(http.MethodPost, "/api/user/export/svg", strings.NewReader(`{"exposed_length": 0}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
