package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/metrics"
)

func TestPageWidth(t *testing.T) {
	assert.InDelta(t, 13.0, PageWidth(blade.LeafPreset()), 1e-12)

	short := blade.LeafPreset()
	short.ExposedLength = 6
	assert.Equal(t, minPageWidth, PageWidth(short))

	p := blade.LeafPreset()
	p.ExposedLength = 16
	assert.InDelta(t, 18.5, PageWidth(p), 1e-12)
}

func TestRowsUseDisplayUnit(t *testing.T) {
	p := blade.LeafPreset()
	m, err := metrics.Calculate(p)
	require.NoError(t, err)

	rs := rows(p, m, blade.Millimeters)
	assert.Equal(t, row{"Exposed length", "266.70 mm"}, rs[0])
	assert.Equal(t, "Pin hole", rs[len(rs)-1].name)

	p.PinHole.Present = false
	assert.Len(t, rows(p, m, blade.Inches), len(rs)-1)
}

func TestWrite(t *testing.T) {
	for _, p := range []blade.Parameters{blade.LeafPreset(), blade.RoundedPreset()} {
		m, err := metrics.Calculate(p)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, p, m, blade.Inches, Meta{Project: "porch", Notes: "cut from 1/8 birch"}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), p.TipStyle)
		assert.True(t, bytes.Contains(buf.Bytes(), []byte("%%EOF")))
	}
}

func TestHandlerGenerate(t *testing.T) {
	body := `{"title": "Porch set", "unit": "mm", "parameters": {"preset": "rounded", "exposed_length": 9}}`
	rec := httptest.NewRecorder()
	(&Handler{}).Generate(rec, httptest.NewRequest(http.MethodPost, "/api/user/export/pdf", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestHandlerGenerateRejects(t *testing.T) {
	for _, body := range []string{
		`{"unit": "ft"}`,
		`{"parameters": {"tip_style": "spade"}}`,
		`{"parameters": {"root_width": -1}}`,
		`nope`,
	} {
		rec := httptest.NewRecorder()
		(&Handler{}).Generate(rec, httptest.NewRequest(http.MethodPost, "/api/user/export/pdf", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
