package autobalance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Whirligig/internal/blade"
	"Whirligig/internal/calc/physics"
)

func TestDefaultTargetIsMidBand(t *testing.T) {
	assert.InDelta(t, 38.5, DefaultTarget, 1e-12)
}

func TestBalanceLeafMovesSwell(t *testing.T) {
	p := blade.LeafPreset()
	res, err := Balance(p, 0)
	require.NoError(t, err)

	assert.Equal(t, "width_position", res.Field)
	assert.True(t, res.Converged)
	assert.True(t, res.InSweetSpot)
	assert.InDelta(t, 38.5, res.CGPercent, tolerance)
	assert.Less(t, res.Parameters.WidthPosition, p.WidthPosition)
	assert.Equal(t, res.Value, res.Parameters.WidthPosition)
	assert.Equal(t, physics.Solve(res.Parameters).CGPercent, res.CGPercent)

	// only the knob moves
	res.Parameters.WidthPosition = p.WidthPosition
	assert.Equal(t, p, res.Parameters)
}

func TestBalanceRoundedNarrowsTip(t *testing.T) {
	p := blade.RoundedPreset()
	res, err := Balance(p, 38.5)
	require.NoError(t, err)

	assert.Equal(t, "tip_width", res.Field)
	assert.True(t, res.Converged)
	assert.InDelta(t, 38.5, res.CGPercent, tolerance)
	assert.Less(t, res.Parameters.TipWidth, p.TipWidth)
	assert.Greater(t, res.Parameters.TipWidth, 0.25*p.RootWidth)
}

func TestBalanceOutwardTarget(t *testing.T) {
	res, err := Balance(blade.LeafPreset(), 42)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Greater(t, res.Parameters.WidthPosition, 0.6)
}

func TestBalanceUnreachableTargetClamps(t *testing.T) {
	res, err := Balance(blade.LeafPreset(), 60)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 0.95, res.Value)
	assert.Zero(t, res.Iterations)

	res, err = Balance(blade.LeafPreset(), 10)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 0.05, res.Value)
}

func TestBalanceRejects(t *testing.T) {
	_, err := Balance(blade.LeafPreset(), 120)
	assert.ErrorIs(t, err, ErrTarget)

	p := blade.LeafPreset()
	p.ExposedLength = -3
	_, err = Balance(p, 0)
	assert.ErrorIs(t, err, blade.ErrInvalidParameters)
}

func TestHandlerBalance(t *testing.T) {
	raw, err := json.Marshal(blade.LeafPreset())
	require.NoError(t, err)
	body, err := json.Marshal(Input{Parameters: raw})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	(&Handler{}).Balance(rec, httptest.NewRequest(http.MethodPost, "/api/blade/autobalance", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.True(t, res.Converged)
	assert.InDelta(t, 38.5, res.CGPercent, tolerance)

	rec = httptest.NewRecorder()
	(&Handler{}).Balance(rec, httptest.NewRequest(http.MethodPost, "/api/blade/autobalance", bytes.NewBufferString(`{"target_cg_percent": -1, "parameters": {"preset": "rounded"}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
