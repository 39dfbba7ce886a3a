package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"Whirligig/internal/blade"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMetrics(t *testing.T) {
	out, err := run(t, "metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "(40.7%)")
	assert.Contains(t, out, "3.675 in - 4.410 in")
	assert.Contains(t, out, "Moderate")

	out, err = run(t, "metrics", "--preset", "rounded", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"flywheel_rating"`)
}

func TestMetricsFromFileInMillimeters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: rounded\nunit: mm\nexposed_length: 254\n"), 0o600))

	out, err := run(t, "metrics", "-f", path, "-u", "mm")
	require.NoError(t, err)
	assert.Contains(t, out, "88.90 mm - 106.68 mm")
}

func TestTipStyleSwitch(t *testing.T) {
	out, err := run(t, "balance", "--tip-style", "rounded", "--target", "40")
	require.NoError(t, err)

	var p blade.Parameters
	require.NoError(t, yaml.Unmarshal([]byte(out), &p))
	assert.Equal(t, blade.TipRounded, p.TipStyle)
	assert.Less(t, p.TipWidth, blade.RoundedPreset().TipWidth)
}

func TestInvalidDesignFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root_width: -1\n"), 0o600))
	_, err := run(t, "svg", "-f", path)
	assert.ErrorIs(t, err, blade.ErrInvalidParameters)

	_, err = run(t, "metrics", "--preset", "spade")
	assert.Error(t, err)
}

func TestContour(t *testing.T) {
	out, err := run(t, "contour", "--scale", "25.4", "--kerf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "M"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Z"))

	_, err = run(t, "contour", "--scale", "0")
	assert.Error(t, err)
}

func TestExportsToFiles(t *testing.T) {
	dir := t.TempDir()
	for name, magic := range map[string]string{
		"svg": "<?xml",
		"png": "\x89PNG",
		"pdf": "%PDF-",
	} {
		path := filepath.Join(dir, "blade."+name)
		_, err := run(t, name, "-o", path)
		require.NoError(t, err, name)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte(magic)), name)
	}
}

func TestPresetRoundTripsThroughLoad(t *testing.T) {
	out, err := run(t, "preset", "rounded")
	require.NoError(t, err)
	p, err := blade.Load(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, blade.RoundedPreset(), p)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"name", "preset", "exposed_length"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"short", "leaf", "8"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"broken", "leaf", "-8"}))
	require.NoError(t, f.SaveAs(in))
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "out.xlsx")
	_, err := run(t, "batch", in, "-o", out)
	require.NoError(t, err)

	res, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer res.Close()
	rows, err := res.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "short", rows[1][0])
	assert.Contains(t, rows[2][len(rows[2])-1], "exposed_length")
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "hunter22")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("hunter22")))
}
