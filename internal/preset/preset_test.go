package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elex-project/xelhua/pkg/xelhua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
styles:
  header:
    font: {name: Arial, size: 12, bold: true, color: white}
    fill: {color: dark_blue}
    alignment: {horizontal: center, vertical: middle}
    borders:
      bottom: {style: thick, color: black}
  money:
    format: "#,##0.00"
  hatched:
    fill: {color: "#FF0000", background: yellow, pattern: light_grid}
`

func TestParseAndBuild(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, []string{"hatched", "header", "money"}, f.Names())

	doc := xelhua.New()
	defer doc.Close()

	header, err := f.Build(doc, "header")
	require.NoError(t, err)
	def := header.Definition()
	require.NotNil(t, def.Font)
	assert.Equal(t, "Arial", def.Font.Family)
	assert.Equal(t, 12.0, def.Font.Size)
	assert.True(t, def.Font.Bold)
	assert.Equal(t, string(xelhua.White), def.Font.Color)
	assert.Equal(t, []string{string(xelhua.DarkBlue)}, def.Fill.Color)
	assert.Equal(t, "center", def.Alignment.Horizontal)
	assert.Equal(t, "center", def.Alignment.Vertical)
	require.Len(t, def.Border, 1)
	assert.Equal(t, "bottom", def.Border[0].Type)
	assert.Equal(t, int(xelhua.BorderThick), def.Border[0].Style)

	money, err := f.Build(doc, "money")
	require.NoError(t, err)
	assert.Equal(t, "#,##0.00", money.DataFormat())

	hatched, err := f.Build(doc, "hatched")
	require.NoError(t, err)
	assert.Equal(t, int(xelhua.FillLightGrid), hatched.Definition().Fill.Pattern)
	assert.Equal(t, []string{"FF0000", string(xelhua.Yellow)}, hatched.Definition().Fill.Color)

	assert.Equal(t, 3, doc.StyleCount())
}

func TestBuildErrors(t *testing.T) {
	doc := xelhua.New()
	defer doc.Close()

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"bad color", "styles: {x: {fill: {color: mauve-ish}}}", xelhua.ErrInvalidValue},
		{"bad edge", "styles: {x: {borders: {diagonal: {style: thin}}}}", xelhua.ErrInvalidValue},
		{"bad alignment", "styles: {x: {alignment: {horizontal: sideways}}}", xelhua.ErrInvalidValue},
		{"bad font size", "styles: {x: {font: {size: -3}}}", xelhua.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = f.Build(doc, "x")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	_, err = f.Build(doc, "missing")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("styles: {x: {colour: red}}"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Styles, 3)

	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
