package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"corona-spread-gif/models"
)

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"crimson", "#dc143c"},
		{"Black", "#000000"},
		{"#FF0000", "#ff0000"},
		{"#0f0", "#00ff00"},
	}
	for _, tt := range tests {
		got, err := NormalizeColor(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeColorRejectsUnknown(t *testing.T) {
	_, err := NormalizeColor("blurple")
	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestDefaultColorMapOrder(t *testing.T) {
	cm, err := DefaultStyle().ColorMap()
	require.NoError(t, err)
	require.Equal(t, models.ColorMap{
		{Dataset: models.Confirmed, Color: "#dc143c"},
		{Dataset: models.Deaths, Color: "#000000"},
	}, cm)
}

func TestLoadStyleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	body := `
center:
  lat: 40
  long: -100
zoom: 3
credit: "by me"
colors:
  - dataset: deaths
    color: "#123456"
  - dataset: confirmed
    color: orange
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := LoadStyle(path)
	require.NoError(t, err)
	require.Equal(t, models.MapView{Lat: 40, Long: -100, Zoom: 3}, s.View())
	require.Equal(t, "by me", s.Credit)
	require.True(t, s.ShowDate)

	cm, err := s.ColorMap()
	require.NoError(t, err)
	require.Equal(t, "deaths", cm[0].Dataset)
	require.Equal(t, "#123456", cm[0].Color)
	require.Equal(t, "#ffa500", cm[1].Color)
}

func TestLoadStyleMissingFile(t *testing.T) {
	_, err := LoadStyle(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("PLOT_DEATHS", "false")
	t.Setenv("VIEWPORT_WIDTH", "640")

	cfg := Load()
	require.Equal(t, "./output", cfg.OutputDir)
	require.Equal(t, "2/23/20", cfg.StartDate)
	require.True(t, cfg.Confirmed)
	require.False(t, cfg.Deaths)
	require.Equal(t, 640, cfg.ViewportWidth)
}
