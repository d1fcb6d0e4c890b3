package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"corona-spread-gif/models"
)

func newFrameGenerator(opts FrameOptions) *FrameGenerator {
	return NewFrameGenerator(NewMarkerGenerator(testResolver(), newTestLogger()), opts, newTestLogger())
}

func TestFrameEmptyCollection(t *testing.T) {
	g := newFrameGenerator(FrameOptions{})
	frame, err := g.Generate(models.DatasetCollection{}, "3/1/20", models.DefaultColorMap())
	require.NoError(t, err)
	require.Empty(t, frame.Markers)
	require.Equal(t, "3/1/20", frame.Date)
}

func TestFrameMissingColourFailsBeforeRendering(t *testing.T) {
	g := newFrameGenerator(FrameOptions{})
	collection := models.DatasetCollection{
		models.Confirmed: dataset(models.Confirmed, usRow(100)),
		models.Deaths:    dataset(models.Deaths, usRow(3)),
	}
	colors := models.ColorMap{{Dataset: models.Confirmed, Color: "crimson"}}

	frame, err := g.Generate(collection, "3/1/20", colors)
	require.Nil(t, frame)
	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	require.Contains(t, err.Error(), "deaths")
}

func TestFrameOrderFollowsColorMap(t *testing.T) {
	g := newFrameGenerator(FrameOptions{})
	italy := &models.Row{Country: "Italy", Lat: 43, Long: 12, Values: map[string]float64{"3/1/20": 50}}
	collection := models.DatasetCollection{
		models.Confirmed: dataset(models.Confirmed, usRow(100), italy),
		models.Deaths:    dataset(models.Deaths, usRow(2)),
	}
	colors := models.ColorMap{
		{Dataset: models.Deaths, Color: "black"},
		{Dataset: models.Confirmed, Color: "crimson"},
	}

	frame, err := g.Generate(collection, "3/1/20", colors)
	require.NoError(t, err)
	require.Len(t, frame.Markers, 3)

	var got []string
	for _, m := range frame.Markers {
		got = append(got, m.Dataset+":"+m.Country)
	}
	require.Equal(t, []string{"deaths:US", "confirmed:US", "confirmed:Italy"}, got)
	require.Equal(t, "black", frame.Markers[0].Color)
}

func TestFrameAnnotations(t *testing.T) {
	view := models.MapView{Lat: 47, Long: 12, Zoom: 5}
	g := newFrameGenerator(FrameOptions{View: view, Credit: "by someone", ShowDate: true, FontSize: 28, Normalize: true})

	frame, err := g.Generate(models.DatasetCollection{}, "3/2/20", models.DefaultColorMap())
	require.NoError(t, err)
	require.True(t, frame.Normalized)
	require.Equal(t, view, frame.View)
	require.Equal(t, []models.Annotation{
		{Text: "by someone", Position: models.TopLeft, FontSize: 14},
		{Text: "3/2/20", Position: models.BottomLeft, FontSize: 28},
	}, frame.Annotations)
}

func TestFrameNormalizedScenario(t *testing.T) {
	g := newFrameGenerator(FrameOptions{Normalize: true})
	collection := models.DatasetCollection{models.Confirmed: dataset(models.Confirmed, usRow(100))}

	frame, err := g.Generate(collection, "3/1/20", models.DefaultColorMap())
	require.NoError(t, err)
	require.Len(t, frame.Markers, 1)
	require.InDelta(t, 1.5e7, frame.Markers[0].Radius, 1e-6)
}
