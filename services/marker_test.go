package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"corona-spread-gif/geo"
	"corona-spread-gif/models"
)

func TestMarkerRawScale(t *testing.T) {
	g := NewMarkerGenerator(nil, newTestLogger())
	frame := &models.Frame{}

	added, err := g.Add(frame, models.Confirmed, usRow(100), "3/1/20", "crimson", false)
	require.NoError(t, err)
	require.True(t, added)
	require.Len(t, frame.Markers, 1)

	m := frame.Markers[0]
	require.Equal(t, 1000.0, m.Radius)
	require.Equal(t, 38.0, m.Lat)
	require.Equal(t, -97.0, m.Long)
	require.Equal(t, "crimson", m.Color)
	require.Equal(t, "US 100", m.Label)
}

func TestMarkerNormalized(t *testing.T) {
	g := NewMarkerGenerator(testResolver(), newTestLogger())
	frame := &models.Frame{}

	added, err := g.Add(frame, models.Confirmed, usRow(100), "3/1/20", "crimson", true)
	require.NoError(t, err)
	require.True(t, added)
	require.InDelta(t, 1.5e7, frame.Markers[0].Radius, 1e-6)
	require.InDelta(t, 0.1, frame.Markers[0].Value, 1e-12)
}

func TestMarkerSkipsNonPositive(t *testing.T) {
	g := NewMarkerGenerator(nil, newTestLogger())
	frame := &models.Frame{}

	for _, v := range []float64{0, -3} {
		added, err := g.Add(frame, models.Confirmed, usRow(v), "3/1/20", "crimson", false)
		require.NoError(t, err)
		require.False(t, added)
	}
	added, err := g.Add(frame, models.Confirmed, usRow(5), "4/1/20", "crimson", false)
	require.NoError(t, err)
	require.False(t, added, "missing date column")
	require.Empty(t, frame.Markers)
}

func TestMarkerSkipsExcludedLabels(t *testing.T) {
	g := NewMarkerGenerator(testResolver(), newTestLogger())
	frame := &models.Frame{}

	for _, label := range []string{"Cruise Ship", "San Marino", "Holy See"} {
		row := usRow(1e6)
		row.Country = label
		for _, norm := range []bool{false, true} {
			added, err := g.Add(frame, models.Deaths, row, "3/1/20", "black", norm)
			require.NoError(t, err, label)
			require.False(t, added, label)
		}
	}
	require.Empty(t, frame.Markers)
}

func TestMarkerLookupErrorIsFatal(t *testing.T) {
	g := NewMarkerGenerator(testResolver(), newTestLogger())
	row := usRow(10)
	row.Country = "Atlantis"

	_, err := g.Add(&models.Frame{}, models.Confirmed, row, "3/1/20", "crimson", true)
	var lookupErr *geo.LookupError
	require.True(t, errors.As(err, &lookupErr))
	require.Equal(t, "Atlantis", lookupErr.Label)
}

func TestMarkerNormalizeWithoutResolver(t *testing.T) {
	g := NewMarkerGenerator(nil, newTestLogger())
	_, err := g.Add(&models.Frame{}, models.Confirmed, usRow(10), "3/1/20", "crimson", true)
	require.Error(t, err)
}
