package services

import (
	"fmt"
	"strconv"

	"corona-spread-gif/models"
	"corona-spread-gif/utils"
)

const (
	// DefaultScale converts a raw count into a circle radius in metres.
	DefaultScale = 10.0
	// NormalizedScale converts a per-capita fraction into a circle radius in metres.
	NormalizedScale = 1.5e8
)

// excluded labels are not drawn: a cruise ship has no fixed position and the
// micro-states would cover their neighbours at this zoom.
var excluded = map[string]struct{}{
	"Cruise Ship": {},
	"San Marino":  {},
	"Holy See":    {},
}

// PopulationResolver returns the population for a dataset country label.
type PopulationResolver interface {
	Population(label string) (int64, error)
}

// MarkerGenerator turns one dataset row into at most one marker.
type MarkerGenerator struct {
	resolver PopulationResolver
	logger   *utils.Logger
}

// NewMarkerGenerator creates a MarkerGenerator. resolver may be nil when normalisation is never used.
func NewMarkerGenerator(resolver PopulationResolver, logger *utils.Logger) *MarkerGenerator {
	return &MarkerGenerator{resolver: resolver, logger: logger}
}

// Add attaches the marker for row at date to frame. It reports whether a marker was added.
func (g *MarkerGenerator) Add(frame *models.Frame, dataset string, row *models.Row, date, color string, normalize bool) (bool, error) {
	value, ok := row.Value(date)
	if !ok || value <= 0 {
		return false, nil
	}
	if _, skip := excluded[row.Country]; skip {
		g.logger.Debug("[marker] %s %s: excluded label %q", dataset, date, row.Country)
		return false, nil
	}

	scale := DefaultScale
	if normalize {
		if g.resolver == nil {
			return false, fmt.Errorf("marker: normalisation requested without a population resolver")
		}
		pop, err := g.resolver.Population(row.Country)
		if err != nil {
			return false, err
		}
		if pop <= 0 {
			return false, fmt.Errorf("marker: non-positive population %d for %q", pop, row.Country)
		}
		value /= float64(pop)
		scale = NormalizedScale
	}

	frame.AddMarker(models.Marker{
		Dataset: dataset,
		Country: row.Country,
		Lat:     row.Lat,
		Long:    row.Long,
		Value:   value,
		Radius:  value * scale,
		Color:   color,
		Label:   row.Country + " " + strconv.FormatFloat(value, 'g', -1, 64),
	})
	return true, nil
}
