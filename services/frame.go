package services

import (
	"corona-spread-gif/models"
	"corona-spread-gif/utils"
)

// FrameOptions controls the view and overlays of generated frames.
type FrameOptions struct {
	View      models.MapView
	Normalize bool
	Credit    string
	ShowDate  bool
	FontSize  int
}

// FrameGenerator builds one map frame per date.
type FrameGenerator struct {
	markers *MarkerGenerator
	opts    FrameOptions
	logger  *utils.Logger
}

// NewFrameGenerator creates a FrameGenerator.
func NewFrameGenerator(markers *MarkerGenerator, opts FrameOptions, logger *utils.Logger) *FrameGenerator {
	return &FrameGenerator{markers: markers, opts: opts, logger: logger}
}

// Normalized reports whether frames are normalised to population.
func (g *FrameGenerator) Normalized() bool {
	return g.opts.Normalize
}

// Generate builds the frame for date. Every dataset must have a colour; this is
// checked before any marker is produced.
func (g *FrameGenerator) Generate(collection models.DatasetCollection, date string, colors models.ColorMap) (*models.Frame, error) {
	if err := ValidateColors(collection, colors); err != nil {
		return nil, err
	}

	frame := &models.Frame{
		Date:       date,
		Normalized: g.opts.Normalize,
		View:       g.opts.View,
	}

	for _, dc := range colors {
		ds, ok := collection[dc.Dataset]
		if !ok {
			continue
		}
		added := 0
		for _, row := range ds.Rows {
			ok, err := g.markers.Add(frame, dc.Dataset, row, date, dc.Color, g.opts.Normalize)
			if err != nil {
				return nil, err
			}
			if ok {
				added++
			}
		}
		g.logger.Debug("[frame] %s %s: %d markers from %d rows", date, dc.Dataset, added, len(ds.Rows))
	}

	if g.opts.Credit != "" {
		frame.Annotate(models.Annotation{Text: g.opts.Credit, Position: models.TopLeft, FontSize: g.opts.FontSize / 2})
	}
	if g.opts.ShowDate {
		frame.Annotate(models.Annotation{Text: date, Position: models.BottomLeft, FontSize: g.opts.FontSize})
	}
	return frame, nil
}

// ValidateColors checks that every dataset in collection has a colour.
func ValidateColors(collection models.DatasetCollection, colors models.ColorMap) error {
	for _, name := range collection.Names() {
		if _, ok := colors.Lookup(name); !ok {
			return models.Configf("colour for %s is not provided", name)
		}
	}
	return nil
}
