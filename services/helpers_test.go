package services

import (
	"context"
	"io"
	"os"
	"sync"

	"corona-spread-gif/geo"
	"corona-spread-gif/models"
	"corona-spread-gif/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, true) }

func usRow(value float64) *models.Row {
	return &models.Row{
		Country: "US",
		Lat:     38,
		Long:    -97,
		Values:  map[string]float64{"3/1/20": value},
	}
}

func dataset(name string, rows ...*models.Row) *models.TimeseriesDataset {
	return &models.TimeseriesDataset{Name: name, DateColumns: []string{"3/1/20", "3/2/20"}, Rows: rows}
}

func testResolver() *geo.Resolver {
	return geo.NewResolver(geo.TableReference{"United States": 1000, "Italy": 2000})
}

// fakeRenderer writes a placeholder HTML file and remembers each frame.
type fakeRenderer struct {
	frames []*models.Frame
}

func (r *fakeRenderer) Render(frame *models.Frame, path string) error {
	r.frames = append(r.frames, frame)
	return os.WriteFile(path, []byte("<html></html>"), 0o644)
}

// fakeRasterizer writes a placeholder image and counts calls.
type fakeRasterizer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *fakeRasterizer) Rasterize(_ context.Context, htmlPath, imagePath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, imagePath)
	return os.WriteFile(imagePath, []byte("png"), 0o644)
}
