package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"corona-spread-gif/models"
)

//go:embed frame.html.tmpl
var frameTemplate string

var tmpl = template.Must(template.New("frame").Parse(frameTemplate))

const (
	leafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

// TileLayer is the slippy-map tile source drawn under the markers.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

type markerData struct {
	Lat    float64 `json:"lat"`
	Long   float64 `json:"long"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	Label  string  `json:"label"`
}

type viewData struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
	Zoom int     `json:"zoom"`
}

// FrameData is the JSON document embedded in every frame page.
type FrameData struct {
	Date    string       `json:"date"`
	View    viewData     `json:"view"`
	Tiles   TileLayer    `json:"tiles"`
	Markers []markerData `json:"markers"`
}

type page struct {
	Date        string
	LeafletCSS  string
	LeafletJS   string
	Annotations []models.Annotation
	Data        FrameData
}

// HTMLRenderer writes frames as standalone Leaflet pages.
// The page sets window.tilesLoaded once the tile layer finishes loading.
type HTMLRenderer struct {
	tiles TileLayer
}

func NewHTMLRenderer(tiles TileLayer) *HTMLRenderer {
	return &HTMLRenderer{tiles: tiles}
}

// Render writes frame to path, creating parent directories.
func (r *HTMLRenderer) Render(frame *models.Frame, path string) error {
	p := page{
		Date:        frame.Date,
		LeafletCSS:  leafletCSS,
		LeafletJS:   leafletJS,
		Annotations: frame.Annotations,
		Data: FrameData{
			Date:    frame.Date,
			View:    viewData{Lat: frame.View.Lat, Long: frame.View.Long, Zoom: frame.View.Zoom},
			Tiles:   r.tiles,
			Markers: make([]markerData, 0, len(frame.Markers)),
		},
	}
	for _, m := range frame.Markers {
		p.Data.Markers = append(p.Data.Markers, markerData{
			Lat: m.Lat, Long: m.Long, Radius: m.Radius, Color: m.Color, Label: m.Label,
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("html: create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("html: create %q: %w", path, err)
	}
	if err := tmpl.Execute(f, p); err != nil {
		_ = f.Close()
		return fmt.Errorf("html: execute template: %w", err)
	}
	return f.Close()
}
