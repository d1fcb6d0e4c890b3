package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"corona-spread-gif/models"
)

// Style controls how frames look. It is read from an optional YAML file.
type Style struct {
	Center struct {
		Lat  float64 `yaml:"lat"`
		Long float64 `yaml:"long"`
	} `yaml:"center"`
	Zoom       int    `yaml:"zoom"`
	TileURL    string `yaml:"tile_url"`
	TileAttrib string `yaml:"tile_attribution"`
	Credit     string `yaml:"credit"`
	ShowDate   bool   `yaml:"show_date"`
	FontSize   int    `yaml:"font_size"`
	Colors     []struct {
		Dataset string `yaml:"dataset"`
		Color   string `yaml:"color"`
	} `yaml:"colors"`
}

// DefaultStyle is a map centred on Europe with confirmed/deaths in crimson/black.
func DefaultStyle() *Style {
	s := &Style{
		Zoom:       5,
		TileURL:    "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		TileAttrib: "&copy; OpenStreetMap contributors",
		Credit:     "Data: Novel Corona Virus 2019 Dataset (Kaggle)",
		ShowDate:   true,
		FontSize:   28,
	}
	s.Center.Lat = 47
	s.Center.Long = 12
	return s
}

// LoadStyle reads a YAML style file on top of DefaultStyle. An empty path returns the defaults.
func LoadStyle(path string) (*Style, error) {
	s := DefaultStyle()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.Configf("style file %q: %v", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, models.Configf("style file %q: %v", path, err)
	}
	if s.Zoom <= 0 {
		return nil, models.Configf("style file %q: zoom must be positive", path)
	}
	return s, nil
}

// View returns the initial map view.
func (s *Style) View() models.MapView {
	return models.MapView{Lat: s.Center.Lat, Long: s.Center.Long, Zoom: s.Zoom}
}

// ColorMap returns the configured colours in file order, or the default map when none are set.
// Every colour is validated and normalised to #rrggbb.
func (s *Style) ColorMap() (models.ColorMap, error) {
	var cm models.ColorMap
	if len(s.Colors) == 0 {
		cm = models.DefaultColorMap()
	} else {
		for _, c := range s.Colors {
			cm = append(cm, models.DatasetColor{Dataset: c.Dataset, Color: c.Color})
		}
	}
	out := make(models.ColorMap, 0, len(cm))
	for _, dc := range cm {
		hex, err := NormalizeColor(dc.Color)
		if err != nil {
			return nil, err
		}
		out = append(out, models.DatasetColor{Dataset: dc.Dataset, Color: hex})
	}
	return out, nil
}

// NormalizeColor accepts an SVG/CSS colour name or a hex value and returns #rrggbb.
func NormalizeColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if strings.HasPrefix(c, "#") {
		col, err := colorful.Hex(c)
		if err != nil {
			return "", models.Configf("invalid colour %q: %v", c, err)
		}
		return col.Hex(), nil
	}
	rgba, ok := colornames.Map[strings.ToLower(c)]
	if !ok {
		return "", models.Configf("unknown colour name %q", c)
	}
	col, _ := colorful.MakeColor(rgba)
	return col.Hex(), nil
}

// String is used in log lines.
func (s *Style) String() string {
	return fmt.Sprintf("center=(%.2f,%.2f) zoom=%d", s.Center.Lat, s.Center.Long, s.Zoom)
}
