package models

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the m/d/yy layout used by the timeseries column headers.
const DateLayout = "1/2/06"

// Dataset names understood by the loader and the default colour map.
const (
	Confirmed = "confirmed"
	Deaths    = "deaths"
)

// ParseDate parses an m/d/yy date column header.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// Row is one country/region line of a timeseries table.
// Several rows may share a Country when the source lists provinces separately.
type Row struct {
	Province string
	Country  string
	Lat      float64
	Long     float64
	Values   map[string]float64
}

// Value returns the observation for date and whether the cell held a number.
func (r *Row) Value(date string) (float64, bool) {
	v, ok := r.Values[date]
	return v, ok
}

// TimeseriesDataset is a loaded time_series_covid_19_<name>.csv table.
// It is read-only once loaded.
type TimeseriesDataset struct {
	Name        string
	DateColumns []string
	Rows        []*Row
}

// HasDate reports whether date is one of the dataset's columns.
func (d *TimeseriesDataset) HasDate(date string) bool {
	for _, c := range d.DateColumns {
		if c == date {
			return true
		}
	}
	return false
}

// DatasetCollection maps a dataset name to its table.
type DatasetCollection map[string]*TimeseriesDataset

// Names returns the collection keys in canonical order: confirmed, deaths, then the rest sorted.
func (c DatasetCollection) Names() []string {
	names := make([]string, 0, len(c))
	for _, n := range []string{Confirmed, Deaths} {
		if _, ok := c[n]; ok {
			names = append(names, n)
		}
	}
	var rest []string
	for n := range c {
		if n != Confirmed && n != Deaths {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// DatasetColor pairs a dataset name with its display colour.
type DatasetColor struct {
	Dataset string
	Color   string
}

// ColorMap is an ordered dataset -> colour mapping. Its order is the drawing order.
type ColorMap []DatasetColor

// DefaultColorMap draws confirmed cases first so deaths stack on top.
func DefaultColorMap() ColorMap {
	return ColorMap{
		{Dataset: Confirmed, Color: "crimson"},
		{Dataset: Deaths, Color: "black"},
	}
}

// Lookup returns the colour configured for dataset.
func (m ColorMap) Lookup(dataset string) (string, bool) {
	for _, dc := range m {
		if dc.Dataset == dataset {
			return dc.Color, true
		}
	}
	return "", false
}
