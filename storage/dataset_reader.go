package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"corona-spread-gif/models"
)

const (
	colProvince = "Province/State"
	colCountry  = "Country/Region"
	colLat      = "Lat"
	colLong     = "Long"
)

// DatasetPath returns the CSV path for a named timeseries dataset.
func DatasetPath(dir, name string) string {
	return filepath.Join(dir, fmt.Sprintf("time_series_covid_19_%s.csv", name))
}

// LoadDatasets loads the confirmed and/or deaths timeseries from dir.
func LoadDatasets(dir string, confirmed, deaths bool) (models.DatasetCollection, error) {
	if !confirmed && !deaths {
		return nil, models.Configf("neither confirmed nor deaths have been selected, at least one dataset has to be picked")
	}

	var names []string
	if confirmed {
		names = append(names, models.Confirmed)
	}
	if deaths {
		names = append(names, models.Deaths)
	}

	collection := make(models.DatasetCollection, len(names))
	for _, name := range names {
		path := DatasetPath(dir, name)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, models.Configf("dataset file %s does not exist", path)
			}
			return nil, fmt.Errorf("dataset: open %q: %w", path, err)
		}
		ds, err := ReadDataset(name, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("dataset: %s: %w", path, err)
		}
		collection[name] = ds
	}
	return collection, nil
}

// ReadDataset parses a timeseries table. Columns whose header parses as m/d/yy are date columns.
func ReadDataset(name string, r io.Reader) (*models.TimeseriesDataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	ds := &models.TimeseriesDataset{Name: name}
	dateIdx := map[int]string{}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case colProvince, colCountry, colLat, colLong:
			idx[h] = i
			continue
		}
		if _, err := models.ParseDate(h); err == nil {
			ds.DateColumns = append(ds.DateColumns, h)
			dateIdx[i] = h
		}
	}
	for _, required := range []string{colCountry, colLat, colLong} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := &models.Row{
			Country: field(rec, idx[colCountry]),
			Values:  make(map[string]float64, len(dateIdx)),
		}
		if i, ok := idx[colProvince]; ok {
			row.Province = field(rec, i)
		}
		if row.Lat, err = parseFloat(field(rec, idx[colLat])); err != nil {
			return nil, fmt.Errorf("line %d: Lat: %w", line, err)
		}
		if row.Long, err = parseFloat(field(rec, idx[colLong])); err != nil {
			return nil, fmt.Errorf("line %d: Long: %w", line, err)
		}
		for i, date := range dateIdx {
			raw := field(rec, i)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, date, err)
			}
			row.Values[date] = v
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// DateRange returns the date columns present in every dataset that fall on or after start,
// in chronological order.
func DateRange(collection models.DatasetCollection, start time.Time) []string {
	counts := map[string]int{}
	for _, ds := range collection {
		for _, d := range ds.DateColumns {
			counts[d]++
		}
	}

	type dated struct {
		label string
		at    time.Time
	}
	var dates []dated
	for label, n := range counts {
		if n != len(collection) {
			continue
		}
		at, err := models.ParseDate(label)
		if err != nil || at.Before(start) {
			continue
		}
		dates = append(dates, dated{label, at})
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].at.Before(dates[j].at) })

	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.label
	}
	return out
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
