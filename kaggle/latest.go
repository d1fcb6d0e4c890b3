package kaggle

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	MainDataset       = "covid_19_data.csv"
	TimeseriesDataset = "time_series_covid_19_confirmed.csv"

	observationLayout = "01/02/2006"
)

// LatestDates is the most recent date found in each dataset.
type LatestDates struct {
	Main       string
	Timeseries string
}

// CheckLatestDates reports the last recorded dates in the downloaded datasets.
func CheckLatestDates(dir string) (LatestDates, error) {
	main, err := LatestObservationDate(filepath.Join(dir, MainDataset))
	if err != nil {
		return LatestDates{}, err
	}
	ts, err := LatestTimeseriesDate(filepath.Join(dir, TimeseriesDataset))
	if err != nil {
		return LatestDates{}, err
	}
	return LatestDates{Main: main, Timeseries: ts}, nil
}

// LatestObservationDate returns the greatest ObservationDate value of the main dataset.
// Values are compared as MM/DD/YYYY dates; unparsable values are compared as strings.
func LatestObservationDate(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("kaggle: open %q: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return "", fmt.Errorf("kaggle: %s header: %w", path, err)
	}
	col := -1
	for i, h := range header {
		if strings.TrimSpace(h) == "ObservationDate" {
			col = i
		}
	}
	if col < 0 {
		return "", fmt.Errorf("kaggle: %s has no ObservationDate column", path)
	}

	var latest string
	var latestAt time.Time
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("kaggle: %s: %w", path, err)
		}
		if col >= len(rec) {
			continue
		}
		v := strings.TrimSpace(rec[col])
		if later(v, latest, latestAt) {
			latest = v
			latestAt, _ = time.Parse(observationLayout, v)
		}
	}
	return latest, nil
}

func later(v, latest string, latestAt time.Time) bool {
	if latest == "" {
		return v != ""
	}
	at, err := time.Parse(observationLayout, v)
	if err != nil || latestAt.IsZero() {
		return v > latest
	}
	return at.After(latestAt)
}

// LatestTimeseriesDate returns the last header column of a timeseries dataset.
func LatestTimeseriesDate(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("kaggle: open %q: %w", path, err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return "", fmt.Errorf("kaggle: %s header: %w", path, err)
	}
	return strings.TrimSpace(header[len(header)-1]), nil
}
