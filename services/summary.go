package services

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"corona-spread-gif/models"
	"corona-spread-gif/utils"
)

const topCountries = 5

// SummaryService reports on a finished render run.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate summarises the sequencer records and the top countries at the last date.
func (s *SummaryService) Generate(collection models.DatasetCollection, result *SequenceResult, animation string) *models.RunSummary {
	report := &models.RunSummary{
		Animation:    animation,
		TopByDataset: make(map[string][]models.CountryTotal),
	}
	if result == nil || len(result.Records) == 0 {
		return report
	}

	report.PerDate = result.Records
	report.Frames = len(result.Records)
	for _, r := range result.Records {
		if r.Reused {
			report.Reused++
		} else {
			report.Rendered++
		}
	}
	report.LastDate = result.Records[len(result.Records)-1].Date
	s.logger.Debug("summary: %d frames up to %s (%d rendered, %d reused)", report.Frames, report.LastDate, report.Rendered, report.Reused)

	for _, name := range collection.Names() {
		report.TopByDataset[name] = TopCountries(collection[name], report.LastDate, topCountries)
	}
	return report
}

// TopCountries sums rows per country at date and returns the n largest, ties broken by name.
func TopCountries(ds *models.TimeseriesDataset, date string, n int) []models.CountryTotal {
	totals := map[string]float64{}
	for _, row := range ds.Rows {
		if v, ok := row.Value(date); ok {
			totals[row.Country] += v
		}
	}

	out := make([]models.CountryTotal, 0, len(totals))
	for c, v := range totals {
		if v > 0 {
			out = append(out, models.CountryTotal{Country: c, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Country < out[j].Country
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *SummaryService) Print(w io.Writer, r *models.RunSummary) {
	frames := table.NewWriter()
	frames.SetOutputMirror(w)
	frames.SetTitle("Frames")
	frames.AppendHeader(table.Row{"Date", "State", "Markers", "Image"})
	for _, rec := range r.PerDate {
		state, markers := "rendered", fmt.Sprint(rec.Markers)
		if rec.Reused {
			state, markers = "reused", "-"
		}
		frames.AppendRow(table.Row{rec.Date, state, markers, rec.ImagePath})
	}
	frames.AppendFooter(table.Row{"Total", fmt.Sprintf("%d rendered, %d reused", r.Rendered, r.Reused), "", r.Animation})
	frames.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	frames.SetStyle(table.StyleRounded)
	frames.Render()

	if r.LastDate == "" {
		return
	}
	names := make([]string, 0, len(r.TopByDataset))
	for name := range r.TopByDataset {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		top := r.TopByDataset[name]
		t := table.NewWriter()
		t.SetOutputMirror(w)
		fmt.Fprintf(w, "Top %s on %s\n", name, r.LastDate)
		t.AppendHeader(table.Row{"#", "Country", "Value"})
		for i, c := range top {
			t.AppendRow(table.Row{i + 1, c.Country, fmt.Sprintf("%.0f", c.Value)})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	}
}
