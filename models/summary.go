package models

// CountryTotal is a country's summed value across its rows for one dataset.
type CountryTotal struct {
	Country string
	Value   float64
}

// RunSummary holds what a render run produced.
type RunSummary struct {
	Frames       int
	Rendered     int
	Reused       int
	LastDate     string
	Animation    string
	PerDate      []*FrameRecord
	TopByDataset map[string][]CountryTotal
}
