package geo

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

//go:embed countries.csv
var embeddedCountries string

// Reference is a population-by-country-name table keyed by canonical name.
type Reference interface {
	Population(name string) (int64, bool)
	Names() []string
}

// TableReference is an in-memory Reference.
type TableReference map[string]int64

func (t TableReference) Population(name string) (int64, bool) {
	p, ok := t[name]
	return p, ok
}

func (t TableReference) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadEmbeddedReference returns the country table compiled into the binary.
func LoadEmbeddedReference() (TableReference, error) {
	return ReadReference(strings.NewReader(embeddedCountries))
}

// ReadReference parses a name,iso2,population CSV with a header row.
func ReadReference(r io.Reader) (TableReference, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("geo: read reference header: %w", err)
	}
	nameIdx, popIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameIdx = i
		case "population":
			popIdx = i
		}
	}
	if nameIdx < 0 || popIdx < 0 {
		return nil, fmt.Errorf("geo: reference needs name and population columns, got %v", header)
	}

	ref := make(TableReference)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("geo: read reference: %w", err)
		}
		if len(rec) <= nameIdx || len(rec) <= popIdx {
			continue
		}
		pop, err := strconv.ParseInt(strings.TrimSpace(rec[popIdx]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("geo: population for %q: %w", rec[nameIdx], err)
		}
		// Uninhabited entries cannot normalise anything.
		if pop <= 0 {
			continue
		}
		ref[strings.TrimSpace(rec[nameIdx])] = pop
	}
	return ref, nil
}
