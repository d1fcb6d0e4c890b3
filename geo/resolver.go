package geo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// aliases maps dataset country labels onto reference names.
var aliases = map[string]string{
	"US":                             "United States",
	"Holy See":                       "Vatican",
	"Korea, South":                   "South Korea",
	"Taiwan*":                        "Taiwan",
	"Congo (Kinshasa)":               "Democratic Republic of the Congo",
	"Cote d'Ivoire":                  "Ivory Coast",
	"occupied Palestinian territory": "Palestinian Territory",
	"Congo (Brazzaville)":            "Republic of the Congo",
	"The Bahamas":                    "Bahamas",
	"The Gambia":                     "Gambia",
	"Bahamas, The":                   "Bahamas",
	"Gambia, The":                    "Gambia",
	"West Bank and Gaza":             "Palestinian Territory",
	"Burma":                          "Myanmar",
	"Cabo Verde":                     "Cape Verde",
	"Timor-Leste":                    "Timor Leste",
	"Korea, North":                   "North Korea",
	"Macau":                          "Macao",
}

// suggestionThreshold is the minimum Jaro-Winkler similarity for a "did you mean" hint.
const suggestionThreshold = 0.85

// LookupError is returned when a label has no population entry after alias normalisation.
type LookupError struct {
	Label       string
	Canonical   string
	Suggestions []string
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("no population for country %q", e.Label)
	if e.Canonical != e.Label {
		msg += fmt.Sprintf(" (resolved as %q)", e.Canonical)
	}
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}
	return msg
}

// Resolver maps dataset country labels to populations.
type Resolver struct {
	ref Reference
}

// NewResolver creates a Resolver over ref.
func NewResolver(ref Reference) *Resolver {
	return &Resolver{ref: ref}
}

// Canonical returns the reference name for label.
func Canonical(label string) string {
	if name, ok := aliases[label]; ok {
		return name
	}
	return label
}

// Population returns the population for a dataset country label.
func (r *Resolver) Population(label string) (int64, error) {
	name := Canonical(label)
	if pop, ok := r.ref.Population(name); ok {
		return pop, nil
	}
	return 0, &LookupError{
		Label:       label,
		Canonical:   name,
		Suggestions: r.suggest(name),
	}
}

func (r *Resolver) suggest(name string) []string {
	type scored struct {
		name  string
		score float64
	}
	var matches []scored
	for _, candidate := range r.ref.Names() {
		s := matchr.JaroWinkler(strings.ToLower(name), strings.ToLower(candidate), false)
		if s >= suggestionThreshold {
			matches = append(matches, scored{candidate, s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > 3 {
		matches = matches[:3]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
