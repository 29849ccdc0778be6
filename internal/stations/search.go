package stations

import (
	"sort"
	"strings"

	"github.com/ngmaloney/train-terminal/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultSearchLimit is the number of suggestions shown under a station input.
const DefaultSearchLimit = 10

// match tiers, best first
const (
	tierExactCRS = iota
	tierCRSPrefix
	tierNamePrefix
	tierContains
)

type candidate struct {
	station models.Station
	tier    int
}

// Search ranks stations against a free-text query and returns at most limit
// matches. A station matches when its name or CRS contains the query
// (case-insensitive). Exact CRS matches come first, then CRS prefixes, then
// name prefixes, then the rest; each tier is alphabetical by name.
// An empty or whitespace-only query returns nothing.
func Search(stations []models.Station, query string, limit int) []models.Station {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return []models.Station{}
	}

	var matches []candidate
	for _, s := range stations {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		crs := strings.ToLower(strings.TrimSpace(s.CRS))
		if !strings.Contains(name, q) && !strings.Contains(crs, q) {
			continue
		}
		matches = append(matches, candidate{station: s, tier: rank(name, crs, q)})
	}

	// collators keep internal buffers, so one per call
	col := collate.New(language.BritishEnglish, collate.IgnoreCase)
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if c := col.CompareString(a.station.Name, b.station.Name); c != 0 {
			return c < 0
		}
		return a.station.Name < b.station.Name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]models.Station, len(matches))
	for i, m := range matches {
		out[i] = m.station
	}
	return out
}

func rank(name, crs, q string) int {
	switch {
	case crs == q:
		return tierExactCRS
	case strings.HasPrefix(crs, q):
		return tierCRSPrefix
	case strings.HasPrefix(name, q):
		return tierNamePrefix
	}
	return tierContains
}
