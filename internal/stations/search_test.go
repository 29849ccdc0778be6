package stations

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ngmaloney/train-terminal/internal/models"
)

func testDirectory() []models.Station {
	return []models.Station{
		{CRS: "CHX", Name: "London Charing Cross"},
		{CRS: "CHM", Name: "Chesham"},
		{CRS: "CST", Name: "London Cannon Street"},
		{CRS: "LBG", Name: "London Bridge"},
		{CRS: "CHC", Name: "Charing Cross (Glasgow)"},
		{CRS: "BHM", Name: "Birmingham New Street"},
		{CRS: "CLJ", Name: "Clapham Junction"},
		{CRS: "MAN", Name: "Manchester Piccadilly"},
		{CRS: "MCO", Name: "Manchester Oxford Road"},
		{CRS: "WML", Name: "Wilmslow"},
	}
}

func crsList(stations []models.Station) []string {
	out := make([]string, len(stations))
	for i, s := range stations {
		out[i] = s.CRS
	}
	return out
}

func TestSearch_Ranking(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"exact crs first", "chx", 10, []string{"CHX"}},
		{"crs prefixes then substrings", "ch", 10, []string{"CHC", "CHM", "CHX", "MCO", "MAN"}},
		{"exact crs ahead of name prefix", "man", 10, []string{"MAN", "MCO"}},
		{"name prefix ahead of substring", "london", 10, []string{"LBG", "CST", "CHX"}},
		{"substring only ordered by name", "cross", 10, []string{"CHC", "CHX"}},
		{"case and whitespace insensitive", "  LoNdOn BR  ", 10, []string{"LBG"}},
		{"limit truncates after ordering", "london", 2, []string{"LBG", "CST"}},
		{"no match", "zzz", 10, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := crsList(Search(testDirectory(), tt.query, tt.limit))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearch_CRSTierBeatsAlphabet(t *testing.T) {
	stations := []models.Station{
		{CRS: "ABC", Name: "Aardvark Halt"},
		{CRS: "XAB", Name: "Abbey Wood"},
		{CRS: "ABX", Name: "Zebra Junction"},
	}
	// "ab": ABC and ABX are crs prefixes, Abbey Wood is only a name prefix
	got := crsList(Search(stations, "ab", 10))
	want := []string{"ABC", "ABX", "XAB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search() = %v, want %v", got, want)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		got := Search(testDirectory(), q, 10)
		if len(got) != 0 {
			t.Errorf("Search(%q) returned %d stations, want 0", q, len(got))
		}
	}
}

func TestSearch_NonPositiveLimit(t *testing.T) {
	if got := Search(testDirectory(), "london", 0); len(got) != 0 {
		t.Errorf("Search(limit=0) returned %d stations", len(got))
	}
}

func TestSearch_OnlyReturnsMatches(t *testing.T) {
	for _, q := range []string{"a", "on", "ch", "x", "road"} {
		for _, s := range Search(testDirectory(), q, 100) {
			name := strings.ToLower(s.Name)
			crs := strings.ToLower(s.CRS)
			if !strings.Contains(name, q) && !strings.Contains(crs, q) {
				t.Errorf("Search(%q) returned non-matching station %v", q, s)
			}
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	dir := testDirectory()
	first := Search(dir, "o", 100)
	for i := 0; i < 20; i++ {
		if got := Search(dir, "o", 100); !reflect.DeepEqual(got, first) {
			t.Fatalf("Search() run %d = %v, want %v", i, got, first)
		}
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	dir := testDirectory()
	before := append([]models.Station(nil), dir...)
	_ = Search(dir, "london", 10)
	if !reflect.DeepEqual(dir, before) {
		t.Error("Search() reordered its input")
	}
}
