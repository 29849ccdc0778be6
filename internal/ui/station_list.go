package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/train-terminal/internal/models"
)

// stationItem implements list.Item for a station suggestion
type stationItem struct {
	station models.Station
	note    string // "favourite", "recent" or empty
}

func (i stationItem) Title() string {
	return i.station.Name
}

func (i stationItem) Description() string {
	if i.note != "" {
		return i.station.CRS + " • " + i.note
	}
	return i.station.CRS
}

func (i stationItem) FilterValue() string {
	return i.station.Name + " " + i.station.CRS
}

// stationItems wraps stations as list items with a shared note
func stationItems(stations []models.Station, note string) []list.Item {
	items := make([]list.Item, len(stations))
	for i, s := range stations {
		items[i] = stationItem{station: s, note: note}
	}
	return items
}

// seedItems lists favourites first, then recent stations not already shown
func seedItems(favs, recent []models.Station) []list.Item {
	seen := make(map[string]bool, len(favs))
	items := stationItems(favs, "favourite")
	for _, s := range favs {
		seen[s.CRS] = true
	}
	for _, s := range recent {
		if !seen[s.CRS] {
			items = append(items, stationItem{station: s, note: "recent"})
			seen[s.CRS] = true
		}
	}
	return items
}

// createStationList creates the suggestion list shown under the search box
func createStationList(items []list.Item, width, height int) list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width, height)
	l.Title = "Stations"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	return l
}
