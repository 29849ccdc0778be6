package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/train-terminal/internal/models"
)

// journeyItem implements list.Item for a saved journey
type journeyItem struct {
	journey models.SavedJourney
}

func (i journeyItem) Title() string {
	return i.journey.Title()
}

func (i journeyItem) Description() string {
	if len(i.journey.Rules) == 0 {
		return "No rules"
	}
	descs := make([]string, len(i.journey.Rules))
	for n, r := range i.journey.Rules {
		descs[n] = describeRule(r)
	}
	return strings.Join(descs, "; ")
}

func (i journeyItem) FilterValue() string {
	return i.journey.Title()
}

// recentItem implements list.Item for a recent search
type recentItem struct {
	search models.RecentSearch
}

func (i recentItem) Title() string {
	return i.search.From.Name + " → " + i.search.To.Name
}

func (i recentItem) Description() string {
	return "Recent • " + i.search.Timestamp.Format("Mon 15:04")
}

func (i recentItem) FilterValue() string {
	return i.Title()
}

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// describeRule summarises a rule, e.g. "07:00-09:30 Mon,Tue near Home"
func describeRule(r models.RecommendationRule) string {
	var parts []string
	if r.HasTimeWindow() {
		parts = append(parts, r.TimeStart+"-"+r.TimeEnd)
	}
	if len(r.DaysOfWeek) > 0 && len(r.DaysOfWeek) < 7 {
		days := make([]string, 0, len(r.DaysOfWeek))
		for _, d := range r.DaysOfWeek {
			if d >= 0 && d < len(weekdayNames) {
				days = append(days, weekdayNames[d])
			}
		}
		parts = append(parts, strings.Join(days, ","))
	}
	if r.Location != nil {
		parts = append(parts, fmt.Sprintf("near %s", r.Location.Name))
	}
	if len(parts) == 0 {
		return "Any time"
	}
	return strings.Join(parts, " ")
}

// homeItems lists recommended journeys followed by recent searches
func homeItems(recommended []models.SavedJourney, recent []models.RecentSearch) []list.Item {
	items := make([]list.Item, 0, len(recommended)+len(recent))
	for _, j := range recommended {
		items = append(items, journeyItem{journey: j})
	}
	for _, s := range recent {
		items = append(items, recentItem{search: s})
	}
	return items
}

// createJourneyList creates a list of journeys or searches
func createJourneyList(title string, items []list.Item, width, height int) list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	return l
}
