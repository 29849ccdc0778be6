package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/timeutil"
)

// departureItem implements list.Item for a row on the departure board
type departureItem struct {
	departure models.ServiceSummary
}

func (i departureItem) Title() string {
	return fmt.Sprintf("%s  %s", i.departure.AimedDepartureTime, i.departure.DestinationName)
}

func (i departureItem) Description() string {
	d := i.departure
	var parts []string
	if d.Platform != "" {
		parts = append(parts, "Plat "+d.Platform)
	}
	if d.OperatorName != "" {
		parts = append(parts, d.OperatorName)
	}
	parts = append(parts, statusText(d))
	return strings.Join(parts, " • ")
}

func (i departureItem) FilterValue() string {
	return i.departure.DestinationName
}

// statusText renders the status with the expected time when it differs
func statusText(d models.ServiceSummary) string {
	switch d.Condition() {
	case models.ConditionCancelled:
		return cancelledStyle.Render(d.Status)
	case models.ConditionDelayed:
		if timeutil.IsDelayed(d.AimedDepartureTime, d.ExpectedDepartureTime) {
			mins, _ := timeutil.DelayMinutes(d.AimedDepartureTime, d.ExpectedDepartureTime)
			return delayedStyle.Render(fmt.Sprintf("%s +%d min (exp %s)", d.Status, mins, d.ExpectedDepartureTime))
		}
		if d.ExpectedDepartureTime != "" && d.ExpectedDepartureTime != d.AimedDepartureTime {
			return delayedStyle.Render(fmt.Sprintf("%s (exp %s)", d.Status, d.ExpectedDepartureTime))
		}
		return delayedStyle.Render(d.Status)
	}
	return onTimeStyle.Render(d.Status)
}

// createDepartureList creates a list of departures
func createDepartureList(departures []models.ServiceSummary, width, height int) list.Model {
	items := make([]list.Item, len(departures))
	for i, d := range departures {
		items[i] = departureItem{departure: d}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width, height)
	l.Title = "Departures"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	return l
}
