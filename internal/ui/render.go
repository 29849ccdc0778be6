package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/train-terminal/internal/models"
)

// renderBoardHeader renders "Sevenoaks → London Charing Cross" with the fetch time
func renderBoardHeader(tt *models.StationTimetable, from models.Station, to *models.Station) string {
	route := from.Name
	if to != nil {
		route += " → " + to.Name
	}
	header := titleStyle.Render(route)
	if tt != nil && !tt.UpdatedAt.IsZero() {
		header += "  " + mutedStyle.Render("updated "+tt.UpdatedAt.Format("15:04:05"))
	}
	return header
}

// boardSummary renders "3 on time • 1 delayed • 1 cancelled", skipping empty groups
func boardSummary(tt *models.StationTimetable) string {
	var parts []string
	if n := len(tt.GetDeparturesByCondition(models.ConditionOnTime)); n > 0 {
		parts = append(parts, onTimeStyle.Render(fmt.Sprintf("%d on time", n)))
	}
	if n := len(tt.GetDeparturesByCondition(models.ConditionDelayed)); n > 0 {
		parts = append(parts, delayedStyle.Render(fmt.Sprintf("%d delayed", n)))
	}
	if n := len(tt.GetDeparturesByCondition(models.ConditionCancelled)); n > 0 {
		parts = append(parts, cancelledStyle.Render(fmt.Sprintf("%d cancelled", n)))
	}
	return strings.Join(parts, mutedStyle.Render(" • "))
}

// stopTime picks the time shown for a calling point: departure first, arrival at the terminus
func stopTime(stop models.ServiceStop) string {
	aimed, expected := stop.AimedDepartureTime, stop.ExpectedDepartureTime
	if aimed == "" {
		aimed, expected = stop.AimedArrivalTime, stop.ExpectedArrivalTime
	}
	if aimed == "" {
		return "--:--"
	}
	if expected != "" && expected != aimed {
		return fmt.Sprintf("%s (exp %s)", aimed, expected)
	}
	return aimed
}

// renderService renders the calling points of a service, highlighting the
// stops between from and to
func renderService(d *models.ServiceDetail, fromCRS, toCRS string) string {
	if d == nil {
		return mutedStyle.Render("No service selected")
	}

	var b strings.Builder
	title := d.OriginName + " → " + d.DestinationName
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	var meta []string
	if d.Headcode != "" {
		meta = append(meta, d.Headcode)
	}
	if d.OperatorName != "" {
		meta = append(meta, d.OperatorName)
	}
	if len(meta) > 0 {
		b.WriteString(mutedStyle.Render(strings.Join(meta, " • ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	start, end := d.StopIndex(fromCRS), d.StopIndex(toCRS)
	if end < start {
		end = -1
	}

	for i, stop := range d.Stops {
		marker := "○"
		style := mutedStyle
		switch {
		case i == start || i == end:
			marker = "●"
			style = valueStyle.Bold(true)
		case start >= 0 && i > start && (end < 0 || i < end):
			marker = "│"
			style = journeyStopStyle
		}

		line := fmt.Sprintf("%s %-22s %s", marker, stopTime(stop), stop.StationName)
		if stop.Platform != "" {
			line += "  " + labelStyle.Render("Plat "+stop.Platform)
		}
		if stop.Status == models.StatusCancelled {
			line = cancelledStyle.Render(line)
		} else {
			line = style.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return sectionBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
