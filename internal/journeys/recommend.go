package journeys

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ngmaloney/train-terminal/internal/geo"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/timeutil"
)

var (
	// ErrInvalidTime is returned for a clock value that is not a valid HH:mm
	ErrInvalidTime = timeutil.ErrInvalidClock
	// ErrInvalidWeekday is returned for a weekday outside 0 (Sunday) to 6 (Saturday)
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// Conditions is the user's live context a journey is matched against.
// Position is nil when no location fix is available.
type Conditions struct {
	Position *models.Coordinates
	Now      string // HH:mm
	Weekday  int    // 0=Sunday
}

// ConditionsAt builds Conditions from a wall clock reading
func ConditionsAt(t time.Time, pos *models.Coordinates) Conditions {
	return Conditions{
		Position: pos,
		Now:      timeutil.FormatClock(t),
		Weekday:  int(t.Weekday()),
	}
}

// Recommend returns the journeys with at least one matching rule, most
// recently used first. Journeys without rules are never returned. The
// input slice is not modified.
func Recommend(journeys []models.SavedJourney, cond Conditions) ([]models.SavedJourney, error) {
	now, err := timeutil.ParseClock(cond.Now)
	if err != nil {
		return nil, fmt.Errorf("current time %q: %w", cond.Now, err)
	}
	if cond.Weekday < 0 || cond.Weekday > 6 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, cond.Weekday)
	}

	out := make([]models.SavedJourney, 0)
	for _, j := range journeys {
		matched := false
		for _, rule := range j.Rules {
			ok, err := ruleMatches(rule, now, cond)
			if err != nil {
				return nil, fmt.Errorf("journey %s rule %s: %w", j.ID, rule.ID, err)
			}
			if ok {
				matched = true
				break
			}
		}
		if matched {
			out = append(out, j)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].LastUsedAt.After(out[b].LastUsedAt)
	})
	return out, nil
}

func ruleMatches(rule models.RecommendationRule, now int, cond Conditions) (bool, error) {
	inWindow, err := timeMatches(rule, now)
	if err != nil {
		return false, err
	}
	return inWindow && dayMatches(rule.DaysOfWeek, cond.Weekday) && locationMatches(rule.Location, cond.Position), nil
}

// timeMatches checks the time window. A window ending before it starts
// wraps past midnight.
func timeMatches(rule models.RecommendationRule, now int) (bool, error) {
	start, end, err := parseWindow(rule)
	if err != nil {
		return false, err
	}
	if !rule.HasTimeWindow() {
		return true, nil
	}
	if end >= start {
		return now >= start && now <= end, nil
	}
	return now >= start || now <= end, nil
}

// parseWindow validates whichever ends of the window are set
func parseWindow(rule models.RecommendationRule) (start, end int, err error) {
	if rule.TimeStart != "" {
		if start, err = timeutil.ParseClock(rule.TimeStart); err != nil {
			return 0, 0, fmt.Errorf("time start %q: %w", rule.TimeStart, err)
		}
	}
	if rule.TimeEnd != "" {
		if end, err = timeutil.ParseClock(rule.TimeEnd); err != nil {
			return 0, 0, fmt.Errorf("time end %q: %w", rule.TimeEnd, err)
		}
	}
	return start, end, nil
}

// dayMatches treats an empty or full week as unrestricted
func dayMatches(days []int, weekday int) bool {
	if len(days) == 0 || len(days) == 7 {
		return true
	}
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

// locationMatches fails closed when the rule needs a position and there is none
func locationMatches(loc *models.SavedLocation, pos *models.Coordinates) bool {
	if loc == nil {
		return true
	}
	if pos == nil {
		return false
	}
	d := geo.HaversineMeters(pos.Latitude, pos.Longitude, loc.Latitude, loc.Longitude)
	return d <= loc.RadiusMeters
}
