// Package timeutil holds the small clock and offset helpers shared by the
// journey matcher, the departures client and the UI.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClock is returned for anything that is not a 24h "HH:mm" string.
var ErrInvalidClock = errors.New("invalid HH:mm time")

const clockLayout = "15:04"

// ParseClock converts "HH:mm" into minutes since midnight (0-1439).
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock formats t as HH:mm in its own location
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatOffset renders a minute offset the way the departures API expects,
// e.g. 90 -> "PT01:30:00", -30 -> "-PT00:30:00".
func FormatOffset(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%sPT%02d:%02d:00", sign, minutes/60, minutes%60)
}

// DelayMinutes returns expected minus aimed, in minutes.
func DelayMinutes(aimed, expected string) (int, error) {
	a, err := ParseClock(aimed)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(expected)
	if err != nil {
		return 0, err
	}
	return e - a, nil
}

// IsDelayed reports whether expected is later than aimed. Unparseable
// times are treated as not delayed.
func IsDelayed(aimed, expected string) bool {
	d, err := DelayMinutes(aimed, expected)
	return err == nil && d > 0
}

// FormatTimeOption labels a departure time relative to now:
// "Today at 18:35", "Tomorrow at 07:10", "Yesterday at 23:00" or "Mon at 09:00".
func FormatTimeOption(t, now time.Time) string {
	clock := FormatClock(t)
	switch dayDiff(t, now) {
	case 0:
		return "Today at " + clock
	case 1:
		return "Tomorrow at " + clock
	case -1:
		return "Yesterday at " + clock
	}
	return t.Format("Mon") + " at " + clock
}

func dayDiff(t, now time.Time) int {
	ty, tm, td := t.Date()
	ny, nm, nd := now.In(t.Location()).Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}
