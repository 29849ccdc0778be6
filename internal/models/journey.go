package models

import "time"

// SavedLocation is a named geofence captured by the user.
type SavedLocation struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Latitude     float64 `json:"latitude" db:"latitude"`
	Longitude    float64 `json:"longitude" db:"longitude"`
	RadiusMeters float64 `json:"radiusMeters" db:"radius_meters"`
}

// RecommendationRule is a conjunction of whichever predicates are set.
// Location is a copy of the saved location taken when the rule was created;
// later edits to that location do not reach it.
type RecommendationRule struct {
	ID         string         `json:"id"`
	LocationID string         `json:"locationId,omitempty"`
	Location   *SavedLocation `json:"location,omitempty"`
	TimeStart  string         `json:"timeStart,omitempty"`  // HH:mm
	TimeEnd    string         `json:"timeEnd,omitempty"`    // HH:mm
	DaysOfWeek []int          `json:"daysOfWeek,omitempty"` // 0=Sun ... 6=Sat
}

// HasTimeWindow reports whether both ends of the time window are set.
func (r RecommendationRule) HasTimeWindow() bool {
	return r.TimeStart != "" && r.TimeEnd != ""
}

// SavedJourney is a from/to pair the user saved, with optional rules
// describing when it should be suggested.
type SavedJourney struct {
	ID          string               `json:"id"`
	FromStation Station              `json:"fromStation"`
	ToStation   Station              `json:"toStation"`
	Rules       []RecommendationRule `json:"rules"`
	LastUsedAt  time.Time            `json:"lastUsedAt"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// Title renders "From → To".
func (j SavedJourney) Title() string {
	return j.FromStation.Name + " → " + j.ToStation.Name
}
