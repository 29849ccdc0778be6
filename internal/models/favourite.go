package models

import "time"

// FavouriteService is a departure the user pinned. TemplateURL holds a
// {DATE} placeholder so the same service can be reopened on another day.
type FavouriteService struct {
	ID                 string    `json:"id" db:"id"`
	TemplateURL        string    `json:"templateUrl" db:"template_url"`
	FromStation        Station   `json:"fromStation"`
	ToStation          Station   `json:"toStation"`
	ScheduledDeparture string    `json:"scheduledDeparture" db:"scheduled_departure"` // HH:mm
	AddedAt            time.Time `json:"addedAt" db:"added_at"`
}

// RecentSearch is a from/to pair the user looked up.
type RecentSearch struct {
	From      Station   `json:"from"`
	To        Station   `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}
