// Package transportapi fetches live departures and service stop lists
// from the Transport API UK train endpoints.
package transportapi

import (
	"context"
	"time"

	"github.com/ngmaloney/train-terminal/internal/models"
)

// DefaultBaseURL is the Transport API UK train root
const DefaultBaseURL = "https://transportapi.com/v3/uk/train"

// Client defines the interface for fetching departures and services
type Client interface {
	// StationTimetable retrieves the departure board for a station
	StationTimetable(ctx context.Context, params StationTimetableParams) (*models.StationTimetable, error)

	// ServiceTimetable retrieves one service with every calling point.
	// A zero date asks for today's running.
	ServiceTimetable(ctx context.Context, serviceID string, date time.Time) (*models.ServiceDetail, error)
}

// Options configures the HTTP client
type Options struct {
	AppID         string
	AppKey        string
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64 // 0 disables throttling
}

// New returns a mock client when mock is set, otherwise an HTTP client
func New(opts Options, mock bool) Client {
	if mock {
		return NewMockClient()
	}
	return NewHTTPClient(opts)
}
