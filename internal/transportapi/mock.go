package transportapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ngmaloney/train-terminal/internal/models"
)

//go:embed fixtures/station_timetable.json
var stationTimetableFixture []byte

//go:embed fixtures/service_timetable.json
var serviceTimetableFixture []byte

// MockClient serves bundled fixture responses without network access
type MockClient struct{}

// NewMockClient creates a fixture-backed client
func NewMockClient() *MockClient {
	return &MockClient{}
}

// StationTimetable returns the fixture departure board
func (m *MockClient) StationTimetable(ctx context.Context, params StationTimetableParams) (*models.StationTimetable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var resp stationTimetableResponse
	if err := json.Unmarshal(stationTimetableFixture, &resp); err != nil {
		return nil, fmt.Errorf("decoding station fixture: %w", err)
	}
	return resp.toModel(), nil
}

// ServiceTimetable returns the fixture service
func (m *MockClient) ServiceTimetable(ctx context.Context, serviceID string, date time.Time) (*models.ServiceDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var resp serviceTimetableResponse
	if err := json.Unmarshal(serviceTimetableFixture, &resp); err != nil {
		return nil, fmt.Errorf("decoding service fixture: %w", err)
	}
	return resp.toModel(), nil
}
