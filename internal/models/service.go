package models

import "time"

// Status values reported for a departure
const (
	StatusOnTime    = "ON TIME"
	StatusLate      = "LATE"
	StatusCancelled = "CANCELLED"
	StatusEarly     = "EARLY"
)

// ServiceCondition is the coarse state shown next to a departure
type ServiceCondition string

const (
	ConditionOnTime    ServiceCondition = "on-time"
	ConditionDelayed   ServiceCondition = "delayed"
	ConditionCancelled ServiceCondition = "cancelled"
)

// ServiceSummary is one departure row on a station board
type ServiceSummary struct {
	Service               string `json:"service"`
	TrainUID              string `json:"train_uid"`
	Platform              string `json:"platform,omitempty"`
	AimedDepartureTime    string `json:"aimed_departure_time"`              // HH:mm
	ExpectedDepartureTime string `json:"expected_departure_time,omitempty"` // HH:mm
	DestinationName       string `json:"destination_name"`
	Status                string `json:"status"`
	OperatorName          string `json:"operator_name,omitempty"`
	TimetableID           string `json:"service_timetable_id,omitempty"` // used to fetch the stop list
}

// Condition maps the normalized status onto on-time/delayed/cancelled.
func (s ServiceSummary) Condition() ServiceCondition {
	switch s.Status {
	case StatusCancelled:
		return ConditionCancelled
	case StatusLate:
		return ConditionDelayed
	}
	return ConditionOnTime
}

// DepartureTime returns the expected time when known, otherwise the aimed one.
func (s ServiceSummary) DepartureTime() string {
	if s.ExpectedDepartureTime != "" {
		return s.ExpectedDepartureTime
	}
	return s.AimedDepartureTime
}

// StationTimetable is a departure board for one station
type StationTimetable struct {
	StationCode string
	StationName string
	Departures  []ServiceSummary // Ordered as returned by the API
	UpdatedAt   time.Time
}

// GetDeparturesByCondition returns the departures in the given condition
func (st *StationTimetable) GetDeparturesByCondition(cond ServiceCondition) []ServiceSummary {
	var out []ServiceSummary
	for _, dep := range st.Departures {
		if dep.Condition() == cond {
			out = append(out, dep)
		}
	}
	return out
}

// ServiceStop is one calling point of a service
type ServiceStop struct {
	StationCode           string `json:"station_code"`
	StationName           string `json:"station_name"`
	StopType              string `json:"stop_type,omitempty"`
	Platform              string `json:"platform,omitempty"`
	Status                string `json:"status,omitempty"`
	AimedDepartureTime    string `json:"aimed_departure_time,omitempty"`
	ExpectedDepartureTime string `json:"expected_departure_time,omitempty"`
	AimedArrivalTime      string `json:"aimed_arrival_time,omitempty"`
	ExpectedArrivalTime   string `json:"expected_arrival_time,omitempty"`
}

// ServiceDetail is a single service with its full stop list
type ServiceDetail struct {
	Service         string        `json:"service"`
	TrainUID        string        `json:"train_uid"`
	Headcode        string        `json:"headcode,omitempty"`
	OperatorName    string        `json:"operator_name,omitempty"`
	OriginName      string        `json:"origin_name"`
	DestinationName string        `json:"destination_name"`
	Stops           []ServiceStop `json:"stops"`
}

// StopIndex returns the position of the stop with the given CRS, or -1.
func (d *ServiceDetail) StopIndex(crs string) int {
	for i, stop := range d.Stops {
		if stop.StationCode == crs {
			return i
		}
	}
	return -1
}
