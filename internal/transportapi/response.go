package transportapi

import (
	"strings"
	"time"

	"github.com/ngmaloney/train-terminal/internal/models"
)

// Internal types for Transport API responses

type stationTimetableResponse struct {
	Date        string `json:"date"`
	TimeOfDay   string `json:"time_of_day"`
	RequestTime string `json:"request_time"`
	StationName string `json:"station_name"`
	StationCode string `json:"station_code"`
	Departures  *struct {
		All []departure `json:"all"`
	} `json:"departures"`
	Updates *struct {
		All []departure `json:"all"`
	} `json:"updates"`
}

type departure struct {
	Mode                  string `json:"mode"`
	Service               string `json:"service"`
	TrainUID              string `json:"train_uid"`
	Platform              string `json:"platform"`
	Operator              string `json:"operator"`
	OperatorName          string `json:"operator_name"`
	AimedDepartureTime    string `json:"aimed_departure_time"`
	ExpectedDepartureTime string `json:"expected_departure_time"`
	OriginName            string `json:"origin_name"`
	DestinationName       string `json:"destination_name"`
	Status                string `json:"status"`
	ServiceTimetable      *struct {
		ID string `json:"id"`
	} `json:"service_timetable"`
}

func (r *stationTimetableResponse) toModel() *models.StationTimetable {
	var deps []departure
	switch {
	case r.Departures != nil && r.Departures.All != nil:
		deps = r.Departures.All
	case r.Updates != nil:
		deps = r.Updates.All
	}

	st := &models.StationTimetable{
		StationCode: r.StationCode,
		StationName: r.StationName,
		Departures:  make([]models.ServiceSummary, 0, len(deps)),
		UpdatedAt:   time.Now(),
	}
	for _, d := range deps {
		summary := models.ServiceSummary{
			Service:               d.Service,
			TrainUID:              d.TrainUID,
			Platform:              d.Platform,
			AimedDepartureTime:    d.AimedDepartureTime,
			ExpectedDepartureTime: d.ExpectedDepartureTime,
			DestinationName:       d.DestinationName,
			Status:                NormalizeStatus(d.Status, d.AimedDepartureTime, d.ExpectedDepartureTime),
			OperatorName:          d.OperatorName,
			TimetableID:           d.TrainUID,
		}
		if d.ServiceTimetable != nil && d.ServiceTimetable.ID != "" {
			summary.TimetableID = d.ServiceTimetable.ID
		}
		st.Departures = append(st.Departures, summary)
	}
	return st
}

type serviceTimetableResponse struct {
	RequestTime     string `json:"request_time"`
	Service         string `json:"service"`
	TrainUID        string `json:"train_uid"`
	Headcode        string `json:"headcode"`
	Mode            string `json:"mode"`
	OperatorName    string `json:"operator_name"`
	OriginName      string `json:"origin_name"`
	DestinationName string `json:"destination_name"`
	Stops           []struct {
		StationCode           string `json:"station_code"`
		StationName           string `json:"station_name"`
		StopType              string `json:"stop_type"`
		Platform              string `json:"platform"`
		Status                string `json:"status"`
		AimedDepartureTime    string `json:"aimed_departure_time"`
		ExpectedDepartureTime string `json:"expected_departure_time"`
		AimedArrivalTime      string `json:"aimed_arrival_time"`
		ExpectedArrivalTime   string `json:"expected_arrival_time"`
	} `json:"stops"`
}

func (r *serviceTimetableResponse) toModel() *models.ServiceDetail {
	d := &models.ServiceDetail{
		Service:         r.Service,
		TrainUID:        r.TrainUID,
		Headcode:        r.Headcode,
		OperatorName:    r.OperatorName,
		OriginName:      r.OriginName,
		DestinationName: r.DestinationName,
		Stops:           make([]models.ServiceStop, 0, len(r.Stops)),
	}
	for _, s := range r.Stops {
		d.Stops = append(d.Stops, models.ServiceStop{
			StationCode:           s.StationCode,
			StationName:           s.StationName,
			StopType:              s.StopType,
			Platform:              s.Platform,
			Status:                s.Status,
			AimedDepartureTime:    s.AimedDepartureTime,
			ExpectedDepartureTime: s.ExpectedDepartureTime,
			AimedArrivalTime:      s.AimedArrivalTime,
			ExpectedArrivalTime:   s.ExpectedArrivalTime,
		})
	}
	return d
}

// NormalizeStatus maps the API's free-text status onto ON TIME, LATE,
// CANCELLED or EARLY. Without a status, a differing expected time means LATE.
// Unrecognised statuses pass through unchanged.
func NormalizeStatus(status, aimed, expected string) string {
	if status == "" {
		if aimed != "" && expected != "" && expected != aimed {
			return models.StatusLate
		}
		return models.StatusOnTime
	}

	upper := strings.ToUpper(status)
	switch {
	case strings.Contains(upper, "CANCEL"):
		return models.StatusCancelled
	case strings.Contains(upper, "LATE"), strings.Contains(upper, "DELAY"):
		return models.StatusLate
	case strings.Contains(upper, "EARLY"):
		return models.StatusEarly
	case strings.Contains(upper, "ON TIME"):
		return models.StatusOnTime
	}
	return status
}
