package models

import "testing"

func TestStationTimetable_GetDeparturesByCondition(t *testing.T) {
	tests := []struct {
		name       string
		departures []ServiceSummary
		cond       ServiceCondition
		want       int // number of departures expected
	}{
		{
			name: "mixed board",
			departures: []ServiceSummary{
				{Service: "1", Status: StatusOnTime},
				{Service: "2", Status: StatusLate},
				{Service: "3", Status: StatusCancelled},
				{Service: "4", Status: StatusEarly},
			},
			cond: ConditionOnTime,
			want: 2,
		},
		{
			name: "no cancellations",
			departures: []ServiceSummary{
				{Service: "1", Status: StatusOnTime},
				{Service: "2", Status: StatusLate},
			},
			cond: ConditionCancelled,
			want: 0,
		},
		{
			name: "single delay",
			departures: []ServiceSummary{
				{Service: "1", Status: StatusLate},
			},
			cond: ConditionDelayed,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &StationTimetable{
				StationCode: "CHX",
				Departures:  tt.departures,
			}
			got := st.GetDeparturesByCondition(tt.cond)
			if len(got) != tt.want {
				t.Errorf("GetDeparturesByCondition() returned %d departures, want %d", len(got), tt.want)
			}
		})
	}
}

func TestServiceSummary_DepartureTime(t *testing.T) {
	s := ServiceSummary{AimedDepartureTime: "18:35"}
	if got := s.DepartureTime(); got != "18:35" {
		t.Errorf("DepartureTime() = %s, want 18:35", got)
	}

	s.ExpectedDepartureTime = "18:41"
	if got := s.DepartureTime(); got != "18:41" {
		t.Errorf("DepartureTime() = %s, want 18:41", got)
	}
}

func TestServiceDetail_StopIndex(t *testing.T) {
	d := &ServiceDetail{Stops: []ServiceStop{
		{StationCode: "CHX"},
		{StationCode: "LBG"},
		{StationCode: "SEV"},
	}}

	if got := d.StopIndex("LBG"); got != 1 {
		t.Errorf("StopIndex(LBG) = %d, want 1", got)
	}
	if got := d.StopIndex("XXX"); got != -1 {
		t.Errorf("StopIndex(XXX) = %d, want -1", got)
	}
}

func TestStatus_Constants(t *testing.T) {
	if StatusOnTime != "ON TIME" {
		t.Errorf("StatusOnTime = %v, want 'ON TIME'", StatusOnTime)
	}
	if StatusCancelled != "CANCELLED" {
		t.Errorf("StatusCancelled = %v, want 'CANCELLED'", StatusCancelled)
	}
}

func TestStation_String(t *testing.T) {
	s := Station{CRS: "CHX", Name: "London Charing Cross"}
	if got := s.String(); got != "London Charing Cross (CHX)" {
		t.Errorf("String() = %q", got)
	}
}
