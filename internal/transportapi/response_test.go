package transportapi

import (
	"context"
	"testing"
	"time"

	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		aimed    string
		expected string
		want     string
	}{
		{"no status, on time", "", "07:36", "07:36", models.StatusOnTime},
		{"no status, no expected", "", "07:36", "", models.StatusOnTime},
		{"no status, differing expected", "", "07:36", "07:40", models.StatusLate},
		{"cancelled", "CANCELLED", "07:36", "", models.StatusCancelled},
		{"cancel lower case", "cancelled by operator", "", "", models.StatusCancelled},
		{"late", "LATE", "", "", models.StatusLate},
		{"delayed", "Delayed", "", "", models.StatusLate},
		{"early", "EARLY", "", "", models.StatusEarly},
		{"on time", "On time", "", "", models.StatusOnTime},
		{"passthrough", "NO REPORT", "", "", "NO REPORT"},
		{"starts here", "STARTS HERE", "", "", "STARTS HERE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.status, tt.aimed, tt.expected))
		})
	}
}

func TestMockClient(t *testing.T) {
	client := New(Options{}, true)

	st, err := client.StationTimetable(context.Background(), StationTimetableParams{StationCRS: "SEV"})
	require.NoError(t, err)
	assert.Len(t, st.Departures, 5)
	assert.Len(t, st.GetDeparturesByCondition(models.ConditionCancelled), 1)

	detail, err := client.ServiceTimetable(context.Background(), "W90011", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "London Charing Cross", detail.DestinationName)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.StationTimetable(ctx, StationTimetableParams{StationCRS: "SEV"})
	assert.Error(t, err)
}

func TestNew_Live(t *testing.T) {
	_, ok := New(Options{AppID: "a", AppKey: "b"}, false).(*HTTPClient)
	assert.True(t, ok)
}
