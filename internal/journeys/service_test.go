package journeys

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	return NewService(newTestRepository(t), func() time.Time { return now })
}

func TestService_SaveAndUseJourney(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)
	clock := start
	svc := NewService(newTestRepository(t), func() time.Time { return clock })

	j, err := svc.SaveJourney(ctx, sevenoaks, charingCross)
	require.NoError(t, err)
	assert.NotEmpty(t, j.ID)
	assert.Empty(t, j.Rules)

	has, err := svc.HasJourney(ctx, "SEV", "CHX")
	require.NoError(t, err)
	assert.True(t, has)

	clock = start.Add(time.Hour)
	require.NoError(t, svc.UseJourney(ctx, j.ID))

	got, err := svc.Journey(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, clock.UnixMilli(), got.LastUsedAt.UnixMilli())
	assert.Equal(t, start.UnixMilli(), got.CreatedAt.UnixMilli())

	_, err = svc.SaveJourney(ctx, models.Station{}, charingCross)
	assert.Error(t, err)
}

func TestService_AddRuleSnapshotsLocation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local))

	loc, err := svc.AddLocation(ctx, models.SavedLocation{Name: "Home", Latitude: home.Latitude, Longitude: home.Longitude, RadiusMeters: 200})
	require.NoError(t, err)

	j, err := svc.SaveJourney(ctx, sevenoaks, charingCross)
	require.NoError(t, err)

	rule, err := svc.AddRule(ctx, j.ID, models.RecommendationRule{LocationID: loc.ID})
	require.NoError(t, err)
	require.NotNil(t, rule.Location)
	assert.Equal(t, *loc, *rule.Location)

	moved := *loc
	moved.Latitude, moved.Longitude = 55.8642, -4.2518
	require.NoError(t, svc.UpdateLocation(ctx, moved))

	pos := &models.Coordinates{Latitude: home.Latitude, Longitude: home.Longitude}
	got, err := svc.RecommendedNow(ctx, pos)
	require.NoError(t, err)
	assert.Equal(t, []string{j.ID}, ids(got))
}

func TestService_AddRuleUnknownLocation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Now())
	j, err := svc.SaveJourney(ctx, sevenoaks, charingCross)
	require.NoError(t, err)

	_, err = svc.AddRule(ctx, j.ID, models.RecommendationRule{LocationID: "nowhere"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_Recommended(t *testing.T) {
	ctx := context.Background()
	monday8am := time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)
	svc := newTestService(t, monday8am)

	commute, err := svc.SaveJourney(ctx, sevenoaks, charingCross)
	require.NoError(t, err)
	_, err = svc.AddRule(ctx, commute.ID, models.RecommendationRule{TimeStart: "07:00", TimeEnd: "09:30", DaysOfWeek: []int{1, 2, 3, 4, 5}})
	require.NoError(t, err)

	_, err = svc.SaveJourney(ctx, charingCross, sevenoaks) // no rules
	require.NoError(t, err)

	got, err := svc.Recommended(ctx, nil, monday8am)
	require.NoError(t, err)
	assert.Equal(t, []string{commute.ID}, ids(got))

	got, err = svc.Recommended(ctx, nil, monday8am.AddDate(0, 0, 5)) // Saturday
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_RuleLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Now())
	j, err := svc.SaveJourney(ctx, sevenoaks, charingCross)
	require.NoError(t, err)

	rule, err := svc.AddRule(ctx, j.ID, models.RecommendationRule{DaysOfWeek: []int{1}})
	require.NoError(t, err)

	rule.DaysOfWeek = []int{2}
	require.NoError(t, svc.UpdateRule(ctx, j.ID, *rule))
	assert.True(t, errors.Is(svc.UpdateRule(ctx, j.ID, models.RecommendationRule{}), ErrInvalidRule))

	require.NoError(t, svc.RemoveRule(ctx, j.ID, rule.ID))
	require.NoError(t, svc.RemoveJourney(ctx, j.ID))

	all, err := svc.Journeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestValidateRule(t *testing.T) {
	tests := []struct {
		name    string
		rule    models.RecommendationRule
		wantErr bool
	}{
		{"empty rule", models.RecommendationRule{}, false},
		{"full rule", models.RecommendationRule{TimeStart: "22:00", TimeEnd: "06:00", DaysOfWeek: []int{0, 6}, Location: home}, false},
		{"start without end", models.RecommendationRule{TimeStart: "07:00"}, true},
		{"end without start", models.RecommendationRule{TimeEnd: "07:00"}, true},
		{"bad start", models.RecommendationRule{TimeStart: "7am", TimeEnd: "09:00"}, true},
		{"bad end", models.RecommendationRule{TimeStart: "07:00", TimeEnd: "24:00"}, true},
		{"day out of range", models.RecommendationRule{DaysOfWeek: []int{7}}, true},
		{"negative day", models.RecommendationRule{DaysOfWeek: []int{-1}}, true},
		{"duplicate day", models.RecommendationRule{DaysOfWeek: []int{1, 1}}, true},
		{"zero radius", models.RecommendationRule{Location: &models.SavedLocation{Name: "x"}}, true},
		{"latitude out of range", models.RecommendationRule{Location: &models.SavedLocation{Name: "x", Latitude: 999, RadiusMeters: 100}}, true},
		{"longitude out of range", models.RecommendationRule{Location: &models.SavedLocation{Name: "x", Longitude: 200, RadiusMeters: 100}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRule(tt.rule)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidRule), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRule_WrapsLocationError(t *testing.T) {
	err := ValidateRule(models.RecommendationRule{Location: &models.SavedLocation{Name: "x", Latitude: 999, RadiusMeters: 100}})
	assert.True(t, errors.Is(err, ErrInvalidRule))
	assert.True(t, errors.Is(err, ErrInvalidLocation))
}

func TestValidateLocation(t *testing.T) {
	assert.NoError(t, ValidateLocation(*home))
	assert.Error(t, ValidateLocation(models.SavedLocation{Latitude: 1, Longitude: 1, RadiusMeters: 10}))
	assert.Error(t, ValidateLocation(models.SavedLocation{Name: "x", Latitude: 91, RadiusMeters: 10}))
	assert.Error(t, ValidateLocation(models.SavedLocation{Name: "x", Longitude: -181, RadiusMeters: 10}))
	assert.True(t, errors.Is(ValidateLocation(models.SavedLocation{Name: "x"}), ErrInvalidLocation))
}
