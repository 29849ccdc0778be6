package journeys

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/database"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func TestRepository_JourneyRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created := time.UnixMilli(1700000000000)
	j := models.SavedJourney{
		ID:          "j1",
		FromStation: sevenoaks,
		ToStation:   charingCross,
		Rules: []models.RecommendationRule{
			{ID: "r1", LocationID: "home", Location: home, TimeStart: "07:00", TimeEnd: "09:00", DaysOfWeek: []int{1, 2, 3, 4, 5}},
			{ID: "r2"},
		},
		LastUsedAt: created,
		CreatedAt:  created,
	}
	require.NoError(t, repo.AddJourney(ctx, j))

	got, err := repo.GetJourney(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, sevenoaks, got.FromStation)
	assert.Equal(t, charingCross, got.ToStation)
	assert.True(t, got.CreatedAt.Equal(created))
	require.Len(t, got.Rules, 2)

	r1 := got.Rules[0]
	assert.Equal(t, "r1", r1.ID)
	assert.Equal(t, "home", r1.LocationID)
	require.NotNil(t, r1.Location)
	assert.Equal(t, *home, *r1.Location)
	assert.Equal(t, "07:00", r1.TimeStart)
	assert.Equal(t, "09:00", r1.TimeEnd)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, r1.DaysOfWeek)

	r2 := got.Rules[1]
	assert.Nil(t, r2.Location)
	assert.Empty(t, r2.DaysOfWeek)
	assert.False(t, r2.HasTimeWindow())

	has, err := repo.HasJourney(ctx, "SEV", "CHX")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = repo.HasJourney(ctx, "CHX", "SEV")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRepository_ListJourneysNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for _, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.AddJourney(ctx, models.SavedJourney{ID: id, FromStation: sevenoaks, ToStation: charingCross}))
	}
	require.NoError(t, repo.AddRule(ctx, "mid", models.RecommendationRule{ID: "r"}))

	all, err := repo.ListJourneys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(all))
	assert.Len(t, all[1].Rules, 1)
	assert.NotNil(t, all[0].Rules)
	assert.Empty(t, all[0].Rules)
}

func TestRepository_RemoveJourneyRemovesRules(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.AddJourney(ctx, models.SavedJourney{
		ID: "j1", FromStation: sevenoaks, ToStation: charingCross,
		Rules: []models.RecommendationRule{{ID: "r1"}},
	}))
	require.NoError(t, repo.RemoveJourney(ctx, "j1"))

	var count int
	require.NoError(t, repo.db.Get(&count, "SELECT COUNT(*) FROM journey_rules"))
	assert.Zero(t, count)

	_, err := repo.GetJourney(ctx, "j1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(repo.RemoveJourney(ctx, "j1"), ErrNotFound))
}

func TestRepository_TouchJourney(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.AddJourney(ctx, models.SavedJourney{ID: "j1", FromStation: sevenoaks, ToStation: charingCross}))

	at := time.UnixMilli(1800000000000)
	require.NoError(t, repo.TouchJourney(ctx, "j1", at))

	got, err := repo.GetJourney(ctx, "j1")
	require.NoError(t, err)
	assert.True(t, got.LastUsedAt.Equal(at))

	assert.True(t, errors.Is(repo.TouchJourney(ctx, "missing", at), ErrNotFound))
}

func TestRepository_RuleLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.AddJourney(ctx, models.SavedJourney{ID: "j1", FromStation: sevenoaks, ToStation: charingCross}))

	assert.True(t, errors.Is(repo.AddRule(ctx, "missing", models.RecommendationRule{ID: "x"}), ErrNotFound))

	require.NoError(t, repo.AddRule(ctx, "j1", models.RecommendationRule{ID: "r1", TimeStart: "07:00", TimeEnd: "08:00"}))
	require.NoError(t, repo.UpdateRule(ctx, "j1", models.RecommendationRule{ID: "r1", DaysOfWeek: []int{6}}))

	got, err := repo.GetJourney(ctx, "j1")
	require.NoError(t, err)
	require.Len(t, got.Rules, 1)
	assert.False(t, got.Rules[0].HasTimeWindow())
	assert.Equal(t, []int{6}, got.Rules[0].DaysOfWeek)

	assert.True(t, errors.Is(repo.UpdateRule(ctx, "other", models.RecommendationRule{ID: "r1"}), ErrNotFound))
	require.NoError(t, repo.RemoveRule(ctx, "j1", "r1"))
	assert.True(t, errors.Is(repo.RemoveRule(ctx, "j1", "r1"), ErrNotFound))
}

func TestRepository_LocationEditsDoNotReachRules(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.AddLocation(ctx, *home))
	require.NoError(t, repo.AddJourney(ctx, models.SavedJourney{
		ID: "j1", FromStation: sevenoaks, ToStation: charingCross,
		Rules: []models.RecommendationRule{{ID: "r1", LocationID: home.ID, Location: home}},
	}))

	moved := *home
	moved.Latitude = 55.8642
	moved.RadiusMeters = 1000
	require.NoError(t, repo.UpdateLocation(ctx, moved))

	got, err := repo.GetJourney(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, home.Latitude, got.Rules[0].Location.Latitude)
	assert.Equal(t, home.RadiusMeters, got.Rules[0].Location.RadiusMeters)

	require.NoError(t, repo.RemoveLocation(ctx, home.ID))
	got, err = repo.GetJourney(ctx, "j1")
	require.NoError(t, err)
	require.NotNil(t, got.Rules[0].Location)
	assert.Equal(t, home.Name, got.Rules[0].Location.Name)

	locs, err := repo.ListLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, locs)
	_, err = repo.GetLocation(ctx, home.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(repo.UpdateLocation(ctx, moved), ErrNotFound))
}

func TestRepository_ListJourneys_QueryError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT (.+) FROM saved_journeys").WillReturnError(errors.New("database is locked"))

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	_, err = repo.ListJourneys(context.Background())
	assert.ErrorContains(t, err, "querying journeys")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListJourneys_BadDaysColumn(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT (.+) FROM saved_journeys").WillReturnRows(
		sqlmock.NewRows([]string{"id", "from_crs", "from_name", "to_crs", "to_name", "last_used_at", "created_at"}).
			AddRow("j1", "SEV", "Sevenoaks", "CHX", "London Charing Cross", 0, 0))
	mock.ExpectQuery("FROM journey_rules").WillReturnRows(
		sqlmock.NewRows([]string{"id", "journey_id", "location_id", "location_name", "location_lat", "location_lon",
			"location_radius", "time_start", "time_end", "days_of_week"}).
			AddRow("r1", "j1", nil, nil, nil, nil, nil, nil, nil, "not json"))

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	_, err = repo.ListJourneys(context.Background())
	assert.ErrorContains(t, err, "decoding days of week")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TouchJourney_ExecError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("UPDATE saved_journeys").WillReturnError(errors.New("readonly database"))

	repo := NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	err = repo.TouchJourney(context.Background(), "j1", time.Now())
	assert.ErrorContains(t, err, "updating journey")
	assert.False(t, errors.Is(err, ErrNotFound))
}
