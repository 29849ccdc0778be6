package history

import (
	"context"
	"fmt"
	"testing"
	"time"

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

	// A frozen clock exercises same-millisecond ordering
	frozen := time.UnixMilli(1717315200000)
	return NewRepository(db, func() time.Time { return frozen })
}

func station(i int) models.Station {
	return models.Station{CRS: fmt.Sprintf("S%02d", i), Name: fmt.Sprintf("Station %d", i)}
}

func crsCodes(stations []models.Station) []string {
	out := make([]string, len(stations))
	for i, s := range stations {
		out[i] = s.CRS
	}
	return out
}

func TestRecentStations(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for i := 1; i <= 7; i++ {
		require.NoError(t, repo.AddStation(ctx, station(i)))
	}

	got, err := repo.Stations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S07", "S06", "S05", "S04", "S03"}, crsCodes(got))

	// Re-using a station moves it to the front without duplicating it
	require.NoError(t, repo.AddStation(ctx, station(4)))
	got, err = repo.Stations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S04", "S07", "S06", "S05", "S03"}, crsCodes(got))

	require.NoError(t, repo.ClearStations(ctx))
	got, err = repo.Stations(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecentSearches(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for i := 1; i <= 12; i++ {
		require.NoError(t, repo.AddSearch(ctx, station(0), station(i)))
	}

	got, err := repo.Searches(ctx)
	require.NoError(t, err)
	require.Len(t, got, MaxRecentSearches)
	assert.Equal(t, "S12", got[0].To.CRS)
	assert.Equal(t, "S03", got[9].To.CRS)

	// The same pair is de-duplicated, the reverse pair is not
	require.NoError(t, repo.AddSearch(ctx, station(0), station(5)))
	require.NoError(t, repo.AddSearch(ctx, station(5), station(0)))
	got, err = repo.Searches(ctx)
	require.NoError(t, err)
	require.Len(t, got, MaxRecentSearches)
	assert.Equal(t, "S05", got[0].From.CRS)
	assert.Equal(t, "S05", got[1].To.CRS)

	require.NoError(t, repo.RemoveSearch(ctx, "S05", "S00"))
	got, err = repo.Searches(ctx)
	require.NoError(t, err)
	assert.Len(t, got, MaxRecentSearches-1)
	assert.Equal(t, "S00", got[0].From.CRS)
}
