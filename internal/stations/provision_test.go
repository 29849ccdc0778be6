package stations

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNeedsProvisioning(t *testing.T) {
	db := openTestDB(t)

	// Case 1: table does not exist
	needs, err := NeedsProvisioning(db)
	require.NoError(t, err)
	assert.True(t, needs)

	// Case 2: table exists but is empty
	_, err = db.Exec(`CREATE TABLE stations (crs TEXT PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)
	needs, err = NeedsProvisioning(db)
	require.NoError(t, err)
	assert.True(t, needs)

	// Case 3: table has rows
	_, err = db.Exec(`INSERT INTO stations (crs, name) VALUES ('CHX', 'London Charing Cross')`)
	require.NoError(t, err)
	needs, err = NeedsProvisioning(db)
	require.NoError(t, err)
	assert.False(t, needs)
}

func TestProvision_FromServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"stationName": "London Bridge", "name": "London Bridge", "crs": "lbg"},
			{"name": " Sevenoaks ", "crs": "SEV"},
			{"name": "", "crs": "XXX"},
			{"name": "No Code", "crs": ""},
			{"name": "London Bridge duplicate", "crs": "LBG"}
		]`)
	}))
	defer server.Close()

	db := openTestDB(t)
	progress := make(chan string, 100)

	err := Provision(context.Background(), db, server.URL, progress)
	require.NoError(t, err)
	close(progress)

	var messages []string
	for msg := range progress {
		messages = append(messages, msg)
	}
	assert.NotEmpty(t, messages)

	repo := NewRepository(db)
	all, err := repo.ListStations(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "LBG", all[0].CRS)
	assert.Equal(t, "London Bridge", all[0].Name)
	assert.Equal(t, "Sevenoaks", all[1].Name)
}

func TestProvision_FallsBackToBundled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	db := openTestDB(t)
	require.NoError(t, Provision(context.Background(), db, server.URL, nil))

	bundled, err := parseStations(bundledStations)
	require.NoError(t, err)

	all, err := NewRepository(db).ListStations(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(bundled))
}

func TestProvision_Offline(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Provision(context.Background(), db, "", nil))

	d := NewDirectory(NewRepository(db))
	require.NoError(t, d.Load(context.Background()))
	s, ok := d.Lookup("chx")
	require.True(t, ok)
	assert.Equal(t, "London Charing Cross", s.Name)
}

func TestProvision_SkipsWhenPopulated(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Provision(context.Background(), db, "", nil))

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	require.NoError(t, Provision(context.Background(), db, server.URL, nil))
	assert.Zero(t, calls)
}

func TestBundledStationsAreClean(t *testing.T) {
	stations, err := parseStations(bundledStations)
	require.NoError(t, err)
	require.NotEmpty(t, stations)

	seen := make(map[string]bool)
	for _, s := range stations {
		assert.Len(t, s.CRS, 3, "station %q", s.Name)
		assert.NotEmpty(t, s.Name)
		assert.False(t, seen[s.CRS], "duplicate CRS %s", s.CRS)
		seen[s.CRS] = true
	}
}
