package stations

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultStationsURL is the public CRS directory
const DefaultStationsURL = "https://crs.codes/data/stations.json"

//go:embed stations.json
var bundledStations []byte

var provisionMu sync.Mutex

// crsStation is one entry of the crs.codes directory; other fields are ignored
type crsStation struct {
	Name string `json:"name"`
	CRS  string `json:"crs"`
}

// NeedsProvisioning checks if the stations table is missing or empty
func NeedsProvisioning(db *sqlx.DB) (bool, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='stations'")
	if err != nil {
		return false, fmt.Errorf("checking for stations table: %w", err)
	}
	if count == 0 {
		return true, nil
	}

	if err := db.Get(&count, "SELECT COUNT(*) FROM stations"); err != nil {
		return false, fmt.Errorf("counting stations: %w", err)
	}
	return count == 0, nil
}

// Provision downloads the station directory from sourceURL and stores it in
// the stations table. An empty sourceURL, or a failed download, falls back
// to the directory bundled with the binary.
func Provision(ctx context.Context, db *sqlx.DB, sourceURL string, progressChan chan<- string) error {
	provisionMu.Lock()
	defer provisionMu.Unlock()

	needs, err := NeedsProvisioning(db)
	if err != nil {
		return err
	}
	if !needs {
		return nil
	}

	sendProgress := func(msg string) {
		if progressChan != nil {
			progressChan <- msg
		} else {
			logrus.Info(msg)
		}
	}

	sendProgress("Stations table not found, provisioning...")

	var stations []models.Station
	if sourceURL != "" {
		sendProgress(fmt.Sprintf("Downloading station data from %s...", sourceURL))
		stations, err = fetchAllStations(ctx, sourceURL)
		if err != nil {
			logrus.WithError(err).Warn("station download failed, using bundled directory")
		}
	}
	if len(stations) == 0 {
		sendProgress("Loading bundled station directory...")
		stations, err = parseStations(bundledStations)
		if err != nil {
			return fmt.Errorf("parsing bundled stations: %w", err)
		}
	}

	sendProgress("Building stations database...")
	if err := buildStationsDatabase(db, stations, progressChan); err != nil {
		return fmt.Errorf("building database: %w", err)
	}

	sendProgress(fmt.Sprintf("Successfully provisioned %d stations", len(stations)))
	return nil
}

// fetchAllStations fetches the full directory from the given URL
func fetchAllStations(ctx context.Context, sourceURL string) ([]models.Station, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, "GET", sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("station directory returned status %d", resp.StatusCode)
	}

	var raw []crsStation
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return normalize(raw), nil
}

func parseStations(data []byte) ([]models.Station, error) {
	var raw []crsStation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return normalize(raw), nil
}

// normalize drops entries without a code or name and upper-cases codes
func normalize(raw []crsStation) []models.Station {
	out := make([]models.Station, 0, len(raw))
	for _, s := range raw {
		crs := strings.ToUpper(strings.TrimSpace(s.CRS))
		name := strings.TrimSpace(s.Name)
		if crs == "" || name == "" {
			continue
		}
		out = append(out, models.Station{CRS: crs, Name: name})
	}
	return out
}

// buildStationsDatabase creates the stations table and inserts the directory
func buildStationsDatabase(db *sqlx.DB, stations []models.Station, progressChan chan<- string) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS stations (
			crs TEXT PRIMARY KEY,
			name TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_stations_name ON stations(name);
	`)
	if err != nil {
		return fmt.Errorf("creating stations table: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on error

	stmt, err := tx.Preparex("INSERT OR IGNORE INTO stations (crs, name) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	count := 0
	for _, s := range stations {
		if _, err := stmt.Exec(s.CRS, s.Name); err != nil {
			logrus.WithError(err).WithField("crs", s.CRS).Warn("inserting station")
			continue
		}
		count++
		if count%500 == 0 && progressChan != nil {
			progressChan <- fmt.Sprintf("Inserted %d stations...", count)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if progressChan != nil {
		progressChan <- fmt.Sprintf("Successfully inserted %d stations", count)
	}
	return nil
}
