package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DBPath returns the path to the single shared database
func DBPath() string {
	return filepath.Join("data", "train-terminal.db")
}

// Open opens the SQLite database at dbPath and makes sure the user schema exists.
// ":memory:" opens a private in-memory database pinned to one connection.
func Open(dbPath string) (*sqlx.DB, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{"PRAGMA foreign_keys=ON"}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else {
		// Set pragmas for performance
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL", "PRAGMA cache_size=10000")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			logrus.WithError(err).WithField("pragma", pragma).Warn("Failed to apply SQLite pragma")
		}
	}

	if err := EnsureUserSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureUserSchema ensures that the user-owned tables exist. Safe to call repeatedly.
func EnsureUserSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS saved_journeys (
			id TEXT PRIMARY KEY,
			from_crs TEXT NOT NULL,
			from_name TEXT NOT NULL,
			to_crs TEXT NOT NULL,
			to_name TEXT NOT NULL,
			last_used_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_saved_journeys_pair ON saved_journeys(from_crs, to_crs);

		CREATE TABLE IF NOT EXISTS journey_rules (
			id TEXT PRIMARY KEY,
			journey_id TEXT NOT NULL REFERENCES saved_journeys(id) ON DELETE CASCADE,
			location_id TEXT,
			location_name TEXT,
			location_lat REAL,
			location_lon REAL,
			location_radius REAL,
			time_start TEXT,
			time_end TEXT,
			days_of_week TEXT,
			position INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_journey_rules_journey ON journey_rules(journey_id);

		CREATE TABLE IF NOT EXISTS saved_locations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			radius_meters REAL NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS favourite_services (
			id TEXT PRIMARY KEY,
			template_url TEXT NOT NULL,
			from_crs TEXT NOT NULL,
			from_name TEXT NOT NULL,
			to_crs TEXT NOT NULL,
			to_name TEXT NOT NULL,
			scheduled_departure TEXT NOT NULL,
			added_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS favourite_stations (
			crs TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS recent_stations (
			crs TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			used_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recent_searches (
			from_crs TEXT NOT NULL,
			from_name TEXT NOT NULL,
			to_crs TEXT NOT NULL,
			to_name TEXT NOT NULL,
			searched_at INTEGER NOT NULL,
			PRIMARY KEY (from_crs, to_crs)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating user tables: %w", err)
	}

	return nil
}
