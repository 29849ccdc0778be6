// Package history keeps the recently used stations and searches.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/models"
)

const (
	// MaxRecentStations is how many recent stations are kept
	MaxRecentStations = 5
	// MaxRecentSearches is how many recent searches are kept
	MaxRecentSearches = 10
)

// Repository persists recent stations and searches
type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewRepository creates a history repository. A nil clock uses time.Now.
func NewRepository(db *sqlx.DB, clock func() time.Time) *Repository {
	if clock == nil {
		clock = time.Now
	}
	return &Repository{db: db, now: clock}
}

// AddStation moves the station to the front of the recent list
func (r *Repository) AddStation(ctx context.Context, s models.Station) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on error

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recent_stations (crs, name, used_at) VALUES (?, ?, ?)
		ON CONFLICT(crs) DO UPDATE SET name = excluded.name, used_at = excluded.used_at`,
		s.CRS, s.Name, r.stamp(ctx, tx, "recent_stations", "used_at"))
	if err != nil {
		return fmt.Errorf("recording recent station: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM recent_stations WHERE crs NOT IN (
			SELECT crs FROM recent_stations ORDER BY used_at DESC LIMIT ?
		)`, MaxRecentStations)
	if err != nil {
		return fmt.Errorf("trimming recent stations: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Stations returns the recent stations, most recent first
func (r *Repository) Stations(ctx context.Context) ([]models.Station, error) {
	stations := []models.Station{}
	err := r.db.SelectContext(ctx, &stations, `SELECT crs, name FROM recent_stations ORDER BY used_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying recent stations: %w", err)
	}
	return stations, nil
}

// ClearStations forgets every recent station
func (r *Repository) ClearStations(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recent_stations`); err != nil {
		return fmt.Errorf("clearing recent stations: %w", err)
	}
	return nil
}

// AddSearch moves the from/to pair to the front of the recent searches
func (r *Repository) AddSearch(ctx context.Context, from, to models.Station) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on error

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recent_searches (from_crs, from_name, to_crs, to_name, searched_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(from_crs, to_crs) DO UPDATE SET
			from_name = excluded.from_name, to_name = excluded.to_name, searched_at = excluded.searched_at`,
		from.CRS, from.Name, to.CRS, to.Name, r.stamp(ctx, tx, "recent_searches", "searched_at"))
	if err != nil {
		return fmt.Errorf("recording recent search: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM recent_searches WHERE rowid NOT IN (
			SELECT rowid FROM recent_searches ORDER BY searched_at DESC LIMIT ?
		)`, MaxRecentSearches)
	if err != nil {
		return fmt.Errorf("trimming recent searches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

type searchRow struct {
	FromCRS    string `db:"from_crs"`
	FromName   string `db:"from_name"`
	ToCRS      string `db:"to_crs"`
	ToName     string `db:"to_name"`
	SearchedAt int64  `db:"searched_at"`
}

// Searches returns the recent searches, most recent first
func (r *Repository) Searches(ctx context.Context) ([]models.RecentSearch, error) {
	var rows []searchRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT from_crs, from_name, to_crs, to_name, searched_at
		FROM recent_searches ORDER BY searched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying recent searches: %w", err)
	}
	out := make([]models.RecentSearch, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.RecentSearch{
			From:      models.Station{CRS: row.FromCRS, Name: row.FromName},
			To:        models.Station{CRS: row.ToCRS, Name: row.ToName},
			Timestamp: time.UnixMilli(row.SearchedAt),
		})
	}
	return out, nil
}

// RemoveSearch forgets one from/to pair
func (r *Repository) RemoveSearch(ctx context.Context, fromCRS, toCRS string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recent_searches WHERE from_crs = ? AND to_crs = ?`, fromCRS, toCRS)
	if err != nil {
		return fmt.Errorf("deleting recent search: %w", err)
	}
	return nil
}

// stamp returns the clock in milliseconds, nudged past the newest stored
// value so entries recorded within the same millisecond still order.
func (r *Repository) stamp(ctx context.Context, tx *sqlx.Tx, table, column string) int64 {
	now := r.now().UnixMilli()
	var latest int64
	if err := tx.GetContext(ctx, &latest, `SELECT COALESCE(MAX(`+column+`), 0) FROM `+table); err == nil && latest >= now {
		return latest + 1
	}
	return now
}
