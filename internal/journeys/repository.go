package journeys

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/models"
)

// Repository persists saved journeys, their rules and saved locations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a journey repository over db
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type journeyRow struct {
	ID         string `db:"id"`
	FromCRS    string `db:"from_crs"`
	FromName   string `db:"from_name"`
	ToCRS      string `db:"to_crs"`
	ToName     string `db:"to_name"`
	LastUsedAt int64  `db:"last_used_at"`
	CreatedAt  int64  `db:"created_at"`
}

func (r journeyRow) toModel() models.SavedJourney {
	return models.SavedJourney{
		ID:          r.ID,
		FromStation: models.Station{CRS: r.FromCRS, Name: r.FromName},
		ToStation:   models.Station{CRS: r.ToCRS, Name: r.ToName},
		Rules:       []models.RecommendationRule{},
		LastUsedAt:  time.UnixMilli(r.LastUsedAt),
		CreatedAt:   time.UnixMilli(r.CreatedAt),
	}
}

// ruleRow holds a rule with its location snapshot flattened into columns
type ruleRow struct {
	ID             string          `db:"id"`
	JourneyID      string          `db:"journey_id"`
	LocationID     sql.NullString  `db:"location_id"`
	LocationName   sql.NullString  `db:"location_name"`
	LocationLat    sql.NullFloat64 `db:"location_lat"`
	LocationLon    sql.NullFloat64 `db:"location_lon"`
	LocationRadius sql.NullFloat64 `db:"location_radius"`
	TimeStart      sql.NullString  `db:"time_start"`
	TimeEnd        sql.NullString  `db:"time_end"`
	DaysOfWeek     sql.NullString  `db:"days_of_week"`
}

func (r ruleRow) toModel() (models.RecommendationRule, error) {
	rule := models.RecommendationRule{
		ID:         r.ID,
		LocationID: r.LocationID.String,
		TimeStart:  r.TimeStart.String,
		TimeEnd:    r.TimeEnd.String,
	}
	if r.LocationLat.Valid && r.LocationLon.Valid {
		rule.Location = &models.SavedLocation{
			ID:           r.LocationID.String,
			Name:         r.LocationName.String,
			Latitude:     r.LocationLat.Float64,
			Longitude:    r.LocationLon.Float64,
			RadiusMeters: r.LocationRadius.Float64,
		}
	}
	if r.DaysOfWeek.Valid && r.DaysOfWeek.String != "" {
		if err := json.Unmarshal([]byte(r.DaysOfWeek.String), &rule.DaysOfWeek); err != nil {
			return rule, fmt.Errorf("decoding days of week for rule %s: %w", r.ID, err)
		}
	}
	return rule, nil
}

func newRuleRow(journeyID string, rule models.RecommendationRule) (ruleRow, error) {
	row := ruleRow{
		ID:         rule.ID,
		JourneyID:  journeyID,
		LocationID: nullString(rule.LocationID),
		TimeStart:  nullString(rule.TimeStart),
		TimeEnd:    nullString(rule.TimeEnd),
	}
	if loc := rule.Location; loc != nil {
		if !row.LocationID.Valid {
			row.LocationID = nullString(loc.ID)
		}
		row.LocationName = nullString(loc.Name)
		row.LocationLat = sql.NullFloat64{Float64: loc.Latitude, Valid: true}
		row.LocationLon = sql.NullFloat64{Float64: loc.Longitude, Valid: true}
		row.LocationRadius = sql.NullFloat64{Float64: loc.RadiusMeters, Valid: true}
	}
	if len(rule.DaysOfWeek) > 0 {
		b, err := json.Marshal(rule.DaysOfWeek)
		if err != nil {
			return row, fmt.Errorf("encoding days of week: %w", err)
		}
		row.DaysOfWeek = sql.NullString{String: string(b), Valid: true}
	}
	return row, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const journeyColumns = `id, from_crs, from_name, to_crs, to_name, last_used_at, created_at`

const ruleColumns = `id, journey_id, location_id, location_name, location_lat, location_lon,
	location_radius, time_start, time_end, days_of_week`

// ListJourneys returns every saved journey with its rules, newest first
func (r *Repository) ListJourneys(ctx context.Context) ([]models.SavedJourney, error) {
	var rows []journeyRow
	query := `SELECT ` + journeyColumns + ` FROM saved_journeys ORDER BY position DESC, created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("querying journeys: %w", err)
	}

	var rules []ruleRow
	query = `SELECT ` + ruleColumns + ` FROM journey_rules ORDER BY position`
	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}

	byJourney := make(map[string][]models.RecommendationRule)
	for _, rr := range rules {
		rule, err := rr.toModel()
		if err != nil {
			return nil, err
		}
		byJourney[rr.JourneyID] = append(byJourney[rr.JourneyID], rule)
	}

	journeys := make([]models.SavedJourney, 0, len(rows))
	for _, row := range rows {
		j := row.toModel()
		if rs, ok := byJourney[row.ID]; ok {
			j.Rules = rs
		}
		journeys = append(journeys, j)
	}
	return journeys, nil
}

// GetJourney retrieves a single journey with its rules
func (r *Repository) GetJourney(ctx context.Context, id string) (*models.SavedJourney, error) {
	var row journeyRow
	err := r.db.GetContext(ctx, &row, `SELECT `+journeyColumns+` FROM saved_journeys WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journey %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying journey: %w", err)
	}

	var rules []ruleRow
	query := `SELECT ` + ruleColumns + ` FROM journey_rules WHERE journey_id = ? ORDER BY position`
	if err := r.db.SelectContext(ctx, &rules, query, id); err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}

	j := row.toModel()
	for _, rr := range rules {
		rule, err := rr.toModel()
		if err != nil {
			return nil, err
		}
		j.Rules = append(j.Rules, rule)
	}
	return &j, nil
}

// HasJourney reports whether a journey between the two stations is saved
func (r *Repository) HasJourney(ctx context.Context, fromCRS, toCRS string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM saved_journeys WHERE from_crs = ? AND to_crs = ?`, fromCRS, toCRS)
	if err != nil {
		return false, fmt.Errorf("checking journey: %w", err)
	}
	return count > 0, nil
}

// AddJourney stores a journey and any rules it already carries
func (r *Repository) AddJourney(ctx context.Context, j models.SavedJourney) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on error

	_, err = tx.ExecContext(ctx, `
		INSERT INTO saved_journeys (`+journeyColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM saved_journeys))`,
		j.ID, j.FromStation.CRS, j.FromStation.Name, j.ToStation.CRS, j.ToStation.Name,
		j.LastUsedAt.UnixMilli(), j.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("inserting journey: %w", err)
	}

	for _, rule := range j.Rules {
		if err := insertRule(ctx, tx, j.ID, rule); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// RemoveJourney deletes a journey and its rules
func (r *Repository) RemoveJourney(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on error

	if _, err := tx.ExecContext(ctx, `DELETE FROM journey_rules WHERE journey_id = ?`, id); err != nil {
		return fmt.Errorf("deleting rules: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM saved_journeys WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting journey: %w", err)
	}
	if err := expectAffected(res, "journey", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// TouchJourney sets a journey's last used time
func (r *Repository) TouchJourney(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE saved_journeys SET last_used_at = ? WHERE id = ?`, at.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("updating journey: %w", err)
	}
	return expectAffected(res, "journey", id)
}

// AddRule appends a rule to a journey
func (r *Repository) AddRule(ctx context.Context, journeyID string, rule models.RecommendationRule) error {
	ok, err := r.journeyExists(ctx, journeyID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("journey %s: %w", journeyID, ErrNotFound)
	}
	return insertRule(ctx, r.db, journeyID, rule)
}

// UpdateRule replaces a rule of a journey
func (r *Repository) UpdateRule(ctx context.Context, journeyID string, rule models.RecommendationRule) error {
	row, err := newRuleRow(journeyID, rule)
	if err != nil {
		return err
	}
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE journey_rules SET
			location_id = :location_id, location_name = :location_name,
			location_lat = :location_lat, location_lon = :location_lon,
			location_radius = :location_radius, time_start = :time_start,
			time_end = :time_end, days_of_week = :days_of_week
		WHERE id = :id AND journey_id = :journey_id`, row)
	if err != nil {
		return fmt.Errorf("updating rule: %w", err)
	}
	return expectAffected(res, "rule", rule.ID)
}

// RemoveRule deletes a rule from a journey
func (r *Repository) RemoveRule(ctx context.Context, journeyID, ruleID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM journey_rules WHERE id = ? AND journey_id = ?`, ruleID, journeyID)
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}
	return expectAffected(res, "rule", ruleID)
}

// ListLocations returns the saved locations in creation order
func (r *Repository) ListLocations(ctx context.Context) ([]models.SavedLocation, error) {
	locations := []models.SavedLocation{}
	err := r.db.SelectContext(ctx, &locations,
		`SELECT id, name, latitude, longitude, radius_meters FROM saved_locations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	return locations, nil
}

// GetLocation retrieves a single saved location
func (r *Repository) GetLocation(ctx context.Context, id string) (*models.SavedLocation, error) {
	var loc models.SavedLocation
	err := r.db.GetContext(ctx, &loc,
		`SELECT id, name, latitude, longitude, radius_meters FROM saved_locations WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying location: %w", err)
	}
	return &loc, nil
}

// AddLocation stores a new saved location
func (r *Repository) AddLocation(ctx context.Context, loc models.SavedLocation) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO saved_locations (id, name, latitude, longitude, radius_meters, position)
		VALUES (:id, :name, :latitude, :longitude, :radius_meters,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM saved_locations))`, loc)
	if err != nil {
		return fmt.Errorf("inserting location: %w", err)
	}
	return nil
}

// UpdateLocation replaces a saved location. Rules that embedded it keep their copy.
func (r *Repository) UpdateLocation(ctx context.Context, loc models.SavedLocation) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE saved_locations SET name = :name, latitude = :latitude,
			longitude = :longitude, radius_meters = :radius_meters
		WHERE id = :id`, loc)
	if err != nil {
		return fmt.Errorf("updating location: %w", err)
	}
	return expectAffected(res, "location", loc.ID)
}

// RemoveLocation deletes a saved location. Rules that embedded it keep their copy.
func (r *Repository) RemoveLocation(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}
	return expectAffected(res, "location", id)
}

func (r *Repository) journeyExists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM saved_journeys WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("checking journey: %w", err)
	}
	return count > 0, nil
}

func insertRule(ctx context.Context, ext sqlx.ExtContext, journeyID string, rule models.RecommendationRule) error {
	row, err := newRuleRow(journeyID, rule)
	if err != nil {
		return err
	}
	_, err = sqlx.NamedExecContext(ctx, ext, `
		INSERT INTO journey_rules (`+ruleColumns+`, position)
		VALUES (:id, :journey_id, :location_id, :location_name, :location_lat, :location_lon,
			:location_radius, :time_start, :time_end, :days_of_week,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM journey_rules))`, row)
	if err != nil {
		return fmt.Errorf("inserting rule: %w", err)
	}
	return nil
}

func expectAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s update: %w", kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
