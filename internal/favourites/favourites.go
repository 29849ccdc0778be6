// Package favourites stores the services and stations the user pinned.
package favourites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/timeutil"
)

// DatePlaceholder is replaced with YYYY-MM-DD when a favourite is reopened
const DatePlaceholder = "{DATE}"

// ErrNotFound is returned when removing something that is not a favourite
var ErrNotFound = errors.New("favourite not found")

// Repository persists favourite services and stations
type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewRepository creates a favourites repository. A nil clock uses time.Now.
func NewRepository(db *sqlx.DB, clock func() time.Time) *Repository {
	if clock == nil {
		clock = time.Now
	}
	return &Repository{db: db, now: clock}
}

type serviceRow struct {
	ID                 string `db:"id"`
	TemplateURL        string `db:"template_url"`
	FromCRS            string `db:"from_crs"`
	FromName           string `db:"from_name"`
	ToCRS              string `db:"to_crs"`
	ToName             string `db:"to_name"`
	ScheduledDeparture string `db:"scheduled_departure"`
	AddedAt            int64  `db:"added_at"`
}

func (r serviceRow) toModel() models.FavouriteService {
	return models.FavouriteService{
		ID:                 r.ID,
		TemplateURL:        r.TemplateURL,
		FromStation:        models.Station{CRS: r.FromCRS, Name: r.FromName},
		ToStation:          models.Station{CRS: r.ToCRS, Name: r.ToName},
		ScheduledDeparture: r.ScheduledDeparture,
		AddedAt:            time.UnixMilli(r.AddedAt),
	}
}

// AddService pins a service. The ID and AddedAt fields of svc are ignored
// and assigned here.
func (r *Repository) AddService(ctx context.Context, svc models.FavouriteService) (*models.FavouriteService, error) {
	if svc.TemplateURL == "" {
		return nil, fmt.Errorf("favourite service needs a template url")
	}
	now := r.now()
	svc.AddedAt = time.UnixMilli(now.UnixMilli())
	svc.ID = fmt.Sprintf("%s-%s-%s-%d", svc.FromStation.CRS, svc.ToStation.CRS, svc.ScheduledDeparture, now.UnixMilli())

	row := serviceRow{
		ID:                 svc.ID,
		TemplateURL:        svc.TemplateURL,
		FromCRS:            svc.FromStation.CRS,
		FromName:           svc.FromStation.Name,
		ToCRS:              svc.ToStation.CRS,
		ToName:             svc.ToStation.Name,
		ScheduledDeparture: svc.ScheduledDeparture,
		AddedAt:            now.UnixMilli(),
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO favourite_services (id, template_url, from_crs, from_name, to_crs, to_name, scheduled_departure, added_at)
		VALUES (:id, :template_url, :from_crs, :from_name, :to_crs, :to_name, :scheduled_departure, :added_at)`, row)
	if err != nil {
		return nil, fmt.Errorf("inserting favourite service: %w", err)
	}
	return &svc, nil
}

// RemoveService unpins a service by ID
func (r *Repository) RemoveService(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favourite_services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting favourite service: %w", err)
	}
	return expectAffected(res, id)
}

// ListServices returns the pinned services in the order they were added
func (r *Repository) ListServices(ctx context.Context) ([]models.FavouriteService, error) {
	var rows []serviceRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, template_url, from_crs, from_name, to_crs, to_name, scheduled_departure, added_at
		FROM favourite_services ORDER BY added_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying favourite services: %w", err)
	}
	out := make([]models.FavouriteService, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// IsServiceFavourited reports whether a service with this template URL is pinned
func (r *Repository) IsServiceFavourited(ctx context.Context, templateURL string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM favourite_services WHERE template_url = ?`, templateURL)
	if err != nil {
		return false, fmt.Errorf("checking favourite service: %w", err)
	}
	return count > 0, nil
}

// TemplateFor builds the template URL stored for a service ID
func TemplateFor(serviceID string) string {
	return "service:" + serviceID + "?date=" + DatePlaceholder
}

// ServiceURL fills the service's template URL with the given date
func ServiceURL(svc models.FavouriteService, date time.Time) string {
	return strings.Replace(svc.TemplateURL, DatePlaceholder, timeutil.FormatDate(date), 1)
}

// AddStation pins a station. Pinning it again does nothing.
func (r *Repository) AddStation(ctx context.Context, s models.Station) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO favourite_stations (crs, name, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM favourite_stations))`, s.CRS, s.Name)
	if err != nil {
		return fmt.Errorf("inserting favourite station: %w", err)
	}
	return nil
}

// RemoveStation unpins a station
func (r *Repository) RemoveStation(ctx context.Context, crs string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favourite_stations WHERE crs = ?`, crs)
	if err != nil {
		return fmt.Errorf("deleting favourite station: %w", err)
	}
	return expectAffected(res, crs)
}

// IsFavouriteStation reports whether the station is pinned
func (r *Repository) IsFavouriteStation(ctx context.Context, crs string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM favourite_stations WHERE crs = ?`, crs)
	if err != nil {
		return false, fmt.Errorf("checking favourite station: %w", err)
	}
	return count > 0, nil
}

// ListStations returns the pinned stations in the order they were added
func (r *Repository) ListStations(ctx context.Context) ([]models.Station, error) {
	stations := []models.Station{}
	err := r.db.SelectContext(ctx, &stations, `SELECT crs, name FROM favourite_stations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying favourite stations: %w", err)
	}
	return stations, nil
}

func expectAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
