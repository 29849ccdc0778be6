package stations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/models"
)

// Repository reads the provisioned stations table
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a station repository over db
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListStations returns every station ordered by name
func (r *Repository) ListStations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := r.db.SelectContext(ctx, &stations, "SELECT crs, name FROM stations ORDER BY name"); err != nil {
		return nil, fmt.Errorf("querying stations: %w", err)
	}
	return stations, nil
}
