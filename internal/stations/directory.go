package stations

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ngmaloney/train-terminal/internal/models"
)

// Lister is anything that can produce the full station list
type Lister interface {
	ListStations(ctx context.Context) ([]models.Station, error)
}

// Directory caches the station list for the session. The list is loaded
// once and then only read.
type Directory struct {
	source   Lister
	stations []models.Station
	byCRS    map[string]models.Station
	loaded   bool
	mu       sync.RWMutex
}

// NewDirectory creates a directory backed by source
func NewDirectory(source Lister) *Directory {
	return &Directory{source: source}
}

// NewStaticDirectory creates a directory over an in-memory list
func NewStaticDirectory(stations []models.Station) *Directory {
	d := &Directory{}
	d.set(stations)
	return d
}

// Load fetches the list from the source if not already cached
func (d *Directory) Load(ctx context.Context) error {
	d.mu.RLock()
	if d.loaded {
		d.mu.RUnlock()
		return nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	// Double-check after acquiring write lock
	if d.loaded {
		return nil
	}
	if d.source == nil {
		return fmt.Errorf("station directory has no source")
	}

	stations, err := d.source.ListStations(ctx)
	if err != nil {
		return fmt.Errorf("loading stations: %w", err)
	}
	d.setLocked(stations)
	return nil
}

func (d *Directory) set(stations []models.Station) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setLocked(stations)
}

func (d *Directory) setLocked(stations []models.Station) {
	d.stations = stations
	d.byCRS = make(map[string]models.Station, len(stations))
	for _, s := range stations {
		d.byCRS[s.CRS] = s
	}
	d.loaded = true
}

// All returns the cached list. Callers must not modify it.
func (d *Directory) All() []models.Station {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stations
}

// Lookup finds a station by CRS code
func (d *Directory) Lookup(crs string) (models.Station, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.byCRS[strings.ToUpper(strings.TrimSpace(crs))]
	return s, ok
}

// Search ranks the cached stations against query
func (d *Directory) Search(query string, limit int) []models.Station {
	return Search(d.All(), query, limit)
}
