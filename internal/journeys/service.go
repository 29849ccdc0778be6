package journeys

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/timeutil"
	"github.com/sirupsen/logrus"
)

// Store is the persistence the service needs
type Store interface {
	ListJourneys(ctx context.Context) ([]models.SavedJourney, error)
	GetJourney(ctx context.Context, id string) (*models.SavedJourney, error)
	HasJourney(ctx context.Context, fromCRS, toCRS string) (bool, error)
	AddJourney(ctx context.Context, j models.SavedJourney) error
	RemoveJourney(ctx context.Context, id string) error
	TouchJourney(ctx context.Context, id string, at time.Time) error
	AddRule(ctx context.Context, journeyID string, rule models.RecommendationRule) error
	UpdateRule(ctx context.Context, journeyID string, rule models.RecommendationRule) error
	RemoveRule(ctx context.Context, journeyID, ruleID string) error
	ListLocations(ctx context.Context) ([]models.SavedLocation, error)
	GetLocation(ctx context.Context, id string) (*models.SavedLocation, error)
	AddLocation(ctx context.Context, loc models.SavedLocation) error
	UpdateLocation(ctx context.Context, loc models.SavedLocation) error
	RemoveLocation(ctx context.Context, id string) error
}

// Service manages saved journeys and works out which to suggest
type Service struct {
	store Store
	now   func() time.Time
	log   *logrus.Entry
}

// NewService creates a journey service. A nil clock uses time.Now.
func NewService(store Store, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		store: store,
		now:   clock,
		log:   logrus.WithField("component", "journeys"),
	}
}

// Journeys returns every saved journey
func (s *Service) Journeys(ctx context.Context) ([]models.SavedJourney, error) {
	return s.store.ListJourneys(ctx)
}

// Journey returns one saved journey
func (s *Service) Journey(ctx context.Context, id string) (*models.SavedJourney, error) {
	return s.store.GetJourney(ctx, id)
}

// HasJourney reports whether the from/to pair is already saved
func (s *Service) HasJourney(ctx context.Context, from, to string) (bool, error) {
	return s.store.HasJourney(ctx, from, to)
}

// SaveJourney saves a new journey between two stations with no rules
func (s *Service) SaveJourney(ctx context.Context, from, to models.Station) (*models.SavedJourney, error) {
	if from.CRS == "" || to.CRS == "" {
		return nil, fmt.Errorf("journey needs both stations")
	}
	now := s.now()
	j := models.SavedJourney{
		ID:          uuid.New().String(),
		FromStation: from,
		ToStation:   to,
		Rules:       []models.RecommendationRule{},
		LastUsedAt:  now,
		CreatedAt:   now,
	}
	if err := s.store.AddJourney(ctx, j); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"id": j.ID, "from": from.CRS, "to": to.CRS}).Info("journey saved")
	return &j, nil
}

// RemoveJourney deletes a journey and its rules
func (s *Service) RemoveJourney(ctx context.Context, id string) error {
	if err := s.store.RemoveJourney(ctx, id); err != nil {
		return err
	}
	s.log.WithField("id", id).Info("journey removed")
	return nil
}

// UseJourney marks a journey as used now
func (s *Service) UseJourney(ctx context.Context, id string) error {
	return s.store.TouchJourney(ctx, id, s.now())
}

// AddRule validates a rule, embeds a copy of its location, and attaches it
// to the journey. The rule's ID is assigned here.
func (s *Service) AddRule(ctx context.Context, journeyID string, rule models.RecommendationRule) (*models.RecommendationRule, error) {
	rule.ID = uuid.New().String()
	if err := s.prepareRule(ctx, &rule); err != nil {
		return nil, err
	}
	if err := s.store.AddRule(ctx, journeyID, rule); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"journey": journeyID, "rule": rule.ID}).Info("rule added")
	return &rule, nil
}

// UpdateRule validates and replaces an existing rule
func (s *Service) UpdateRule(ctx context.Context, journeyID string, rule models.RecommendationRule) error {
	if rule.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRule)
	}
	if err := s.prepareRule(ctx, &rule); err != nil {
		return err
	}
	return s.store.UpdateRule(ctx, journeyID, rule)
}

// RemoveRule detaches a rule from a journey
func (s *Service) RemoveRule(ctx context.Context, journeyID, ruleID string) error {
	return s.store.RemoveRule(ctx, journeyID, ruleID)
}

// prepareRule resolves a location reference into a snapshot and validates the result
func (s *Service) prepareRule(ctx context.Context, rule *models.RecommendationRule) error {
	if rule.LocationID != "" && (rule.Location == nil || rule.Location.ID != rule.LocationID) {
		loc, err := s.store.GetLocation(ctx, rule.LocationID)
		if err != nil {
			return err
		}
		snapshot := *loc
		rule.Location = &snapshot
	}
	return ValidateRule(*rule)
}

// Locations returns the saved locations
func (s *Service) Locations(ctx context.Context) ([]models.SavedLocation, error) {
	return s.store.ListLocations(ctx)
}

// AddLocation saves a new location and assigns its ID
func (s *Service) AddLocation(ctx context.Context, loc models.SavedLocation) (*models.SavedLocation, error) {
	if err := ValidateLocation(loc); err != nil {
		return nil, err
	}
	loc.ID = uuid.New().String()
	if err := s.store.AddLocation(ctx, loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// UpdateLocation edits a saved location. Existing rules are unaffected.
func (s *Service) UpdateLocation(ctx context.Context, loc models.SavedLocation) error {
	if err := ValidateLocation(loc); err != nil {
		return err
	}
	return s.store.UpdateLocation(ctx, loc)
}

// RemoveLocation deletes a saved location. Existing rules are unaffected.
func (s *Service) RemoveLocation(ctx context.Context, id string) error {
	return s.store.RemoveLocation(ctx, id)
}

// Recommended returns the saved journeys that match the position and time
func (s *Service) Recommended(ctx context.Context, pos *models.Coordinates, at time.Time) ([]models.SavedJourney, error) {
	journeys, err := s.store.ListJourneys(ctx)
	if err != nil {
		return nil, err
	}
	return Recommend(journeys, ConditionsAt(at, pos))
}

// RecommendedNow is Recommended at the service clock's current time
func (s *Service) RecommendedNow(ctx context.Context, pos *models.Coordinates) ([]models.SavedJourney, error) {
	return s.Recommended(ctx, pos, s.now())
}

// ValidateRule checks times are HH:mm and set together, days are 0-6,
// and any location passes ValidateLocation
func ValidateRule(rule models.RecommendationRule) error {
	if (rule.TimeStart == "") != (rule.TimeEnd == "") {
		return fmt.Errorf("%w: time window needs both start and end", ErrInvalidRule)
	}
	if rule.HasTimeWindow() {
		if _, err := timeutil.ParseClock(rule.TimeStart); err != nil {
			return fmt.Errorf("%w: start %q: %w", ErrInvalidRule, rule.TimeStart, err)
		}
		if _, err := timeutil.ParseClock(rule.TimeEnd); err != nil {
			return fmt.Errorf("%w: end %q: %w", ErrInvalidRule, rule.TimeEnd, err)
		}
	}
	seen := make(map[int]bool, len(rule.DaysOfWeek))
	for _, d := range rule.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: %w: %d", ErrInvalidRule, ErrInvalidWeekday, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate day %d", ErrInvalidRule, d)
		}
		seen[d] = true
	}
	if rule.Location != nil {
		if err := ValidateLocation(*rule.Location); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRule, err)
		}
	}
	return nil
}

// ValidateLocation checks a saved location has a name, sane coordinates and a positive radius
func ValidateLocation(loc models.SavedLocation) error {
	switch {
	case loc.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidLocation)
	case loc.Latitude < -90 || loc.Latitude > 90:
		return fmt.Errorf("%w: latitude %f out of range", ErrInvalidLocation, loc.Latitude)
	case loc.Longitude < -180 || loc.Longitude > 180:
		return fmt.Errorf("%w: longitude %f out of range", ErrInvalidLocation, loc.Longitude)
	case loc.RadiusMeters <= 0:
		return fmt.Errorf("%w: radius must be positive", ErrInvalidLocation)
	}
	return nil
}
