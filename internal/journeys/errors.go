package journeys

import "errors"

var (
	// ErrNotFound is returned when a journey, rule or location does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidRule is returned when a rule fails validation
	ErrInvalidRule = errors.New("invalid rule")
	// ErrInvalidLocation is returned when a saved location fails validation
	ErrInvalidLocation = errors.New("invalid location")
)
