package models

// Station is a UK railway station keyed by its CRS code.
type Station struct {
	CRS  string `json:"crs" db:"crs"`   // 3-letter code, e.g. "CHX"
	Name string `json:"name" db:"name"` // e.g. "London Charing Cross"
}

// String renders the station as it is shown in lists, e.g. "London Charing Cross (CHX)".
func (s Station) String() string {
	if s.CRS == "" {
		return s.Name
	}
	return s.Name + " (" + s.CRS + ")"
}

// Coordinates is a device position fix.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
