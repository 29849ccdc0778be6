package geo

import (
	"math"
	"testing"
)

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		want       float64
		tolerance  float64
	}{
		{"same point", 51.5074, -0.1278, 51.5074, -0.1278, 0, 0.001},
		// Charing Cross to London Bridge, roughly 2.3 km
		{"charing cross to london bridge", 51.5080, -0.1247, 51.5052, -0.0864, 2660, 50},
		// One degree of latitude along a meridian
		{"one degree latitude", 0, 0, 1, 0, 111195, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineMeters() = %.2f, want %.2f ± %.2f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestHaversineMeters_Symmetric(t *testing.T) {
	a := HaversineMeters(53.4774, -2.2309, 51.5314, -0.1261)
	b := HaversineMeters(51.5314, -0.1261, 53.4774, -2.2309)
	if a != b {
		t.Errorf("distance not symmetric: %v != %v", a, b)
	}
}
