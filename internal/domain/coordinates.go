package domain

import (
	"fmt"
	"math"
)

// Geographic coordinates (latitude, longitude) in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Report whether both components are finite real numbers.
func (c LatLng) Valid() bool {
	return isFinite(c.Lat) && isFinite(c.Lng)
}

// Format the pair the way the map center is displayed in absolute mode.
func (c LatLng) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lng)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
