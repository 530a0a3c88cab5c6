package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Pow(math.Sin(dLon/2), 2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceFromOrigin returns the haversine distance from (0°, 0°).
func DistanceFromOrigin(lat, lon float64) float64 {
	return Haversine(0, 0, lat, lon)
}

// DistanceFromOriginText coerces formatted delta strings to numbers and
// measures them as if they were degrees from the origin.
//
// The relative display depends on this composition; the result is not a
// planar distance between the map center and the respawn point.
func DistanceFromOriginText(dy, dx string) (float64, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(dy), 64)
	if err != nil {
		return 0, fmt.Errorf("distance from origin: parse %q: %w", dy, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(dx), 64)
	if err != nil {
		return 0, fmt.Errorf("distance from origin: parse %q: %w", dx, err)
	}
	return DistanceFromOrigin(lat, lon), nil
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
