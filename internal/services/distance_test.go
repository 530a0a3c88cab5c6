package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceFromOrigin(t *testing.T) {
	oneDegree := EarthRadiusKm * math.Pi / 180

	assert.Equal(t, 0.0, DistanceFromOrigin(0, 0))
	assert.InDelta(t, oneDegree, DistanceFromOrigin(1, 0), 1e-9)
	assert.InDelta(t, oneDegree, DistanceFromOrigin(0, 1), 1e-9)
	assert.InDelta(t, oneDegree, DistanceFromOrigin(0, -1), 1e-9)
	assert.InDelta(t, 111.19, DistanceFromOrigin(1, 0), 0.01)
	assert.InDelta(t, EarthRadiusKm*math.Pi/2, DistanceFromOrigin(90, 0), 1e-6)
}

func TestHaversineIsSymmetric(t *testing.T) {
	a := Haversine(35.681236, 139.767125, 34.702485, 135.495951)
	b := Haversine(34.702485, 135.495951, 35.681236, 139.767125)

	assert.InDelta(t, a, b, 1e-9)
	assert.InDelta(t, 403, a, 5) // Tokyo - Osaka stations
}

func TestDistanceFromOriginText(t *testing.T) {
	got, err := DistanceFromOriginText("0.234", "0.345")
	require.NoError(t, err)
	assert.InDelta(t, DistanceFromOrigin(0.234, 0.345), got, 1e-12)

	got, err = DistanceFromOriginText("-1", " 0 ")
	require.NoError(t, err)
	assert.InDelta(t, EarthRadiusKm*math.Pi/180, got, 1e-9)

	_, err = DistanceFromOriginText("abc", "1")
	assert.Error(t, err)
}
