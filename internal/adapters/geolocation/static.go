package geolocation

import (
	"context"
	"errors"
	"respawn-map-service/internal/domain"
)

var ErrNoFix = errors.New("no position fix")

// StaticLocator reports a fixed position, or ErrNoFix when none is set.
type StaticLocator struct {
	pos *domain.LatLng
}

func NewStaticLocator(lat, lng float64) *StaticLocator {
	return &StaticLocator{pos: &domain.LatLng{Lat: lat, Lng: lng}}
}

// NewUnavailableLocator returns a locator whose every request fails.
func NewUnavailableLocator() *StaticLocator {
	return &StaticLocator{}
}

func (l *StaticLocator) CurrentPosition(ctx context.Context) (domain.LatLng, error) {
	if err := ctx.Err(); err != nil {
		return domain.LatLng{}, err
	}
	if l.pos == nil {
		return domain.LatLng{}, ErrNoFix
	}
	return *l.pos, nil
}
