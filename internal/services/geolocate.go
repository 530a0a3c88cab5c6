package services

import (
	"context"
	"errors"
	"fmt"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/ports"

	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"
)

// Zoom level the map jumps to after a successful locate.
const LocateZoom = 16

var (
	ErrLocateUnsupported   = errors.New("geolocation is not supported")
	ErrLocateBusy          = errors.New("location request already in progress")
	ErrLocationUnavailable = errors.New("failed to get location")
)

// Geolocator runs single-shot position requests. A request made while
// another is in flight is refused rather than queued.
type Geolocator struct {
	locator ports.Locator
	busy    *atomic.Bool
}

// NewGeolocator accepts a nil locator; Locate then reports
// ErrLocateUnsupported.
func NewGeolocator(locator ports.Locator) *Geolocator {
	return &Geolocator{locator: locator, busy: atomic.NewBool(false)}
}

func (g *Geolocator) Busy() bool { return g.busy.Load() }

// Locate returns the device position to recenter on at LocateZoom.
func (g *Geolocator) Locate(ctx context.Context) (domain.LatLng, error) {
	if g.locator == nil {
		return domain.LatLng{}, ErrLocateUnsupported
	}
	if !g.busy.CompareAndSwap(false, true) {
		return domain.LatLng{}, ErrLocateBusy
	}
	defer g.busy.Store(false)

	pos, err := g.locator.CurrentPosition(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("geolocation failed")
		return domain.LatLng{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	if !pos.Valid() {
		return domain.LatLng{}, ErrLocationUnavailable
	}
	return pos, nil
}
