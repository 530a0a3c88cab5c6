package ports

import (
	"context"
	"respawn-map-service/internal/domain"
)

// Port: device geolocation. Each call completes exactly once.
type Locator interface {
	CurrentPosition(ctx context.Context) (domain.LatLng, error)
}
