package ports

import (
	"context"
	"respawn-map-service/internal/domain"
)

// Port: the bundled default respawn list used when nothing is persisted yet.
type DefaultListSource interface {
	FetchDefaults(ctx context.Context) ([]domain.RespawnPoint, error)
}
