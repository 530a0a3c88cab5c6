package defaults

import (
	"context"
	_ "embed"
	"respawn-map-service/internal/domain"
)

//go:embed default_respawn.json
var bundledList []byte

// EmbeddedSource serves the respawn list compiled into the binary.
type EmbeddedSource struct{}

func NewEmbeddedSource() *EmbeddedSource { return &EmbeddedSource{} }

func (EmbeddedSource) FetchDefaults(ctx context.Context) ([]domain.RespawnPoint, error) {
	return decodeList(bundledList)
}
