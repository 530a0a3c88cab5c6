package defaults

import (
	"context"
	"fmt"
	"os"
	"respawn-map-service/internal/domain"
)

// FileSource reads the default respawn list from a JSON file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (s *FileSource) FetchDefaults(ctx context.Context) ([]domain.RespawnPoint, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read default respawn list %q: %w", s.Path, err)
	}
	return decodeList(b)
}
