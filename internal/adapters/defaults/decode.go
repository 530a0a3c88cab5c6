package defaults

import (
	"fmt"
	"respawn-map-service/internal/domain"
	"strings"

	"github.com/bytedance/sonic"
)

// decodeList parses a JSON array of {name, lat, lng} objects.
// Entries with non-finite coordinates are rejected.
func decodeList(b []byte) ([]domain.RespawnPoint, error) {
	var list []domain.RespawnPoint
	if err := sonic.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("decode default respawn list: %w", err)
	}

	for i := range list {
		list[i].Name = strings.TrimSpace(list[i].Name)
		if err := list[i].Validate(); err != nil {
			return nil, fmt.Errorf("decode default respawn list: entry %d: %w", i+1, err)
		}
	}

	if list == nil {
		list = []domain.RespawnPoint{}
	}
	return list, nil
}
