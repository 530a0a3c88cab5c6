package ports

import "context"

// Port: persistent string key-value storage holding the canonical copy of
// the respawn list and display settings.
type KeyValueStore interface {
	// Return the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Store value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
}
