package ports

import "context"

// QueryCache stores marshalled query results keyed by a canonical
// selection string. Implementations must return domain.ErrCacheMiss from
// Load when the key is absent or expired.
//
// The cache is an optimization layer: callers are expected to treat any
// error as a miss and fall through to the index.
type QueryCache interface {
	// Save persists a payload under the given key.
	Save(ctx context.Context, key string, payload []byte) error

	// Load retrieves the payload for a key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// Keys lists the currently cached keys.
	Keys(ctx context.Context) ([]string, error)

	// Flush removes every cached entry. Called on dataset reload.
	Flush(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
