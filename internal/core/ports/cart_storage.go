package ports

import "context"

// CartStorage is a durable key/value store for the serialized cart. It stands in for the
// browser-local storage of a single terminal: last writer wins, no locking across processes.
type CartStorage interface {
	// Load returns the value stored under key. found is false when the key was never written.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, data []byte) error
}
