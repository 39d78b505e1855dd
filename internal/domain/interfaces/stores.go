package interfaces

import "context"

// KeyValueStore is the persisted storage capability the session layer is
// built on.
type KeyValueStore interface {
	// Get returns ok=false, with no error, when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Clear removes every key in the store's namespace.
	Clear(ctx context.Context) error
}

// SessionStore persists the single session token.
type SessionStore interface {
	Write(ctx context.Context, token string) error
	Read(ctx context.Context) (token string, ok bool, err error)
	Clear(ctx context.Context) error
}
