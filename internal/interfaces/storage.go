// Package interfaces defines service contracts for nestegg
package interfaces

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KeyValueStore.Get when a key is absent.
// Callers distinguish "absent" (fall back) from an I/O failure (degrade).
var ErrNotFound = errors.New("key not found")

// KeyValueStore is the persistence collaborator: get/set/remove over raw
// JSON values keyed by namespaced strings.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
