// Package storage provides the durable key/value store behind the world
// repository. Values are opaque strings; callers own the encoding.
package storage

import "context"

//go:generate mockgen -destination=mock/mock_store.go -package=storagemock github.com/questforge/questforge/internal/storage Store

// Store is the persistence contract: get returns ok=false for an absent
// key, set and delete are idempotent. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
