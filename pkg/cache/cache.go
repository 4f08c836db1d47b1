// Package cache stores compiled layouts keyed by a hash of their inputs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance for multi-instance servers
//   - [NullCache]: never stores anything (caching disabled)
//
// # Keys
//
// A [Keyer] derives keys from a document hash and the engine options that
// influence the result. [WithScope] prefixes keys so several tenants can
// share one backend.
//
// # Expiration
//
// Every entry carries an optional TTL. Expired entries read as misses and
// are removed lazily.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with expiration.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every entry this cache owns.
	Clear(ctx context.Context) error
	Close() error
}

// NullCache never stores anything. It backs --no-cache and the "none"
// backend.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Clear(context.Context) error { return nil }
func (NullCache) Close() error { return nil }

var (
	_ Cache = NullCache{}
	_ Cache = (*FileCache)(nil)
	_ Cache = (*RedisCache)(nil)
)
