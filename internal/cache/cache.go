// Package cache provides the redirect cache: a TTL key-value accelerator
// mapping short codes to original URLs in front of the durable store.
//
// The cache is optional. When it is not configured the service gets a Noop
// instance instead of a nil reference, so business logic never branches on
// cache availability; callers treat every error as a miss.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the uniform expiry applied to cached redirect mappings.
const DefaultTTL = time.Hour

// Cache is the redirect-cache contract. Implementations may fail at any
// time; callers must degrade to the durable store, never surface cache
// errors to the request.
type Cache interface {
	// Get returns the cached original URL for a short code. ok is false on
	// a miss; err reports backend trouble, which callers treat as a miss.
	Get(ctx context.Context, shortCode string) (originalURL string, ok bool, err error)

	// Set stores the mapping with the cache's TTL.
	Set(ctx context.Context, shortCode, originalURL string) error

	// Delete invalidates the mapping, if present.
	Delete(ctx context.Context, shortCode string) error
}

// Noop is the absent-cache substitute: every read misses, writes succeed
// without effect.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (Noop) Set(context.Context, string, string) error         { return nil }
func (Noop) Delete(context.Context, string) error              { return nil }
