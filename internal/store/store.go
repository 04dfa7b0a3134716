// Package store defines the lease store port and its implementations.
// The lease store is the single source of truth for all seat state: it is
// a shared key-value store whose native per-key expiry implements hold
// timeouts, so no background sweeper ever runs. The engine and repository
// never cache seat state across calls.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist or its
// expiry has already elapsed.
var ErrKeyNotFound = errors.New("store: key not found")

// LeaseStore is the set of store operations the repository layer needs.
// SetIfAbsent is the critical primitive: it must atomically create the key
// with the given TTL only when no live key exists, reporting false when
// one does. That single conditional write is what keeps two concurrent
// holders from both claiming the same seat.
type LeaseStore interface {
	// Set writes a plain key without expiry, overwriting any prior value.
	Set(ctx context.Context, key, value string) error

	// SetIfAbsent atomically creates key with the given TTL when no live
	// key exists. It returns true when the key was created and false when
	// a key was already present.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	// Get returns the value of key, or ErrKeyNotFound when it is absent
	// or expired.
	Get(ctx context.Context, key string) (string, error)

	// Persist clears the expiry of key, making it permanent. It returns
	// true when a TTL was removed and false when the key does not exist
	// or already had no TTL.
	Persist(ctx context.Context, key string) (bool, error)

	// SAdd adds members to the set stored at key, creating it on first use.
	SAdd(ctx context.Context, key string, members ...string) error

	// SMembers returns all members of the set stored at key. A missing
	// set yields an empty slice, not an error.
	SMembers(ctx context.Context, key string) ([]string, error)

	// ScanPrefix returns all live keys that start with prefix.
	ScanPrefix(ctx context.Context, prefix string) ([]string, error)
}
