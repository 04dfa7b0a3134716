package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The in-memory store must honor the same contract as the Redis
// implementation, most importantly the atomic conditional-set semantics
// that hold creation depends on.
var _ LeaseStore = (*Memory)(nil)

func TestMemorySetIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	created, err := s.SetIfAbsent(ctx, "k", "v1", time.Minute)
	require.NoError(t, err)
	assert.True(t, created)

	// A live key blocks a second conditional set.
	created, err = s.SetIfAbsent(ctx, "k", "v2", time.Minute)
	require.NoError(t, err)
	assert.False(t, created)

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
}

func TestMemoryLazyExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	now := time.Now()
	s.Now = func() time.Time { return now }

	created, err := s.SetIfAbsent(ctx, "k", "v1", time.Second)
	require.NoError(t, err)
	require.True(t, created)

	// Before the deadline the key is live.
	_, err = s.Get(ctx, "k")
	require.NoError(t, err)

	// At and past the deadline the key is treated as absent, with no
	// sweeper involved.
	now = now.Add(2 * time.Second)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// An expired key no longer blocks a conditional set.
	created, err = s.SetIfAbsent(ctx, "k", "v2", time.Second)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestMemoryPersist(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	now := time.Now()
	s.Now = func() time.Time { return now }

	_, err := s.SetIfAbsent(ctx, "k", "v", time.Second)
	require.NoError(t, err)

	// First persist removes the TTL.
	ok, err := s.Persist(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	// Second persist reports false: there is no TTL left to remove.
	ok, err = s.Persist(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// A persisted key survives well past its original deadline.
	now = now.Add(time.Hour)
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	// Persisting a missing key reports false.
	ok, err = s.Persist(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySets(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	members, err := s.SMembers(ctx, "set")
	require.NoError(t, err)
	assert.Empty(t, members)

	require.NoError(t, s.SAdd(ctx, "set", "a", "b"))
	require.NoError(t, s.SAdd(ctx, "set", "b", "c"))

	members, err = s.SMembers(ctx, "set")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, members)
}

func TestMemoryScanPrefix(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	now := time.Now()
	s.Now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "events/e1/reserved-seats/s1", "h1"))
	_, err := s.SetIfAbsent(ctx, "events/e1/reserved-seats/s2", "h2", time.Second)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "events/e2/reserved-seats/s3", "h3"))

	keys, err := s.ScanPrefix(ctx, "events/e1/reserved-seats/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"events/e1/reserved-seats/s1",
		"events/e1/reserved-seats/s2",
	}, keys)

	// Expired keys drop out of the scan.
	now = now.Add(2 * time.Second)
	keys, err = s.ScanPrefix(ctx, "events/e1/reserved-seats/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"events/e1/reserved-seats/s1"}, keys)
}
