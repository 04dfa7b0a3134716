package store

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process LeaseStore used by tests. It honors the same
// contract as the Redis implementation, in particular the atomic
// conditional-set semantics of SetIfAbsent. Expiry is checked lazily on
// every access instead of by a sweeper: a key whose deadline has passed is
// treated as absent and removed on the spot.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	sets    map[string]map[string]struct{}

	// Now supplies the current time and may be swapped in tests to move
	// time forward without sleeping.
	Now func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// NewMemory returns an empty in-memory lease store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		sets:    make(map[string]map[string]struct{}),
		Now:     time.Now,
	}
}

// live reports whether key currently holds an unexpired entry, deleting
// it when the deadline has passed. Callers must hold mu.
func (s *Memory) live(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !s.Now().Before(e.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

// Set writes a plain key without expiry.
func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value}
	return nil
}

// SetIfAbsent creates key with the given TTL only when no live key
// exists. The check and the write happen under one lock, matching the
// atomicity of Redis SET NX EX.
func (s *Memory) SetIfAbsent(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live(key); ok {
		return false, nil
	}
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = s.Now().Add(ttl)
	}
	s.entries[key] = e
	return true, nil
}

// Get returns the value at key or ErrKeyNotFound.
func (s *Memory) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	if !ok {
		return "", ErrKeyNotFound
	}
	return e.value, nil
}

// Persist clears the expiry of key. Like Redis PERSIST it returns false
// both for a missing key and for one that already had no TTL.
func (s *Memory) Persist(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	if !ok {
		return false, nil
	}
	if e.expiresAt.IsZero() {
		return false, nil
	}
	e.expiresAt = time.Time{}
	s.entries[key] = e
	return true, nil
}

// SAdd adds members to the set at key.
func (s *Memory) SAdd(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

// SMembers returns all members of the set at key, empty when missing.
func (s *Memory) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[key]
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	return members, nil
}

// ScanPrefix returns all live keys starting with prefix.
func (s *Memory) ScanPrefix(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.entries {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if _, ok := s.live(k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
