package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements LeaseStore on top of a Redis client.  Hold creation
// maps to SET NX EX, which is the atomic conditional write the engine
// relies on; hold expiry is Redis' own key TTL and reservation maps to
// PERSIST.  Prefix enumeration uses SCAN rather than KEYS so it does not
// block the server on large keyspaces.
type Redis struct {
	client *redis.Client
}

// NewRedis returns a LeaseStore backed by the provided Redis client.
func NewRedis(client *redis.Client) *Redis {
	if client == nil {
		panic("nil redis client passed to store.NewRedis")
	}
	return &Redis{client: client}
}

// Set writes a plain key without expiry.
func (s *Redis) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// SetIfAbsent creates key with the given TTL only when absent, in a
// single round trip (SET key value NX EX ttl).
func (s *Redis) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, value, ttl).Result()
}

// Get returns the value at key, mapping redis.Nil to ErrKeyNotFound.
func (s *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return v, nil
}

// Persist removes the TTL from key.  Redis returns 0 both when the key
// is missing and when it already had no TTL; callers that need to tell
// those apart re-read the key afterwards.
func (s *Redis) Persist(ctx context.Context, key string) (bool, error) {
	return s.client.Persist(ctx, key).Result()
}

// SAdd adds members to the set at key.
func (s *Redis) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return s.client.SAdd(ctx, key, args...).Err()
}

// SMembers returns all members of the set at key.  A missing set yields
// an empty slice.
func (s *Redis) SMembers(ctx context.Context, key string) ([]string, error) {
	return s.client.SMembers(ctx, key).Result()
}

// ScanPrefix iterates the keyspace with SCAN MATCH prefix* and collects
// the matching keys.  The view is point-in-time at best, which is the
// consistency the available-seats read inherits.
func (s *Redis) ScanPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
