// Package redisstore implements kvstore.Store on top of Redis.
//
// Node records are small JSON documents, so plain string keys with GET/SET
// are all the tree needs. Durability follows the Redis server's persistence
// configuration (AOF/RDB); with everything disabled the tree is effectively
// ephemeral.
package redisstore

import (
	"context"
	"errors"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/quadgo/kvstore"
)

// Store implements kvstore.Store for Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// New creates a Redis-backed store.
// keyPrefix is prepended to all keys (e.g. "quadgo:"), allowing several
// trees to share one Redis database.
func New(client *redis.Client, keyPrefix string) *Store {
	return &Store{client: client, prefix: keyPrefix}
}

// FromEnv creates a Redis-backed store from REDIS_ADDR and REDIS_PASS.
// REDIS_ADDR defaults to 127.0.0.1:6379.
func FromEnv(keyPrefix string) *Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
	})
	return New(client, keyPrefix)
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Get returns the value stored under key, or kvstore.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kvstore.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put writes value under key with no expiry.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// List returns all keys with the given prefix using SCAN, so it never
// blocks the server the way KEYS would.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.key(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(s.prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
