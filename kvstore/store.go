// Package kvstore defines the durable key-value collaborator the quadtree
// persists its node records into, together with built-in implementations.
//
// Store is the minimal contract the tree needs: point reads by key with a
// distinct miss error, and writes that are durable once acknowledged.
//
// # Built-in Implementations
//
//   - Memory: in-memory map, for tests and ephemeral trees
//   - Local: local filesystem, one file per key, atomic writes
//   - redisstore.Store: Redis
//   - dynamo.Store: Amazon DynamoDB
//   - miniostore.Store: MinIO / S3-compatible object storage
//
// # Custom Implementations
//
// Implement the Store interface to support custom backends:
//
//	type Store interface {
//	    Get(ctx, key) ([]byte, error)   // ErrNotFound on miss
//	    Put(ctx, key, value) error      // durable once acknowledged
//	    Delete(ctx, key) error
//	    List(ctx, prefix) ([]string, error)
//	    Close() error
//	}
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key does not exist.
//
// Implementations must return an error that satisfies
// `errors.Is(err, ErrNotFound)` for a miss, so callers can distinguish
// "not initialized yet" probing from genuine faults.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is an abstraction over a durable key-value store.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes value under key. The write is durable once Put returns nil.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys with the given prefix, in unspecified order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
