// Package miniostore implements kvstore.Store on top of MinIO and
// S3-compatible object storage, one object per key.
package miniostore

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/quadgo/kvstore"
)

// Store implements kvstore.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// New creates a MinIO-backed store.
// bucket is the bucket name; rootPrefix is prepended to all keys
// (e.g. "quadgo/").
func New(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(key string) string {
	return path.Join(s.prefix, key)
}

// Get returns the value stored under key, or kvstore.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// GetObject defers most failures to the first read.
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, kvstore.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put writes value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(key),
		bytes.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, s.key(key), minio.RemoveObjectOptions{})
}

// List returns all keys with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	opts := minio.ListObjectsOptions{
		Prefix:    s.key(prefix),
		Recursive: true,
	}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		key := strings.TrimPrefix(strings.TrimPrefix(obj.Key, s.prefix), "/")
		keys = append(keys, key)
	}
	return keys, nil
}

// Close is a no-op; the lifecycle of the MinIO client belongs to the caller.
func (s *Store) Close() error { return nil }
