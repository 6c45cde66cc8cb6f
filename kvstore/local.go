package kvstore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Local is a Store backed by the local filesystem, one file per key.
//
// Writes go to a temporary file in the same directory followed by a rename,
// so readers never observe a partially written record. Keys are URL-escaped
// to form file names, which keeps separators and other unsafe characters out
// of the directory layout.
type Local struct {
	root string
}

// NewLocal creates a Local store rooted at the given directory,
// creating it if necessary.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: create root %s: %w", root, err)
	}
	return &Local{root: root}, nil
}

func (s *Local) path(key string) string {
	return filepath.Join(s.root, url.PathEscape(key))
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Local) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put writes value under key atomically (tmp file + rename).
func (s *Local) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.root, ".put-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns all keys with the given prefix.
func (s *Local) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".put-") {
			continue
		}
		key, err := url.PathUnescape(e.Name())
		if err != nil {
			continue // foreign file, not one of ours
		}
		if prefix == "" || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Close is a no-op for the local store.
func (s *Local) Close() error { return nil }
