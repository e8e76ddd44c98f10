// Package storage persists small configuration blobs by key.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("storage is closed")

// Store reads and writes whole values by key. Writes replace the previous value.
type Store interface {
	// Get returns the value for key and whether it exists
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value under key, overwriting any previous value
	Put(ctx context.Context, key string, value []byte) error
	// Close releases the underlying resources
	Close() error
}

// Open picks the backing store: PostgreSQL when databaseURL is set, SQLite at path otherwise.
func Open(ctx context.Context, databaseURL, path string) (Store, error) {
	if databaseURL != "" {
		store, err := ConnectPostgres(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
