package repository

import (
	"context"
	"errors"
)

// ErrStoreClosed is returned by stores used after Close.
var ErrStoreClosed = errors.New("store is closed")

// KeyValueStore persists whole collections as JSON text under string keys.
// A missing key is reported with ok == false and no error.
type KeyValueStore interface {
	// Get returns the value stored under key
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying connection or file
	Close() error
}
