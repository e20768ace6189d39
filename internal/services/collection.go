package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/repository"
	"go.uber.org/zap"
)

// decodeFunc parses a stored collection. rewritten reports that the decoder
// assigned ids, so the stored value no longer matches memory.
type decodeFunc[T any] func(data []byte) (items []T, rewritten bool, err error)

// collection is one persisted list kept whole under a single store key.
// It is not safe for concurrent use; the owning service holds the lock.
type collection[T any] struct {
	key    string
	store  repository.KeyValueStore
	decode decodeFunc[T]
	log    *zap.Logger

	items    []T
	snapshot string
	dirty    bool
	lastErr  error
}

func newCollection[T any](key string, store repository.KeyValueStore, decode decodeFunc[T], log *zap.Logger) *collection[T] {
	return &collection[T]{
		key:    key,
		store:  store,
		decode: decode,
		log:    log.With(zap.String("key", key)),
		items:  []T{},
	}
}

// load replaces the in-memory items with the stored ones. Read failures are
// returned; undecodable data resets the collection to empty.
func (c *collection[T]) load(ctx context.Context) error {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.log.Error("Failed to read collection", zap.Error(err))
		return fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !ok {
		c.items = []T{}
		c.snapshot = ""
		return nil
	}
	c.replace(raw)
	return nil
}

func (c *collection[T]) replace(raw string) {
	c.snapshot = raw
	items, rewritten, err := c.decode([]byte(raw))
	if err != nil {
		c.log.Error("Stored collection is malformed, starting empty", zap.Error(err))
		c.items = []T{}
		return
	}
	c.items = items
	if rewritten {
		// Written back on the next save or refresh so the ids stay stable.
		c.dirty = true
		c.lastErr = nil
		c.log.Info("Assigned ids to stored records, write-back pending")
	}
}

// save writes the whole collection. A failed write leaves the items as they
// are and marks the collection dirty so a later save or refresh retries.
func (c *collection[T]) save(ctx context.Context) {
	payload, err := json.Marshal(c.items)
	if err != nil {
		c.fail(fmt.Errorf("failed to encode %s: %w", c.key, err))
		return
	}
	if err := c.store.Set(ctx, c.key, string(payload)); err != nil {
		c.fail(err)
		return
	}
	c.snapshot = string(payload)
	c.dirty = false
	c.lastErr = nil
}

func (c *collection[T]) fail(err error) {
	c.dirty = true
	c.lastErr = err
	c.log.Error("Failed to persist collection", zap.Error(err))
}

// refresh retries a pending write, or picks up a value written by another
// process. It reports whether the in-memory items were replaced.
func (c *collection[T]) refresh(ctx context.Context) (bool, error) {
	if c.dirty {
		c.save(ctx)
		return false, c.lastErr
	}

	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.log.Warn("Failed to poll collection", zap.Error(err))
		return false, fmt.Errorf("failed to poll %s: %w", c.key, err)
	}
	if !ok || raw == c.snapshot {
		return false, nil
	}

	c.replace(raw)
	c.log.Info("Collection changed in store, reloaded", zap.Int("count", len(c.items)))
	return true, nil
}

// persistErr returns the last write failure while the collection is dirty.
func (c *collection[T]) persistErr() error {
	if !c.dirty {
		return nil
	}
	return c.lastErr
}

// indexOf returns the position of the first item matching pred, or -1.
func (c *collection[T]) indexOf(pred func(*T) bool) int {
	for i := range c.items {
		if pred(&c.items[i]) {
			return i
		}
	}
	return -1
}

func (c *collection[T]) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}
