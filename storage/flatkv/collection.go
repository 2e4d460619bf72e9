package flatkv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

// collection stores a whole record collection as one JSON array under one key,
// the way flat browser storage holds a serialized array per key. Every
// mutation is a read-modify-write of the whole array, serialized by the store
// mutex.
type collection[T any] struct {
	store *Store
	key   string
	id    func(T) core.ID
}

var (
	_ storage.Collection[*core.Project] = (*collection[*core.Project])(nil)
	_ storage.Collection[*core.Folder]  = (*collection[*core.Folder])(nil)
)

// Get retrieves a single record by ID.
func (c *collection[T]) Get(ctx context.Context, id core.ID) (T, error) {
	var zero T
	records, err := c.readAll()
	if err != nil {
		return zero, err
	}
	for _, record := range records {
		if c.id(record) == id {
			return record, nil
		}
	}
	return zero, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
}

// GetAll retrieves every record in the collection.
func (c *collection[T]) GetAll(ctx context.Context) ([]T, error) {
	return c.readAll()
}

// Put inserts or replaces a record by its ID. A record whose ID is absent
// from the array is appended, which self-heals partially-migrated state.
func (c *collection[T]) Put(ctx context.Context, record T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.readAll()
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if c.id(records[i]) == c.id(record) {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	return c.writeAllLocked(records)
}

// Delete removes a record by ID. Deleting a non-existent ID is not an error.
func (c *collection[T]) Delete(ctx context.Context, id core.ID) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.readAll()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if c.id(record) != id {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	return c.writeAllLocked(kept)
}

// readAll loads and decodes the whole collection. An absent key is an empty
// collection, not an error.
func (c *collection[T]) readAll() ([]T, error) {
	data, err := c.store.Get(c.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: key %q: %w", storage.ErrSerializationFailed, c.key, err)
	}
	return records, nil
}

// writeAllLocked encodes and stores the whole collection.
// Caller holds the store mutex.
func (c *collection[T]) writeAllLocked(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: key %q: %w", storage.ErrSerializationFailed, c.key, err)
	}
	return c.store.setLocked(c.key, data)
}
