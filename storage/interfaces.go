package storage

import (
	"context"

	"github.com/bordonalmed/REVELA-sub000/core"
)

// Collection provides the capability set both backends implement for one
// record collection. Implementations must be safe for concurrent use. The
// interface is context-based even for backends whose operations never block,
// so the facade has a single control-flow style.
type Collection[T any] interface {
	// Get retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id core.ID) (T, error)

	// GetAll retrieves every record in the collection.
	// Order is unspecified; ordering is a facade-level concern.
	GetAll(ctx context.Context) ([]T, error)

	// Put inserts or replaces a record by its ID (upsert semantics).
	Put(ctx context.Context, record T) error

	// Delete removes a record by ID.
	// Deleting a non-existent ID is not an error (idempotent).
	Delete(ctx context.Context, id core.ID) error
}

// Backend bundles the collections one storage backend provides.
type Backend interface {
	// Projects returns the project collection.
	Projects() Collection[*core.Project]

	// Folders returns the folder collection.
	Folders() Collection[*core.Folder]

	// Name identifies the backend in logs and error messages.
	Name() string

	// Close closes the backend and releases resources.
	Close() error
}
