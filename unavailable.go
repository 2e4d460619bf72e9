package revela

import (
	"context"
	"fmt"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

// unavailableBackend stands in for a primary backend that failed to open.
// Every operation reports storage.ErrBackendUnavailable, which the facade
// handles by falling back, exactly as it would for a backend that opened and
// then started failing.
type unavailableBackend struct{}

var _ storage.Backend = unavailableBackend{}

func (unavailableBackend) Projects() storage.Collection[*core.Project] {
	return unavailableCollection[*core.Project]{}
}

func (unavailableBackend) Folders() storage.Collection[*core.Folder] {
	return unavailableCollection[*core.Folder]{}
}

func (unavailableBackend) Name() string { return "unavailable" }

func (unavailableBackend) Close() error { return nil }

type unavailableCollection[T any] struct{}

func (unavailableCollection[T]) Get(ctx context.Context, id core.ID) (T, error) {
	var zero T
	return zero, errUnavailable()
}

func (unavailableCollection[T]) GetAll(ctx context.Context) ([]T, error) {
	return nil, errUnavailable()
}

func (unavailableCollection[T]) Put(ctx context.Context, record T) error {
	return errUnavailable()
}

func (unavailableCollection[T]) Delete(ctx context.Context, id core.ID) error {
	return errUnavailable()
}

func errUnavailable() error {
	return fmt.Errorf("%w: backend failed to open", storage.ErrBackendUnavailable)
}
