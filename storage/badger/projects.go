package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

// projectCollection implements storage.Collection[*core.Project] for BadgerDB.
// Every write maintains the secondary indexes on name, date and creation time
// inside the same transaction as the record itself.
type projectCollection struct {
	backend *Backend
}

var _ storage.Collection[*core.Project] = (*projectCollection)(nil)

// Get retrieves a single project by ID.
func (c *projectCollection) Get(ctx context.Context, id core.ID) (*core.Project, error) {
	var result *core.Project
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readProject(tx, makeProjectKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, c.backend.translateErr(err)
}

// GetAll retrieves every project. Order is unspecified.
func (c *projectCollection) GetAll(ctx context.Context) ([]*core.Project, error) {
	var results []*core.Project
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(projectRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var project *core.Project
			err := iter.Item().Value(func(val []byte) error {
				var err error
				project, err = storage.UnmarshalProject(val)
				return err
			})
			if err != nil {
				return err
			}
			if project != nil {
				results = append(results, project)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, c.backend.translateErr(err)
	}
	return results, nil
}

// Put inserts or replaces a project by its ID.
func (c *projectCollection) Put(ctx context.Context, project *core.Project) error {
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProjectKey(project.Id)

		// Read old record to detect index changes
		old, err := readProject(tx, key)
		if err != nil {
			return err
		}

		value := storage.MarshalProject(project)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		if old != nil {
			if err := deleteProjectIndexes(tx, old, project); err != nil {
				return err
			}
		}
		if err := setProjectIndexes(tx, old, project); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	return c.backend.translateErr(err)
}

// Delete removes a project by ID. Deleting a non-existent ID is not an error.
func (c *projectCollection) Delete(ctx context.Context, id core.ID) error {
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProjectKey(id)

		// Read record to get metadata for index cleanup
		project, err := readProject(tx, key)
		if err != nil {
			return err
		}
		if project == nil {
			return nil
		}

		if err := tx.Delete(makeProjectNameKey(project.Name, project.Id)); err != nil {
			return err
		}
		if err := tx.Delete(makeProjectDateKey(project.Date, project.Id)); err != nil {
			return err
		}
		if err := tx.Delete(makeProjectCreatedKey(project.CreatedAt, project.Id)); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	return c.backend.translateErr(err)
}

// ProjectsCreatedBetween retrieves projects whose creation time falls in
// [start, end), ordered by creation time ascending. It walks the creation-time
// index rather than scanning records.
func (b *Backend) ProjectsCreatedBetween(ctx context.Context, start, end time.Time) ([]*core.Project, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Project
	err := b.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialProjectCreatedKey(start)
		endKey := makePartialProjectCreatedKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			// Read the ID from the index
			var projectID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				projectID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			project, err := readProject(tx, makeProjectKey(projectID))
			if err != nil {
				return err
			}
			if project != nil {
				results = append(results, project)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, b.translateErr(err)
	}
	return results, nil
}

// Helper functions

// readProject reads a project from the transaction.
// Returns nil, nil when the key is absent.
func readProject(tx *badger.Txn, key []byte) (*core.Project, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var project *core.Project
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		project, unmarshalErr = storage.UnmarshalProject(val)
		return unmarshalErr
	})
	return project, err
}

// setProjectIndexes writes index entries for project. Entries already correct
// for old are skipped.
func setProjectIndexes(tx *badger.Txn, old, project *core.Project) error {
	idValue := storage.MarshalID(project.Id)

	if old == nil || old.Name != project.Name {
		if err := tx.Set(makeProjectNameKey(project.Name, project.Id), idValue); err != nil {
			return err
		}
	}
	if old == nil || old.Date != project.Date {
		if err := tx.Set(makeProjectDateKey(project.Date, project.Id), idValue); err != nil {
			return err
		}
	}
	if old == nil || !old.CreatedAt.Equal(project.CreatedAt) {
		if err := tx.Set(makeProjectCreatedKey(project.CreatedAt, project.Id), idValue); err != nil {
			return err
		}
	}
	return nil
}

// deleteProjectIndexes removes index entries of old that updated makes stale.
func deleteProjectIndexes(tx *badger.Txn, old, updated *core.Project) error {
	if old.Name != updated.Name {
		if err := tx.Delete(makeProjectNameKey(old.Name, old.Id)); err != nil {
			return err
		}
	}
	if old.Date != updated.Date {
		if err := tx.Delete(makeProjectDateKey(old.Date, old.Id)); err != nil {
			return err
		}
	}
	if !old.CreatedAt.Equal(updated.CreatedAt) {
		if err := tx.Delete(makeProjectCreatedKey(old.CreatedAt, old.Id)); err != nil {
			return err
		}
	}
	return nil
}
