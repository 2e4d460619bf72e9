package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

// folderCollection implements storage.Collection[*core.Folder] for BadgerDB.
type folderCollection struct {
	backend *Backend
}

var _ storage.Collection[*core.Folder] = (*folderCollection)(nil)

// Get retrieves a single folder by ID.
func (c *folderCollection) Get(ctx context.Context, id core.ID) (*core.Folder, error) {
	var result *core.Folder
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readFolder(tx, makeFolderKey(id))
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

// GetAll retrieves every folder. Order is unspecified.
func (c *folderCollection) GetAll(ctx context.Context) ([]*core.Folder, error) {
	var results []*core.Folder
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(folderRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var folder *core.Folder
			err := iter.Item().Value(func(val []byte) error {
				var err error
				folder, err = storage.UnmarshalFolder(val)
				return err
			})
			if err != nil {
				return err
			}
			if folder != nil {
				results = append(results, folder)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, c.backend.translateErr(err)
	}
	return results, nil
}

// Put inserts or replaces a folder by its ID.
func (c *folderCollection) Put(ctx context.Context, folder *core.Folder) error {
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFolderKey(folder.Id)

		old, err := readFolder(tx, key)
		if err != nil {
			return err
		}

		value := storage.MarshalFolder(folder)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Maintain the name index
		if old != nil && old.Name != folder.Name {
			if err := tx.Delete(makeFolderNameKey(old.Name, old.Id)); err != nil {
				return err
			}
		}
		if old == nil || old.Name != folder.Name {
			if err := tx.Set(makeFolderNameKey(folder.Name, folder.Id), storage.MarshalID(folder.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
	return c.backend.translateErr(err)
}

// Delete removes a folder by ID. Deleting a non-existent ID is not an error.
func (c *folderCollection) Delete(ctx context.Context, id core.ID) error {
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFolderKey(id)

		folder, err := readFolder(tx, key)
		if err != nil {
			return err
		}
		if folder == nil {
			return nil
		}

		if err := tx.Delete(makeFolderNameKey(folder.Name, folder.Id)); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	return c.backend.translateErr(err)
}

// readFolder reads a folder from the transaction.
// Returns nil, nil when the key is absent.
func readFolder(tx *badger.Txn, key []byte) (*core.Folder, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var folder *core.Folder
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		folder, unmarshalErr = storage.UnmarshalFolder(val)
		return unmarshalErr
	})
	return folder, err
}
