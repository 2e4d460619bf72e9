package badger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

const (
	// DefaultOpenTimeout bounds how long a backend open may take before the
	// backend is treated as unavailable. A database locked by another process
	// blocks inside badger.Open; a hung open must not freeze the caller.
	DefaultOpenTimeout = 5 * time.Second
)

// Backend wraps a BadgerDB instance and provides the transactional storage
// backend. It is the preferred backend: durable, transactional, with secondary
// indexes on project name, date and creation time.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.Backend = (*Backend)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path with the default
// open timeout. Creates the directory if it doesn't exist.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	return OpenBackendTimeout(filePath, inMemory, DefaultOpenTimeout)
}

// OpenBackendTimeout opens a BadgerDB database, bounding the open by timeout.
// A timed-out or failed open is reported as storage.ErrBackendUnavailable; it
// signals that the backend cannot be used, never that data was lost.
func OpenBackendTimeout(filePath string, inMemory bool, timeout time.Duration) (*Backend, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
				}
			} else {
				return nil, fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", storage.ErrBackendUnavailable, filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	type openResult struct {
		db  *badger.DB
		err error
	}
	resCh := make(chan openResult, 1)
	go func() {
		db, err := badger.Open(opts)
		resCh <- openResult{db: db, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resCh:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, res.err)
		}
		return &Backend{
			db:     res.db,
			logger: slog.Default(),
		}, nil
	case <-timer.C:
		// The open may still complete later; close it when it does so the
		// lock is not held by an abandoned handle.
		go func() {
			if res := <-resCh; res.db != nil {
				res.db.Close()
			}
		}()
		return nil, fmt.Errorf("%w: open timed out after %s", storage.ErrBackendUnavailable, timeout)
	}
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// Name identifies the backend in logs and error messages.
func (b *Backend) Name() string {
	return "badger"
}

// Projects returns the project collection.
func (b *Backend) Projects() storage.Collection[*core.Project] {
	return &projectCollection{backend: b}
}

// Folders returns the folder collection.
func (b *Backend) Folders() storage.Collection[*core.Folder] {
	return &folderCollection{backend: b}
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// translateErr maps badger-native errors onto the storage taxonomy.
// Reads handle badger.ErrKeyNotFound themselves; everything else that reaches
// here means the backend could not serve the operation.
func (b *Backend) translateErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrBackendUnavailable),
		errors.Is(err, storage.ErrStorageClosed),
		errors.Is(err, storage.ErrSerializationFailed):
		return err
	case errors.Is(err, badger.ErrDBClosed):
		return fmt.Errorf("%w: %w", storage.ErrStorageClosed, err)
	default:
		return fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}
}
