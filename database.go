// Copyright 2026 Bordonal Medical
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package revela is the on-device persistence and backup engine for
// before/after photo sets. It keeps project and folder records across two
// heterogeneous local backends — a transactional BadgerDB store and a flat
// quota-limited key-value store — transparently failing over between them,
// merging reads from both, and producing/consuming self-contained backup
// documents.
package revela

import (
	"log/slog"
	"path/filepath"

	"github.com/bordonalmed/REVELA-sub000/backup"
	"github.com/bordonalmed/REVELA-sub000/intake"
	"github.com/bordonalmed/REVELA-sub000/storage/badger"
	"github.com/bordonalmed/REVELA-sub000/storage/flatkv"
	"github.com/bordonalmed/REVELA-sub000/store"
)

// Database bundles the two backends behind the persistence facade and wires
// the backup codec and auto-backup scheduler on top.
type Database struct {
	primary   *badger.Backend
	secondary *flatkv.Store
	store     *store.Store
	codec     *backup.Codec
	scheduler *backup.Scheduler
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory     bool
	flatQuota    int64
	storeOptions []store.Option
}

// WithInMemory opens the primary backend in memory and is intended for tests.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithFlatQuota overrides the flat backend's total-size quota in bytes.
func WithFlatQuota(quota int64) DatabaseOption {
	return func(o *databaseOptions) {
		o.flatQuota = quota
	}
}

// WithStoreOptions passes options through to the persistence facade.
func WithStoreOptions(opts ...store.Option) DatabaseOption {
	return func(o *databaseOptions) {
		o.storeOptions = append(o.storeOptions, opts...)
	}
}

// NewDatabase opens both backends under dir and assembles the facade.
// The primary backend lives in dir/badger, the flat fallback in dir/flat.
//
// An unavailable primary backend is not fatal here: the facade handles a
// failing primary per-operation. An unavailable flat backend is fatal because
// it is the last line of fallback.
func NewDatabase(dir string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	logger := slog.Default()

	var flatOpts []flatkv.Option
	if options.flatQuota > 0 {
		flatOpts = append(flatOpts, flatkv.WithQuota(options.flatQuota))
	}
	secondary, err := flatkv.Open(filepath.Join(dir, "flat"), flatOpts...)
	if err != nil {
		return nil, err
	}

	primary, err := badger.OpenBackend(filepath.Join(dir, "badger"), options.inMemory)
	if err != nil {
		// Degraded mode: every operation will fall back to the flat store.
		logger.Warn("primary backend unavailable, running on fallback only", "err", err)
		primary = nil
	}

	var st *store.Store
	if primary != nil {
		st = store.New(primary, secondary, options.storeOptions...)
	} else {
		st = store.New(unavailableBackend{}, secondary, options.storeOptions...)
	}

	scheduler := backup.NewScheduler(secondary)
	codec := backup.NewCodec(st, backup.WithScheduler(scheduler))

	return &Database{
		primary:   primary,
		secondary: secondary,
		store:     st,
		codec:     codec,
		scheduler: scheduler,
		logger:    logger,
	}, nil
}

// Close closes both backends.
func (db *Database) Close() error {
	if err := db.secondary.Close(); err != nil {
		db.logger.Error("error closing flat backend", "err", err)
		return err
	}
	if db.primary != nil {
		if err := db.primary.Close(); err != nil {
			db.logger.Error("error closing primary backend", "err", err)
			return err
		}
	}
	return nil
}

// Store returns the persistence facade.
func (db *Database) Store() *store.Store {
	return db.store
}

// Codec returns the backup codec.
func (db *Database) Codec() *backup.Codec {
	return db.codec
}

// Scheduler returns the auto-backup scheduler.
func (db *Database) Scheduler() *backup.Scheduler {
	return db.scheduler
}

// NewIntakePipeline builds the project intake pipeline over this database.
func (db *Database) NewIntakePipeline(compressor intake.Compressor, opts ...intake.Option) (*intake.Pipeline, error) {
	return intake.NewPipeline(db.store, compressor, opts...)
}
