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


// Package flatkv implements the flat key-value fallback backend: a
// size-limited store holding one serialized value per key, one file per key in
// a single directory. Operations are synchronous; there is no transaction
// scope beyond the atomicity of a single key write.
package flatkv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

const (
	// DefaultQuota mirrors the ~5MB ceiling typical of flat browser storage.
	// Writes that would push the total size of all values past the quota are
	// rejected with storage.ErrQuotaExceeded.
	DefaultQuota = 5 * 1024 * 1024
)

// Well-known keys.
const (
	ProjectsKey   = "revela_projects"
	FoldersKey    = "revela_folders"
	AutoBackupKey = "revela_autobackup"
	LastBackupKey = "revela_last_backup"
)

// Store is the flat key-value backend. One file per key under root; every
// value write is atomic (temp file + rename). A single mutex serializes
// writers so read-modify-write sequences on whole-collection values cannot
// interleave.
type Store struct {
	root  string
	quota int64
	mu    sync.Mutex
}

var _ storage.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithQuota overrides the total-size quota in bytes.
func WithQuota(quota int64) Option {
	return func(s *Store) {
		if quota > 0 {
			s.quota = quota
		}
	}
}

// Open opens (creating if necessary) a flat store rooted at the given
// directory. An unreadable or uncreatable root is reported as
// storage.ErrBackendUnavailable.
func Open(root string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", storage.ErrBackendUnavailable, root)
	}

	s := &Store{
		root:  root,
		quota: DefaultQuota,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name identifies the backend in logs and error messages.
func (s *Store) Name() string {
	return "flatkv"
}

// Close releases the store. The store holds no open handles between
// operations, so this is a no-op kept for the storage.Backend contract.
func (s *Store) Close() error {
	return nil
}

// Projects returns the project collection, stored as one JSON array under
// ProjectsKey.
func (s *Store) Projects() storage.Collection[*core.Project] {
	return &collection[*core.Project]{
		store: s,
		key:   ProjectsKey,
		id:    func(p *core.Project) core.ID { return p.Id },
	}
}

// Folders returns the folder collection, stored as one JSON array under
// FoldersKey.
func (s *Store) Folders() storage.Collection[*core.Folder] {
	return &collection[*core.Folder]{
		store: s,
		key:   FoldersKey,
		id:    func(f *core.Folder) core.ID { return f.Id },
	}
}

// Get returns the raw value stored under key.
// Returns storage.ErrNotFound when the key is absent.
func (s *Store) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: key %q", storage.ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}
	return data, nil
}

// Set stores value under key, enforcing the quota across the sum of all
// values. The write is atomic: a failed write leaves the previous value
// intact.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(key, value)
}

func (s *Store) setLocked(key string, value []byte) error {
	used, err := s.usedBytesExcept(key)
	if err != nil {
		return err
	}
	if used+int64(len(value)) > s.quota {
		return fmt.Errorf("%w: %d bytes used, %d requested, quota %d",
			storage.ErrQuotaExceeded, used, len(value), s.quota)
	}

	destPath := s.keyPath(key)
	tmpFile, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(value); err != nil {
		tmpFile.Close()
		return fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}

	success = true
	return nil
}

// Delete removes the value stored under key.
// Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}
	return nil
}

// keyPath maps a key to its file. Keys are restricted to the fixed well-known
// set, all of which are safe file names; escaping is limited to stripping
// separators defensively.
func (s *Store) keyPath(key string) string {
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)
	return filepath.Join(s.root, safe)
}

// usedBytesExcept sums the sizes of all stored values, excluding the one
// about to be replaced.
func (s *Store) usedBytesExcept(key string) (int64, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err)
	}

	var used int64
	skip := filepath.Base(s.keyPath(key))
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == skip || strings.HasPrefix(entry.Name(), ".tmp-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		used += info.Size()
	}
	return used, nil
}
