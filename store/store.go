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


// Package store provides the persistence facade: one API over the two
// heterogeneous backends, implementing the write-fallback and read-merge
// policies. Callers never talk to a backend directly.
package store

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

const (
	// DefaultSizeCeiling is the safety margin under the ~5MB flat-store
	// quota. A single project over this never reaches the fallback backend.
	DefaultSizeCeiling = 4 * 1024 * 1024

	// DefaultLoadTimeout bounds a whole-collection load. On expiry the
	// primary read is abandoned and the merge proceeds with the fallback.
	DefaultLoadTimeout = 10 * time.Second
)

// Store is the persistence facade. Writes target the primary backend first
// and mirror to the fallback only when the primary fails; reads union both
// backends, deduplicating by identity with primary precedence.
//
// Both backends apply last-write-wins with no version vector, so callers must
// serialize writes to the same id.
type Store struct {
	projects fallback[*core.Project]
	folders  fallback[*core.Folder]

	loadTimeout time.Duration
	loads       loadGroup[*core.Project]
	folderLoads loadGroup[*core.Folder]
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSizeCeiling overrides the per-project fallback size ceiling in bytes.
func WithSizeCeiling(ceiling int) Option {
	return func(s *Store) {
		if ceiling > 0 {
			s.projects.sizeCeiling = ceiling
		}
	}
}

// WithLoadTimeout overrides the whole-collection load timeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// New creates a Store over a primary and a fallback backend.
func New(primary, secondary storage.Backend, opts ...Option) *Store {
	s := &Store{
		loadTimeout: DefaultLoadTimeout,
		logger:      slog.Default(),
	}
	s.projects = fallback[*core.Project]{
		primary:     primary.Projects(),
		secondary:   secondary.Projects(),
		id:          func(p *core.Project) core.ID { return p.Id },
		sizeCeiling: DefaultSizeCeiling,
		what:        "project",
	}
	s.folders = fallback[*core.Folder]{
		primary:   primary.Folders(),
		secondary: secondary.Folders(),
		id:        func(f *core.Folder) core.ID { return f.Id },
		what:      "folder",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.projects.logger = s.logger
	s.folders.logger = s.logger
	return s
}

// SaveProject persists a new project. Storage-layer writes are always
// whole-object; there are no partial-field patches.
func (s *Store) SaveProject(ctx context.Context, project *core.Project) error {
	return s.putProject(ctx, project)
}

// UpdateProject persists a modified project. Upsert semantics: an id missing
// from a backend is inserted, which self-heals partially-migrated state.
func (s *Store) UpdateProject(ctx context.Context, project *core.Project) error {
	return s.putProject(ctx, project)
}

func (s *Store) putProject(ctx context.Context, project *core.Project) error {
	if err := core.ValidateProject(project); err != nil {
		return err
	}
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	return s.projects.put(ctx, project)
}

// GetProject retrieves one project, trying the primary backend first.
// Returns storage.ErrNotFound only when the id is absent from both backends.
func (s *Store) GetProject(ctx context.Context, id core.ID) (*core.Project, error) {
	return s.projects.getOne(ctx, id)
}

// GetAllProjects returns the union of both backends, deduplicated by id and
// sorted by creation time descending (most recent first). A concurrent call
// while a load is already in flight joins that load instead of starting a
// second one.
func (s *Store) GetAllProjects(ctx context.Context) ([]*core.Project, error) {
	return s.loads.do("projects", func() ([]*core.Project, error) {
		ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()

		projects, err := s.projects.getAll(ctx)
		if err != nil {
			return nil, err
		}
		slices.SortFunc(projects, func(a, b *core.Project) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		return projects, nil
	})
}

// DeleteProject removes a project from both backends so it cannot reappear on
// a later read merge. Idempotent.
func (s *Store) DeleteProject(ctx context.Context, id core.ID) error {
	return s.projects.delete(ctx, id)
}

// SaveFolder persists a new folder.
func (s *Store) SaveFolder(ctx context.Context, folder *core.Folder) error {
	return s.putFolder(ctx, folder)
}

// UpdateFolder persists a modified folder (e.g. a rename).
func (s *Store) UpdateFolder(ctx context.Context, folder *core.Folder) error {
	return s.putFolder(ctx, folder)
}

func (s *Store) putFolder(ctx context.Context, folder *core.Folder) error {
	if err := core.ValidateFolder(folder); err != nil {
		return err
	}
	now := time.Now().UTC()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	folder.UpdatedAt = now
	return s.folders.put(ctx, folder)
}

// GetFolder retrieves one folder, trying the primary backend first.
func (s *Store) GetFolder(ctx context.Context, id core.ID) (*core.Folder, error) {
	return s.folders.getOne(ctx, id)
}

// GetAllFolders returns the union of both backends, deduplicated by id and
// sorted by name.
func (s *Store) GetAllFolders(ctx context.Context) ([]*core.Folder, error) {
	return s.folderLoads.do("folders", func() ([]*core.Folder, error) {
		ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()

		folders, err := s.folders.getAll(ctx)
		if err != nil {
			return nil, err
		}
		slices.SortFunc(folders, func(a, b *core.Folder) int {
			return strings.Compare(a.Name, b.Name)
		})
		return folders, nil
	})
}
