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


// Package backup implements the portable backup document: export of the full
// merged dataset to one self-contained JSON file, import with per-record
// failure isolation, and the auto-backup flag/timestamp records.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
	"github.com/bordonalmed/REVELA-sub000/store"
)

// BackupData is the portable snapshot. Every image stays inline, so a backup
// file is a complete restorable copy with no external dependency.
type BackupData struct {
	Projects   []*core.Project `json:"projects"`
	Folders    []*core.Folder  `json:"folders"`
	ExportDate time.Time       `json:"exportDate"`
	Metadata   Metadata        `json:"metadata"`
}

// Metadata carries computed counts for quick inspection of a backup file.
type Metadata struct {
	TotalProjects int `json:"totalProjects"`
	TotalFolders  int `json:"totalFolders"`
	TotalImages   int `json:"totalImages"`
}

// ImportResult summarizes a batch import. A mixed result is reported, never
// thrown away: one corrupt record must not hide what happened to the rest.
type ImportResult struct {
	Succeeded int      `json:"success"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Codec produces and consumes backup documents through the persistence
// facade's read/write primitives.
type Codec struct {
	store     *store.Store
	scheduler *Scheduler
	logger    *slog.Logger
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithScheduler attaches the auto-backup scheduler: every export then also
// refreshes the last-backup record while auto-backup is enabled.
func WithScheduler(scheduler *Scheduler) CodecOption {
	return func(c *Codec) {
		c.scheduler = scheduler
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) CodecOption {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCodec creates a Codec over the persistence facade.
func NewCodec(st *store.Store, opts ...CodecOption) *Codec {
	c := &Codec{
		store:  st,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export reads the full merged dataset and shapes it into a backup document.
// It never mutates project or folder storage. While auto-backup is enabled
// the export doubles as a checkpoint: the last-backup record is refreshed.
func (c *Codec) Export(ctx context.Context) (*BackupData, error) {
	projects, err := c.store.GetAllProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting projects: %w", err)
	}
	folders, err := c.store.GetAllFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting folders: %w", err)
	}

	// An empty dataset still exports as arrays, so the document always has
	// the shape importers validate against.
	if projects == nil {
		projects = []*core.Project{}
	}
	if folders == nil {
		folders = []*core.Folder{}
	}

	totalImages := 0
	for _, project := range projects {
		totalImages += len(project.BeforeImages) + len(project.AfterImages)
	}

	backup := &BackupData{
		Projects:   projects,
		Folders:    folders,
		ExportDate: time.Now().UTC(),
		Metadata: Metadata{
			TotalProjects: len(projects),
			TotalFolders:  len(folders),
			TotalImages:   totalImages,
		},
	}

	if c.scheduler != nil && c.scheduler.IsEnabled() {
		if err := c.scheduler.recordBackup(backup.ExportDate); err != nil {
			c.logger.Warn("failed to refresh last-backup record", "err", err)
		}
	}

	return backup, nil
}

// Import restores a backup document record by record. Each project is
// processed independently: a record that fails validation or persistence is
// tallied and reported, and the batch continues. The batch is not
// transactional across records; a partial-success state is possible and is
// reported as such.
func (c *Codec) Import(ctx context.Context, backup *BackupData) (*ImportResult, error) {
	if backup == nil || backup.Projects == nil {
		return nil, fmt.Errorf("%w: invalid backup format: missing projects array", storage.ErrInvalidFormat)
	}

	result := &ImportResult{}

	// Folders first so imported projects land in existing folders. Folder
	// failures do not block project records.
	for _, folder := range backup.Folders {
		if err := core.ValidateFolder(folder); err != nil {
			c.logger.Warn("skipping invalid folder in backup", "err", err)
			result.Errors = append(result.Errors, fmt.Sprintf("folder: %v", err))
			continue
		}
		if err := c.store.UpdateFolder(ctx, folder); err != nil {
			c.logger.Warn("failed to import folder", "id", folder.Id, "err", err)
			result.Errors = append(result.Errors, fmt.Sprintf("folder %q: %v", folder.Name, err))
		}
	}

	for i, project := range backup.Projects {
		if err := c.importProject(ctx, project); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("project %d: %v", i, err))
			continue
		}
		result.Succeeded++
	}

	return result, nil
}

func (c *Codec) importProject(ctx context.Context, project *core.Project) error {
	if project == nil {
		return fmt.Errorf("%w: project is nil", core.ErrInvalidProject)
	}

	// Backups from older versions may carry measurements whose images are
	// gone; drop them instead of rejecting the record.
	if dropped := core.DropDanglingMeasurements(project); dropped > 0 {
		c.logger.Warn("dropped dangling measurements on import",
			"project", project.Id, "dropped", dropped)
	}

	// Upsert: the same id overwrites.
	return c.store.UpdateProject(ctx, project)
}

// EncodeBackup serializes a backup document for download.
func EncodeBackup(backup *BackupData) ([]byte, error) {
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return data, nil
}

// DecodeBackup parses a backup document, validating the top-level shape
// before anything touches storage: `projects` must be present and must be a
// JSON array. All other fields are best-effort.
func DecodeBackup(data []byte) (*BackupData, error) {
	var probe struct {
		Projects json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: invalid backup format: %w", storage.ErrInvalidFormat, err)
	}
	trimmed := bytes.TrimSpace(probe.Projects)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: invalid backup format: missing projects array", storage.ErrInvalidFormat)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("%w: invalid backup format: %w", storage.ErrInvalidFormat, err)
	}
	return &backup, nil
}
