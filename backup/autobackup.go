package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bordonalmed/REVELA-sub000/storage"
	"github.com/bordonalmed/REVELA-sub000/storage/flatkv"
)

// Scheduler records auto-backup intent: a process-wide flag plus a
// last-backup timestamp. Both live in the flat backend only; they are tiny,
// frequently polled, and must be readable synchronously. The scheduler runs
// no timers — it records intent, and the export path (Codec.Export) refreshes
// the timestamp whenever the flag is set.
type Scheduler struct {
	flat   *flatkv.Store
	logger *slog.Logger
}

// NewScheduler creates a Scheduler backed by the flat store.
func NewScheduler(flat *flatkv.Store) *Scheduler {
	return &Scheduler{
		flat:   flat,
		logger: slog.Default(),
	}
}

// Enable sets the auto-backup flag and immediately runs one export as a
// checkpoint. The checkpoint's document is returned so the caller can write
// it out as the first backup file.
func (s *Scheduler) Enable(ctx context.Context, codec *Codec) (*BackupData, error) {
	if err := s.flat.Set(flatkv.AutoBackupKey, []byte("true")); err != nil {
		return nil, fmt.Errorf("enabling auto-backup: %w", err)
	}
	backup, err := codec.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("auto-backup checkpoint: %w", err)
	}
	return backup, nil
}

// Disable clears the auto-backup flag. The last-backup record is kept.
func (s *Scheduler) Disable() error {
	if err := s.flat.Delete(flatkv.AutoBackupKey); err != nil {
		return fmt.Errorf("disabling auto-backup: %w", err)
	}
	return nil
}

// IsEnabled reports whether auto-backup is on. Synchronous; an unreadable
// flag reads as disabled.
func (s *Scheduler) IsEnabled() bool {
	value, err := s.flat.Get(flatkv.AutoBackupKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read auto-backup flag", "err", err)
		}
		return false
	}
	return string(value) == "true"
}

// LastBackup returns the recorded time of the most recent backup.
// Synchronous; ok is false when no backup has been recorded.
func (s *Scheduler) LastBackup() (last time.Time, ok bool) {
	value, err := s.flat.Get(flatkv.LastBackupKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read last-backup record", "err", err)
		}
		return time.Time{}, false
	}
	last, parseErr := time.Parse(time.RFC3339Nano, string(value))
	if parseErr != nil {
		s.logger.Warn("corrupt last-backup record", "value", string(value), "err", parseErr)
		return time.Time{}, false
	}
	return last, true
}

// recordBackup stores the last-backup timestamp.
func (s *Scheduler) recordBackup(t time.Time) error {
	return s.flat.Set(flatkv.LastBackupKey, []byte(t.UTC().Format(time.RFC3339Nano)))
}
