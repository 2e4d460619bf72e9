package flatkv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), opts...)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return store
}

func TestRawGetSetDelete(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.Set(AutoBackupKey, []byte("true")); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	value, err := store.Get(AutoBackupKey)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if string(value) != "true" {
		t.Fatalf("Expected 'true', got %q", value)
	}

	if err := store.Delete(AutoBackupKey); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := store.Get(AutoBackupKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent key is not an error
	if err := store.Delete(AutoBackupKey); err != nil {
		t.Fatalf("Second delete should be a no-op, got %v", err)
	}
}

func TestQuotaEnforced(t *testing.T) {
	store := newTestStore(t, WithQuota(100))

	if err := store.Set("a", make([]byte, 60)); err != nil {
		t.Fatalf("First write within quota failed: %v", err)
	}
	if err := store.Set("b", make([]byte, 60)); !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("Expected ErrQuotaExceeded, got %v", err)
	}

	// Replacing an existing value counts the replacement, not the sum of both
	if err := store.Set("a", make([]byte, 90)); err != nil {
		t.Fatalf("Replacement within quota failed: %v", err)
	}
}

func TestQuotaFailureKeepsOldValue(t *testing.T) {
	store := newTestStore(t, WithQuota(100))

	if err := store.Set("a", []byte("old")); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	if err := store.Set("b", make([]byte, 200)); !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("Expected ErrQuotaExceeded, got %v", err)
	}

	value, err := store.Get("a")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if string(value) != "old" {
		t.Fatalf("Existing value damaged by rejected write: %q", value)
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("a", []byte("value")); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	entries, err := os.ReadDir(store.root)
	if err != nil {
		t.Fatalf("Failed to read store directory: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tmp-") {
			t.Fatalf("Temp file left behind: %s", entry.Name())
		}
	}
}

func TestOpenRejectsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := Open(path); !errors.Is(err, storage.ErrBackendUnavailable) {
		t.Fatalf("Expected ErrBackendUnavailable, got %v", err)
	}
}

func TestProjectCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	projects := store.Projects()

	// Absent key reads as an empty collection
	all, err := projects.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll on empty store failed: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("Expected empty collection, got %d", len(all))
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	p1 := &core.Project{Id: 1, Name: "First", CreatedAt: now, UpdatedAt: now}
	p2 := &core.Project{Id: 2, Name: "Second", CreatedAt: now, UpdatedAt: now}

	if err := projects.Put(ctx, p1); err != nil {
		t.Fatalf("Failed to put p1: %v", err)
	}
	if err := projects.Put(ctx, p2); err != nil {
		t.Fatalf("Failed to put p2: %v", err)
	}

	got, err := projects.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to get p2: %v", err)
	}
	if got.Name != "Second" {
		t.Fatalf("Expected 'Second', got %q", got.Name)
	}

	// Put with an existing id replaces, never duplicates
	p2.Name = "Second updated"
	if err := projects.Put(ctx, p2); err != nil {
		t.Fatalf("Failed to update p2: %v", err)
	}
	all, err = projects.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 projects after update, got %d", len(all))
	}

	if err := projects.Delete(ctx, 1); err != nil {
		t.Fatalf("Failed to delete p1: %v", err)
	}
	if _, err := projects.Get(ctx, 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := projects.Delete(ctx, 1); err != nil {
		t.Fatalf("Second delete should be a no-op, got %v", err)
	}
}

func TestCollectionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &core.Project{Id: 7, Name: "Durable", CreatedAt: now, UpdatedAt: now}
	if err := store.Projects().Put(ctx, p); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	store.Close()

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	got, err := reopened.Projects().Get(ctx, 7)
	if err != nil {
		t.Fatalf("Failed to get after reopen: %v", err)
	}
	if got.Name != "Durable" {
		t.Fatalf("Expected 'Durable', got %q", got.Name)
	}
}

func TestCorruptCollectionValue(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set(ProjectsKey, []byte("not json")); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	_, err := store.Projects().GetAll(context.Background())
	if !errors.Is(err, storage.ErrSerializationFailed) {
		t.Fatalf("Expected ErrSerializationFailed, got %v", err)
	}
}

func TestFolderCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	folders := store.Folders()

	now := time.Now().UTC().Truncate(time.Microsecond)
	f := &core.Folder{Id: 3, Name: "Post-op", CreatedAt: now, UpdatedAt: now}
	if err := folders.Put(ctx, f); err != nil {
		t.Fatalf("Failed to put folder: %v", err)
	}

	got, err := folders.Get(ctx, 3)
	if err != nil {
		t.Fatalf("Failed to get folder: %v", err)
	}
	if got.Name != "Post-op" {
		t.Fatalf("Expected 'Post-op', got %q", got.Name)
	}
}
