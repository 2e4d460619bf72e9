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


package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bordonalmed/REVELA-sub000/core"
	"github.com/bordonalmed/REVELA-sub000/storage"
)

// fallback is the ordered two-backend strategy: writes try the primary and
// fall back to the secondary; reads union both. It is the single place the
// fallback policy lives; nothing outside this type decides which backend
// serves an operation.
type fallback[T any] struct {
	primary   storage.Collection[T]
	secondary storage.Collection[T]
	id        func(T) core.ID

	// sizeCeiling is the serialized-size ceiling applied before a fallback
	// write; 0 disables the check.
	sizeCeiling int

	logger *slog.Logger
	what   string // record kind for log lines, e.g. "project"
}

// put writes through the primary, falling back to the secondary on any
// primary failure. Fallback writes over the ceiling fail fast with
// ErrContentTooLarge rather than producing a confusing quota error from the
// backend.
func (f *fallback[T]) put(ctx context.Context, record T) error {
	primaryErr := f.primary.Put(ctx, record)
	if primaryErr == nil {
		return nil
	}
	f.logger.Warn("primary backend write failed, falling back",
		"kind", f.what, "id", f.id(record), "err", primaryErr)

	if f.sizeCeiling > 0 {
		size, err := serializedSize(record)
		if err != nil {
			return err
		}
		if size > f.sizeCeiling {
			return fmt.Errorf("%w: %s %d is %d bytes, ceiling is %d; reduce images",
				storage.ErrContentTooLarge, f.what, f.id(record), size, f.sizeCeiling)
		}
	}

	if err := f.secondary.Put(ctx, record); err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			return fmt.Errorf("insufficient storage, delete old projects or reduce images: %w", err)
		}
		return err
	}
	return nil
}

// getOne tries the primary first, then the secondary on a miss or an
// unavailable primary. ErrNotFound means absent from both.
func (f *fallback[T]) getOne(ctx context.Context, id core.ID) (T, error) {
	record, primaryErr := f.primary.Get(ctx, id)
	if primaryErr == nil {
		return record, nil
	}
	if !errors.Is(primaryErr, storage.ErrNotFound) {
		f.logger.Warn("primary backend read failed, falling back",
			"kind", f.what, "id", id, "err", primaryErr)
	}

	record, secondaryErr := f.secondary.Get(ctx, id)
	if secondaryErr == nil {
		return record, nil
	}
	if errors.Is(primaryErr, storage.ErrNotFound) && errors.Is(secondaryErr, storage.ErrNotFound) {
		var zero T
		return zero, fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	var zero T
	return zero, secondaryErr
}

// getAll reads both backends unconditionally and merges by id with first-seen
// wins, primary copies taking precedence. The secondary read happens whether
// or not the primary read succeeded: a record written under fallback must stay
// visible after the primary recovers. The primary read is abandoned when ctx
// expires so a hung backend cannot freeze the caller.
func (f *fallback[T]) getAll(ctx context.Context) ([]T, error) {
	type readResult struct {
		records []T
		err     error
	}
	primaryCh := make(chan readResult, 1)
	go func() {
		records, err := f.primary.GetAll(ctx)
		primaryCh <- readResult{records: records, err: err}
	}()

	var primaryRecords []T
	var primaryErr error
	select {
	case res := <-primaryCh:
		primaryRecords, primaryErr = res.records, res.err
	case <-ctx.Done():
		primaryErr = fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, ctx.Err())
	}
	if primaryErr != nil {
		f.logger.Warn("primary backend enumeration failed, merging secondary only",
			"kind", f.what, "err", primaryErr)
	}

	secondaryRecords, secondaryErr := f.secondary.GetAll(ctx)
	if secondaryErr != nil {
		f.logger.Warn("secondary backend enumeration failed",
			"kind", f.what, "err", secondaryErr)
	}

	if primaryErr != nil && secondaryErr != nil {
		return nil, fmt.Errorf("both backends failed: %w", errors.Join(primaryErr, secondaryErr))
	}

	seen := make(map[core.ID]bool, len(primaryRecords))
	merged := make([]T, 0, len(primaryRecords)+len(secondaryRecords))
	for _, record := range primaryRecords {
		if !seen[f.id(record)] {
			seen[f.id(record)] = true
			merged = append(merged, record)
		}
	}
	for _, record := range secondaryRecords {
		if !seen[f.id(record)] {
			seen[f.id(record)] = true
			merged = append(merged, record)
		}
	}
	return merged, nil
}

// delete removes the record from both backends regardless of which one holds
// it, so it cannot reappear on a later merge. Idempotent; fails only when
// neither backend could perform the delete.
func (f *fallback[T]) delete(ctx context.Context, id core.ID) error {
	primaryErr := f.primary.Delete(ctx, id)
	secondaryErr := f.secondary.Delete(ctx, id)

	if primaryErr != nil && secondaryErr != nil {
		return fmt.Errorf("both backends failed: %w", errors.Join(primaryErr, secondaryErr))
	}
	if primaryErr != nil {
		f.logger.Warn("primary backend delete failed", "kind", f.what, "id", id, "err", primaryErr)
	}
	if secondaryErr != nil {
		f.logger.Warn("secondary backend delete failed", "kind", f.what, "id", id, "err", secondaryErr)
	}
	return nil
}

// serializedSize measures a record the way the fallback backend would store
// it.
func serializedSize[T any](record T) (int, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return len(data), nil
}
