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


// Package storage provides the storage abstraction layer for revela.
//
// This package defines the backend contract that decouples storage
// implementations from the persistence facade. Two heterogeneous backends
// implement it: a transactional BadgerDB store (storage/badger) and a flat
// quota-limited key-value store (storage/flatkv). The facade (package store)
// layers fallback and merge policy on top; the backends themselves stay policy
// free.
//
// # Contract
//
// Every backend exposes the same capability set per collection:
//
//	Get(ctx, id)    -> record | ErrNotFound
//	GetAll(ctx)     -> records, order unspecified
//	Put(ctx, rec)   -> upsert (insert-or-replace)
//	Delete(ctx, id) -> idempotent
//
// The interface is context-based for both backends, even though flatkv
// operations never block, so the facade has one control-flow style.
//
// # Error Taxonomy
//
// Backends translate native failures into the sentinel errors in errors.go
// (ErrNotFound, ErrBackendUnavailable, ErrQuotaExceeded, ...), wrapping with
// fmt.Errorf("%w: ...") to preserve detail. No badger or I/O error type
// escapes a backend.
//
// # Thread Safety
//
// All backend implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
