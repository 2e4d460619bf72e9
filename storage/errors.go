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


package storage

import "errors"

// Semantic error taxonomy shared by both backends and the facade. Backend
// adapters translate their native failures into these; nothing backend-specific
// crosses the facade boundary.
var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrBackendUnavailable indicates a backend could not be opened or
	// reached (unsupported, blocked, timed out). It signals "unavailable",
	// never "data lost".
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrQuotaExceeded indicates a write was rejected because the backend's
	// storage ceiling was reached.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrContentTooLarge indicates a single record exceeds the fallback
	// backend's safety ceiling before any write was attempted.
	ErrContentTooLarge = errors.New("content too large")

	// ErrInvalidFormat indicates a document failed shape validation.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
