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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidProject indicates a Project failed validation.
	ErrInvalidProject = errors.New("invalid project")

	// ErrInvalidFolder indicates a Folder failed validation.
	ErrInvalidFolder = errors.New("invalid folder")

	// ErrInvalidMeasurement indicates a Measurement failed validation.
	ErrInvalidMeasurement = errors.New("invalid measurement")

	// ErrMissingID indicates the Id field is zero.
	ErrMissingID = errors.New("id must be set")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidImageKind indicates an invalid ImageKind value.
	ErrInvalidImageKind = errors.New("invalid image kind")

	// ErrImageIndexOutOfRange indicates a measurement targets an image index
	// that does not exist in the sequence it is scoped to.
	ErrImageIndexOutOfRange = errors.New("image index out of range")
)
