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

import "fmt"

// ValidateProject validates a Project according to domain rules.
//
// Validation rules:
//   - Id must be non-zero
//   - Name must not be empty
//   - Every measurement must pass ValidateMeasurement and target an image
//     index that exists in the sequence it is scoped to
//
// NOT validated:
//   - Image contents (opaque encoded strings; empty sequences are legal)
//   - FolderId (0 means unfiled; dangling references are repaired by folder
//     deletion, not rejected here)
func ValidateProject(project *Project) error {
	if project == nil {
		return fmt.Errorf("%w: project is nil", ErrInvalidProject)
	}

	if project.Id == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProject, ErrMissingID)
	}

	if project.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProject, ErrEmptyName)
	}

	for i := range project.Measurements {
		m := &project.Measurements[i]
		if err := ValidateMeasurement(m); err != nil {
			return fmt.Errorf("%w: measurement %d: %w", ErrInvalidProject, i, err)
		}
		if m.ImageIndex >= len(project.Images(m.Kind)) {
			return fmt.Errorf("%w: measurement %d: %w", ErrInvalidProject, i, ErrImageIndexOutOfRange)
		}
	}

	return nil
}

// ValidateFolder validates a Folder according to domain rules.
//
// Validation rules:
//   - Id must be non-zero
//   - Name must not be empty
func ValidateFolder(folder *Folder) error {
	if folder == nil {
		return fmt.Errorf("%w: folder is nil", ErrInvalidFolder)
	}

	if folder.Id == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFolder, ErrMissingID)
	}

	if folder.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFolder, ErrEmptyName)
	}

	return nil
}

// ValidateMeasurement validates a Measurement in isolation. Whether its
// ImageIndex exists in the owning project is checked by ValidateProject.
func ValidateMeasurement(m *Measurement) error {
	if m == nil {
		return fmt.Errorf("%w: measurement is nil", ErrInvalidMeasurement)
	}

	if err := ValidateImageKind(m.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMeasurement, err)
	}

	if m.ImageIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMeasurement, ErrImageIndexOutOfRange)
	}

	return nil
}

// ValidateImageKind validates that an ImageKind has a valid value.
func ValidateImageKind(kind ImageKind) error {
	if kind != ImageBefore && kind != ImageAfter {
		return fmt.Errorf("%w: value %d", ErrInvalidImageKind, kind)
	}
	return nil
}
