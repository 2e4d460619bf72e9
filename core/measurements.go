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

// Measurements are scoped by (ImageKind, ImageIndex). Any structural mutation
// of an image sequence must go through the functions in this file so that
// measurement targets stay attached to the correct image. Call sites must not
// splice image slices directly.

// RemoveImage removes the image at index from the sequence addressed by kind.
// Measurements targeting the removed image are dropped; measurements targeting
// later images are shifted down by one.
func RemoveImage(project *Project, kind ImageKind, index int) error {
	if err := ValidateImageKind(kind); err != nil {
		return err
	}

	images := project.Images(kind)
	if index < 0 || index >= len(images) {
		return fmt.Errorf("%w: index %d of %d", ErrImageIndexOutOfRange, index, len(images))
	}

	project.setImages(kind, append(images[:index:index], images[index+1:]...))

	kept := project.Measurements[:0]
	for _, m := range project.Measurements {
		if m.Kind == kind {
			if m.ImageIndex == index {
				continue
			}
			if m.ImageIndex > index {
				m.ImageIndex--
			}
		}
		kept = append(kept, m)
	}
	project.Measurements = kept

	return nil
}

// MoveImage moves the image at index from to index to within the sequence
// addressed by kind, remapping measurement targets accordingly.
func MoveImage(project *Project, kind ImageKind, from, to int) error {
	if err := ValidateImageKind(kind); err != nil {
		return err
	}

	images := project.Images(kind)
	if from < 0 || from >= len(images) {
		return fmt.Errorf("%w: from %d of %d", ErrImageIndexOutOfRange, from, len(images))
	}
	if to < 0 || to >= len(images) {
		return fmt.Errorf("%w: to %d of %d", ErrImageIndexOutOfRange, to, len(images))
	}
	if from == to {
		return nil
	}

	moved := images[from]
	reordered := append(images[:from:from], images[from+1:]...)
	reordered = append(reordered[:to], append([]string{moved}, reordered[to:]...)...)
	project.setImages(kind, reordered)

	for i := range project.Measurements {
		m := &project.Measurements[i]
		if m.Kind != kind {
			continue
		}
		switch {
		case m.ImageIndex == from:
			m.ImageIndex = to
		case from < to && m.ImageIndex > from && m.ImageIndex <= to:
			m.ImageIndex--
		case from > to && m.ImageIndex >= to && m.ImageIndex < from:
			m.ImageIndex++
		}
	}

	return nil
}

// DropDanglingMeasurements removes measurements whose targets no longer exist.
// It is a repair step for records that arrive from outside (e.g. imported
// backups produced by older versions); mutations through RemoveImage and
// MoveImage never create dangling targets.
func DropDanglingMeasurements(project *Project) int {
	kept := project.Measurements[:0]
	dropped := 0
	for _, m := range project.Measurements {
		if ValidateImageKind(m.Kind) != nil || m.ImageIndex < 0 || m.ImageIndex >= len(project.Images(m.Kind)) {
			dropped++
			continue
		}
		kept = append(kept, m)
	}
	project.Measurements = kept
	return dropped
}
