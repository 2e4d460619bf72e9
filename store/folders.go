package store

import (
	"context"
	"fmt"

	"github.com/bordonalmed/REVELA-sub000/core"
)

// MoveProjectToFolder files a project under folderID, or unfiles it when
// folderID is zero. It is a read-modify-write of the whole project through
// UpdateProject.
func (s *Store) MoveProjectToFolder(ctx context.Context, projectID, folderID core.ID) error {
	if folderID != 0 {
		if _, err := s.GetFolder(ctx, folderID); err != nil {
			return fmt.Errorf("target folder %d: %w", folderID, err)
		}
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.FolderId == folderID {
		return nil
	}

	project.FolderId = folderID
	return s.UpdateProject(ctx, project)
}

// DeleteFolder removes a folder. Projects referencing it are demoted to
// unfiled, never deleted. Demotion happens before the folder record is
// removed: a partial failure may leave the folder in place with some projects
// already unfiled, but never a project pointing at a deleted folder.
func (s *Store) DeleteFolder(ctx context.Context, folderID core.ID) error {
	projects, err := s.GetAllProjects(ctx)
	if err != nil {
		return fmt.Errorf("enumerating projects for folder delete: %w", err)
	}

	for _, project := range projects {
		if project.FolderId != folderID {
			continue
		}
		project.FolderId = 0
		if err := s.UpdateProject(ctx, project); err != nil {
			return fmt.Errorf("demoting project %d: %w", project.Id, err)
		}
	}

	return s.folders.delete(ctx, folderID)
}
