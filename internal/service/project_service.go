package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
)

// ProjectService exposes the project collection to the presentation
// layer: sorted listings, point lookup and bulk edits of the
// locally-owned fields.
type ProjectService struct {
	projects ProjectStore
	logger   *zap.Logger
}

func NewProjectService(projects ProjectStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		logger:   logger,
	}
}

// GetAllProjectsSorted returns every project ordered by status
// priority (active first, done last), then deadline ascending.
func (s *ProjectService) GetAllProjectsSorted(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		pi, pj := model.StatusPriority(projects[i].Status), model.StatusPriority(projects[j].Status)
		if pi != pj {
			return pi < pj
		}
		return projects[i].EndDate.Before(projects[j].EndDate)
	})

	return projects, nil
}

// GetActiveProjects returns projects whose status is active, deadline
// ascending.
func (s *ProjectService) GetActiveProjects(ctx context.Context) ([]model.Project, error) {
	return s.filterByStatus(ctx, model.StatusActive)
}

// GetArchivedProjects returns finished and abandoned projects.
func (s *ProjectService) GetArchivedProjects(ctx context.Context) ([]model.Project, error) {
	return s.filterByStatus(ctx, model.StatusDone, model.StatusStopped)
}

func (s *ProjectService) filterByStatus(ctx context.Context, statuses ...string) ([]model.Project, error) {
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	wanted := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}

	var filtered []model.Project
	for _, p := range projects {
		if wanted[p.Status] {
			filtered = append(filtered, p)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].EndDate.Before(filtered[j].EndDate)
	})

	return filtered, nil
}

// GetProjectByID returns the project or nil when it does not exist.
func (s *ProjectService) GetProjectByID(ctx context.Context, id int) (*model.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find project %d: %w", id, err)
	}
	return p, nil
}

// BulkUpdateProjects applies user edits of target_value and
// initial_progress. The batch is validated up front: any invalid
// record rejects the whole batch before the store is touched.
func (s *ProjectService) BulkUpdateProjects(ctx context.Context, changes []model.ProjectLocalUpdate) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	invalid := 0
	for _, c := range changes {
		if !validLocalUpdate(c) {
			s.logger.Warn("Invalid project update",
				zap.Int("project_id", c.ID),
				zap.Int("target_value", c.TargetValue),
				zap.Int("initial_progress", c.InitialProgress),
			)
			invalid++
		}
	}
	if invalid > 0 {
		return 0, &ValidationError{Invalid: invalid}
	}

	updated, err := s.projects.BulkUpdateLocal(ctx, changes)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update projects: %w", err)
	}

	s.logger.Info("Project progress updated", zap.Int("count", updated))
	return updated, nil
}

func validLocalUpdate(c model.ProjectLocalUpdate) bool {
	return c.ID > 0 && c.TargetValue > 0 && c.InitialProgress >= 0
}
