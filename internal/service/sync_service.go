package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/internal/mq"
	"github.com/zoklk/ProjectTracker/pkg/metrics"
)

// SyncService reconciles the local project collection against the
// remote source of truth: remote records are classified as create,
// update or no-op, and local rows missing from the remote set are
// deleted. The three bulk operations run as one store batch.
type SyncService struct {
	fetcher  RemoteFetcher
	projects ProjectStore
	producer EventPublisher // optional, nil disables event publishing
	logger   *zap.Logger
}

func NewSyncService(fetcher RemoteFetcher, projects ProjectStore, producer EventPublisher, logger *zap.Logger) *SyncService {
	return &SyncService{
		fetcher:  fetcher,
		projects: projects,
		producer: producer,
		logger:   logger,
	}
}

// Sync performs one full reconciliation run.
//
// Remote-owned fields (name, status, start/end date) are copied onto
// existing rows when changed; locally-owned fields (target_value,
// initial_progress) are never touched. A fetch failure aborts with
// zero changes applied. Running twice against an unchanged remote set
// yields {0,0,0} on the second call.
func (s *SyncService) Sync(ctx context.Context) (model.SyncResult, error) {
	remotes, err := s.fetcher.FetchAllProjects(ctx)
	if err != nil {
		s.logger.Error("Sync aborted: remote fetch failed", zap.Error(err))
		return model.SyncResult{}, &FetchError{Err: err}
	}

	// Duplicate remote ids mean the remote answered inconsistently;
	// reconciling against them would silently drop records.
	seen := make(map[string]bool, len(remotes))
	for _, r := range remotes {
		if seen[r.RemoteID] {
			return model.SyncResult{}, &FetchError{Err: fmt.Errorf("duplicate remote id %q in fetched set", r.RemoteID)}
		}
		seen[r.RemoteID] = true
	}

	locals, err := s.projects.FindAll(ctx)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("failed to load local projects: %w", err)
	}

	byRemoteID := make(map[string]model.Project)
	for _, p := range locals {
		if p.RemoteID != "" {
			byRemoteID[p.RemoteID] = p
		}
	}

	var creates, updates []model.Project
	for _, r := range remotes {
		local, exists := byRemoteID[r.RemoteID]
		if !exists {
			creates = append(creates, model.Project{
				RemoteID:        r.RemoteID,
				Name:            r.Name,
				Status:          r.Status,
				StartDate:       model.DateOnly(r.StartDate),
				EndDate:         model.DateOnly(r.EndDate),
				TargetValue:     1, // placeholder until the user sets a real target
				InitialProgress: 0,
			})
			continue
		}
		if remoteFieldsChanged(local, r) {
			local.Name = r.Name
			local.Status = r.Status
			local.StartDate = model.DateOnly(r.StartDate)
			local.EndDate = model.DateOnly(r.EndDate)
			updates = append(updates, local)
		}
	}

	var deletes []string
	for _, p := range locals {
		if p.RemoteID != "" && !seen[p.RemoteID] {
			deletes = append(deletes, p.RemoteID)
		}
	}

	if err := s.projects.ApplySyncBatch(ctx, creates, updates, deletes); err != nil {
		s.logger.Error("Sync aborted: batch failed", zap.Error(err))
		return model.SyncResult{}, fmt.Errorf("failed to apply sync batch: %w", err)
	}

	result := model.SyncResult{
		Created: len(creates),
		Updated: len(updates),
		Deleted: len(deletes),
	}

	metrics.AddSyncedProjects("created", result.Created)
	metrics.AddSyncedProjects("updated", result.Updated)
	metrics.AddSyncedProjects("deleted", result.Deleted)

	s.logger.Info("Sync completed",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
	)

	s.publishSynced(result)

	return result, nil
}

// remoteFieldsChanged compares only the four remote-owned fields.
// Dates compare as calendar dates to avoid timezone ambiguity.
func remoteFieldsChanged(local model.Project, remote model.RemoteProject) bool {
	return local.Name != remote.Name ||
		local.Status != remote.Status ||
		!model.SameDate(local.StartDate, remote.StartDate) ||
		!model.SameDate(local.EndDate, remote.EndDate)
}

// publishSynced emits a project.synced event. Publishing is a
// notification concern: failures are logged, never surfaced.
func (s *SyncService) publishSynced(result model.SyncResult) {
	if s.producer == nil {
		return
	}

	payload := mq.ProjectSyncedPayload{
		Created: result.Created,
		Updated: result.Updated,
		Deleted: result.Deleted,
	}
	if err := s.producer.Publish(mq.RoutingKeyProjectSynced, payload); err != nil {
		s.logger.Warn("Failed to publish project.synced event", zap.Error(err))
	}
}
