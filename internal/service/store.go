package service

import (
	"context"
	"time"

	"github.com/zoklk/ProjectTracker/internal/model"
)

// Collaborator contracts consumed by the services. The repository
// package provides the pgx implementations; tests substitute stubs.

// RemoteFetcher retrieves the full remote project set. Pagination is
// the fetcher's concern; the result is the complete set.
type RemoteFetcher interface {
	FetchAllProjects(ctx context.Context) ([]model.RemoteProject, error)
}

// ProjectStore is the persisted project collection.
type ProjectStore interface {
	FindAll(ctx context.Context) ([]model.Project, error)
	FindByID(ctx context.Context, id int) (*model.Project, error)

	// ApplySyncBatch applies one reconciliation batch atomically:
	// either all creates, updates and deletes land, or none do.
	ApplySyncBatch(ctx context.Context, creates, updates []model.Project, deleteRemoteIDs []string) error

	// BulkUpdateLocal merges locally-owned field edits by project id.
	BulkUpdateLocal(ctx context.Context, changes []model.ProjectLocalUpdate) (int, error)
}

// WorkLogStore is the persisted work log collection.
type WorkLogStore interface {
	FindByDate(ctx context.Context, date time.Time) ([]model.WorkLog, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]model.WorkLogWithProject, error)
	BulkInsert(ctx context.Context, logs []model.WorkLog) (int, error)
	BulkUpdate(ctx context.Context, changes []model.WorkLogUpdate) (int, error)
	EfficiencyStats(ctx context.Context, projectIDs []int) (map[int]model.EfficiencyStats, error)
}

// EventPublisher publishes domain events after state changes.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
