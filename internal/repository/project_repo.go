package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/pkg/metrics"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// current_progress is derived on every read, never stored.
const projectSelect = `
    SELECT p.id, COALESCE(p.remote_id, ''), p.name, p.status,
           p.start_date, p.end_date, p.target_value, p.initial_progress,
           p.initial_progress + COALESCE(SUM(w.progress_added), 0)::int AS current_progress,
           p.created_at, p.updated_at
    FROM projects p
    LEFT JOIN work_logs w ON w.project_id = p.id
`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID,
		&p.RemoteID,
		&p.Name,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.TargetValue,
		&p.InitialProgress,
		&p.CurrentProgress,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAll returns every project row with its derived progress.
func (r *ProjectRepository) FindAll(ctx context.Context) ([]model.Project, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("find_all", "projects", time.Since(start)) }()

	query := projectSelect + ` GROUP BY p.id ORDER BY p.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query projects", zap.Error(err))
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// FindByID returns the project or nil when no row exists.
func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*model.Project, error) {
	query := projectSelect + ` WHERE p.id = $1 GROUP BY p.id`

	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project %d: %w", id, err)
	}
	return p, nil
}

// ApplySyncBatch executes one reconciliation batch inside a single
// transaction: bulk-insert of new rows, merge of remote-owned fields
// onto existing rows, and delete of rows whose remote id disappeared.
// Any failure rolls back the whole batch.
func (r *ProjectRepository) ApplySyncBatch(ctx context.Context, creates, updates []model.Project, deleteRemoteIDs []string) error {
	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("sync_batch", "projects", time.Since(start)) }()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin sync batch: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range creates {
		_, err := tx.Exec(ctx, `
            INSERT INTO projects (remote_id, name, status, start_date, end_date, target_value, initial_progress)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
        `, p.RemoteID, p.Name, p.Status, p.StartDate, p.EndDate, p.TargetValue, p.InitialProgress)
		if err != nil {
			r.logger.Error("Failed to insert project",
				zap.String("remote_id", p.RemoteID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to insert project %q: %w", p.RemoteID, err)
		}
	}

	// Remote-owned fields only: target_value / initial_progress stay put.
	for _, p := range updates {
		_, err := tx.Exec(ctx, `
            UPDATE projects
            SET name = $1, status = $2, start_date = $3, end_date = $4, updated_at = NOW()
            WHERE remote_id = $5
        `, p.Name, p.Status, p.StartDate, p.EndDate, p.RemoteID)
		if err != nil {
			r.logger.Error("Failed to update project",
				zap.String("remote_id", p.RemoteID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to update project %q: %w", p.RemoteID, err)
		}
	}

	if len(deleteRemoteIDs) > 0 {
		// Work logs go with their project via ON DELETE CASCADE.
		_, err := tx.Exec(ctx, `DELETE FROM projects WHERE remote_id = ANY($1)`, deleteRemoteIDs)
		if err != nil {
			r.logger.Error("Failed to delete projects", zap.Error(err))
			return fmt.Errorf("failed to delete projects: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sync batch: %w", err)
	}

	return nil
}

// BulkUpdateLocal updates the locally-owned fields of several projects
// in one transaction and returns the number of rows touched.
func (r *ProjectRepository) BulkUpdateLocal(ctx context.Context, changes []model.ProjectLocalUpdate) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("bulk_update_local", "projects", time.Since(start)) }()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin bulk update: %w", err)
	}
	defer tx.Rollback(ctx)

	updated := 0
	for _, c := range changes {
		tag, err := tx.Exec(ctx, `
            UPDATE projects
            SET target_value = $1, initial_progress = $2, updated_at = NOW()
            WHERE id = $3
        `, c.TargetValue, c.InitialProgress, c.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to update project %d: %w", c.ID, err)
		}
		updated += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit bulk update: %w", err)
	}

	r.logger.Info("Projects bulk updated", zap.Int("count", updated))
	return updated, nil
}
