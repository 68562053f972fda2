package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/pkg/metrics"
)

type WorkLogRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWorkLogRepository(db *pgxpool.Pool, logger *zap.Logger) *WorkLogRepository {
	return &WorkLogRepository{
		db:     db,
		logger: logger,
	}
}

// FindByDate returns every work log for one calendar date.
func (r *WorkLogRepository) FindByDate(ctx context.Context, date time.Time) ([]model.WorkLog, error) {
	query := `
        SELECT id, project_id, work_date, progress_added, hours_spent, memo, created_at
        FROM work_logs
        WHERE work_date = $1
    `
	rows, err := r.db.Query(ctx, query, model.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query work logs by date: %w", err)
	}
	defer rows.Close()

	var logs []model.WorkLog
	for rows.Next() {
		var w model.WorkLog
		err := rows.Scan(
			&w.ID,
			&w.ProjectID,
			&w.WorkDate,
			&w.ProgressAdded,
			&w.HoursSpent,
			&w.Memo,
			&w.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

// FindByDateRange returns work logs between start and end inclusive,
// joined with their project names.
func (r *WorkLogRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]model.WorkLogWithProject, error) {
	query := `
        SELECT w.id, w.project_id, w.work_date, w.progress_added, w.hours_spent, w.memo, w.created_at,
               p.name
        FROM work_logs w
        JOIN projects p ON p.id = w.project_id
        WHERE w.work_date BETWEEN $1 AND $2
    `
	rows, err := r.db.Query(ctx, query, model.DateOnly(start), model.DateOnly(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query work logs by range: %w", err)
	}
	defer rows.Close()

	var logs []model.WorkLogWithProject
	for rows.Next() {
		var w model.WorkLogWithProject
		err := rows.Scan(
			&w.ID,
			&w.ProjectID,
			&w.WorkDate,
			&w.ProgressAdded,
			&w.HoursSpent,
			&w.Memo,
			&w.CreatedAt,
			&w.ProjectName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

// BulkInsert inserts all given work logs in one transaction.
func (r *WorkLogRepository) BulkInsert(ctx context.Context, logs []model.WorkLog) (int, error) {
	if len(logs) == 0 {
		return 0, nil
	}

	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("bulk_insert", "work_logs", time.Since(start)) }()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, w := range logs {
		_, err := tx.Exec(ctx, `
            INSERT INTO work_logs (project_id, work_date, progress_added, hours_spent, memo)
            VALUES ($1, $2, $3, $4, $5)
        `, w.ProjectID, model.DateOnly(w.WorkDate), w.ProgressAdded, w.HoursSpent, w.Memo)
		if err != nil {
			return 0, fmt.Errorf("failed to insert work log for project %d: %w", w.ProjectID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit bulk insert: %w", err)
	}

	r.logger.Info("Work logs bulk inserted", zap.Int("count", len(logs)))
	return len(logs), nil
}

// BulkUpdate updates existing rows addressed by (project_id, work_date)
// in one transaction. Rows are never re-inserted here; the ensurer has
// already guaranteed their existence.
func (r *WorkLogRepository) BulkUpdate(ctx context.Context, changes []model.WorkLogUpdate) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("bulk_update", "work_logs", time.Since(start)) }()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin bulk update: %w", err)
	}
	defer tx.Rollback(ctx)

	updated := 0
	for _, c := range changes {
		tag, err := tx.Exec(ctx, `
            UPDATE work_logs
            SET progress_added = $1, hours_spent = $2, memo = $3
            WHERE project_id = $4 AND work_date = $5
        `, c.ProgressAdded, c.HoursSpent, c.Memo, c.ProjectID, model.DateOnly(c.WorkDate))
		if err != nil {
			return 0, fmt.Errorf("failed to update work log for project %d: %w", c.ProjectID, err)
		}
		updated += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit bulk update: %w", err)
	}

	return updated, nil
}

// EfficiencyStats aggregates work history per project. The AVG skips
// zero-hour rows via NULLIF; the cadence denominator is the span
// between first and last logged dates inclusive.
func (r *WorkLogRepository) EfficiencyStats(ctx context.Context, projectIDs []int) (map[int]model.EfficiencyStats, error) {
	if len(projectIDs) == 0 {
		return map[int]model.EfficiencyStats{}, nil
	}

	start := time.Now()
	defer func() { metrics.RecordDBQueryDuration("efficiency_stats", "work_logs", time.Since(start)) }()

	query := `
        SELECT project_id,
               COALESCE(AVG(progress_added::float8 / NULLIF(hours_spent, 0)), 0),
               COALESCE(SUM(hours_spent), 0),
               MIN(work_date),
               MAX(work_date)
        FROM work_logs
        WHERE project_id = ANY($1)
        GROUP BY project_id
    `
	rows, err := r.db.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query efficiency stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]model.EfficiencyStats)
	for rows.Next() {
		var (
			projectID           int
			s                   model.EfficiencyStats
			firstDate, lastDate time.Time
		)
		if err := rows.Scan(&projectID, &s.AvgEfficiency, &s.WorkedHours, &firstDate, &lastDate); err != nil {
			return nil, fmt.Errorf("failed to scan efficiency stats: %w", err)
		}

		if spanDays := model.DaysBetween(firstDate, lastDate) + 1; spanDays > 0 {
			s.AvgHoursPerDay = s.WorkedHours / float64(spanDays)
		}
		stats[projectID] = s
	}
	return stats, rows.Err()
}
