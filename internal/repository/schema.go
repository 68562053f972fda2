package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// projects.remote_id is unique and work_logs holds at most one row per
// (project_id, work_date). Sync and the daily ensurer rely on both.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS projects (
    id               SERIAL PRIMARY KEY,
    remote_id        TEXT UNIQUE,
    name             TEXT NOT NULL,
    status           TEXT NOT NULL DEFAULT 'active'
                     CHECK (status IN ('active', 'done', 'not_started', 'stopped')),
    start_date       DATE NOT NULL,
    end_date         DATE NOT NULL,
    target_value     INTEGER NOT NULL DEFAULT 1 CHECK (target_value > 0),
    initial_progress INTEGER NOT NULL DEFAULT 0 CHECK (initial_progress >= 0),
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_projects_status   ON projects(status);
CREATE INDEX IF NOT EXISTS idx_projects_end_date ON projects(end_date);

CREATE TABLE IF NOT EXISTS work_logs (
    id             SERIAL PRIMARY KEY,
    project_id     INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    work_date      DATE NOT NULL,
    progress_added INTEGER NOT NULL DEFAULT 0 CHECK (progress_added >= 0),
    hours_spent    DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (hours_spent >= 0),
    memo           VARCHAR(100) NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (project_id, work_date)
);

CREATE INDEX IF NOT EXISTS idx_work_logs_work_date    ON work_logs(work_date);
CREATE INDEX IF NOT EXISTS idx_work_logs_project_date ON work_logs(project_id, work_date);
`

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
