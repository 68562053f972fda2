package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
	"github.com/zoklk/ProjectTracker/pkg/metrics"
)

// WorkLogService owns the daily work records: it guarantees today's
// rows exist for every active project, serves today's and past work
// data, and applies validated bulk edits.
type WorkLogService struct {
	worklogs   WorkLogStore
	projectSvc *ProjectService
	logger     *zap.Logger
	today      func() time.Time
}

func NewWorkLogService(worklogs WorkLogStore, projectSvc *ProjectService, logger *zap.Logger) *WorkLogService {
	return &WorkLogService{
		worklogs:   worklogs,
		projectSvc: projectSvc,
		logger:     logger,
		today:      time.Now,
	}
}

// GetTodayWorkData returns one row per active project for the current
// date, auto-creating missing zero-valued logs first.
func (s *WorkLogService) GetTodayWorkData(ctx context.Context) ([]model.TodayWorkRow, error) {
	today := model.DateOnly(s.today())

	active, err := s.projectSvc.GetActiveProjects(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTodayLogs(ctx, active, today); err != nil {
		return nil, err
	}

	logs, err := s.worklogs.FindByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's work logs: %w", err)
	}

	logByProject := make(map[int]model.WorkLog, len(logs))
	for _, l := range logs {
		logByProject[l.ProjectID] = l
	}

	rows := make([]model.TodayWorkRow, 0, len(active))
	for _, p := range active {
		row := model.TodayWorkRow{
			ProjectID:       p.ID,
			WorkDate:        today,
			ProjectName:     p.Name,
			DDay:            p.DDayDisplay(today),
			TargetValue:     p.TargetValue,
			CurrentProgress: p.CurrentProgress,
		}
		if l, ok := logByProject[p.ID]; ok {
			row.ProgressAdded = l.ProgressAdded
			row.HoursSpent = l.HoursSpent
			row.Memo = l.Memo
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ensureTodayLogs bulk-inserts zero-valued rows for exactly the active
// projects lacking one for today. Idempotent: the pre-query and the
// (project_id, work_date) unique constraint both guard duplication.
func (s *WorkLogService) ensureTodayLogs(ctx context.Context, active []model.Project, today time.Time) error {
	existing, err := s.worklogs.FindByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to load existing logs: %w", err)
	}

	existingProjects := make(map[int]bool, len(existing))
	for _, l := range existing {
		existingProjects[l.ProjectID] = true
	}

	var missing []model.WorkLog
	for _, p := range active {
		if existingProjects[p.ID] {
			continue
		}
		missing = append(missing, model.WorkLog{
			ProjectID:     p.ID,
			WorkDate:      today,
			ProgressAdded: 0,
			HoursSpent:    0.0,
			Memo:          "",
		})
	}

	if len(missing) == 0 {
		return nil
	}

	inserted, err := s.worklogs.BulkInsert(ctx, missing)
	if err != nil {
		return fmt.Errorf("failed to create today's logs: %w", err)
	}

	metrics.AddEnsuredWorkLogs(inserted)
	s.logger.Info("Created today's work logs", zap.Int("count", inserted))
	return nil
}

// GetPastWorkData returns recorded logs between start and end
// inclusive, newest first. Future or reversed ranges are rejected.
func (s *WorkLogService) GetPastWorkData(ctx context.Context, start, end time.Time) ([]model.PastWorkRow, error) {
	today := model.DateOnly(s.today())
	start, end = model.DateOnly(start), model.DateOnly(end)

	if start.After(end) {
		return nil, &ValidationError{Invalid: 1}
	}
	if start.After(today) || end.After(today) {
		return nil, &ValidationError{Invalid: 1}
	}

	logs, err := s.worklogs.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load work logs: %w", err)
	}

	rows := make([]model.PastWorkRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, model.PastWorkRow{
			ProjectID:     l.ProjectID,
			WorkDate:      l.WorkDate,
			DateDisplay:   l.WorkDate.Format("2006-01-02 (Mon)"),
			ProjectName:   l.ProjectName,
			ProgressAdded: l.ProgressAdded,
			HoursSpent:    l.HoursSpent,
			Memo:          l.Memo,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WorkDate.After(rows[j].WorkDate)
	})

	return rows, nil
}

// UpdateWorkLogs applies user edits to existing rows. Rows were
// already created by the ensurer, so this path never inserts. The
// batch is validated up front; any invalid record rejects the whole
// batch before the store is touched.
func (s *WorkLogService) UpdateWorkLogs(ctx context.Context, changes []model.WorkLogUpdate) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	today := model.DateOnly(s.today())
	invalid := 0
	for _, c := range changes {
		if !validWorkLogUpdate(c, today) {
			s.logger.Warn("Invalid work log update",
				zap.Int("project_id", c.ProjectID),
				zap.Time("work_date", c.WorkDate),
			)
			invalid++
		}
	}
	if invalid > 0 {
		return 0, &ValidationError{Invalid: invalid}
	}

	updated, err := s.worklogs.BulkUpdate(ctx, changes)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update work logs: %w", err)
	}

	s.logger.Info("Work logs updated", zap.Int("count", updated))
	return updated, nil
}

func validWorkLogUpdate(c model.WorkLogUpdate, today time.Time) bool {
	if c.ProjectID <= 0 {
		return false
	}
	if model.DateOnly(c.WorkDate).After(today) {
		return false
	}
	if c.ProgressAdded < 0 || c.HoursSpent < 0 {
		return false
	}
	if len([]rune(c.Memo)) > model.MemoMaxLen {
		return false
	}
	return true
}
