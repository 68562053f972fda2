package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
)

// DashboardService derives the summary rollups shown on the main
// page. Everything is recomputed from persisted state on every call;
// caching, if any, happens in the presentation layer.
type DashboardService struct {
	projectSvc *ProjectService
	worklogSvc *WorkLogService
	worklogs   WorkLogStore
	logger     *zap.Logger
	today      func() time.Time
}

func NewDashboardService(projectSvc *ProjectService, worklogSvc *WorkLogService, worklogs WorkLogStore, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		projectSvc: projectSvc,
		worklogSvc: worklogSvc,
		worklogs:   worklogs,
		logger:     logger,
		today:      time.Now,
	}
}

// GetWorkLogSummary compares today's hours against yesterday and this
// week's daily average against last week's.
//
// This week averages over the days elapsed so far (Monday through
// today); last week averages over its full seven days.
func (s *DashboardService) GetWorkLogSummary(ctx context.Context) (*model.WorkLogSummary, error) {
	today := model.DateOnly(s.today())
	yesterday := today.AddDate(0, 0, -1)

	todayRows, err := s.worklogSvc.GetTodayWorkData(ctx)
	if err != nil {
		return nil, err
	}
	var todayHours float64
	for _, r := range todayRows {
		todayHours += r.HoursSpent
	}

	yesterdayHours, err := s.sumHours(ctx, yesterday, yesterday)
	if err != nil {
		return nil, err
	}

	// Monday-based weekday index: Mon=0 .. Sun=6.
	weekdayIdx := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -weekdayIdx)

	weekTotal, err := s.sumHours(ctx, weekStart, today)
	if err != nil {
		return nil, err
	}
	weekAvg := weekTotal / float64(weekdayIdx+1)

	lastWeekStart := weekStart.AddDate(0, 0, -7)
	lastWeekEnd := weekStart.AddDate(0, 0, -1)
	lastWeekTotal, err := s.sumHours(ctx, lastWeekStart, lastWeekEnd)
	if err != nil {
		return nil, err
	}
	lastWeekAvg := lastWeekTotal / 7

	summary := &model.WorkLogSummary{
		TodayHours:     todayHours,
		TodayDelta:     todayHours - yesterdayHours,
		WeekAvgHours:   weekAvg,
		WeekAvgDelta:   weekAvg - lastWeekAvg,
		WeekTotalHours: weekTotal,
	}

	s.logger.Debug("Work log summary computed",
		zap.Float64("today_hours", summary.TodayHours),
		zap.Float64("week_total_hours", summary.WeekTotalHours),
	)
	return summary, nil
}

func (s *DashboardService) sumHours(ctx context.Context, start, end time.Time) (float64, error) {
	logs, err := s.worklogs.FindByDateRange(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to load work logs: %w", err)
	}
	var total float64
	for _, l := range logs {
		total += l.HoursSpent
	}
	return total, nil
}

// GetProjectsSummary builds the project status table: progress, D-day
// and the effort projection per active project.
func (s *DashboardService) GetProjectsSummary(ctx context.Context) ([]model.ProjectSummary, error) {
	active, err := s.projectSvc.GetActiveProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return []model.ProjectSummary{}, nil
	}

	ids := make([]int, 0, len(active))
	for _, p := range active {
		ids = append(ids, p.ID)
	}

	stats, err := s.worklogs.EfficiencyStats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load efficiency stats: %w", err)
	}

	today := model.DateOnly(s.today())
	summaries := make([]model.ProjectSummary, 0, len(active))
	for _, p := range active {
		st := stats[p.ID] // zero value when no history
		est := Estimate(p.RemainingWork(), st, today)

		summaries = append(summaries, model.ProjectSummary{
			ProjectID:          p.ID,
			Name:               p.Name,
			DDay:               p.DDayDisplay(today),
			TargetValue:        p.TargetValue,
			CurrentProgress:    p.CurrentProgress,
			ProgressPercentage: p.ProgressPercentage(),
			WorkedHours:        st.WorkedHours,
			RequiredHours:      est.RequiredHours,
			CompletionDate:     est.CompletionDate,
		})
	}

	return summaries, nil
}

// GetChartData derives worked-vs-required hour pairs from the
// projects summary for the comparison chart.
func (s *DashboardService) GetChartData(ctx context.Context) ([]model.ChartRow, error) {
	summaries, err := s.GetProjectsSummary(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]model.ChartRow, 0, len(summaries))
	for _, sum := range summaries {
		required := 0.0
		if sum.RequiredHours != nil {
			required = *sum.RequiredHours
		}
		rows = append(rows, model.ChartRow{
			ProjectName:   sum.Name,
			WorkedHours:   sum.WorkedHours,
			RequiredHours: required,
		})
	}
	return rows, nil
}

// GetTimelineData returns per-day invested hours over a past range,
// oldest first.
func (s *DashboardService) GetTimelineData(ctx context.Context, start, end time.Time) ([]model.TimelineRow, error) {
	past, err := s.worklogSvc.GetPastWorkData(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]model.TimelineRow, 0, len(past))
	for _, l := range past {
		rows = append(rows, model.TimelineRow{
			Date:        l.WorkDate,
			ProjectName: l.ProjectName,
			HoursSpent:  l.HoursSpent,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	return rows, nil
}
