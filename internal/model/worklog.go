package model

import "time"

// MemoMaxLen bounds the work log memo column.
const MemoMaxLen = 100

// WorkLog is one day's work record for a project.
// At most one row exists per (project_id, work_date).
type WorkLog struct {
	ID            int       `json:"id"`
	ProjectID     int       `json:"project_id"`
	WorkDate      time.Time `json:"work_date"`
	ProgressAdded int       `json:"progress_added"`
	HoursSpent    float64   `json:"hours_spent"`
	Memo          string    `json:"memo"`
	CreatedAt     time.Time `json:"created_at"`
}

// Efficiency returns progress per hour, 0 when no hours were logged.
func (w *WorkLog) Efficiency() float64 {
	if w.HoursSpent <= 0 {
		return 0.0
	}
	return float64(w.ProgressAdded) / w.HoursSpent
}

// WorkLogWithProject is a work log row joined with its project name.
type WorkLogWithProject struct {
	WorkLog
	ProjectName string `json:"project_name"`
}

// WorkLogUpdate carries a user edit of one existing work log row,
// addressed by (project_id, work_date).
type WorkLogUpdate struct {
	ProjectID     int       `json:"project_id"`
	WorkDate      time.Time `json:"work_date"`
	ProgressAdded int       `json:"progress_added"`
	HoursSpent    float64   `json:"hours_spent"`
	Memo          string    `json:"memo"`
}

// EfficiencyStats is the grouped aggregate over a project's work logs.
//
// AvgEfficiency averages progress/hours across rows with hours > 0.
// AvgHoursPerDay divides total hours by the span between the first and
// last logged dates inclusive, so zero-work days inside the span lower
// the cadence.
type EfficiencyStats struct {
	AvgEfficiency  float64 `json:"avg_efficiency"`
	WorkedHours    float64 `json:"worked_hours"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}
