package model

import "time"

// View records returned across the presentation-layer contract.
// Plain data only: callers can render or cache them independently.

// TodayWorkRow merges an active project with its log for the current
// date. The log row is guaranteed to exist by the ensurer.
type TodayWorkRow struct {
	ProjectID       int       `json:"project_id"`
	WorkDate        time.Time `json:"work_date"`
	ProjectName     string    `json:"project_name"`
	DDay            string    `json:"d_day"`
	TargetValue     int       `json:"target_value"`
	CurrentProgress int       `json:"current_progress"`
	ProgressAdded   int       `json:"progress_added"`
	HoursSpent      float64   `json:"hours_spent"`
	Memo            string    `json:"memo"`
}

// PastWorkRow is one recorded work log in a past range.
type PastWorkRow struct {
	ProjectID     int       `json:"project_id"`
	WorkDate      time.Time `json:"work_date"`
	DateDisplay   string    `json:"date_display"` // "2006-01-02 (Mon)"
	ProjectName   string    `json:"project_name"`
	ProgressAdded int       `json:"progress_added"`
	HoursSpent    float64   `json:"hours_spent"`
	Memo          string    `json:"memo"`
}

// WorkLogSummary is the dashboard's today / this-week rollup.
type WorkLogSummary struct {
	TodayHours     float64 `json:"today_hours"`
	TodayDelta     float64 `json:"today_delta"`
	WeekAvgHours   float64 `json:"week_avg_hours"`
	WeekAvgDelta   float64 `json:"week_avg_delta"`
	WeekTotalHours float64 `json:"week_total_hours"`
}

// Estimate is the projection for one project's remaining work.
// Nil fields mean "not enough history to project".
type Estimate struct {
	RequiredHours  *float64   `json:"required_hours"`
	CompletionDate *time.Time `json:"completion_date"`
}

// ProjectSummary is one row of the dashboard's project status table.
type ProjectSummary struct {
	ProjectID          int        `json:"project_id"`
	Name               string     `json:"name"`
	DDay               string     `json:"d_day"`
	TargetValue        int        `json:"target_value"`
	CurrentProgress    int        `json:"current_progress"`
	ProgressPercentage float64    `json:"progress_percentage"`
	WorkedHours        float64    `json:"worked_hours"`
	RequiredHours      *float64   `json:"required_hours"`
	CompletionDate     *time.Time `json:"completion_date"`
}

// ChartRow compares invested vs remaining hours per project.
type ChartRow struct {
	ProjectName   string  `json:"project_name"`
	WorkedHours   float64 `json:"worked_hours"`
	RequiredHours float64 `json:"required_hours"`
}

// TimelineRow is one day's hours for one project.
type TimelineRow struct {
	Date        time.Time `json:"date"`
	ProjectName string    `json:"project_name"`
	HoursSpent  float64   `json:"hours_spent"`
}
