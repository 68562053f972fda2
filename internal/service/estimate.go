package service

import (
	"time"

	"github.com/zoklk/ProjectTracker/internal/model"
)

// Estimate projects the remaining effort for one project from its
// work history.
//
//	remaining == 0          -> 0 hours, completes today
//	efficiency > 0, cadence > 0 -> hours = remaining/efficiency,
//	                            date = today + whole days of hours/cadence
//	efficiency > 0, cadence == 0 -> hours only, no date
//	no usable efficiency    -> nothing to project
func Estimate(remainingWork int, stats model.EfficiencyStats, today time.Time) model.Estimate {
	today = model.DateOnly(today)

	if remainingWork <= 0 {
		zero := 0.0
		return model.Estimate{RequiredHours: &zero, CompletionDate: &today}
	}

	if stats.AvgEfficiency <= 0 {
		return model.Estimate{}
	}

	hours := float64(remainingWork) / stats.AvgEfficiency
	if stats.AvgHoursPerDay <= 0 {
		return model.Estimate{RequiredHours: &hours}
	}

	// Truncate to whole days: partial days do not push the date out.
	days := int(hours / stats.AvgHoursPerDay)
	date := today.AddDate(0, 0, days)
	return model.Estimate{RequiredHours: &hours, CompletionDate: &date}
}
