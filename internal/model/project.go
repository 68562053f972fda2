package model

import (
	"fmt"
	"time"
)

// Project status values. Remote statuses are normalized to these on fetch.
const (
	StatusActive     = "active"
	StatusDone       = "done"
	StatusNotStarted = "not_started"
	StatusStopped    = "stopped"
)

// Display ordering: running work first, finished work last.
var statusPriority = map[string]int{
	StatusActive:     1,
	StatusNotStarted: 2,
	StatusStopped:    3,
	StatusDone:       4,
}

func StatusPriority(status string) int {
	if p, ok := statusPriority[status]; ok {
		return p
	}
	return 999
}

// Project is a locally persisted project row.
//
// RemoteID links the row to its Notion page and is empty for local-only
// rows. Name/Status/StartDate/EndDate are owned by the remote side and
// overwritten on sync; TargetValue/InitialProgress are owned locally and
// never touched by sync. CurrentProgress is derived on every read
// (initial progress + sum of work log increments) and never stored.
type Project struct {
	ID              int       `json:"id"`
	RemoteID        string    `json:"remote_id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TargetValue     int       `json:"target_value"`
	InitialProgress int       `json:"initial_progress"`
	CurrentProgress int       `json:"current_progress"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProgressPercentage returns completion as 0.0 ~ 100.0.
func (p *Project) ProgressPercentage() float64 {
	if p.TargetValue <= 0 {
		return 0.0
	}
	pct := float64(p.CurrentProgress) / float64(p.TargetValue) * 100
	if pct > 100.0 {
		return 100.0
	}
	return pct
}

// RemainingWork returns how much of the target is still open.
func (p *Project) RemainingWork() int {
	remaining := p.TargetValue - p.CurrentProgress
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DaysUntilDeadline returns signed calendar days until the end date.
func (p *Project) DaysUntilDeadline(today time.Time) int {
	return DaysBetween(DateOnly(today), DateOnly(p.EndDate))
}

func (p *Project) IsOverdue(today time.Time) bool {
	return p.DaysUntilDeadline(today) < 0
}

// DDayDisplay returns "D-n", "D-Day" or "D+n".
func (p *Project) DDayDisplay(today time.Time) string {
	days := p.DaysUntilDeadline(today)
	switch {
	case days > 0:
		return fmt.Sprintf("D-%d", days)
	case days == 0:
		return "D-Day"
	default:
		return fmt.Sprintf("D+%d", -days)
	}
}

// RemoteProject is a normalized record fetched from the Notion database.
type RemoteProject struct {
	RemoteID  string    `json:"remote_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ProjectLocalUpdate carries a user edit of the locally-owned fields.
type ProjectLocalUpdate struct {
	ID              int `json:"id"`
	TargetValue     int `json:"target_value"`
	InitialProgress int `json:"initial_progress"`
}

// SyncResult counts what one reconciliation run changed.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}
