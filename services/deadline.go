package services

import (
	"time"

	"community_justice_go/models"
)

// Deadline rules: 15 days to resolve a case, 30 once the one-time extension
// is granted. A case becomes urgent 5 days before the limit.
const (
	BaseDeadlineDays     = 15
	ExtendedDeadlineDays = 30
	UrgentWindowDays     = 5
)

// DeadlineStatus classifies a case against its deadline
type DeadlineStatus string

const (
	DeadlineOnTime  DeadlineStatus = "ON_TIME"
	DeadlineUrgent  DeadlineStatus = "URGENT"
	DeadlineOverdue DeadlineStatus = "OVERDUE"
)

// Deadline is the presentation-ready deadline state of a case
type Deadline struct {
	ElapsedDays     int            `json:"elapsed_days"`
	MaxDays         int            `json:"max_days"`
	ProgressPercent int            `json:"progress_percent"`
	Status          DeadlineStatus `json:"status"`
	Label           string         `json:"label"`
	CSSClass        string         `json:"css_class"`
}

// ElapsedDays returns the whole days elapsed between registration and now
func ElapsedDays(registered, now time.Time) int {
	return int(now.Sub(registered).Hours() / 24)
}

// DeadlineLimit returns the applicable deadline in days
func DeadlineLimit(extensionGranted bool) int {
	if extensionGranted {
		return ExtendedDeadlineDays
	}
	return BaseDeadlineDays
}

// ProgressPercent returns elapsed progress toward the deadline, capped at
// 100. A zero or negative limit yields 0; the limit is never zero under
// current rules but the function stays total.
func ProgressPercent(elapsedDays, limitDays int) int {
	if limitDays <= 0 {
		return 0
	}
	if elapsedDays <= 0 {
		return 0
	}
	progress := elapsedDays * 100 / limitDays
	if progress > 100 {
		return 100
	}
	return progress
}

// ClassifyDeadline classifies elapsed days against the limit. Boundaries
// are inclusive: exactly at the limit is overdue, not urgent.
func ClassifyDeadline(elapsedDays, limitDays int) DeadlineStatus {
	switch {
	case elapsedDays >= limitDays:
		return DeadlineOverdue
	case elapsedDays >= limitDays-UrgentWindowDays:
		return DeadlineUrgent
	default:
		return DeadlineOnTime
	}
}

// BuildDeadline derives the full deadline state for a case at the given
// instant. Pure computation, no side effects.
func BuildDeadline(c *models.Case, now time.Time) Deadline {
	elapsed := ElapsedDays(c.DateRegistered, now)
	limit := DeadlineLimit(c.ExtensionGranted)
	status := ClassifyDeadline(elapsed, limit)

	d := Deadline{
		ElapsedDays:     elapsed,
		MaxDays:         limit,
		ProgressPercent: ProgressPercent(elapsed, limit),
		Status:          status,
	}

	switch status {
	case DeadlineOverdue:
		d.Label = "Vencido"
		d.CSSClass = "danger"
	case DeadlineUrgent:
		d.Label = "Urgente"
		d.CSSClass = "warning"
	default:
		d.Label = "En tiempo"
		d.CSSClass = "success"
	}

	return d
}
