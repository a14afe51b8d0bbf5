package services

import (
	"testing"
	"time"

	"community_justice_go/models"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineLimit(t *testing.T) {
	assert.Equal(t, 15, DeadlineLimit(false))
	assert.Equal(t, 30, DeadlineLimit(true))
}

func TestClassifyDeadline(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  int
		limit    int
		expected DeadlineStatus
	}{
		{"fresh case", 0, 15, DeadlineOnTime},
		{"just before urgent window", 9, 15, DeadlineOnTime},
		{"urgent window opens", 10, 15, DeadlineUrgent},
		{"day before the limit", 14, 15, DeadlineUrgent},
		{"exactly at the limit", 15, 15, DeadlineOverdue},
		{"past the limit", 20, 15, DeadlineOverdue},
		{"extended case in the urgent window", 25, 30, DeadlineUrgent},
		{"extended case overdue", 30, 30, DeadlineOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDeadline(tt.elapsed, tt.limit))
		})
	}
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(0, 15))
	assert.Equal(t, 46, ProgressPercent(7, 15))
	assert.Equal(t, 100, ProgressPercent(15, 15))
	// Past the limit the bar stays capped
	assert.Equal(t, 100, ProgressPercent(20, 15))
	// Degenerate limits yield zero rather than dividing
	assert.Equal(t, 0, ProgressPercent(5, 0))
	assert.Equal(t, 0, ProgressPercent(5, -1))
	assert.Equal(t, 0, ProgressPercent(-3, 15))
}

func TestElapsedDays(t *testing.T) {
	registered := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, ElapsedDays(registered, registered))
	assert.Equal(t, 0, ElapsedDays(registered, registered.Add(23*time.Hour)))
	assert.Equal(t, 1, ElapsedDays(registered, registered.Add(24*time.Hour)))
	assert.Equal(t, 7, ElapsedDays(registered, registered.AddDate(0, 0, 7)))
}

func TestBuildDeadline(t *testing.T) {
	now := time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)

	t.Run("on time", func(t *testing.T) {
		kase := &models.Case{DateRegistered: now.AddDate(0, 0, -3)}
		d := BuildDeadline(kase, now)
		assert.Equal(t, 3, d.ElapsedDays)
		assert.Equal(t, 15, d.MaxDays)
		assert.Equal(t, 20, d.ProgressPercent)
		assert.Equal(t, DeadlineOnTime, d.Status)
		assert.Equal(t, "En tiempo", d.Label)
		assert.Equal(t, "success", d.CSSClass)
	})

	t.Run("urgent", func(t *testing.T) {
		kase := &models.Case{DateRegistered: now.AddDate(0, 0, -12)}
		d := BuildDeadline(kase, now)
		assert.Equal(t, DeadlineUrgent, d.Status)
		assert.Equal(t, "Urgente", d.Label)
		assert.Equal(t, "warning", d.CSSClass)
	})

	t.Run("overdue", func(t *testing.T) {
		kase := &models.Case{DateRegistered: now.AddDate(0, 0, -16)}
		d := BuildDeadline(kase, now)
		assert.Equal(t, DeadlineOverdue, d.Status)
		assert.Equal(t, "Vencido", d.Label)
		assert.Equal(t, "danger", d.CSSClass)
		assert.Equal(t, 100, d.ProgressPercent)
	})

	t.Run("extension moves the limit", func(t *testing.T) {
		kase := &models.Case{
			DateRegistered:   now.AddDate(0, 0, -16),
			ExtensionGranted: true,
		}
		d := BuildDeadline(kase, now)
		assert.Equal(t, 30, d.MaxDays)
		assert.Equal(t, DeadlineOnTime, d.Status)
	})
}
