package services

import (
	"time"

	"community_justice_go/models"

	"gorm.io/gorm"
)

// AuditLogFilters contains filter options for audit log queries
type AuditLogFilters struct {
	CaseNumber  string
	Action      string
	UserID      string
	DateFrom    time.Time
	DateTo      time.Time
	SearchQuery string
}

// CaseAuditHistory retrieves the audit trail for a single case
func CaseAuditHistory(db *gorm.DB, caseNumber string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("case_number = ?", caseNumber).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// ListAuditLogs retrieves paginated audit logs with filters applied
func ListAuditLogs(db *gorm.DB, filters AuditLogFilters, page, pageSize int) ([]models.AuditLog, int64, error) {
	query := db.Model(&models.AuditLog{})

	if filters.CaseNumber != "" {
		query = query.Where("case_number = ?", filters.CaseNumber)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if filters.UserID != "" {
		query = query.Where("performed_by_id = ?", filters.UserID)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}
	if filters.SearchQuery != "" {
		pattern := "%" + filters.SearchQuery + "%"
		query = query.Where(
			"case_number LIKE ? OR details LIKE ? OR performed_by_name LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&logs).Error

	return logs, total, err
}
