package handlers

import (
	"net/http"
	"strconv"
	"time"

	"community_justice_go/db"
	"community_justice_go/services"

	"github.com/labstack/echo/v4"
)

const auditLogPageSize = 50

// ListAuditLogsHandler returns the audit trail with the administrator
// filters: case number, action, user, date range and free search
func ListAuditLogsHandler(c echo.Context) error {
	filters := services.AuditLogFilters{
		CaseNumber:  c.QueryParam("case_number"),
		Action:      c.QueryParam("action"),
		UserID:      c.QueryParam("user_id"),
		SearchQuery: c.QueryParam("q"),
	}

	if dateFrom := c.QueryParam("date_from"); dateFrom != "" {
		if parsed, err := time.Parse("2006-01-02", dateFrom); err == nil {
			filters.DateFrom = parsed
		}
	}
	if dateTo := c.QueryParam("date_to"); dateTo != "" {
		if parsed, err := time.Parse("2006-01-02", dateTo); err == nil {
			filters.DateTo = parsed.Add(24 * time.Hour)
		}
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	logs, total, err := services.ListAuditLogs(db.DB, filters, page, auditLogPageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch audit logs",
		})
	}

	totalPages := int(total) / auditLogPageSize
	if int(total)%auditLogPageSize != 0 {
		totalPages++
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs":        logs,
		"total":       total,
		"page":        page,
		"total_pages": totalPages,
	})
}

// CaseAuditHistoryHandler returns the audit trail of a single case
func CaseAuditHistoryHandler(c echo.Context) error {
	logs, err := services.CaseAuditHistory(db.DB, c.Param("caseNumber"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch audit history",
		})
	}
	return c.JSON(http.StatusOK, logs)
}
