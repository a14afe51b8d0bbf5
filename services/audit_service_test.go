package services

import (
	"testing"

	"community_justice_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.AuditLog{})
	return db
}

func seedAuditLogs(db *gorm.DB) {
	entries := []models.AuditLog{
		{Action: models.AuditActionCreated, CaseNumber: "JC-2026-09-0001", PerformedByName: "Carlos Ramírez", Details: "El caso JC-2026-09-0001 fue creado."},
		{Action: models.AuditActionUpdated, CaseNumber: "JC-2026-09-0001", PerformedByName: "Carlos Ramírez", Details: "Estado del caso JC-2026-09-0001 cambió de Registrado a En trámite."},
		{Action: models.AuditActionCreated, CaseNumber: "JC-2026-09-0002", PerformedByName: "Laura Díaz", Details: "El caso JC-2026-09-0002 fue creado."},
		{Action: models.AuditActionDeleted, CaseNumber: "JC-2026-08-0007", PerformedByName: "Admin", Details: "El caso JC-2026-08-0007 fue eliminado."},
	}
	for i := range entries {
		db.Create(&entries[i])
	}
}

func TestCaseAuditHistory(t *testing.T) {
	db := setupAuditTestDB()
	seedAuditLogs(db)

	logs, err := CaseAuditHistory(db, "JC-2026-09-0001")
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	for _, entry := range logs {
		assert.Equal(t, "JC-2026-09-0001", entry.CaseNumber)
	}
}

func TestListAuditLogsFilters(t *testing.T) {
	db := setupAuditTestDB()
	seedAuditLogs(db)

	// No filters returns everything
	logs, total, err := ListAuditLogs(db, AuditLogFilters{}, 1, 50)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, logs, 4)

	// By action
	logs, total, err = ListAuditLogs(db, AuditLogFilters{Action: string(models.AuditActionCreated)}, 1, 50)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// By case number
	_, total, err = ListAuditLogs(db, AuditLogFilters{CaseNumber: "JC-2026-08-0007"}, 1, 50)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Free search matches details and actor name
	_, total, err = ListAuditLogs(db, AuditLogFilters{SearchQuery: "Laura"}, 1, 50)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestListAuditLogsPagination(t *testing.T) {
	db := setupAuditTestDB()
	seedAuditLogs(db)

	logs, total, err := ListAuditLogs(db, AuditLogFilters{}, 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, logs, 3)

	logs, _, err = ListAuditLogs(db, AuditLogFilters{}, 2, 3)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestAuditLogImmutability(t *testing.T) {
	db := setupAuditTestDB()

	entry := models.AuditLog{
		Action:     models.AuditActionCreated,
		CaseNumber: "JC-2026-09-0001",
		Details:    "El caso JC-2026-09-0001 fue creado.",
	}
	assert.NoError(t, db.Create(&entry).Error)

	// Updates and deletes are refused by the model hooks
	err := db.Model(&entry).Update("details", "tampered").Error
	assert.Error(t, err)

	err = db.Delete(&entry).Error
	assert.Error(t, err)

	var reloaded models.AuditLog
	assert.NoError(t, db.First(&reloaded, "id = ?", entry.ID).Error)
	assert.Equal(t, "El caso JC-2026-09-0001 fue creado.", reloaded.Details)
}
