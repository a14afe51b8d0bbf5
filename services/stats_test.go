package services

import (
	"fmt"
	"testing"
	"time"

	"community_justice_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStatsTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{}, &models.Case{})
	return db
}

func seedStatsCase(db *gorm.DB, judgeID string, seq int, status, conflictType, blocks string) {
	db.Create(&models.Case{
		CaseNumber:          BuildCaseNumber(2026, time.September, seq),
		DateRegistered:      time.Date(2026, 9, seq, 10, 0, 0, 0, time.UTC),
		ApplicantName:       "Solicitante",
		ApplicantID:         fmt.Sprintf("10000%04d", seq),
		InvolvedName:        "Involucrado",
		ConflictDescription: "Conflicto",
		Location:            "Bloque",
		ConflictType:        conflictType,
		LocationBlocks:      blocks,
		Status:              status,
		JudgeID:             judgeID,
	})
}

func TestComputeCaseStats(t *testing.T) {
	db := setupStatsTestDB()

	judge := &models.User{Username: "juez", Email: "juez@example.com", Password: "x"}
	db.Create(judge)

	seedStatsCase(db, judge.ID, 1, models.CaseStatusRegistered, models.ConflictTypeNeighborhood, "bloque_1, bloque_2")
	seedStatsCase(db, judge.ID, 2, models.CaseStatusInProgress, models.ConflictTypeNeighborhood, "bloque_1")
	seedStatsCase(db, judge.ID, 3, models.CaseStatusResolved, models.ConflictTypeCommunity, "")

	stats, err := ComputeCaseStats(db)
	assert.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus["Registrado"])
	assert.Equal(t, int64(1), stats.ByStatus["En trámite"])
	assert.Equal(t, int64(1), stats.ByStatus["Resuelto"])

	assert.Len(t, stats.ByConflictType, 2)
	assert.Equal(t, "Vecinal", stats.ByConflictType[0].Label)
	assert.Equal(t, int64(2), stats.ByConflictType[0].Count)

	// A case with two blocks contributes to both tallies
	blockCounts := map[string]int64{}
	for _, tally := range stats.ByBlock {
		blockCounts[tally.Label] = tally.Count
	}
	assert.Equal(t, int64(2), blockCounts["bloque_1"])
	assert.Equal(t, int64(1), blockCounts["bloque_2"])
}

func TestComputeCaseStatsEmpty(t *testing.T) {
	db := setupStatsTestDB()

	stats, err := ComputeCaseStats(db)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Empty(t, stats.ByStatus)
	assert.Empty(t, stats.ByConflictType)
	assert.Empty(t, stats.ByBlock)
}
