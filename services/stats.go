package services

import (
	"community_justice_go/models"

	"gorm.io/gorm"
)

// LabelCount is a labeled tally for chart data
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// CaseStats aggregates the case table for the administrator dashboard
type CaseStats struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"by_status"`
	ByConflictType []LabelCount     `json:"by_conflict_type"`
	ByBlock        []LabelCount     `json:"by_block"`
}

// ComputeCaseStats tallies cases by status, conflict type and location
// block. Block counts decode the comma-joined column, so a case carrying
// three blocks contributes to three tallies.
func ComputeCaseStats(db *gorm.DB) (*CaseStats, error) {
	stats := &CaseStats{ByStatus: map[string]int64{}}

	if err := db.Model(&models.Case{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	var statusRows []statusRow
	err := db.Model(&models.Case{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		stats.ByStatus[models.StatusLabel(row.Status)] = row.Count
	}

	type conflictRow struct {
		ConflictType string
		Count        int64
	}
	var conflictRows []conflictRow
	err = db.Model(&models.Case{}).
		Select("conflict_type, count(*) as count").
		Group("conflict_type").
		Order("count DESC").
		Scan(&conflictRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range conflictRows {
		stats.ByConflictType = append(stats.ByConflictType, LabelCount{
			Label: models.ConflictTypeLabel(row.ConflictType),
			Count: row.Count,
		})
	}

	blocks, err := tallyBlocks(db)
	if err != nil {
		return nil, err
	}
	stats.ByBlock = blocks

	return stats, nil
}

// tallyBlocks decodes every case's location_blocks column and counts each
// tag occurrence
func tallyBlocks(db *gorm.DB) ([]LabelCount, error) {
	var encoded []string
	err := db.Model(&models.Case{}).
		Where("location_blocks <> ''").
		Pluck("location_blocks", &encoded).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	var order []string
	for _, column := range encoded {
		for _, block := range models.DecodeTags(column) {
			if _, seen := counts[block]; !seen {
				order = append(order, block)
			}
			counts[block]++
		}
	}

	tally := make([]LabelCount, 0, len(order))
	for _, block := range order {
		tally = append(tally, LabelCount{Label: block, Count: counts[block]})
	}
	return tally, nil
}
