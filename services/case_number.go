package services

import (
	"fmt"
	"time"

	"community_justice_go/models"

	"gorm.io/gorm"
)

// CaseNumberPrefix is the fixed prefix of every case number
const CaseNumberPrefix = "JC"

// CaseNumberComponents contains the parsed components of a case number.
// Format: JC-<year>-<2-digit month>-<4-digit sequence>, sequence scoped to
// the calendar month and reset each month.
type CaseNumberComponents struct {
	Year     int
	Month    time.Month
	Sequence int
}

// BuildCaseNumber formats a case number from its components
// Example: JC-2026-09-0042
func BuildCaseNumber(year int, month time.Month, sequence int) string {
	return fmt.Sprintf("%s-%d-%02d-%04d", CaseNumberPrefix, year, int(month), sequence)
}

// ParseCaseNumber parses a case number string into its components
func ParseCaseNumber(caseNumber string) (*CaseNumberComponents, error) {
	var prefix string
	var year, month, sequence int

	n, err := fmt.Sscanf(caseNumber, "%2s-%d-%02d-%04d", &prefix, &year, &month, &sequence)
	if err != nil || n != 4 {
		return nil, fmt.Errorf("malformed case number %q", caseNumber)
	}
	if prefix != CaseNumberPrefix {
		return nil, fmt.Errorf("case number %q does not carry the %s prefix", caseNumber, CaseNumberPrefix)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("case number %q has invalid month %d", caseNumber, month)
	}

	return &CaseNumberComponents{
		Year:     year,
		Month:    time.Month(month),
		Sequence: sequence,
	}, nil
}

// NextCaseNumber allocates the next case number for the month of the given
// instant: one more than the count of cases already registered in the same
// calendar year and month. Soft-deleted cases still occupy their numbers,
// so the count runs Unscoped. Callers must run it inside the transaction
// that persists the case; the unique index on case_number backstops the
// count under concurrent registrations (see RegisterCase's conflict retry).
func NextCaseNumber(tx *gorm.DB, now time.Time) (string, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	var count int64
	err := tx.Model(&models.Case{}).Unscoped().
		Where("date_registered >= ? AND date_registered < ?", monthStart, nextMonth).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("failed to count cases for %d-%02d: %w", now.Year(), int(now.Month()), err)
	}

	return BuildCaseNumber(now.Year(), now.Month(), int(count)+1), nil
}
