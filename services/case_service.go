package services

import (
	"fmt"
	"strings"
	"time"

	"community_justice_go/models"

	"gorm.io/gorm"
)

// caseNumberRetries bounds the retry loop when two registrations in the
// same month collide on the unique case_number index.
const caseNumberRetries = 5

// Actor identifies the user performing a case mutation, denormalized into
// the audit row.
type Actor struct {
	ID   string
	Name string
	Role string
}

// ActorFromUser builds an Actor from an authenticated user
func ActorFromUser(u *models.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{ID: u.ID, Name: u.DisplayName(), Role: u.Role()}
}

// RegisterCase validates and persists a new case for the given judge,
// allocating the month-scoped case number inside the same transaction that
// creates the case and its audit row. On a case-number collision the whole
// transaction is retried with a freshly allocated number.
func RegisterCase(db *gorm.DB, input *CaseInput, judge *models.User) (*models.Case, error) {
	if verr := ValidateCaseInput(input); verr != nil {
		return nil, verr
	}

	var created *models.Case
	var err error
	for attempt := 0; attempt < caseNumberRetries; attempt++ {
		created, err = tryRegisterCase(db, input, judge)
		if err == nil {
			return created, nil
		}
		if !isCaseNumberConflict(err) {
			return nil, err
		}
		// Lost the race for this month's sequence, allocate again
	}
	return nil, fmt.Errorf("failed to allocate a unique case number after %d attempts: %w", caseNumberRetries, err)
}

func tryRegisterCase(db *gorm.DB, input *CaseInput, judge *models.User) (*models.Case, error) {
	kase := &models.Case{
		Status:  models.CaseStatusRegistered,
		JudgeID: judge.ID,
	}
	applyCaseInput(kase, input)

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		number, err := NextCaseNumber(tx, now)
		if err != nil {
			return err
		}
		kase.CaseNumber = number
		kase.DateRegistered = now

		if err := tx.Create(kase).Error; err != nil {
			return err
		}

		return writeAuditEntry(tx, models.AuditActionCreated, kase.CaseNumber, ActorFromUser(judge),
			fmt.Sprintf("El caso %s fue creado.", kase.CaseNumber))
	})
	if err != nil {
		return nil, err
	}
	return kase, nil
}

// UpdateCase validates and re-applies the submitted fields to an existing
// case. The case number and owning judge never change; multi-value columns
// are re-encoded from the submitted selections, overwriting prior strings.
func UpdateCase(db *gorm.DB, kase *models.Case, input *CaseInput, actor Actor) error {
	if verr := ValidateCaseInput(input); verr != nil {
		return verr
	}

	applyCaseInput(kase, input)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(kase).Error; err != nil {
			return fmt.Errorf("failed to update case %s: %w", kase.CaseNumber, err)
		}
		return writeAuditEntry(tx, models.AuditActionUpdated, kase.CaseNumber, actor,
			fmt.Sprintf("El caso %s fue actualizado.", kase.CaseNumber))
	})
}

// TransitionStatus moves a case to a new status. Judges may only move into
// en_tramite, resuelto or cerrado; administrators may set any valid status.
// A rejected transition leaves the case untouched.
func TransitionStatus(db *gorm.DB, kase *models.Case, newStatus string, actor Actor) error {
	if !models.IsValidCaseStatus(newStatus) {
		return ErrInvalidTransition
	}
	if actor.Role != models.RoleAdmin && !judgeMayTransitionTo(newStatus) {
		return ErrInvalidTransition
	}

	previous := kase.Status
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(kase).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update status of case %s: %w", kase.CaseNumber, err)
		}
		kase.Status = newStatus
		return writeAuditEntry(tx, models.AuditActionUpdated, kase.CaseNumber, actor,
			fmt.Sprintf("Estado del caso %s cambió de %s a %s.",
				kase.CaseNumber, models.StatusLabel(previous), models.StatusLabel(newStatus)))
	})
}

// judgeMayTransitionTo lists the statuses a judge can set. Moving back to
// registrado is never allowed for judges.
func judgeMayTransitionTo(status string) bool {
	switch status {
	case models.CaseStatusInProgress, models.CaseStatusResolved, models.CaseStatusClosed:
		return true
	}
	return false
}

// GrantExtension sets the one-way extension flag, moving the deadline from
// 15 to 30 days. A second call is an idempotent no-op signalled with
// ErrExtensionAlreadyGranted; it never extends further.
func GrantExtension(db *gorm.DB, kase *models.Case, actor Actor) error {
	if kase.ExtensionGranted {
		return ErrExtensionAlreadyGranted
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(kase).Update("extension_granted", true).Error; err != nil {
			return fmt.Errorf("failed to grant extension on case %s: %w", kase.CaseNumber, err)
		}
		kase.ExtensionGranted = true
		return writeAuditEntry(tx, models.AuditActionUpdated, kase.CaseNumber, actor,
			fmt.Sprintf("Prórroga de 15 días concedida para el caso %s.", kase.CaseNumber))
	})
}

// DeleteCase removes a case and records the deletion, atomically
func DeleteCase(db *gorm.DB, kase *models.Case, actor Actor) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(kase).Error; err != nil {
			return fmt.Errorf("failed to delete case %s: %w", kase.CaseNumber, err)
		}
		return writeAuditEntry(tx, models.AuditActionDeleted, kase.CaseNumber, actor,
			fmt.Sprintf("El caso %s fue eliminado.", kase.CaseNumber))
	})
}

// writeAuditEntry records a case mutation inside the caller's transaction,
// so mutation and audit row commit or roll back together and no code path
// that persists a case can skip the log.
func writeAuditEntry(tx *gorm.DB, action models.AuditAction, caseNumber string, actor Actor, details string) error {
	entry := models.AuditLog{
		Action:          action,
		CaseNumber:      caseNumber,
		PerformedByName: actor.Name,
		PerformedByRole: actor.Role,
		Details:         details,
	}
	if actor.ID != "" {
		entry.PerformedByID = &actor.ID
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write audit entry for case %s: %w", caseNumber, err)
	}
	return nil
}

// applyCaseInput copies submitted fields onto the case. Identity fields
// (case number, judge, registration date) and status are never touched here.
func applyCaseInput(kase *models.Case, input *CaseInput) {
	kase.ApplicantName = strings.TrimSpace(input.ApplicantName)
	kase.ApplicantID = strings.TrimSpace(input.ApplicantID)
	kase.ApplicantPhone = strings.TrimSpace(input.ApplicantPhone)
	kase.ApplicantEmail = strings.TrimSpace(input.ApplicantEmail)
	kase.InvolvedName = strings.TrimSpace(input.InvolvedName)
	kase.InvolvedID = strings.TrimSpace(input.InvolvedID)

	kase.ConflictDescription = SanitizeText(input.ConflictDescription)
	kase.Location = SanitizeText(input.Location)
	kase.Notes = SanitizeText(input.Notes)

	kase.ConflictType = input.ConflictType
	kase.OtherConflictType = ""
	if input.ConflictType == models.ConflictTypeOther {
		kase.OtherConflictType = SanitizeText(input.OtherConflictType)
	}

	kase.EstimatedValue = input.EstimatedValue

	kase.ResolutionMethods = models.EncodeTags(input.ResolutionMethods)
	kase.OtherResolutionMethod = ""
	if containsTag(input.ResolutionMethods, models.TagOther) {
		kase.OtherResolutionMethod = SanitizeText(input.OtherResolutionMethod)
	}

	kase.LocationBlocks = models.EncodeTags(input.LocationBlocks)
	kase.OtherLocationBlock = ""
	if containsTag(input.LocationBlocks, models.TagOther) {
		kase.OtherLocationBlock = SanitizeText(input.OtherLocationBlock)
	}
}

// isCaseNumberConflict detects a unique-index violation on cases.case_number
func isCaseNumberConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "case_number")
}
