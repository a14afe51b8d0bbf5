package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction represents the type of operation performed on a case
type AuditAction string

const (
	AuditActionCreated AuditAction = "CREATED"
	AuditActionUpdated AuditAction = "UPDATED"
	AuditActionDeleted AuditAction = "DELETED"
)

// AuditLog is an immutable record of a create/update/delete on a Case.
// Rows are written in the same transaction as the mutation they describe.
type AuditLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_audit_created_at" json:"created_at"`

	Action     AuditAction `gorm:"size:10;not null;index:idx_audit_action" json:"action"`
	CaseNumber string      `gorm:"size:20;index:idx_audit_case_number" json:"case_number"`

	// Actor, denormalized for historical accuracy
	PerformedByID   *string `gorm:"type:uuid;index:idx_audit_user" json:"performed_by_id,omitempty"`
	PerformedByName string  `json:"performed_by_name,omitempty"`
	PerformedByRole string  `json:"performed_by_role,omitempty"`

	Details string `gorm:"type:text" json:"details,omitempty"`

	PerformedBy *User `gorm:"foreignKey:PerformedByID" json:"-"`
}

// ActionLabel returns the human-readable label for the action
func (a *AuditLog) ActionLabel() string {
	switch a.Action {
	case AuditActionCreated:
		return "Creado"
	case AuditActionUpdated:
		return "Actualizado"
	case AuditActionDeleted:
		return "Eliminado"
	}
	return string(a.Action)
}

// BeforeCreate generates UUID
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate prevents modification of audit logs (immutability)
func (a *AuditLog) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound // Prevent any updates
}

// BeforeDelete prevents deletion of audit logs (immutability)
func (a *AuditLog) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound // Prevent any deletes
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}
