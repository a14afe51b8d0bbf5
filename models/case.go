package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusRegistered = "registrado"
	CaseStatusInProgress = "en_tramite"
	CaseStatusResolved   = "resuelto"
	CaseStatusClosed     = "cerrado"
)

// Conflict type constants
const (
	ConflictTypeNeighborhood = "vecinal"
	ConflictTypeIndividual   = "individual"
	ConflictTypeCommunity    = "comunitario"
	ConflictTypeMinorOffense = "contravencion"
	ConflictTypePatrimonial  = "patrimonial"
	ConflictTypeOther        = "otro"
)

// Resolution method tags (multi-select)
const (
	ResolutionConciliation = "conciliacion"
	ResolutionMediation    = "mediacion"
	ResolutionEquity       = "equidad"
	ResolutionOther        = "otro"
)

// TagOther is the escape tag on multi-select fields that requires an
// accompanying free-text value.
const TagOther = "otro"

// LocationBlockChoices are the geographic zone tags a case can carry
var LocationBlockChoices = []string{
	"bloque_1", "bloque_2", "bloque_3", "bloque_4", "bloque_5", TagOther,
}

// Case is a community conflict record tracked from registration to closure
type Case struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identification - case number is assigned once and never changes
	CaseNumber     string    `gorm:"size:20;not null;uniqueIndex" json:"case_number"`
	DateRegistered time.Time `gorm:"not null;index" json:"date_registered"`

	// Applicant
	ApplicantName  string `gorm:"size:100;not null" json:"applicant_name"`
	ApplicantID    string `gorm:"size:20;not null;index" json:"applicant_id"`
	ApplicantPhone string `gorm:"size:20" json:"applicant_phone,omitempty"`
	ApplicantEmail string `json:"applicant_email,omitempty"`

	// Involved party
	InvolvedName string `gorm:"size:100;not null" json:"involved_name"`
	InvolvedID   string `gorm:"size:20;index" json:"involved_id,omitempty"`

	// Conflict details
	ConflictDescription string   `gorm:"type:text;not null" json:"conflict_description"`
	Location            string   `gorm:"size:200;not null" json:"location"`
	ConflictType        string   `gorm:"size:50;not null;default:vecinal" json:"conflict_type"`
	OtherConflictType   string   `gorm:"size:100" json:"other_conflict_type,omitempty"`
	EstimatedValue      *float64 `json:"estimated_value,omitempty"`

	// Multi-select fields, persisted as comma-joined tag strings
	ResolutionMethods     string `gorm:"column:resolution_method;size:200" json:"resolution_method,omitempty"`
	OtherResolutionMethod string `gorm:"size:100" json:"other_resolution_method,omitempty"`
	LocationBlocks        string `gorm:"size:200" json:"location_blocks,omitempty"`
	OtherLocationBlock    string `gorm:"size:100" json:"other_location_block,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	// Status and deadline
	Status           string `gorm:"size:20;not null;default:registrado;index" json:"status"`
	ExtensionGranted bool   `gorm:"not null;default:false" json:"extension_granted"`

	// Assigned judge, set at creation and not reassignable
	JudgeID string `gorm:"type:uuid;not null;index" json:"judge_id"`
	Judge   User   `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`
}

// BeforeCreate hook to generate UUID and stamp the registration date
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.DateRegistered.IsZero() {
		c.DateRegistered = time.Now()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// EncodeTags joins multi-select tags into the persisted column format.
// Order is the submission order; no dedup is applied.
func EncodeTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// DecodeTags parses a persisted tag column back into its tag list.
// An empty or absent column yields an empty list.
func DecodeTags(encoded string) []string {
	if encoded == "" {
		return []string{}
	}
	parts := strings.Split(encoded, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ResolutionMethodList decodes the resolution method column
func (c *Case) ResolutionMethodList() []string {
	return DecodeTags(c.ResolutionMethods)
}

// LocationBlockList decodes the location blocks column
func (c *Case) LocationBlockList() []string {
	return DecodeTags(c.LocationBlocks)
}

// IsValidCaseStatus checks if the status is one of the canonical four
func IsValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusRegistered, CaseStatusInProgress, CaseStatusResolved, CaseStatusClosed:
		return true
	}
	return false
}

// IsValidConflictType checks if the conflict type is a known choice
func IsValidConflictType(conflictType string) bool {
	switch conflictType {
	case ConflictTypeNeighborhood, ConflictTypeIndividual, ConflictTypeCommunity,
		ConflictTypeMinorOffense, ConflictTypePatrimonial, ConflictTypeOther:
		return true
	}
	return false
}

// IsValidResolutionMethod checks if the tag is a known resolution method
func IsValidResolutionMethod(method string) bool {
	switch method {
	case ResolutionConciliation, ResolutionMediation, ResolutionEquity, ResolutionOther:
		return true
	}
	return false
}

// IsValidLocationBlock checks if the tag is a known location block
func IsValidLocationBlock(block string) bool {
	for _, b := range LocationBlockChoices {
		if b == block {
			return true
		}
	}
	return false
}

// ConflictTypeLabel returns the human-readable label for a conflict type
func ConflictTypeLabel(conflictType string) string {
	switch conflictType {
	case ConflictTypeNeighborhood:
		return "Vecinal"
	case ConflictTypeIndividual:
		return "Individual"
	case ConflictTypeCommunity:
		return "Comunitario"
	case ConflictTypeMinorOffense:
		return "Contravención sin privación de libertad"
	case ConflictTypePatrimonial:
		return "Obligaciones patrimoniales hasta cinco salarios básicos"
	case ConflictTypeOther:
		return "Otro"
	}
	return conflictType
}

// StatusLabel returns the human-readable label for a case status
func StatusLabel(status string) string {
	switch status {
	case CaseStatusRegistered:
		return "Registrado"
	case CaseStatusInProgress:
		return "En trámite"
	case CaseStatusResolved:
		return "Resuelto"
	case CaseStatusClosed:
		return "Cerrado"
	}
	return status
}
