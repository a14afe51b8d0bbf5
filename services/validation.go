package services

import (
	"strings"

	"community_justice_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all markup from free-text fields before persistence
var textPolicy = bluemonday.StrictPolicy()

// CaseInput carries the already-decoded form values for registering or
// updating a case. Multi-select fields arrive as slices in submission order.
type CaseInput struct {
	ApplicantName  string   `json:"applicant_name" form:"applicant_name"`
	ApplicantID    string   `json:"applicant_id" form:"applicant_id"`
	ApplicantPhone string   `json:"applicant_phone" form:"applicant_phone"`
	ApplicantEmail string   `json:"applicant_email" form:"applicant_email"`
	InvolvedName   string   `json:"involved_name" form:"involved_name"`
	InvolvedID     string   `json:"involved_id" form:"involved_id"`

	ConflictDescription string   `json:"conflict_description" form:"conflict_description"`
	Location            string   `json:"location" form:"location"`
	ConflictType        string   `json:"conflict_type" form:"conflict_type"`
	OtherConflictType   string   `json:"other_conflict_type" form:"other_conflict_type"`
	EstimatedValue      *float64 `json:"estimated_value" form:"estimated_value"`

	ResolutionMethods     []string `json:"resolution_method" form:"resolution_method"`
	OtherResolutionMethod string   `json:"other_resolution_method" form:"other_resolution_method"`
	LocationBlocks        []string `json:"location_blocks" form:"location_blocks"`
	OtherLocationBlock    string   `json:"other_location_block" form:"other_location_block"`

	Notes string `json:"notes" form:"notes"`
}

// ValidateCaseInput checks the case form fields and returns field-level
// messages. A nil return means the input is acceptable.
func ValidateCaseInput(input *CaseInput) *ValidationError {
	fields := map[string]string{}

	if strings.TrimSpace(input.ApplicantName) == "" {
		fields["applicant_name"] = "El nombre del solicitante es obligatorio."
	}
	if strings.TrimSpace(input.ApplicantID) == "" {
		fields["applicant_id"] = "La cédula del solicitante es obligatoria."
	}
	if strings.TrimSpace(input.InvolvedName) == "" {
		fields["involved_name"] = "El nombre del involucrado es obligatorio."
	}
	if strings.TrimSpace(input.ConflictDescription) == "" {
		fields["conflict_description"] = "La descripción del conflicto es obligatoria."
	}
	if strings.TrimSpace(input.Location) == "" {
		fields["location"] = "El lugar del conflicto es obligatorio."
	}

	if input.ConflictType == "" {
		fields["conflict_type"] = "El tipo de conflicto es obligatorio."
	} else if !models.IsValidConflictType(input.ConflictType) {
		fields["conflict_type"] = "Tipo de conflicto no válido."
	} else if input.ConflictType == models.ConflictTypeOther && strings.TrimSpace(input.OtherConflictType) == "" {
		fields["other_conflict_type"] = "Debe especificar el otro tipo de conflicto."
	}

	for _, method := range input.ResolutionMethods {
		if !models.IsValidResolutionMethod(method) {
			fields["resolution_method"] = "Medio de resolución no válido: " + method
			break
		}
	}
	if containsTag(input.ResolutionMethods, models.TagOther) && strings.TrimSpace(input.OtherResolutionMethod) == "" {
		fields["other_resolution_method"] = "Debe especificar el otro medio de resolución."
	}

	for _, block := range input.LocationBlocks {
		if !models.IsValidLocationBlock(block) {
			fields["location_blocks"] = "Bloque no válido: " + block
			break
		}
	}
	if containsTag(input.LocationBlocks, models.TagOther) && strings.TrimSpace(input.OtherLocationBlock) == "" {
		fields["other_location_block"] = "Debe especificar el otro bloque."
	}

	if input.EstimatedValue != nil && *input.EstimatedValue < 0 {
		fields["estimated_value"] = "El valor aproximado no puede ser negativo."
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

// containsTag reports whether the tag list includes the given tag
func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SanitizeText strips markup from a free-text field
func SanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
