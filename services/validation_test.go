package services

import (
	"testing"

	"community_justice_go/models"

	"github.com/stretchr/testify/assert"
)

func validCaseInput() *CaseInput {
	return &CaseInput{
		ApplicantName:       "Ana Pérez",
		ApplicantID:         "1234567890",
		InvolvedName:        "Luis Gómez",
		ConflictDescription: "Disputa por linderos entre vecinos",
		Location:            "Bloque 2, casa 14",
		ConflictType:        models.ConflictTypeNeighborhood,
	}
}

func TestValidateCaseInputAccepted(t *testing.T) {
	assert.Nil(t, ValidateCaseInput(validCaseInput()))
}

func TestValidateCaseInputRequiredFields(t *testing.T) {
	verr := ValidateCaseInput(&CaseInput{})
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "applicant_name")
	assert.Contains(t, verr.Fields, "applicant_id")
	assert.Contains(t, verr.Fields, "involved_name")
	assert.Contains(t, verr.Fields, "conflict_description")
	assert.Contains(t, verr.Fields, "location")
	assert.Contains(t, verr.Fields, "conflict_type")
}

func TestValidateCaseInputOtherConflictType(t *testing.T) {
	input := validCaseInput()
	input.ConflictType = models.ConflictTypeOther

	verr := ValidateCaseInput(input)
	assert.NotNil(t, verr)
	assert.Equal(t, "Debe especificar el otro tipo de conflicto.", verr.Fields["other_conflict_type"])

	input.OtherConflictType = "Conflicto escolar"
	assert.Nil(t, ValidateCaseInput(input))
}

func TestValidateCaseInputOtherResolutionMethod(t *testing.T) {
	input := validCaseInput()
	input.ResolutionMethods = []string{models.ResolutionMediation, models.TagOther}

	verr := ValidateCaseInput(input)
	assert.NotNil(t, verr)
	assert.Equal(t, "Debe especificar el otro medio de resolución.", verr.Fields["other_resolution_method"])

	input.OtherResolutionMethod = "Arbitraje comunitario"
	assert.Nil(t, ValidateCaseInput(input))
}

func TestValidateCaseInputOtherLocationBlock(t *testing.T) {
	input := validCaseInput()
	input.LocationBlocks = []string{"bloque_1", models.TagOther}

	verr := ValidateCaseInput(input)
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "other_location_block")
}

func TestValidateCaseInputUnknownTags(t *testing.T) {
	input := validCaseInput()
	input.ResolutionMethods = []string{"telepatia"}
	verr := ValidateCaseInput(input)
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields["resolution_method"], "telepatia")

	input = validCaseInput()
	input.LocationBlocks = []string{"bloque_9"}
	verr = ValidateCaseInput(input)
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "location_blocks")
}

func TestValidateCaseInputNegativeValue(t *testing.T) {
	input := validCaseInput()
	negative := -100.0
	input.EstimatedValue = &negative

	verr := ValidateCaseInput(input)
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "estimated_value")

	zero := 0.0
	input.EstimatedValue = &zero
	assert.Nil(t, ValidateCaseInput(input))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hola", SanitizeText("  hola  "))
	assert.Equal(t, "hola", SanitizeText("<script>alert(1)</script>hola"))
	assert.Equal(t, "negrita", SanitizeText("<b>negrita</b>"))
}
