package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeTags(t *testing.T) {
	tags := []string{"mediacion", "otro"}
	encoded := EncodeTags(tags)
	assert.Equal(t, "mediacion, otro", encoded)
	// Round trip preserves order
	assert.Equal(t, tags, DecodeTags(encoded))
}

func TestDecodeTagsEmpty(t *testing.T) {
	assert.Equal(t, []string{}, DecodeTags(""))
}

func TestDecodeTagsTrimsAndSkipsBlanks(t *testing.T) {
	assert.Equal(t, []string{"bloque_1", "bloque_2"}, DecodeTags("bloque_1,  bloque_2"))
	assert.Equal(t, []string{"bloque_1"}, DecodeTags("bloque_1, ,"))
}

func TestEncodeTagsKeepsDuplicates(t *testing.T) {
	// No dedup is applied; the submission is stored as-is
	assert.Equal(t, "conciliacion, conciliacion", EncodeTags([]string{"conciliacion", "conciliacion"}))
}

func TestIsValidCaseStatus(t *testing.T) {
	for _, status := range []string{CaseStatusRegistered, CaseStatusInProgress, CaseStatusResolved, CaseStatusClosed} {
		assert.True(t, IsValidCaseStatus(status), status)
	}
	assert.False(t, IsValidCaseStatus("archivado"))
	assert.False(t, IsValidCaseStatus(""))
}

func TestIsValidConflictType(t *testing.T) {
	assert.True(t, IsValidConflictType(ConflictTypeNeighborhood))
	assert.True(t, IsValidConflictType(ConflictTypeOther))
	assert.False(t, IsValidConflictType("laboral"))
}

func TestIsValidResolutionMethod(t *testing.T) {
	assert.True(t, IsValidResolutionMethod(ResolutionConciliation))
	assert.True(t, IsValidResolutionMethod(ResolutionMediation))
	assert.True(t, IsValidResolutionMethod(ResolutionEquity))
	assert.True(t, IsValidResolutionMethod(ResolutionOther))
	assert.False(t, IsValidResolutionMethod("arbitraje"))
}

func TestIsValidLocationBlock(t *testing.T) {
	assert.True(t, IsValidLocationBlock("bloque_1"))
	assert.True(t, IsValidLocationBlock("bloque_5"))
	assert.True(t, IsValidLocationBlock(TagOther))
	assert.False(t, IsValidLocationBlock("bloque_6"))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Registrado", StatusLabel(CaseStatusRegistered))
	assert.Equal(t, "En trámite", StatusLabel(CaseStatusInProgress))
	assert.Equal(t, "Resuelto", StatusLabel(CaseStatusResolved))
	assert.Equal(t, "Cerrado", StatusLabel(CaseStatusClosed))
	// Unknown values fall through unchanged
	assert.Equal(t, "x", StatusLabel("x"))
}

func TestConflictTypeLabel(t *testing.T) {
	assert.Equal(t, "Vecinal", ConflictTypeLabel(ConflictTypeNeighborhood))
	assert.Equal(t, "Otro", ConflictTypeLabel(ConflictTypeOther))
}
