package middleware

import (
	"testing"

	"community_justice_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCanJudge(t *testing.T) {
	assert.True(t, Can(models.RoleJudge, ActionRegisterCase))
	assert.True(t, Can(models.RoleJudge, ActionViewOwnCases))
	assert.True(t, Can(models.RoleJudge, ActionProgressCase))

	// Administrator actions are out of reach
	assert.False(t, Can(models.RoleJudge, ActionViewAllCases))
	assert.False(t, Can(models.RoleJudge, ActionEditAnyCase))
	assert.False(t, Can(models.RoleJudge, ActionDeleteCase))
	assert.False(t, Can(models.RoleJudge, ActionExportCases))
	assert.False(t, Can(models.RoleJudge, ActionApproveUsers))
	assert.False(t, Can(models.RoleJudge, ActionManageSettings))
}

func TestCanAdmin(t *testing.T) {
	assert.True(t, Can(models.RoleAdmin, ActionViewAllCases))
	assert.True(t, Can(models.RoleAdmin, ActionEditAnyCase))
	assert.True(t, Can(models.RoleAdmin, ActionDeleteCase))
	assert.True(t, Can(models.RoleAdmin, ActionExportCases))
	assert.True(t, Can(models.RoleAdmin, ActionApproveUsers))
	assert.True(t, Can(models.RoleAdmin, ActionViewAuditLog))
	assert.True(t, Can(models.RoleAdmin, ActionManageSettings))
	assert.True(t, Can(models.RoleAdmin, ActionViewStats))

	// Registering cases is a judge concern
	assert.False(t, Can(models.RoleAdmin, ActionRegisterCase))
}

func TestCanUnknownOrEmptyRole(t *testing.T) {
	// An unapproved user carries an empty role and may do nothing
	assert.False(t, Can("", ActionViewOwnCases))
	assert.False(t, Can("", ActionRegisterCase))
	assert.False(t, Can("ciudadano", ActionRegisterCase))
}
