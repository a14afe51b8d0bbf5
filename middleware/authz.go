package middleware

import (
	"net/http"

	"community_justice_go/models"

	"github.com/labstack/echo/v4"
)

// Action names every role-gated operation in the system. Authorization is
// decided in one place (Can) instead of ad-hoc role checks per handler.
type Action string

const (
	ActionRegisterCase   Action = "case:register"
	ActionViewOwnCases   Action = "case:view_own"
	ActionViewAllCases   Action = "case:view_all"
	ActionProgressCase   Action = "case:progress"
	ActionEditAnyCase    Action = "case:edit_any"
	ActionDeleteCase     Action = "case:delete"
	ActionExportCases    Action = "case:export"
	ActionApproveUsers   Action = "user:approve"
	ActionViewAuditLog   Action = "audit:view"
	ActionManageSettings Action = "settings:manage"
	ActionViewStats      Action = "stats:view"
)

// permissions is the closed authorization table
var permissions = map[string]map[Action]bool{
	models.RoleJudge: {
		ActionRegisterCase: true,
		ActionViewOwnCases: true,
		ActionProgressCase: true,
	},
	models.RoleAdmin: {
		ActionViewAllCases:   true,
		ActionEditAnyCase:    true,
		ActionDeleteCase:     true,
		ActionExportCases:    true,
		ActionApproveUsers:   true,
		ActionViewAuditLog:   true,
		ActionManageSettings: true,
		ActionViewStats:      true,
	},
}

// Can reports whether a role may perform an action
func Can(role string, action Action) bool {
	return permissions[role][action]
}

// RequirePermission is middleware gating a route on the central table
func RequirePermission(action Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if !Can(user.Role(), action) {
				return echo.NewHTTPError(http.StatusForbidden, "Acceso denegado.")
			}
			return next(c)
		}
	}
}
