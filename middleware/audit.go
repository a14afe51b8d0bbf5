package middleware

import (
	"community_justice_go/services"

	"github.com/labstack/echo/v4"
)

const ContextKeyActor = "audit_actor"

// AuditActor is middleware that captures the acting user for audit logging
func AuditActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyActor, services.ActorFromUser(GetCurrentUser(c)))
			return next(c)
		}
	}
}

// GetActor retrieves the audit actor from the request context
func GetActor(c echo.Context) services.Actor {
	if actor, ok := c.Get(ContextKeyActor).(services.Actor); ok {
		return actor
	}
	return services.ActorFromUser(GetCurrentUser(c))
}
