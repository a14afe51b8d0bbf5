package handlers

import (
	"net/http"

	"community_justice_go/db"
	"community_justice_go/middleware"
	"community_justice_go/models"
	"community_justice_go/services"

	"github.com/labstack/echo/v4"
)

// RegisterHandler creates a citizen account with a pending role request.
// The administrator reviews the request before any role takes effect.
func RegisterHandler(c echo.Context) error {
	input := new(services.RegistrationInput)
	if err := c.Bind(input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	user, err := services.RegisterUser(db.DB, input)
	if err != nil {
		if verr, ok := services.AsValidationError(err); ok {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":  "Por favor corrige los errores del formulario.",
				"fields": verr.Fields,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to register user",
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Tu solicitud ha sido enviada. El administrador revisará tu registro.",
		"user":    user,
	})
}

// LoginRequest is the login form payload
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginHandler validates credentials and opens a session
func LoginHandler(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	var user models.User
	err := db.DB.Preload("Profile").Where("username = ?", req.Username).First(&user).Error
	if err != nil || !services.CheckPassword(req.Password, user.Password) {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Usuario o contraseña incorrectos",
		})
	}

	if !user.IsActive {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Cuenta desactivada",
		})
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create session",
		})
	}

	middleware.SetSessionCookie(c, session.Token, int(services.DefaultSessionDuration.Seconds()))
	services.RecordLogin(db.DB, user.ID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": user,
		"role": user.Role(),
	})
}

// LogoutHandler destroys the current session
func LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		_ = services.DestroySession(db.DB, cookie.Value)
	}
	middleware.ClearSessionCookie(c)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Has cerrado sesión correctamente.",
	})
}

// GetCurrentUserHandler returns the authenticated user and role
func GetCurrentUserHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": user,
		"role": user.Role(),
	})
}
