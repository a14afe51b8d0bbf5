package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"community_justice_go/db"
	"community_justice_go/middleware"
	"community_justice_go/models"
	"community_justice_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ListPendingUsersHandler returns profiles awaiting approval
func ListPendingUsersHandler(c echo.Context) error {
	profiles, err := services.PendingProfiles(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch pending users",
		})
	}
	return c.JSON(http.StatusOK, profiles)
}

// ApproveUserHandler approves a pending profile, making the requested role
// authoritative
func ApproveUserHandler(c echo.Context) error {
	profile, err := services.ApproveUser(db.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "El usuario no existe.")
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to approve user",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Usuario '" + profile.FullName + " " + profile.LastName + "' aprobado.",
		"profile": profile,
	})
}

// RejectUserHandler deletes a pending profile and its account
func RejectUserHandler(c echo.Context) error {
	if err := services.RejectUser(db.DB, c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "El usuario no existe.")
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to reject user",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Usuario rechazado y eliminado correctamente.",
	})
}

// ListCasesHandler returns all cases with the administrator filters:
// status, judge, date range and free search over identifying numbers
func ListCasesHandler(c echo.Context) error {
	query := db.DB.Model(&models.Case{}).Preload("Judge").Order("date_registered DESC")

	if status := c.QueryParam("status"); status != "" && models.IsValidCaseStatus(status) {
		query = query.Where("status = ?", status)
	}
	if judge := c.QueryParam("judge"); judge != "" {
		query = query.Joins("JOIN users ON users.id = cases.judge_id").
			Where("users.username LIKE ?", "%"+judge+"%")
	}
	if dateFrom := c.QueryParam("date_from"); dateFrom != "" {
		if parsed, err := time.Parse("2006-01-02", dateFrom); err == nil {
			query = query.Where("date_registered >= ?", parsed)
		}
	}
	if dateTo := c.QueryParam("date_to"); dateTo != "" {
		if parsed, err := time.Parse("2006-01-02", dateTo); err == nil {
			// Include the entire end day
			query = query.Where("date_registered < ?", parsed.Add(24*time.Hour))
		}
	}
	if q := c.QueryParam("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"case_number LIKE ? OR applicant_id LIKE ? OR involved_id LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var cases []models.Case
	if err := query.Find(&cases).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	return c.JSON(http.StatusOK, cases)
}

// AdminGetCaseHandler returns any case with its deadline state
func AdminGetCaseHandler(c echo.Context) error {
	kase, err := findCase(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"case":     kase,
		"deadline": services.BuildDeadline(kase, time.Now()),
	})
}

// EditCaseHandler lets an administrator modify any case field except the
// case number, which never changes after creation
func EditCaseHandler(c echo.Context) error {
	kase, err := findCase(c.Param("id"))
	if err != nil {
		return err
	}

	input := new(services.CaseInput)
	if err := c.Bind(input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	actor := middleware.GetActor(c)
	if err := services.UpdateCase(db.DB, kase, input, actor); err != nil {
		if verr, ok := services.AsValidationError(err); ok {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":  "Por favor corrige los errores del formulario.",
				"fields": verr.Fields,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update case",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Caso " + kase.CaseNumber + " actualizado correctamente.",
		"case":    kase,
	})
}

// AdminCaseStatusHandler lets an administrator set any valid status
func AdminCaseStatusHandler(c echo.Context) error {
	kase, err := findCase(c.Param("id"))
	if err != nil {
		return err
	}

	req := new(StatusRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	actor := middleware.GetActor(c)
	if err := services.TransitionStatus(db.DB, kase, req.Status, actor); err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Estado no válido.",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update case status",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Estado del caso actualizado a: " + models.StatusLabel(kase.Status),
		"case":    kase,
	})
}

// DeleteCaseHandler removes a case; the deletion is audited
func DeleteCaseHandler(c echo.Context) error {
	kase, err := findCase(c.Param("id"))
	if err != nil {
		return err
	}

	actor := middleware.GetActor(c)
	if err := services.DeleteCase(db.DB, kase, actor); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete case",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Caso " + kase.CaseNumber + " eliminado correctamente.",
	})
}

// StatsHandler returns the aggregate case statistics
func StatsHandler(c echo.Context) error {
	stats, err := services.ComputeCaseStats(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to compute statistics",
		})
	}
	return c.JSON(http.StatusOK, stats)
}

// GetSettingsHandler returns the platform branding configuration
func GetSettingsHandler(c echo.Context) error {
	settings, err := services.LoadSettings(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to load settings",
		})
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettingsHandler applies branding changes
func UpdateSettingsHandler(c echo.Context) error {
	input := new(services.SettingsInput)
	if err := c.Bind(input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	settings, err := services.UpdateSettings(db.DB, input)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update settings",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Configuración actualizada correctamente.",
		"settings": settings,
	})
}

// UploadSettingsImageHandler stores a branding image (logo or header)
func UploadSettingsImageHandler(c echo.Context) error {
	field := c.Param("field")
	if field != "logo" && field != "header_image" {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown settings image")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Missing file",
		})
	}

	key := "settings/" + field + "_" + uuid.New().String() + filepath.Ext(file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to store file",
		})
	}

	settings, err := services.UpdateSettingsImage(db.DB, field, result.Key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update settings",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Configuración actualizada correctamente.",
		"settings": settings,
	})
}

// ServeSettingsImageHandler streams a stored branding image
func ServeSettingsImageHandler(c echo.Context) error {
	settings, err := services.LoadSettings(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to load settings",
		})
	}

	var key string
	switch c.Param("field") {
	case "logo":
		key = settings.LogoKey
	case "header_image":
		key = settings.HeaderImageKey
	}
	if key == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Image not set")
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Image not found")
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, contentType, reader)
}
