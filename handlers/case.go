package handlers

import (
	"errors"
	"net/http"
	"time"

	"community_justice_go/db"
	"community_justice_go/middleware"
	"community_justice_go/models"
	"community_justice_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CreateCaseHandler registers a new case for the authenticated judge
func CreateCaseHandler(c echo.Context) error {
	judge := middleware.GetCurrentUser(c)

	input := new(services.CaseInput)
	if err := c.Bind(input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	kase, err := services.RegisterCase(db.DB, input, judge)
	if err != nil {
		if verr, ok := services.AsValidationError(err); ok {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":  "Por favor corrige los errores del formulario.",
				"fields": verr.Fields,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to register case",
		})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Caso registrado con éxito. Número de caso: " + kase.CaseNumber,
		"case":    kase,
	})
}

// ListMyCasesHandler returns the cases assigned to the authenticated judge
func ListMyCasesHandler(c echo.Context) error {
	judge := middleware.GetCurrentUser(c)

	query := db.DB.Where("judge_id = ?", judge.ID).Order("date_registered DESC")

	if q := c.QueryParam("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("case_number LIKE ? OR applicant_id LIKE ?", pattern, pattern)
	}
	if status := c.QueryParam("status"); status != "" && models.IsValidCaseStatus(status) {
		query = query.Where("status = ?", status)
	}

	var cases []models.Case
	if err := query.Find(&cases).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	return c.JSON(http.StatusOK, cases)
}

// GetCaseHandler returns a case owned by the judge, with its deadline state
func GetCaseHandler(c echo.Context) error {
	kase, err := caseOwnedByJudge(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"case":     kase,
		"deadline": services.BuildDeadline(kase, time.Now()),
	})
}

// StatusRequest is the payload of a status transition
type StatusRequest struct {
	Status string `json:"status" form:"status"`
}

// UpdateCaseStatusHandler moves a case through the workflow. Judges may
// only move into en_tramite, resuelto or cerrado.
func UpdateCaseStatusHandler(c echo.Context) error {
	kase, err := caseOwnedByJudge(c)
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
				"error": "Estado no válido para un Juez de Paz.",
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

// RequestExtensionHandler grants the one-time 15-day extension
func RequestExtensionHandler(c echo.Context) error {
	kase, err := caseOwnedByJudge(c)
	if err != nil {
		return err
	}

	actor := middleware.GetActor(c)
	if err := services.GrantExtension(db.DB, kase, actor); err != nil {
		if errors.Is(err, services.ErrExtensionAlreadyGranted) {
			// Success with no additional effect - a warning, not an error
			return c.JSON(http.StatusOK, map[string]interface{}{
				"warning": "Ya se ha concedido una prórroga para este caso.",
				"case":    kase,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to grant extension",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Prórroga de 15 días concedida. El plazo ahora es de 30 días.",
		"case":    kase,
	})
}

// CaseRecordPDFHandler renders the printable record of a case. Judges may
// print their own cases; administrators any case.
func CaseRecordPDFHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	var kase *models.Case
	var err error
	if middleware.Can(user.Role(), middleware.ActionViewAllCases) {
		kase, err = findCase(c.Param("id"))
	} else {
		kase, err = caseOwnedByJudge(c)
	}
	if err != nil {
		return err
	}

	settings, err := services.LoadSettings(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to load settings",
		})
	}

	pdf, err := services.GenerateCaseRecordPDF(kase, services.BuildDeadline(kase, time.Now()), settings)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate case record",
		})
	}

	c.Response().Header().Set("Content-Disposition", "attachment; filename=acta_"+kase.CaseNumber+".pdf")
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// caseOwnedByJudge resolves the :id parameter to a case owned by the
// requesting judge. A case that exists but belongs to another judge is
// reported as not found, never as forbidden.
func caseOwnedByJudge(c echo.Context) (*models.Case, error) {
	judge := middleware.GetCurrentUser(c)

	var kase models.Case
	err := db.DB.Where("id = ? AND judge_id = ?", c.Param("id"), judge.ID).First(&kase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "El caso no existe o no tienes permiso para verlo.")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch case")
	}
	return &kase, nil
}

// findCase resolves a case by id without ownership scoping
func findCase(id string) (*models.Case, error) {
	var kase models.Case
	err := db.DB.Preload("Judge").First(&kase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "El caso no existe.")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch case")
	}
	return &kase, nil
}
