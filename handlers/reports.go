package handlers

import (
	"net/http"
	"time"

	"community_justice_go/db"
	"community_justice_go/services"

	"github.com/labstack/echo/v4"
)

// ExportCasesCSVHandler streams every registered case as a CSV download
func ExportCasesCSVHandler(c echo.Context) error {
	filename := "casos_" + time.Now().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)

	// The header is already sent, so a failure mid-stream can only be
	// logged and surfaced as a truncated download
	if err := services.ExportCasesCSV(db.DB, c.Response()); err != nil {
		c.Logger().Errorf("CSV export failed: %v", err)
		return err
	}
	return nil
}

// ExportCasesXLSXHandler builds the spreadsheet in memory and sends it
func ExportCasesXLSXHandler(c echo.Context) error {
	buf, err := services.ExportCasesXLSX(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate export",
		})
	}

	filename := "casos_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
