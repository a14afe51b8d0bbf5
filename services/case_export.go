package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"community_justice_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// exportHeader is the column set of both tabular exports
var exportHeader = []string{
	"Número de Caso", "Fecha de Registro", "Solicitante", "Cédula Solicitante",
	"Involucrado", "Cédula Involucrado", "Lugar", "Tipo de Conflicto",
	"Bloque(s)", "Otro bloque", "Valor Estimado", "Estado", "Juez Asignado",
	"Prórroga", "Observaciones",
}

// exportRow flattens a case into the export column order
func exportRow(c *models.Case) []string {
	estimatedValue := ""
	if c.EstimatedValue != nil {
		estimatedValue = strconv.FormatFloat(*c.EstimatedValue, 'f', 2, 64)
	}

	extension := "No"
	if c.ExtensionGranted {
		extension = "Sí"
	}

	return []string{
		c.CaseNumber,
		c.DateRegistered.Format("02/01/2006 15:04"),
		c.ApplicantName,
		c.ApplicantID,
		c.InvolvedName,
		c.InvolvedID,
		c.Location,
		models.ConflictTypeLabel(c.ConflictType),
		c.LocationBlocks,
		c.OtherLocationBlock,
		estimatedValue,
		models.StatusLabel(c.Status),
		c.Judge.Username,
		extension,
		c.Notes,
	}
}

// ExportCasesCSV streams all cases as CSV, newest first, in batches to
// keep memory bounded
func ExportCasesCSV(db *gorm.DB, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	var cases []models.Case
	result := db.Model(&models.Case{}).
		Preload("Judge").
		Order("date_registered DESC").
		FindInBatches(&cases, 100, func(tx *gorm.DB, batch int) error {
			for i := range cases {
				if err := writer.Write(exportRow(&cases[i])); err != nil {
					return err
				}
			}
			return nil
		})

	return result.Error
}

// ExportCasesXLSX builds an Excel workbook with the same case table
func ExportCasesXLSX(db *gorm.DB) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Casos"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	var cases []models.Case
	result := db.Model(&models.Case{}).
		Preload("Judge").
		Order("date_registered DESC").
		FindInBatches(&cases, 100, func(tx *gorm.DB, batch int) error {
			for i := range cases {
				for col, value := range exportRow(&cases[i]) {
					cell, _ := excelize.CoordinatesToCellName(col+1, row)
					f.SetCellValue(sheet, cell, value)
				}
				row++
			}
			return nil
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to export cases: %w", result.Error)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
