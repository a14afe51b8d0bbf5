package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestExportCasesCSV(t *testing.T) {
	db := setupCaseTestDB()
	judge := createTestJudge(db, "juez_csv")

	input := validCaseInput()
	value := 1500000.0
	input.EstimatedValue = &value
	kase, err := RegisterCase(db, input, judge)
	assert.NoError(t, err)
	assert.NoError(t, GrantExtension(db, kase, ActorFromUser(judge)))

	var buf bytes.Buffer
	assert.NoError(t, ExportCasesCSV(db, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, exportHeader, records[0])

	row := records[1]
	assert.Equal(t, kase.CaseNumber, row[0])
	assert.Equal(t, "Ana Pérez", row[2])
	assert.Equal(t, "Vecinal", row[7])
	assert.Equal(t, "1500000.00", row[10])
	assert.Equal(t, "Registrado", row[11])
	assert.Equal(t, "juez_csv", row[12])
	assert.Equal(t, "Sí", row[13])
}

func TestExportCasesCSVEmpty(t *testing.T) {
	db := setupCaseTestDB()

	var buf bytes.Buffer
	assert.NoError(t, ExportCasesCSV(db, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	// Header only
	assert.Len(t, records, 1)
}

func TestExportCasesXLSX(t *testing.T) {
	db := setupCaseTestDB()
	judge := createTestJudge(db, "juez_xlsx")
	kase, err := RegisterCase(db, validCaseInput(), judge)
	assert.NoError(t, err)

	buf, err := ExportCasesXLSX(db)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Casos", "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Número de Caso", title)

	number, err := f.GetCellValue("Casos", "A2")
	assert.NoError(t, err)
	assert.Equal(t, kase.CaseNumber, number)
}
