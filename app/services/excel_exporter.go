// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders structured form data into an Excel workbook
type ExcelExporter interface {
	// Export writes a workbook of the form data and returns the generated filename
	Export(data map[string]*string) (filename string, err error)
}

// ExcelExporterImpl implements ExcelExporter using excelize
type ExcelExporterImpl struct {
	outputDir string
}

// NewExcelExporter creates an Excel exporter writing into outputDir
func NewExcelExporter(outputDir string) ExcelExporter {
	return &ExcelExporterImpl{outputDir: outputDir}
}

const formSheetName = "Survey Form"

func (e *ExcelExporterImpl) Export(data map[string]*string) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create Excel output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(formSheetName)
	if err != nil {
		return "", fmt.Errorf("failed to create worksheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default worksheet: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9D9D9"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create section style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create label style: %w", err)
	}

	_ = f.SetColWidth(formSheetName, "A", "A", 32)
	_ = f.SetColWidth(formSheetName, "B", "B", 48)

	row := 1
	f.SetCellValue(formSheetName, fmt.Sprintf("A%d", row), "Customer Survey Form")
	row++
	f.SetCellValue(formSheetName, fmt.Sprintf("A%d", row), "Generated")
	f.SetCellValue(formSheetName, fmt.Sprintf("B%d", row), utils.UTCNowFormat("2006-01-02 15:04")+" UTC")
	row += 2

	for _, section := range models.FormSections {
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(formSheetName, cell, section.Title)
		_ = f.SetCellStyle(formSheetName, cell, fmt.Sprintf("B%d", row), sectionStyle)
		row++

		for _, field := range section.Fields {
			labelCell := fmt.Sprintf("A%d", row)
			f.SetCellValue(formSheetName, labelCell, models.FieldDisplayName(field))
			_ = f.SetCellStyle(formSheetName, labelCell, labelCell, labelStyle)
			if v := data[field]; v != nil {
				f.SetCellValue(formSheetName, fmt.Sprintf("B%d", row), *v)
			}
			row++
		}
		row++
	}

	e.writeSummarySheet(f, data)

	filename := fmt.Sprintf("form_%s.xlsx", utils.UTCNowFormat("20060102_150405"))
	fullPath := filepath.Join(e.outputDir, filename)
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to write workbook: %w", err)
	}
	return filename, nil
}

// writeSummarySheet adds a flat two-column sheet with every form column,
// filled or not, for spreadsheet imports downstream.
func (e *ExcelExporterImpl) writeSummarySheet(f *excelize.File, data map[string]*string) {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return
	}
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 48)

	f.SetCellValue(sheet, "A1", "Field")
	f.SetCellValue(sheet, "B1", "Value")
	for i, column := range models.FormColumns {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), column)
		if v := data[column]; v != nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), *v)
		}
	}
}
