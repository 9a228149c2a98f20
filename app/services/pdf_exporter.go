// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/go-pdf/fpdf"
)

// PDFExporter renders structured form data into a printable PDF
type PDFExporter interface {
	// Export writes a PDF of the form data and returns the generated filename
	Export(data map[string]*string) (filename string, err error)
}

// PDFExporterImpl implements PDFExporter using fpdf
type PDFExporterImpl struct {
	outputDir string
}

// NewPDFExporter creates a PDF exporter writing into outputDir
func NewPDFExporter(outputDir string) PDFExporter {
	return &PDFExporterImpl{outputDir: outputDir}
}

func (e *PDFExporterImpl) Export(data map[string]*string) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create PDF output directory: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Customer Survey Form", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Customer Survey Form", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, "Generated "+utils.UTCNowFormat("2006-01-02 15:04")+" UTC", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, section := range models.FormSections {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, 8, section.Title, "", 1, "L", true, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Helvetica", "", 10)
		for _, field := range section.Fields {
			label := models.FieldDisplayName(field)
			value := ""
			if v := data[field]; v != nil {
				value = *v
			}
			pdf.SetTextColor(80, 80, 80)
			pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(0, 6, value, "", "L", false)
		}
		pdf.Ln(3)
	}

	filename := fmt.Sprintf("form_%s.pdf", utils.UTCNowFormat("20060102_150405"))
	fullPath := filepath.Join(e.outputDir, filename)
	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return filename, nil
}
