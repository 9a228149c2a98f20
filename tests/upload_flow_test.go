// Package tests contains integration tests for scan processing workflows
package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/app/services"
	businessflow "github.com/aztec-interiors/fitflow/business_flow"
	"github.com/aztec-interiors/fitflow/config"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	testingutil "github.com/aztec-interiors/fitflow/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingExporter satisfies both exporter interfaces and always errors
type failingExporter struct{}

func (failingExporter) Export(map[string]*string) (string, error) {
	return "", errors.New("disk full")
}

func TestUploadFlow(t *testing.T) {
	testingutil.RunWithDB(t, func(testDB *testingutil.TestDB) {
		submissionRepo := repository.NewFormSubmissionRepository(testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		newFlow := func(vision services.VisionService, formatter services.FormatterService, pdf services.PDFExporter, excel services.ExcelExporter) businessflow.UploadFlow {
			cfg := &config.ExportConfig{
				UploadDir: t.TempDir(),
				PDFDir:    t.TempDir(),
				ExcelDir:  t.TempDir(),
			}
			return businessflow.NewUploadFlow(vision, formatter, pdf, excel, submissionRepo, cfg)
		}

		scanRequest := func(name string) *dto.ProcessScanRequest {
			content := "scanned page bytes"
			return &dto.ProcessScanRequest{
				File:             strings.NewReader(content),
				OriginalFilename: name,
				FileSize:         int64(len(content)),
			}
		}

		t.Run("BlankScanYieldsEmptyForm", func(t *testing.T) {
			// A page with no detectable text is a valid scan. The structuring
			// provider is never called; the form comes back all-null.
			flow := newFlow(
				&services.MockVisionService{Text: ""},
				&services.MockFormatterService{Err: errors.New("structuring must not run")},
				services.NewPDFExporter(t.TempDir()),
				services.NewExcelExporter(t.TempDir()),
			)

			resp, err := flow.ProcessScan(context.Background(), scanRequest("blank.png"), metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			require.Len(t, resp.StructuredData, len(models.FormColumns))
			for column, value := range resp.StructuredData {
				assert.Nil(t, value, "column %s should be null", column)
			}
			assert.NotEmpty(t, resp.PDFURL)
			assert.NotEmpty(t, resp.ExcelURL)
			assert.NotZero(t, resp.Submission.ID)
		})

		t.Run("ExportFailureSurfaces", func(t *testing.T) {
			name := "Jane Smith"
			flow := newFlow(
				&services.MockVisionService{Text: "Customer Name: Jane Smith"},
				&services.MockFormatterService{Data: map[string]*string{"customer_name": &name}},
				failingExporter{},
				services.NewExcelExporter(t.TempDir()),
			)

			resp, err := flow.ProcessScan(context.Background(), scanRequest("survey.jpg"), metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), "Failed to generate PDF")
		})

		t.Run("UnsupportedFileType", func(t *testing.T) {
			flow := newFlow(
				&services.MockVisionService{Text: "irrelevant"},
				&services.MockFormatterService{},
				services.NewPDFExporter(t.TempDir()),
				services.NewExcelExporter(t.TempDir()),
			)

			resp, err := flow.ProcessScan(context.Background(), scanRequest("survey.txt"), metadata)
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, businessflow.IsUnsupportedFileType(err))
		})
	})
}
