// Package businessflow contains the core business logic and use cases for scan processing workflows
package businessflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/app/services"
	"github.com/aztec-interiors/fitflow/config"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	_ "image/gif"
	_ "image/png"
)

// UploadFlow handles scanned survey forms: OCR, structuring and document exports
type UploadFlow interface {
	ProcessScan(ctx context.Context, request *dto.ProcessScanRequest, metadata *ClientMetadata) (*dto.ProcessScanResponse, error)
	GeneratePDF(ctx context.Context, request *dto.GenerateExportRequest, metadata *ClientMetadata) (*dto.GenerateExportResponse, error)
	GenerateExcel(ctx context.Context, request *dto.GenerateExportRequest, metadata *ClientMetadata) (*dto.GenerateExportResponse, error)
	// ResolveDownload maps a generated filename back to a path on disk.
	// kind is "pdf" or "excel".
	ResolveDownload(kind, filename string) (string, error)
}

// UploadFlowImpl implements the upload business flow
type UploadFlowImpl struct {
	visionService    services.VisionService
	formatterService services.FormatterService
	pdfExporter      services.PDFExporter
	excelExporter    services.ExcelExporter
	submissionRepo   repository.FormSubmissionRepository
	exportConfig     *config.ExportConfig
}

// NewUploadFlow creates a new upload flow instance
func NewUploadFlow(
	visionService services.VisionService,
	formatterService services.FormatterService,
	pdfExporter services.PDFExporter,
	excelExporter services.ExcelExporter,
	submissionRepo repository.FormSubmissionRepository,
	exportConfig *config.ExportConfig,
) UploadFlow {
	return &UploadFlowImpl{
		visionService:    visionService,
		formatterService: formatterService,
		pdfExporter:      pdfExporter,
		excelExporter:    excelExporter,
		submissionRepo:   submissionRepo,
		exportConfig:     exportConfig,
	}
}

const (
	maxScanSize = int64(20 * 1024 * 1024) // 20MB
	maxScanDim  = 2000                    // px, larger scans are downscaled before OCR
)

var allowedScanExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// ProcessScan saves the uploaded image, runs OCR and structuring on it and
// stores the result as an unlinked form submission together with PDF and
// Excel renderings.
func (uf *UploadFlowImpl) ProcessScan(ctx context.Context, request *dto.ProcessScanRequest, metadata *ClientMetadata) (*dto.ProcessScanResponse, error) {
	if request == nil || request.File == nil {
		return nil, NewBusinessError("NO_FILE_UPLOADED", "No file uploaded", ErrNoFileUploaded)
	}

	ext := strings.ToLower(filepath.Ext(request.OriginalFilename))
	if !allowedScanExts[ext] {
		return nil, NewBusinessError("UNSUPPORTED_FILE_TYPE",
			"Allowed file types: png, jpg, jpeg, gif, bmp, tiff, webp", ErrUnsupportedFileType)
	}
	if request.FileSize > maxScanSize {
		return nil, NewBusinessError("FILE_TOO_LARGE", "File size exceeds 20MB", nil)
	}

	storedPath, err := uf.saveScanToDisk(request.File, ext)
	if err != nil {
		return nil, NewBusinessError("SCAN_SAVE_FAILED", "Failed to save uploaded file", err)
	}

	ocrPath, cleanup, err := prepareScanForOCR(storedPath)
	if err != nil {
		// Fall back to the original file when the image cannot be decoded
		ocrPath, cleanup = storedPath, func() {}
	}
	defer cleanup()

	rawText, err := uf.visionService.ExtractText(ctx, ocrPath)
	if err != nil {
		return nil, NewBusinessError("OCR_FAILED", "Failed to extract text from image", err)
	}

	// A blank page is a valid scan; it yields an all-null form without
	// bothering the structuring provider.
	var structured map[string]*string
	if strings.TrimSpace(rawText) == "" {
		structured = services.CoerceFormData(nil)
	} else {
		structured, err = uf.formatterService.StructureText(ctx, rawText)
		if err != nil {
			return nil, NewBusinessError("STRUCTURING_FAILED", "Failed to structure extracted text", err)
		}
	}

	payload, err := json.Marshal(structured)
	if err != nil {
		return nil, NewBusinessError("STRUCTURING_FAILED", "Failed to serialize structured data", err)
	}

	submission := models.FormSubmission{
		Source:  models.FormSourceScan,
		Data:    string(payload),
		RawText: &rawText,
	}

	pdfFile, err := uf.pdfExporter.Export(structured)
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to generate PDF", err)
	}
	submission.PDFPath = &pdfFile
	pdfURL := "/api/v1/download/" + pdfFile

	excelFile, err := uf.excelExporter.Export(structured)
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to generate Excel file", err)
	}
	submission.ExcelPath = &excelFile
	excelURL := "/api/v1/download-excel/" + excelFile

	if err := uf.submissionRepo.Save(ctx, &submission); err != nil {
		return nil, NewBusinessError("SCAN_SAVE_FAILED", "Failed to save form submission", err)
	}

	return &dto.ProcessScanResponse{
		Message:        "Scan processed successfully",
		Submission:     ToFormSubmissionDTO(submission),
		StructuredData: structured,
		PDFURL:         pdfURL,
		ExcelURL:       excelURL,
	}, nil
}

// GeneratePDF renders form data, either stored or supplied inline, into a PDF
func (uf *UploadFlowImpl) GeneratePDF(ctx context.Context, request *dto.GenerateExportRequest, metadata *ClientMetadata) (*dto.GenerateExportResponse, error) {
	data, err := uf.resolveExportData(ctx, request)
	if err != nil {
		return nil, err
	}

	filename, err := uf.pdfExporter.Export(data)
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to generate PDF", err)
	}

	return &dto.GenerateExportResponse{
		Message:     "PDF generated successfully",
		DownloadURL: "/api/v1/download/" + filename,
		Filename:    filename,
	}, nil
}

// GenerateExcel renders form data, either stored or supplied inline, into a workbook
func (uf *UploadFlowImpl) GenerateExcel(ctx context.Context, request *dto.GenerateExportRequest, metadata *ClientMetadata) (*dto.GenerateExportResponse, error) {
	data, err := uf.resolveExportData(ctx, request)
	if err != nil {
		return nil, err
	}

	filename, err := uf.excelExporter.Export(data)
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to generate Excel file", err)
	}

	return &dto.GenerateExportResponse{
		Message:     "Excel file generated successfully",
		DownloadURL: "/api/v1/download-excel/" + filename,
		Filename:    filename,
	}, nil
}

// ResolveDownload validates a generated filename and returns its full path
func (uf *UploadFlowImpl) ResolveDownload(kind, filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", NewBusinessError("EXPORT_NOT_FOUND", "Export file not found", ErrExportNotFound)
	}

	var dir string
	switch kind {
	case "pdf":
		dir = uf.exportConfig.PDFDir
	case "excel":
		dir = uf.exportConfig.ExcelDir
	default:
		return "", NewBusinessError("EXPORT_NOT_FOUND", "Export file not found", ErrExportNotFound)
	}

	fullPath := filepath.Join(dir, filename)
	if _, err := os.Stat(fullPath); err != nil {
		return "", NewBusinessError("EXPORT_NOT_FOUND", "Export file not found", ErrExportNotFound)
	}
	return fullPath, nil
}

// resolveExportData picks the data source for an export: a stored submission
// when SubmissionID is set, the inline form data otherwise.
func (uf *UploadFlowImpl) resolveExportData(ctx context.Context, request *dto.GenerateExportRequest) (map[string]*string, error) {
	if request.SubmissionID != nil {
		submission, err := uf.submissionRepo.ByID(ctx, *request.SubmissionID)
		if err != nil {
			return nil, NewBusinessError("FORM_SUBMISSION_LOOKUP_FAILED", "Failed to look up form submission", err)
		}
		if submission == nil {
			return nil, NewBusinessError("FORM_SUBMISSION_NOT_FOUND", "Form submission not found", ErrFormSubmissionNotFound)
		}
		var data map[string]*string
		if err := json.Unmarshal([]byte(submission.Data), &data); err != nil {
			return nil, NewBusinessError("EXPORT_FAILED", "Failed to parse stored submission data", err)
		}
		return data, nil
	}

	if len(request.FormData) == 0 {
		return nil, NewBusinessError("FORM_DATA_REQUIRED", "Form data is required", ErrFormDataRequired)
	}
	data := make(map[string]*string, len(request.FormData))
	for key, value := range request.FormData {
		v := value
		data[key] = &v
	}
	return data, nil
}

func (uf *UploadFlowImpl) saveScanToDisk(reader io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(uf.exportConfig.UploadDir, 0o755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ext
	fullPath := filepath.Join(uf.exportConfig.UploadDir, filename)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	limited := io.LimitReader(reader, maxScanSize+1)
	written, err := io.Copy(dst, limited)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", err
	}
	if written > maxScanSize {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("file size exceeds %d bytes", maxScanSize)
	}
	return fullPath, nil
}

// prepareScanForOCR downscales oversized scans into a temporary JPEG so the
// OCR request stays within API payload limits. The caller must invoke the
// returned cleanup function.
func prepareScanForOCR(srcPath string) (string, func(), error) {
	file, err := os.Open(srcPath)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", nil, err
	}

	b := img.Bounds()
	if b.Dx() <= maxScanDim && b.Dy() <= maxScanDim {
		return srcPath, func() {}, nil
	}

	var nw, nh int
	if b.Dx() >= b.Dy() {
		nw = maxScanDim
		nh = b.Dy() * maxScanDim / b.Dx()
	} else {
		nh = maxScanDim
		nw = b.Dx() * maxScanDim / b.Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)

	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return "", nil, err
	}

	tmp, err := os.CreateTemp("", "scan-ocr-*.jpg")
	if err != nil {
		return "", nil, err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", nil, err
	}
	tmp.Close()

	return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
}
