package handlers

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/app/middleware"
	businessflow "github.com/aztec-interiors/fitflow/business_flow"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// UploadHandlerInterface defines the contract for scan upload and export handlers
type UploadHandlerInterface interface {
	ProcessScan(c fiber.Ctx) error
	GeneratePDF(c fiber.Ctx) error
	GenerateExcel(c fiber.Ctx) error
	DownloadPDF(c fiber.Ctx) error
	DownloadExcel(c fiber.Ctx) error
}

// UploadHandler handles scan upload, export and download HTTP requests
type UploadHandler struct {
	flow      businessflow.UploadFlow
	validator *validator.Validate
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(flow businessflow.UploadFlow) *UploadHandler {
	return &UploadHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *UploadHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *UploadHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Process Scan
// @Description Upload a scanned survey form image. The image is OCR'd, the text
// is structured into the survey schema and PDF/Excel exports are generated.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Scanned form image (png, jpg, jpeg, gif, bmp, tiff, webp)"
// @Success 201 {object} dto.APIResponse{data=dto.ProcessScanResponse} "Scan processed successfully"
// @Failure 400 {object} dto.APIResponse "No file or unsupported file type"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/upload [post]
func (h *UploadHandler) ProcessScan(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid multipart form", "INVALID_REQUEST", err.Error())
	}

	fileHeader := getFirstFile(form, "file")
	if fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "No file uploaded", "NO_FILE_UPLOADED", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read uploaded file", "INVALID_REQUEST", nil)
	}
	defer file.Close()

	req := &dto.ProcessScanRequest{
		File:             file,
		OriginalFilename: fileHeader.Filename,
		FileSize:         fileHeader.Size,
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	ctx := h.createRequestContextWithTimeout(c, "/api/v1/upload", 120*time.Second)
	result, err := h.flow.ProcessScan(ctx, req, metadata)
	if err != nil {
		if businessflow.IsUnsupportedFileType(err) {
			middleware.RecordScanOutcome("rejected")
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unsupported file type", "UNSUPPORTED_FILE_TYPE", nil)
		}
		middleware.RecordScanOutcome("failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process scan", "SCAN_PROCESSING_FAILED", nil)
	}

	middleware.RecordScanOutcome("ok")
	return h.SuccessResponse(c, fiber.StatusCreated, "Scan processed successfully", result)
}

// Generate PDF
// @Description Render form data into a PDF document. Either a stored submission
// ID or inline form data must be supplied.
// @Tags Uploads
// @Accept json
// @Produce json
// @Param request body dto.GenerateExportRequest true "Submission ID or inline form data"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateExportResponse} "PDF generated successfully"
// @Failure 400 {object} dto.APIResponse "Missing form data"
// @Failure 404 {object} dto.APIResponse "Submission not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/generate-pdf [post]
func (h *UploadHandler) GeneratePDF(c fiber.Ctx) error {
	var req dto.GenerateExportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.GeneratePDF(h.createRequestContext(c, "/api/v1/generate-pdf"), &req, metadata)
	if err != nil {
		return h.exportError(c, err, "Failed to generate PDF", "PDF_GENERATION_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "PDF generated successfully", result)
}

// Generate Excel
// @Description Render form data into an Excel workbook. Either a stored
// submission ID or inline form data must be supplied.
// @Tags Uploads
// @Accept json
// @Produce json
// @Param request body dto.GenerateExportRequest true "Submission ID or inline form data"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateExportResponse} "Excel generated successfully"
// @Failure 400 {object} dto.APIResponse "Missing form data"
// @Failure 404 {object} dto.APIResponse "Submission not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/generate-excel [post]
func (h *UploadHandler) GenerateExcel(c fiber.Ctx) error {
	var req dto.GenerateExportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.GenerateExcel(h.createRequestContext(c, "/api/v1/generate-excel"), &req, metadata)
	if err != nil {
		return h.exportError(c, err, "Failed to generate Excel", "EXCEL_GENERATION_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Excel generated successfully", result)
}

// Download PDF
// @Description Download a previously generated PDF export by filename
// @Tags Uploads
// @Produce application/pdf
// @Param filename path string true "Export filename"
// @Success 200 {file} file "PDF file"
// @Failure 404 {object} dto.APIResponse "Export not found"
// @Router /api/v1/download/{filename} [get]
func (h *UploadHandler) DownloadPDF(c fiber.Ctx) error {
	return h.download(c, "pdf")
}

// Download Excel
// @Description Download a previously generated Excel export by filename
// @Tags Uploads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param filename path string true "Export filename"
// @Success 200 {file} file "Excel file"
// @Failure 404 {object} dto.APIResponse "Export not found"
// @Router /api/v1/download-excel/{filename} [get]
func (h *UploadHandler) DownloadExcel(c fiber.Ctx) error {
	return h.download(c, "excel")
}

func (h *UploadHandler) download(c fiber.Ctx, kind string) error {
	filename := c.Params("filename")
	path, err := h.flow.ResolveDownload(kind, filename)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Export not found", "EXPORT_NOT_FOUND", nil)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendFile(path)
}

func (h *UploadHandler) exportError(c fiber.Ctx, err error, message, fallbackCode string) error {
	if businessflow.IsFormDataRequired(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Form data is required", "FORM_DATA_REQUIRED", nil)
	}
	if businessflow.IsFormSubmissionNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Form submission not found", "SUBMISSION_NOT_FOUND", nil)
	}
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, fallbackCode, nil)
}

// getFirstFile returns the first uploaded file under the given form key
func getFirstFile(form *multipart.Form, key string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	files := form.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func (h *UploadHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *UploadHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
