package handlers

import (
	"context"
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	businessflow "github.com/aztec-interiors/fitflow/business_flow"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// FormHandlerInterface defines the contract for form link and submission handlers
type FormHandlerInterface interface {
	GenerateFormLink(c fiber.Ctx) error
	ValidateFormToken(c fiber.Ctx) error
	SubmitCustomerForm(c fiber.Ctx) error
	CleanupTokens(c fiber.Ctx) error
	ListSubmissions(c fiber.Ctx) error
	LinkSubmission(c fiber.Ctx) error
}

// FormHandler handles form token and submission HTTP requests
type FormHandler struct {
	flow      businessflow.FormFlow
	validator *validator.Validate
}

// NewFormHandler creates a new form handler
func NewFormHandler(flow businessflow.FormFlow) *FormHandler {
	return &FormHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *FormHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *FormHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Generate Form Link
// @Description Issue a single-use customer form token valid for 24 hours.
// When a job ID is supplied the token is recorded against the job.
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body dto.GenerateFormLinkRequest false "Optional job ID"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateFormLinkResponse} "Form link generated successfully"
// @Failure 404 {object} dto.APIResponse "Job not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/generate-form-link [post]
func (h *FormHandler) GenerateFormLink(c fiber.Ctx) error {
	var req dto.GenerateFormLinkRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
		}
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.GenerateFormLink(h.createRequestContext(c, "/api/v1/generate-form-link"), &req, metadata)
	if err != nil {
		if businessflow.IsJobNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Job not found", "JOB_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate form link", "FORM_LINK_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Form link generated successfully", result)
}

// Validate Form Token
// @Description Check whether a form token can still be used. Expired tokens are
// removed on first validation.
// @Tags Forms
// @Accept json
// @Produce json
// @Param token path string true "Form token"
// @Success 200 {object} dto.APIResponse{data=dto.ValidateFormTokenResponse} "Token is valid"
// @Failure 404 {object} dto.APIResponse "Token not found"
// @Failure 410 {object} dto.APIResponse "Token expired or already used"
// @Router /api/v1/validate-form-token/{token} [get]
func (h *FormHandler) ValidateFormToken(c fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Form token is invalid", "FORM_TOKEN_INVALID", nil)
	}

	result, err := h.flow.ValidateFormToken(h.createRequestContext(c, "/api/v1/validate-form-token/:token"), token)
	if err != nil {
		return h.formTokenError(c, err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Token is valid", result)
}

// Submit Customer Form
// @Description Accept a public customer form submission. Creates a new lead
// customer and stores the raw form payload in one transaction. The token, when
// supplied, is consumed only after the write succeeds.
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body dto.SubmitCustomerFormRequest true "Form payload"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitCustomerFormResponse} "Form submitted successfully"
// @Failure 400 {object} dto.APIResponse "Missing name or address"
// @Failure 404 {object} dto.APIResponse "Token not found"
// @Failure 410 {object} dto.APIResponse "Token expired or already used"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/submit-customer-form [post]
func (h *FormHandler) SubmitCustomerForm(c fiber.Ctx) error {
	var req dto.SubmitCustomerFormRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, getValidationErrorMessage(validationErrors[0]), "VALIDATION_ERROR", nil)
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.SubmitCustomerForm(h.createRequestContext(c, "/api/v1/submit-customer-form"), &req, metadata)
	if err != nil {
		if businessflow.IsFormDataRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Form data is required", "FORM_DATA_REQUIRED", nil)
		}
		if businessflow.IsCustomerNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Customer name is required", "CUSTOMER_NAME_REQUIRED", nil)
		}
		if businessflow.IsCustomerAddressRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Customer address is required", "CUSTOMER_ADDRESS_REQUIRED", nil)
		}
		if businessflow.IsFormTokenInvalid(err) || businessflow.IsFormTokenExpired(err) || businessflow.IsFormTokenAlreadyUsed(err) {
			return h.formTokenError(c, err)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit form", "FORM_SUBMIT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Form submitted successfully", result)
}

// Cleanup Tokens
// @Description Remove all expired form tokens from the registry
// @Tags Forms
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CleanupTokensResponse} "Expired tokens cleaned up"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/cleanup-expired-tokens [post]
func (h *FormHandler) CleanupTokens(c fiber.Ctx) error {
	result, err := h.flow.CleanupTokens(h.createRequestContext(c, "/api/v1/cleanup-expired-tokens"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clean up tokens", "TOKEN_CLEANUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Expired tokens cleaned up", result)
}

// List Form Submissions
// @Description List stored form submissions with optional filters
// @Tags Forms
// @Accept json
// @Produce json
// @Param customer_id query integer false "Filter by customer ID"
// @Param source query string false "Filter by source (web or scan)"
// @Param unlinked query boolean false "Only submissions without a customer"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 50, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListFormSubmissionsResponse} "Submissions retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/form-submissions [get]
func (h *FormHandler) ListSubmissions(c fiber.Ctx) error {
	var req dto.ListFormSubmissionsRequest
	if v := c.Query("customer_id"); v != "" {
		if id, err := parseQueryID(v); err == nil {
			req.CustomerID = &id
		}
	}
	if v := c.Query("source"); v != "" {
		req.Source = &v
	}
	req.Unlinked = c.Query("unlinked") == "true"
	req.Page, req.PageSize = parsePageQuery(c)

	result, err := h.flow.ListFormSubmissions(h.createRequestContext(c, "/api/v1/form-submissions"), &req)
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Page size must be between 1 and 100", "INVALID_PAGE_SIZE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list submissions", "SUBMISSION_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Submissions retrieved successfully", result)
}

// Link Form Submission
// @Description Attach a stored form submission to an existing customer
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path integer true "Submission ID"
// @Param request body dto.LinkFormSubmissionRequest true "Target customer"
// @Success 200 {object} dto.APIResponse{data=dto.LinkFormSubmissionResponse} "Submission linked successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Submission or customer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/form-submissions/{id}/link [post]
func (h *FormHandler) LinkSubmission(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid submission ID", "INVALID_SUBMISSION_ID", nil)
	}

	var req dto.LinkFormSubmissionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			return h.ErrorResponse(c, fiber.StatusBadRequest, getValidationErrorMessage(validationErrors[0]), "VALIDATION_ERROR", nil)
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.LinkFormSubmission(h.createRequestContext(c, "/api/v1/form-submissions/:id/link"), id, &req, metadata)
	if err != nil {
		if businessflow.IsFormSubmissionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Form submission not found", "SUBMISSION_NOT_FOUND", nil)
		}
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to link submission", "SUBMISSION_LINK_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Submission linked successfully", result)
}

// formTokenError maps token validation errors onto HTTP statuses.
// Unknown tokens are 404; expired or used tokens are 410.
func (h *FormHandler) formTokenError(c fiber.Ctx, err error) error {
	switch {
	case businessflow.IsFormTokenExpired(err):
		return h.ErrorResponse(c, fiber.StatusGone, "Form token has expired", "FORM_TOKEN_EXPIRED", nil)
	case businessflow.IsFormTokenAlreadyUsed(err):
		return h.ErrorResponse(c, fiber.StatusGone, "Form token has already been used", "FORM_TOKEN_ALREADY_USED", nil)
	case businessflow.IsFormTokenInvalid(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Form token is invalid", "FORM_TOKEN_INVALID", nil)
	default:
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to validate token", "FORM_TOKEN_VALIDATION_FAILED", nil)
	}
}

func (h *FormHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *FormHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
