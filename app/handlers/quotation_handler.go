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

// QuotationHandlerInterface defines the contract for quotation handlers
type QuotationHandlerInterface interface {
	Create(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	flow      businessflow.QuotationFlow
	validator *validator.Validate
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(flow businessflow.QuotationFlow) *QuotationHandler {
	return &QuotationHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *QuotationHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *QuotationHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create Quotation
// @Description Create a new quotation with its line items. At least one item is required.
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body dto.CreateQuotationRequest true "Quotation data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateQuotationResponse} "Quotation created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Customer not found"
// @Failure 409 {object} dto.APIResponse "Job already has a quotation"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotations [post]
func (h *QuotationHandler) Create(c fiber.Ctx) error {
	var req dto.CreateQuotationRequest
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
	result, err := h.flow.CreateQuotation(h.createRequestContext(c, "/api/v1/quotations"), &req, metadata)
	if err != nil {
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		if businessflow.IsQuotationTotalRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Quotation total is required", "QUOTATION_TOTAL_REQUIRED", nil)
		}
		if businessflow.IsQuotationJobConflict(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Job already has a quotation", "QUOTATION_JOB_CONFLICT", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create quotation", "QUOTATION_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Quotation created successfully", result)
}

// Get Quotation
// @Description Retrieve a quotation with its items
// @Tags Quotations
// @Accept json
// @Produce json
// @Param id path integer true "Quotation ID"
// @Success 200 {object} dto.APIResponse{data=dto.GetQuotationResponse} "Quotation retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid quotation ID"
// @Failure 404 {object} dto.APIResponse "Quotation not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotations/{id} [get]
func (h *QuotationHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid quotation ID", "INVALID_QUOTATION_ID", nil)
	}

	result, err := h.flow.GetQuotation(h.createRequestContext(c, "/api/v1/quotations/:id"), id)
	if err != nil {
		if businessflow.IsQuotationNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Quotation not found", "QUOTATION_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve quotation", "QUOTATION_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Quotation retrieved successfully", result)
}

// List Quotations
// @Description List quotations with optional customer/status filters
// @Tags Quotations
// @Accept json
// @Produce json
// @Param customer_id query integer false "Filter by customer ID"
// @Param status query string false "Filter by status"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 50, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListQuotationsResponse} "Quotations retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotations [get]
func (h *QuotationHandler) List(c fiber.Ctx) error {
	var req dto.ListQuotationsRequest
	if v := c.Query("customer_id"); v != "" {
		if id, err := parseQueryID(v); err == nil {
			req.CustomerID = &id
		}
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	req.Page, req.PageSize = parsePageQuery(c)

	result, err := h.flow.ListQuotations(h.createRequestContext(c, "/api/v1/quotations"), &req)
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Page size must be between 1 and 100", "INVALID_PAGE_SIZE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list quotations", "QUOTATION_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Quotations retrieved successfully", result)
}

// Update Quotation
// @Description Apply a partial update to a quotation. When items are supplied the
// existing items are removed and replaced in full.
// @Tags Quotations
// @Accept json
// @Produce json
// @Param id path integer true "Quotation ID"
// @Param request body dto.UpdateQuotationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateQuotationResponse} "Quotation updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Quotation not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotations/{id} [put]
func (h *QuotationHandler) Update(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid quotation ID", "INVALID_QUOTATION_ID", nil)
	}

	var req dto.UpdateQuotationRequest
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
	result, err := h.flow.UpdateQuotation(h.createRequestContext(c, "/api/v1/quotations/:id"), id, &req, metadata)
	if err != nil {
		if businessflow.IsQuotationNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Quotation not found", "QUOTATION_NOT_FOUND", nil)
		}
		if businessflow.IsQuotationJobConflict(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Job already has a quotation", "QUOTATION_JOB_CONFLICT", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update quotation", "QUOTATION_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Quotation updated successfully", result)
}

// Delete Quotation
// @Description Delete a quotation together with its items
// @Tags Quotations
// @Accept json
// @Produce json
// @Param id path integer true "Quotation ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteQuotationResponse} "Quotation deleted successfully"
// @Failure 400 {object} dto.APIResponse "Invalid quotation ID"
// @Failure 404 {object} dto.APIResponse "Quotation not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid quotation ID", "INVALID_QUOTATION_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.DeleteQuotation(h.createRequestContext(c, "/api/v1/quotations/:id"), id, metadata)
	if err != nil {
		if businessflow.IsQuotationNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Quotation not found", "QUOTATION_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete quotation", "QUOTATION_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Quotation deleted successfully", result)
}

func (h *QuotationHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *QuotationHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
