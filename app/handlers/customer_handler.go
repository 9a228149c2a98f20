// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
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

// CustomerHandlerInterface defines the contract for customer handlers
type CustomerHandlerInterface interface {
	Create(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	List(c fiber.Ctx) error
	ListActive(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	flow      businessflow.CustomerFlow
	validator *validator.Validate
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(flow businessflow.CustomerFlow) *CustomerHandler {
	return &CustomerHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *CustomerHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CustomerHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create Customer
// @Description Create a new customer. The postcode is derived from the address.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateCustomerResponse} "Customer created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/customers [post]
func (h *CustomerHandler) Create(c fiber.Ctx) error {
	var req dto.CreateCustomerRequest
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
	result, err := h.flow.CreateCustomer(h.createRequestContext(c, "/api/v1/customers"), &req, metadata)
	if err != nil {
		if businessflow.IsCustomerNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Customer name is required", "CUSTOMER_NAME_REQUIRED", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create customer", "CUSTOMER_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Customer created successfully", result)
}

// Get Customer
// @Description Retrieve a customer with its jobs and quotations
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path integer true "Customer ID"
// @Success 200 {object} dto.APIResponse{data=dto.GetCustomerResponse} "Customer retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid customer ID"
// @Failure 404 {object} dto.APIResponse "Customer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/customers/{id} [get]
func (h *CustomerHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid customer ID", "INVALID_CUSTOMER_ID", nil)
	}

	result, err := h.flow.GetCustomer(h.createRequestContext(c, "/api/v1/customers/:id"), id)
	if err != nil {
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve customer", "CUSTOMER_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Customer retrieved successfully", result)
}

// List Customers
// @Description List customers with optional stage/status filters
// @Tags Customers
// @Accept json
// @Produce json
// @Param stage query string false "Filter by stage"
// @Param status query string false "Filter by status"
// @Param active_only query boolean false "Only active customers"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 50, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListCustomersResponse} "Customers retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/customers [get]
func (h *CustomerHandler) List(c fiber.Ctx) error {
	var req dto.ListCustomersRequest
	if v := c.Query("stage"); v != "" {
		req.Stage = &v
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	req.ActiveOnly = c.Query("active_only") == "true"
	req.Page, req.PageSize = parsePageQuery(c)

	result, err := h.flow.ListCustomers(h.createRequestContext(c, "/api/v1/customers"), &req)
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Page size must be between 1 and 100", "INVALID_PAGE_SIZE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list customers", "CUSTOMER_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Customers retrieved successfully", result)
}

// List Active Customers
// @Description List customers with an Active status
// @Tags Customers
// @Accept json
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 50, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListCustomersResponse} "Customers retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/customers/active [get]
func (h *CustomerHandler) ListActive(c fiber.Ctx) error {
	req := dto.ListCustomersRequest{ActiveOnly: true}
	req.Page, req.PageSize = parsePageQuery(c)

	result, err := h.flow.ListCustomers(h.createRequestContext(c, "/api/v1/customers/active"), &req)
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Page size must be between 1 and 100", "INVALID_PAGE_SIZE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list customers", "CUSTOMER_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Customers retrieved successfully", result)
}

// Update Customer
// @Description Apply a partial update to a customer. A changed address re-derives the postcode.
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path integer true "Customer ID"
// @Param request body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateCustomerResponse} "Customer updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Customer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/customers/{id} [put]
func (h *CustomerHandler) Update(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid customer ID", "INVALID_CUSTOMER_ID", nil)
	}

	var req dto.UpdateCustomerRequest
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
	result, err := h.flow.UpdateCustomer(h.createRequestContext(c, "/api/v1/customers/:id"), id, &req, metadata)
	if err != nil {
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		if businessflow.IsCustomerNameRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Customer name is required", "CUSTOMER_NAME_REQUIRED", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update customer", "CUSTOMER_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Customer updated successfully", result)
}

// Delete Customer
// @Description Delete a customer together with its quotations and form data. Jobs are kept.
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path integer true "Customer ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteCustomerResponse} "Customer deleted successfully"
// @Failure 400 {object} dto.APIResponse "Invalid customer ID"
// @Failure 404 {object} dto.APIResponse "Customer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid customer ID", "INVALID_CUSTOMER_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.DeleteCustomer(h.createRequestContext(c, "/api/v1/customers/:id"), id, metadata)
	if err != nil {
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete customer", "CUSTOMER_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Customer deleted successfully", result)
}

func (h *CustomerHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *CustomerHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
