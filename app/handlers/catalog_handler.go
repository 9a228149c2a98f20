package handlers

import (
	"context"
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	businessflow "github.com/aztec-interiors/fitflow/business_flow"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/gofiber/fiber/v3"
)

// CatalogHandlerInterface defines the contract for staff directory and catalog handlers
type CatalogHandlerInterface interface {
	ListStaff(c fiber.Ctx) error
	ListProducts(c fiber.Ctx) error
	ListBrands(c fiber.Ctx) error
	ListCategories(c fiber.Ctx) error
}

// CatalogHandler handles staff directory and appliance catalog HTTP requests
type CatalogHandler struct {
	flow businessflow.CatalogFlow
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(flow businessflow.CatalogFlow) *CatalogHandler {
	return &CatalogHandler{flow: flow}
}

func (h *CatalogHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CatalogHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List Staff
// @Description Return active teams, fitters and salespersons
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListStaffResponse} "Staff retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/staff [get]
func (h *CatalogHandler) ListStaff(c fiber.Ctx) error {
	result, err := h.flow.ListStaff(h.createRequestContext(c, "/api/v1/staff"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list staff", "STAFF_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Staff retrieved successfully", result)
}

// List Products
// @Description List active catalog products with optional brand/category filters
// @Tags Catalog
// @Accept json
// @Produce json
// @Param brand_id query integer false "Filter by brand ID"
// @Param category_id query integer false "Filter by category ID"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 50, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListProductsResponse} "Products retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c fiber.Ctx) error {
	var req dto.ListProductsRequest
	if v := c.Query("brand_id"); v != "" {
		if id, err := parseQueryID(v); err == nil {
			req.BrandID = &id
		}
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := parseQueryID(v); err == nil {
			req.CategoryID = &id
		}
	}
	req.Page, req.PageSize = parsePageQuery(c)

	result, err := h.flow.ListProducts(h.createRequestContext(c, "/api/v1/products"), &req)
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Page size must be between 1 and 100", "INVALID_PAGE_SIZE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list products", "PRODUCT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Products retrieved successfully", result)
}

// List Brands
// @Description List all appliance brands
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListBrandsResponse} "Brands retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/brands [get]
func (h *CatalogHandler) ListBrands(c fiber.Ctx) error {
	result, err := h.flow.ListBrands(h.createRequestContext(c, "/api/v1/brands"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list brands", "BRAND_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Brands retrieved successfully", result)
}

// List Categories
// @Description List all appliance categories
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListCategoriesResponse} "Categories retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c fiber.Ctx) error {
	result, err := h.flow.ListCategories(h.createRequestContext(c, "/api/v1/categories"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list categories", "CATEGORY_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Categories retrieved successfully", result)
}

func (h *CatalogHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *CatalogHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
