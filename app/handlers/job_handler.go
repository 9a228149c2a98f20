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

// JobHandlerInterface defines the contract for job handlers
type JobHandlerInterface interface {
	Create(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	List(c fiber.Ctx) error
	ListAvailable(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	Pipeline(c fiber.Ctx) error
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	flow      businessflow.JobFlow
	validator *validator.Validate
}

// NewJobHandler creates a new job handler
func NewJobHandler(flow businessflow.JobFlow) *JobHandler {
	return &JobHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *JobHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *JobHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Create Job
// @Description Create a new job for a customer. A reference is generated when none is supplied.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Job data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateJobResponse} "Job created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Customer not found"
// @Failure 409 {object} dto.APIResponse "Job reference already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/jobs [post]
func (h *JobHandler) Create(c fiber.Ctx) error {
	var req dto.CreateJobRequest
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
	result, err := h.flow.CreateJob(h.createRequestContext(c, "/api/v1/jobs"), &req, metadata)
	if err != nil {
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", "CUSTOMER_NOT_FOUND", nil)
		}
		if businessflow.IsJobReferenceConflict(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Job reference already exists", "JOB_REFERENCE_CONFLICT", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create job", "JOB_CREATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Job created successfully", result)
}

// Get Job
// @Description Retrieve a job by ID
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path integer true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.GetJobResponse} "Job retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid job ID"
// @Failure 404 {object} dto.APIResponse "Job not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/jobs/{id} [get]
func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid job ID", "INVALID_JOB_ID", nil)
	}

	result, err := h.flow.GetJob(h.createRequestContext(c, "/api/v1/jobs/:id"), id)
	if err != nil {
		if businessflow.IsJobNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Job not found", "JOB_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve job", "JOB_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Job retrieved successfully", result)
}

// List Jobs
// @Description List jobs with optional customer/stage/type filters
// @Tags Jobs
// @Accept json
// @Produce json
// @Param customer_id query integer false "Filter by customer ID"
// @Param stage query string false "Filter by stage"
// @Param job_type query string false "Filter by job type"
// @Param page query integer false "Page number (default: 1)"
// @Param page_size query integer false "Items per page (default: 50, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ListJobsResponse} "Jobs retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/jobs [get]
func (h *JobHandler) List(c fiber.Ctx) error {
	var req dto.ListJobsRequest
	if v := c.Query("customer_id"); v != "" {
		if id, err := parseQueryID(v); err == nil {
			req.CustomerID = &id
		}
	}
	if v := c.Query("stage"); v != "" {
		req.Stage = &v
	}
	if v := c.Query("job_type"); v != "" {
		req.Type = &v
	}
	req.Page, req.PageSize = parsePageQuery(c)

	result, err := h.flow.ListJobs(h.createRequestContext(c, "/api/v1/jobs"), &req)
	if err != nil {
		if businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Page size must be between 1 and 100", "INVALID_PAGE_SIZE", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list jobs", "JOB_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Jobs retrieved successfully", result)
}

// Update Job
// @Description Apply a partial update to a job
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path integer true "Job ID"
// @Param request body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateJobResponse} "Job updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Job not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/jobs/{id} [put]
func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid job ID", "INVALID_JOB_ID", nil)
	}

	var req dto.UpdateJobRequest
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
	result, err := h.flow.UpdateJob(h.createRequestContext(c, "/api/v1/jobs/:id"), id, &req, metadata)
	if err != nil {
		if businessflow.IsJobNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Job not found", "JOB_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update job", "JOB_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Job updated successfully", result)
}

// Delete Job
// @Description Delete a job and its child records
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path integer true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteJobResponse} "Job deleted successfully"
// @Failure 400 {object} dto.APIResponse "Invalid job ID"
// @Failure 404 {object} dto.APIResponse "Job not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid job ID", "INVALID_JOB_ID", nil)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.flow.DeleteJob(h.createRequestContext(c, "/api/v1/jobs/:id"), id, metadata)
	if err != nil {
		if businessflow.IsJobNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Job not found", "JOB_NOT_FOUND", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete job", "JOB_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Job deleted successfully", result)
}

// Pipeline
// @Description Return the combined pipeline of jobs and job-less customers
// @Tags Jobs
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PipelineResponse} "Pipeline retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/jobs/pipeline [get]
func (h *JobHandler) Pipeline(c fiber.Ctx) error {
	result, err := h.flow.GetPipeline(h.createRequestContext(c, "/api/v1/jobs/pipeline"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve pipeline", "PIPELINE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Pipeline retrieved successfully", result)
}

// List Available Jobs
// @Description List jobs in a schedulable stage
// @Tags Jobs
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListJobsResponse} "Jobs retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/jobs/available [get]
func (h *JobHandler) ListAvailable(c fiber.Ctx) error {
	result, err := h.flow.ListAvailableJobs(h.createRequestContext(c, "/api/v1/jobs/available"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list available jobs", "JOB_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Jobs retrieved successfully", result)
}

func (h *JobHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *JobHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
