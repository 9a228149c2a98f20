// Package businessflow contains the core business logic and use cases for customer form workflows
package businessflow

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/app/services"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	"github.com/aztec-interiors/fitflow/utils"
	"gorm.io/gorm"
)

// FormFlow handles single-use form links and public customer form submissions
type FormFlow interface {
	GenerateFormLink(ctx context.Context, request *dto.GenerateFormLinkRequest, metadata *ClientMetadata) (*dto.GenerateFormLinkResponse, error)
	ValidateFormToken(ctx context.Context, token string) (*dto.ValidateFormTokenResponse, error)
	SubmitCustomerForm(ctx context.Context, request *dto.SubmitCustomerFormRequest, metadata *ClientMetadata) (*dto.SubmitCustomerFormResponse, error)
	CleanupTokens(ctx context.Context) (*dto.CleanupTokensResponse, error)
	ListFormSubmissions(ctx context.Context, request *dto.ListFormSubmissionsRequest) (*dto.ListFormSubmissionsResponse, error)
	LinkFormSubmission(ctx context.Context, id uint, request *dto.LinkFormSubmissionRequest, metadata *ClientMetadata) (*dto.LinkFormSubmissionResponse, error)
}

// FormFlowImpl implements the form business flow
type FormFlowImpl struct {
	tokenService   services.FormTokenService
	customerRepo   repository.CustomerRepository
	formDataRepo   repository.CustomerFormDataRepository
	submissionRepo repository.FormSubmissionRepository
	jobRepo        repository.JobRepository
	db             *gorm.DB
}

// NewFormFlow creates a new form flow instance
func NewFormFlow(
	tokenService services.FormTokenService,
	customerRepo repository.CustomerRepository,
	formDataRepo repository.CustomerFormDataRepository,
	submissionRepo repository.FormSubmissionRepository,
	jobRepo repository.JobRepository,
	db *gorm.DB,
) FormFlow {
	return &FormFlowImpl{
		tokenService:   tokenService,
		customerRepo:   customerRepo,
		formDataRepo:   formDataRepo,
		submissionRepo: submissionRepo,
		jobRepo:        jobRepo,
		db:             db,
	}
}

// GenerateFormLink issues a fresh single-use token. When a job ID is supplied
// the token is also recorded against that job.
func (ff *FormFlowImpl) GenerateFormLink(ctx context.Context, request *dto.GenerateFormLinkRequest, metadata *ClientMetadata) (*dto.GenerateFormLinkResponse, error) {
	token, expiresAt, err := ff.tokenService.Issue()
	if err != nil {
		return nil, NewBusinessError("FORM_LINK_FAILED", "Failed to generate form link", err)
	}

	if request != nil && request.JobID != nil {
		job, err := ff.jobRepo.ByID(ctx, *request.JobID)
		if err != nil {
			return nil, NewBusinessError("JOB_LOOKUP_FAILED", "Failed to look up job", err)
		}
		if job == nil {
			return nil, NewBusinessError("JOB_NOT_FOUND", "Job not found", ErrJobNotFound)
		}
		link := models.JobFormLink{
			JobID:     job.ID,
			Token:     token,
			ExpiresAt: expiresAt,
		}
		if err := ff.jobRepo.SaveFormLink(ctx, &link); err != nil {
			return nil, NewBusinessError("FORM_LINK_FAILED", "Failed to record form link", err)
		}
	}

	return &dto.GenerateFormLinkResponse{
		Message:   "Form link generated successfully",
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// ValidateFormToken reports whether a token can still be used. Expired tokens
// are dropped from the registry during validation.
func (ff *FormFlowImpl) ValidateFormToken(ctx context.Context, token string) (*dto.ValidateFormTokenResponse, error) {
	status, expiresAt := ff.tokenService.Validate(token)
	switch status {
	case services.FormTokenValid:
		return &dto.ValidateFormTokenResponse{
			Valid:     true,
			ExpiresAt: expiresAt.Format(time.RFC3339),
		}, nil
	case services.FormTokenExpired:
		return nil, NewBusinessError("FORM_TOKEN_EXPIRED", "This form link has expired", ErrFormTokenExpired)
	case services.FormTokenUsed:
		return nil, NewBusinessError("FORM_TOKEN_ALREADY_USED", "This form link has already been used", ErrFormTokenAlreadyUsed)
	default:
		return nil, NewBusinessError("FORM_TOKEN_INVALID", "Invalid form link", ErrFormTokenInvalid)
	}
}

// SubmitCustomerForm turns a public form submission into a new customer with
// its form payload attached. The customer and the form records are written in
// one transaction; the token is consumed only after that transaction commits,
// so a failed write leaves the link usable.
func (ff *FormFlowImpl) SubmitCustomerForm(ctx context.Context, request *dto.SubmitCustomerFormRequest, metadata *ClientMetadata) (*dto.SubmitCustomerFormResponse, error) {
	if len(request.FormData) == 0 {
		return nil, NewBusinessError("FORM_DATA_REQUIRED", "Form data is required", ErrFormDataRequired)
	}

	if request.Token != "" {
		status, _ := ff.tokenService.Validate(request.Token)
		switch status {
		case services.FormTokenValid:
		case services.FormTokenExpired:
			return nil, NewBusinessError("FORM_TOKEN_EXPIRED", "This form link has expired", ErrFormTokenExpired)
		case services.FormTokenUsed:
			return nil, NewBusinessError("FORM_TOKEN_ALREADY_USED", "This form link has already been used", ErrFormTokenAlreadyUsed)
		default:
			return nil, NewBusinessError("FORM_TOKEN_INVALID", "Invalid form link", ErrFormTokenInvalid)
		}
	}

	name := strings.TrimSpace(request.FormData["customer_name"])
	if name == "" {
		return nil, NewBusinessError("CUSTOMER_NAME_REQUIRED", "Customer name is required", ErrCustomerNameRequired)
	}
	address := strings.TrimSpace(request.FormData["customer_address"])
	if address == "" {
		return nil, NewBusinessError("CUSTOMER_ADDRESS_REQUIRED", "Customer address is required", ErrCustomerAddressRequired)
	}
	phone := strings.TrimSpace(request.FormData["customer_phone"])

	payload, err := json.Marshal(request.FormData)
	if err != nil {
		return nil, NewBusinessError("FORM_SUBMIT_FAILED", "Failed to serialize form data", err)
	}

	customer := models.Customer{
		Name:         name,
		Address:      address,
		Postcode:     utils.DerivePostcode(address),
		Phone:        phone,
		ContactMade:  models.ContactMadeNo,
		Stage:        "Lead",
		Status:       utils.CustomerStatusNewLead,
		ProjectTypes: []string{},
		CreatedBy:    "Web Form",
	}

	err = repository.WithTransaction(ctx, ff.db, func(ctx context.Context) error {
		if err := ff.customerRepo.Save(ctx, &customer); err != nil {
			return err
		}
		formData := models.CustomerFormData{
			CustomerID: customer.ID,
			FormData:   string(payload),
			TokenUsed:  request.Token,
		}
		if err := ff.formDataRepo.Save(ctx, &formData); err != nil {
			return err
		}
		submission := models.FormSubmission{
			CustomerID: &customer.ID,
			Source:     models.FormSourceWeb,
			Data:       string(payload),
		}
		return ff.submissionRepo.Save(ctx, &submission)
	})
	if err != nil {
		return nil, NewBusinessError("FORM_SUBMIT_FAILED", "Failed to save form submission", err)
	}

	if request.Token != "" {
		ff.tokenService.Consume(request.Token)
	}

	return &dto.SubmitCustomerFormResponse{
		Message:    "Form submitted successfully",
		CustomerID: customer.ID,
	}, nil
}

// CleanupTokens sweeps expired tokens out of the registry
func (ff *FormFlowImpl) CleanupTokens(ctx context.Context) (*dto.CleanupTokensResponse, error) {
	removed, remaining := ff.tokenService.ReapExpired()
	return &dto.CleanupTokensResponse{
		Message:         "Expired tokens cleaned up",
		CleanedTokens:   removed,
		RemainingTokens: remaining,
	}, nil
}

func (ff *FormFlowImpl) ListFormSubmissions(ctx context.Context, request *dto.ListFormSubmissionsRequest) (*dto.ListFormSubmissionsResponse, error) {
	limit, offset, err := normalizePage(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	filter := models.FormSubmissionFilter{
		CustomerID: request.CustomerID,
		Source:     request.Source,
	}
	if request.Unlinked {
		unlinked := true
		filter.Unlinked = &unlinked
	}

	submissions, err := ff.submissionRepo.ByFilter(ctx, filter, "submitted_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("FORM_SUBMISSION_LIST_FAILED", "Failed to list form submissions", err)
	}
	total, err := ff.submissionRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("FORM_SUBMISSION_LIST_FAILED", "Failed to count form submissions", err)
	}

	dtos := make([]dto.FormSubmissionDTO, 0, len(submissions))
	for _, submission := range submissions {
		dtos = append(dtos, ToFormSubmissionDTO(*submission))
	}

	return &dto.ListFormSubmissionsResponse{
		Message:     "Form submissions retrieved successfully",
		Submissions: dtos,
		Total:       total,
	}, nil
}

// LinkFormSubmission attaches a stored submission to an existing customer
func (ff *FormFlowImpl) LinkFormSubmission(ctx context.Context, id uint, request *dto.LinkFormSubmissionRequest, metadata *ClientMetadata) (*dto.LinkFormSubmissionResponse, error) {
	submission, err := ff.submissionRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("FORM_SUBMISSION_LOOKUP_FAILED", "Failed to look up form submission", err)
	}
	if submission == nil {
		return nil, NewBusinessError("FORM_SUBMISSION_NOT_FOUND", "Form submission not found", ErrFormSubmissionNotFound)
	}

	customer, err := ff.customerRepo.ByID(ctx, request.CustomerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to look up customer", err)
	}
	if customer == nil {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}

	submission.CustomerID = &customer.ID
	if err := ff.submissionRepo.Update(ctx, submission); err != nil {
		return nil, NewBusinessError("FORM_SUBMISSION_LINK_FAILED", "Failed to link form submission", err)
	}

	return &dto.LinkFormSubmissionResponse{
		Message:    "Form submission linked successfully",
		Submission: ToFormSubmissionDTO(*submission),
	}, nil
}
