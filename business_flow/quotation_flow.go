// Package businessflow contains the core business logic and use cases for quotation workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	"github.com/aztec-interiors/fitflow/utils"
	"gorm.io/gorm"
)

// QuotationFlow handles quotation lifecycle operations
type QuotationFlow interface {
	CreateQuotation(ctx context.Context, request *dto.CreateQuotationRequest, metadata *ClientMetadata) (*dto.CreateQuotationResponse, error)
	GetQuotation(ctx context.Context, id uint) (*dto.GetQuotationResponse, error)
	ListQuotations(ctx context.Context, request *dto.ListQuotationsRequest) (*dto.ListQuotationsResponse, error)
	UpdateQuotation(ctx context.Context, id uint, request *dto.UpdateQuotationRequest, metadata *ClientMetadata) (*dto.UpdateQuotationResponse, error)
	DeleteQuotation(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.DeleteQuotationResponse, error)
}

// QuotationFlowImpl implements the quotation business flow
type QuotationFlowImpl struct {
	quotationRepo repository.QuotationRepository
	customerRepo  repository.CustomerRepository
	db            *gorm.DB
}

// NewQuotationFlow creates a new quotation flow instance
func NewQuotationFlow(quotationRepo repository.QuotationRepository, customerRepo repository.CustomerRepository, db *gorm.DB) QuotationFlow {
	return &QuotationFlowImpl{
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		db:            db,
	}
}

func (qf *QuotationFlowImpl) CreateQuotation(ctx context.Context, request *dto.CreateQuotationRequest, metadata *ClientMetadata) (*dto.CreateQuotationResponse, error) {
	if request.Total == nil {
		return nil, NewBusinessError("QUOTATION_TOTAL_REQUIRED", "Quotation total is required", ErrQuotationTotalRequired)
	}

	customer, err := qf.customerRepo.ByID(ctx, request.CustomerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to look up customer", err)
	}
	if customer == nil {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}

	if request.JobID != nil {
		existing, err := qf.quotationRepo.ByJobID(ctx, *request.JobID)
		if err != nil {
			return nil, NewBusinessError("QUOTATION_LOOKUP_FAILED", "Failed to check job quotation", err)
		}
		if existing != nil {
			return nil, NewBusinessError("QUOTATION_JOB_CONFLICT", "Job already has a quotation", ErrQuotationJobConflict)
		}
	}

	quotation := models.Quotation{
		CustomerID: request.CustomerID,
		JobID:      request.JobID,
		Total:      *request.Total,
		Status:     models.QuotationStatusDraft,
		Notes:      request.Notes,
		ExpiresAt:  parseDatePtr(request.ExpiresAt),
		Items:      buildQuotationItems(request.Items),
	}
	if request.Status != nil {
		quotation.Status = *request.Status
	}

	if err := qf.quotationRepo.Save(ctx, &quotation); err != nil {
		return nil, NewBusinessError("QUOTATION_CREATE_FAILED", "Failed to create quotation", err)
	}

	return &dto.CreateQuotationResponse{
		Message:   "Quotation created successfully",
		Quotation: ToQuotationDTO(quotation),
	}, nil
}

func (qf *QuotationFlowImpl) GetQuotation(ctx context.Context, id uint) (*dto.GetQuotationResponse, error) {
	quotation, err := qf.quotationRepo.ByIDWithItems(ctx, id)
	if err != nil {
		return nil, NewBusinessError("QUOTATION_LOOKUP_FAILED", "Failed to look up quotation", err)
	}
	if quotation == nil {
		return nil, NewBusinessError("QUOTATION_NOT_FOUND", "Quotation not found", ErrQuotationNotFound)
	}

	return &dto.GetQuotationResponse{
		Message:   "Quotation retrieved successfully",
		Quotation: ToQuotationDTO(*quotation),
	}, nil
}

func (qf *QuotationFlowImpl) ListQuotations(ctx context.Context, request *dto.ListQuotationsRequest) (*dto.ListQuotationsResponse, error) {
	limit, offset, err := normalizePage(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	filter := models.QuotationFilter{
		CustomerID: request.CustomerID,
		Status:     request.Status,
	}

	quotations, err := qf.quotationRepo.ByFilter(ctx, filter, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("QUOTATION_LIST_FAILED", "Failed to list quotations", err)
	}
	total, err := qf.quotationRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("QUOTATION_LIST_FAILED", "Failed to count quotations", err)
	}

	dtos := make([]dto.QuotationDTO, 0, len(quotations))
	for _, quotation := range quotations {
		dtos = append(dtos, ToQuotationDTO(*quotation))
	}

	return &dto.ListQuotationsResponse{
		Message:    "Quotations retrieved successfully",
		Quotations: dtos,
		Total:      total,
	}, nil
}

// UpdateQuotation applies a partial update. A non-nil Items slice replaces the
// stored items wholesale; the delete and insert run in the same transaction as
// the quotation update.
func (qf *QuotationFlowImpl) UpdateQuotation(ctx context.Context, id uint, request *dto.UpdateQuotationRequest, metadata *ClientMetadata) (*dto.UpdateQuotationResponse, error) {
	quotation, err := qf.quotationRepo.ByIDWithItems(ctx, id)
	if err != nil {
		return nil, NewBusinessError("QUOTATION_LOOKUP_FAILED", "Failed to look up quotation", err)
	}
	if quotation == nil {
		return nil, NewBusinessError("QUOTATION_NOT_FOUND", "Quotation not found", ErrQuotationNotFound)
	}

	if request.JobID != nil {
		existing, err := qf.quotationRepo.ByJobID(ctx, *request.JobID)
		if err != nil {
			return nil, NewBusinessError("QUOTATION_LOOKUP_FAILED", "Failed to check job quotation", err)
		}
		if existing != nil && existing.ID != quotation.ID {
			return nil, NewBusinessError("QUOTATION_JOB_CONFLICT", "Job already has a quotation", ErrQuotationJobConflict)
		}
		quotation.JobID = request.JobID
	}
	if request.Status != nil {
		quotation.Status = *request.Status
	}
	if request.Notes != nil {
		quotation.Notes = request.Notes
	}
	if request.ExpiresAt != nil {
		quotation.ExpiresAt = parseDatePtr(request.ExpiresAt)
	}

	var newItems []*models.QuotationItem
	if request.Items != nil {
		items := buildQuotationItems(request.Items)
		newItems = make([]*models.QuotationItem, 0, len(items))
		for i := range items {
			newItems = append(newItems, &items[i])
		}
	}

	if request.Total != nil {
		quotation.Total = *request.Total
	} else if request.Items != nil {
		quotation.Total = sumQuotationItems(buildQuotationItems(request.Items))
	}
	quotation.UpdatedAt = utils.UTCNow()
	quotation.Items = nil

	err = repository.WithTransaction(ctx, qf.db, func(ctx context.Context) error {
		if newItems != nil {
			if err := qf.quotationRepo.ReplaceItems(ctx, quotation.ID, newItems); err != nil {
				return err
			}
		}
		return qf.quotationRepo.Update(ctx, quotation)
	})
	if err != nil {
		return nil, NewBusinessError("QUOTATION_UPDATE_FAILED", "Failed to update quotation", err)
	}

	updated, err := qf.quotationRepo.ByIDWithItems(ctx, id)
	if err != nil || updated == nil {
		return nil, NewBusinessError("QUOTATION_LOOKUP_FAILED", "Failed to reload quotation", err)
	}

	return &dto.UpdateQuotationResponse{
		Message:   "Quotation updated successfully",
		Quotation: ToQuotationDTO(*updated),
	}, nil
}

func (qf *QuotationFlowImpl) DeleteQuotation(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.DeleteQuotationResponse, error) {
	quotation, err := qf.quotationRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("QUOTATION_LOOKUP_FAILED", "Failed to look up quotation", err)
	}
	if quotation == nil {
		return nil, NewBusinessError("QUOTATION_NOT_FOUND", "Quotation not found", ErrQuotationNotFound)
	}

	err = repository.WithTransaction(ctx, qf.db, func(ctx context.Context) error {
		return qf.quotationRepo.Delete(ctx, id)
	})
	if err != nil {
		return nil, NewBusinessError("QUOTATION_DELETE_FAILED", "Failed to delete quotation", err)
	}

	return &dto.DeleteQuotationResponse{
		Message: fmt.Sprintf("Quotation %d deleted successfully", id),
		ID:      id,
	}, nil
}

func buildQuotationItems(inputs []dto.QuotationItemInput) []models.QuotationItem {
	items := make([]models.QuotationItem, 0, len(inputs))
	for _, input := range inputs {
		items = append(items, models.QuotationItem{
			Item:        input.Item,
			Description: input.Description,
			Color:       input.Color,
			Amount:      input.Amount,
		})
	}
	return items
}

func sumQuotationItems(items []models.QuotationItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}
