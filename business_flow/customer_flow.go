// Package businessflow contains the core business logic and use cases for customer workflows
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

// CustomerFlow handles customer lifecycle operations
type CustomerFlow interface {
	CreateCustomer(ctx context.Context, request *dto.CreateCustomerRequest, metadata *ClientMetadata) (*dto.CreateCustomerResponse, error)
	GetCustomer(ctx context.Context, id uint) (*dto.GetCustomerResponse, error)
	ListCustomers(ctx context.Context, request *dto.ListCustomersRequest) (*dto.ListCustomersResponse, error)
	UpdateCustomer(ctx context.Context, id uint, request *dto.UpdateCustomerRequest, metadata *ClientMetadata) (*dto.UpdateCustomerResponse, error)
	DeleteCustomer(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.DeleteCustomerResponse, error)
}

// CustomerFlowImpl implements the customer business flow
type CustomerFlowImpl struct {
	customerRepo repository.CustomerRepository
	db           *gorm.DB
}

// NewCustomerFlow creates a new customer flow instance
func NewCustomerFlow(customerRepo repository.CustomerRepository, db *gorm.DB) CustomerFlow {
	return &CustomerFlowImpl{
		customerRepo: customerRepo,
		db:           db,
	}
}

func (cf *CustomerFlowImpl) CreateCustomer(ctx context.Context, request *dto.CreateCustomerRequest, metadata *ClientMetadata) (*dto.CreateCustomerResponse, error) {
	if request.Name == "" {
		return nil, NewBusinessError("CUSTOMER_NAME_REQUIRED", "Customer name is required", ErrCustomerNameRequired)
	}

	customer := models.Customer{
		Name:                   request.Name,
		Address:                request.Address,
		Postcode:               utils.DerivePostcode(request.Address),
		Phone:                  request.Phone,
		Email:                  request.Email,
		ContactMade:            models.ContactMadeUnknown,
		PreferredContactMethod: request.PreferredContactMethod,
		MarketingOptIn:         request.MarketingOptIn,
		Stage:                  "Lead",
		Status:                 utils.CustomerStatusActive,
		ProjectTypes:           request.ProjectTypes,
		Salesperson:            request.Salesperson,
		DateOfMeasure:          parseDatePtr(request.DateOfMeasure),
		CreatedBy:              "System",
	}
	if request.ContactMade != nil {
		customer.ContactMade = *request.ContactMade
	}
	if request.Stage != nil {
		customer.Stage = *request.Stage
	}
	if request.Status != nil {
		customer.Status = *request.Status
	}
	if request.Notes != nil {
		customer.Notes = *request.Notes
	}
	if request.CreatedBy != nil {
		customer.CreatedBy = *request.CreatedBy
	}
	if customer.ProjectTypes == nil {
		customer.ProjectTypes = []string{}
	}

	if err := cf.customerRepo.Save(ctx, &customer); err != nil {
		return nil, NewBusinessError("CUSTOMER_CREATE_FAILED", "Failed to create customer", err)
	}

	return &dto.CreateCustomerResponse{
		Message:  "Customer created successfully",
		Customer: ToCustomerDTO(customer),
	}, nil
}

func (cf *CustomerFlowImpl) GetCustomer(ctx context.Context, id uint) (*dto.GetCustomerResponse, error) {
	customer, err := cf.customerRepo.ByIDWithRelations(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to look up customer", err)
	}
	if customer == nil {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}

	jobs := make([]dto.JobDTO, 0, len(customer.Jobs))
	for _, job := range customer.Jobs {
		jobs = append(jobs, ToJobDTO(job))
	}
	quotations := make([]dto.QuotationDTO, 0, len(customer.Quotations))
	for _, quotation := range customer.Quotations {
		quotations = append(quotations, ToQuotationDTO(quotation))
	}

	return &dto.GetCustomerResponse{
		Message:    "Customer retrieved successfully",
		Customer:   ToCustomerDTO(*customer),
		Jobs:       jobs,
		Quotations: quotations,
	}, nil
}

func (cf *CustomerFlowImpl) ListCustomers(ctx context.Context, request *dto.ListCustomersRequest) (*dto.ListCustomersResponse, error) {
	limit, offset, err := normalizePage(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	filter := models.CustomerFilter{
		Stage:  request.Stage,
		Status: request.Status,
	}
	if request.ActiveOnly {
		active := utils.CustomerStatusActive
		filter.Status = &active
	}

	customers, err := cf.customerRepo.ByFilter(ctx, filter, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LIST_FAILED", "Failed to list customers", err)
	}
	total, err := cf.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LIST_FAILED", "Failed to count customers", err)
	}

	dtos := make([]dto.CustomerDTO, 0, len(customers))
	for _, customer := range customers {
		dtos = append(dtos, ToCustomerDTO(*customer))
	}

	return &dto.ListCustomersResponse{
		Message:   "Customers retrieved successfully",
		Customers: dtos,
		Total:     total,
	}, nil
}

func (cf *CustomerFlowImpl) UpdateCustomer(ctx context.Context, id uint, request *dto.UpdateCustomerRequest, metadata *ClientMetadata) (*dto.UpdateCustomerResponse, error) {
	customer, err := cf.customerRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to look up customer", err)
	}
	if customer == nil {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}

	if request.Name != nil {
		if *request.Name == "" {
			return nil, NewBusinessError("CUSTOMER_NAME_REQUIRED", "Customer name is required", ErrCustomerNameRequired)
		}
		customer.Name = *request.Name
	}
	if request.Address != nil {
		customer.Address = *request.Address
		// Address changes re-derive the postcode
		customer.Postcode = utils.DerivePostcode(*request.Address)
	}
	if request.Phone != nil {
		customer.Phone = *request.Phone
	}
	if request.Email != nil {
		customer.Email = *request.Email
	}
	if request.ContactMade != nil {
		customer.ContactMade = *request.ContactMade
	}
	if request.PreferredContactMethod != nil {
		customer.PreferredContactMethod = request.PreferredContactMethod
	}
	if request.MarketingOptIn != nil {
		customer.MarketingOptIn = request.MarketingOptIn
	}
	if request.Stage != nil {
		customer.Stage = *request.Stage
	}
	if request.Status != nil {
		customer.Status = *request.Status
	}
	if request.Notes != nil {
		customer.Notes = *request.Notes
	}
	if request.ProjectTypes != nil {
		customer.ProjectTypes = request.ProjectTypes
	}
	if request.Salesperson != nil {
		customer.Salesperson = request.Salesperson
	}
	if request.DateOfMeasure != nil {
		customer.DateOfMeasure = parseDatePtr(request.DateOfMeasure)
	}
	if request.UpdatedBy != nil {
		customer.UpdatedBy = request.UpdatedBy
	}
	customer.UpdatedAt = utils.UTCNow()

	if err := cf.customerRepo.Update(ctx, customer); err != nil {
		return nil, NewBusinessError("CUSTOMER_UPDATE_FAILED", "Failed to update customer", err)
	}

	return &dto.UpdateCustomerResponse{
		Message:  "Customer updated successfully",
		Customer: ToCustomerDTO(*customer),
	}, nil
}

// DeleteCustomer removes the customer and its quotations and form data in one
// transaction. Jobs pointing at the customer are not touched and keep their
// customer_id.
func (cf *CustomerFlowImpl) DeleteCustomer(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.DeleteCustomerResponse, error) {
	customer, err := cf.customerRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to look up customer", err)
	}
	if customer == nil {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}

	err = repository.WithTransaction(ctx, cf.db, func(ctx context.Context) error {
		return cf.customerRepo.Delete(ctx, id)
	})
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_DELETE_FAILED", "Failed to delete customer", err)
	}

	return &dto.DeleteCustomerResponse{
		Message: fmt.Sprintf("Customer %d deleted successfully", id),
		ID:      id,
	}, nil
}
