// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/aztec-interiors/fitflow/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// CustomerRepository defines operations for customers
type CustomerRepository interface {
	Repository[models.Customer, models.CustomerFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Customer, error)
	ByIDWithRelations(ctx context.Context, id uint) (*models.Customer, error)
	ListActiveCustomers(ctx context.Context, limit, offset int) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	// Delete removes a customer and its quotations and form data.
	// Jobs referencing the customer are left in place.
	Delete(ctx context.Context, id uint) error
}

// JobRepository defines operations for jobs
type JobRepository interface {
	Repository[models.Job, models.JobFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Job, error)
	ByIDWithChildren(ctx context.Context, id uint) (*models.Job, error)
	ByReference(ctx context.Context, reference string) (*models.Job, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Job, error)
	ListSchedulable(ctx context.Context) ([]*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	// SaveFormLink records a form token issued against the job
	SaveFormLink(ctx context.Context, link *models.JobFormLink) error
	// Delete removes a job together with all of its child rows
	Delete(ctx context.Context, id uint) error
}

// QuotationRepository defines operations for quotations
type QuotationRepository interface {
	Repository[models.Quotation, models.QuotationFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Quotation, error)
	ByIDWithItems(ctx context.Context, id uint) (*models.Quotation, error)
	ByJobID(ctx context.Context, jobID uint) (*models.Quotation, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Quotation, error)
	Update(ctx context.Context, quotation *models.Quotation) error
	// ReplaceItems deletes every existing item of the quotation and inserts
	// the given set. Callers run it inside WithTransaction.
	ReplaceItems(ctx context.Context, quotationID uint, items []*models.QuotationItem) error
	Delete(ctx context.Context, id uint) error
}

// CustomerFormDataRepository defines operations for raw customer form payloads
type CustomerFormDataRepository interface {
	Repository[models.CustomerFormData, models.CustomerFormDataFilter]
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.CustomerFormData, error)
	DeleteByCustomer(ctx context.Context, customerID uint) error
}

// FormSubmissionRepository defines operations for structured form submissions
type FormSubmissionRepository interface {
	Repository[models.FormSubmission, models.FormSubmissionFilter]
	ByUUID(ctx context.Context, uuid string) (*models.FormSubmission, error)
	ListUnlinked(ctx context.Context) ([]*models.FormSubmission, error)
	Update(ctx context.Context, submission *models.FormSubmission) error
	Delete(ctx context.Context, id uint) error
}

// TeamRepository defines operations for installation teams
type TeamRepository interface {
	Repository[models.Team, models.StaffFilter]
}

// FitterRepository defines operations for fitters
type FitterRepository interface {
	Repository[models.Fitter, models.StaffFilter]
	ListByTeam(ctx context.Context, teamID uint) ([]*models.Fitter, error)
}

// SalespersonRepository defines operations for salespersons
type SalespersonRepository interface {
	Repository[models.Salesperson, models.StaffFilter]
}

// ProductRepository defines operations for the appliance catalog
type ProductRepository interface {
	Repository[models.Product, models.ProductFilter]
	ByModelCode(ctx context.Context, modelCode string) (*models.Product, error)
	ListBrands(ctx context.Context) ([]*models.Brand, error)
	ListCategories(ctx context.Context) ([]*models.ApplianceCategory, error)
}

// UserRepository defines operations for staff users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
