// Package businessflow contains the core business logic and use cases for job workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/repository"
	"github.com/aztec-interiors/fitflow/utils"
	"gorm.io/gorm"
)

// JobFlow handles job lifecycle operations and the combined pipeline view
type JobFlow interface {
	CreateJob(ctx context.Context, request *dto.CreateJobRequest, metadata *ClientMetadata) (*dto.CreateJobResponse, error)
	GetJob(ctx context.Context, id uint) (*dto.GetJobResponse, error)
	ListJobs(ctx context.Context, request *dto.ListJobsRequest) (*dto.ListJobsResponse, error)
	ListAvailableJobs(ctx context.Context) (*dto.ListJobsResponse, error)
	UpdateJob(ctx context.Context, id uint, request *dto.UpdateJobRequest, metadata *ClientMetadata) (*dto.UpdateJobResponse, error)
	DeleteJob(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.DeleteJobResponse, error)
	GetPipeline(ctx context.Context) (*dto.PipelineResponse, error)
}

// JobFlowImpl implements the job business flow
type JobFlowImpl struct {
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	db           *gorm.DB
}

// NewJobFlow creates a new job flow instance
func NewJobFlow(jobRepo repository.JobRepository, customerRepo repository.CustomerRepository, db *gorm.DB) JobFlow {
	return &JobFlowImpl{
		jobRepo:      jobRepo,
		customerRepo: customerRepo,
		db:           db,
	}
}

func (jf *JobFlowImpl) CreateJob(ctx context.Context, request *dto.CreateJobRequest, metadata *ClientMetadata) (*dto.CreateJobResponse, error) {
	customer, err := jf.customerRepo.ByID(ctx, request.CustomerID)
	if err != nil {
		return nil, NewBusinessError("CUSTOMER_LOOKUP_FAILED", "Failed to look up customer", err)
	}
	if customer == nil {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Customer not found", ErrCustomerNotFound)
	}

	reference := ""
	if request.Reference != nil {
		reference = *request.Reference
	}
	if reference != "" {
		existing, err := jf.jobRepo.ByReference(ctx, reference)
		if err != nil {
			return nil, NewBusinessError("JOB_LOOKUP_FAILED", "Failed to check job reference", err)
		}
		if existing != nil {
			return nil, NewBusinessError("JOB_REFERENCE_CONFLICT", "Job reference already exists", ErrJobReferenceConflict)
		}
	}

	job := models.Job{
		CustomerID:          request.CustomerID,
		Reference:           reference,
		Name:                request.Name,
		Type:                "Kitchen",
		Stage:               models.JobStageLead,
		Priority:            models.JobPriorityMedium,
		QuotePrice:          request.QuotePrice,
		AgreedPrice:         request.AgreedPrice,
		SoldAmount:          request.SoldAmount,
		Deposit1:            request.Deposit1,
		Deposit2:            request.Deposit2,
		MeasureDate:         parseDatePtr(request.MeasureDate),
		DeliveryDate:        parseDatePtr(request.DeliveryDate),
		CompletionDate:      parseDatePtr(request.CompletionDate),
		DepositDueDate:      parseDatePtr(request.DepositDueDate),
		InstallationAddress: request.InstallationAddress,
		Notes:               request.Notes,
		Tags:                request.Tags,
		AssignedTeamName:    request.AssignedTeamName,
		PrimaryFitterName:   request.PrimaryFitterName,
		SalespersonName:     request.SalespersonName,
		QuotationID:         request.QuotationID,
	}
	if request.Type != nil {
		job.Type = *request.Type
	}
	if request.Stage != nil {
		job.Stage = *request.Stage
	}
	if request.Priority != nil {
		job.Priority = *request.Priority
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}

	if err := jf.jobRepo.Save(ctx, &job); err != nil {
		return nil, NewBusinessError("JOB_CREATE_FAILED", "Failed to create job", err)
	}

	return &dto.CreateJobResponse{
		Message: "Job created successfully",
		Job:     ToJobDTO(job),
	}, nil
}

func (jf *JobFlowImpl) GetJob(ctx context.Context, id uint) (*dto.GetJobResponse, error) {
	job, err := jf.jobRepo.ByIDWithChildren(ctx, id)
	if err != nil {
		return nil, NewBusinessError("JOB_LOOKUP_FAILED", "Failed to look up job", err)
	}
	if job == nil {
		return nil, NewBusinessError("JOB_NOT_FOUND", "Job not found", ErrJobNotFound)
	}

	return &dto.GetJobResponse{
		Message: "Job retrieved successfully",
		Job:     ToJobDTO(*job),
	}, nil
}

func (jf *JobFlowImpl) ListJobs(ctx context.Context, request *dto.ListJobsRequest) (*dto.ListJobsResponse, error) {
	limit, offset, err := normalizePage(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("INVALID_PAGINATION", "Invalid pagination parameters", err)
	}

	filter := models.JobFilter{
		CustomerID: request.CustomerID,
		Stage:      request.Stage,
		Type:       request.Type,
	}

	jobs, err := jf.jobRepo.ByFilter(ctx, filter, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("JOB_LIST_FAILED", "Failed to list jobs", err)
	}
	total, err := jf.jobRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("JOB_LIST_FAILED", "Failed to count jobs", err)
	}

	dtos := make([]dto.JobDTO, 0, len(jobs))
	for _, job := range jobs {
		dtos = append(dtos, ToJobDTO(*job))
	}

	return &dto.ListJobsResponse{
		Message: "Jobs retrieved successfully",
		Jobs:    dtos,
		Total:   total,
	}, nil
}

// ListAvailableJobs returns jobs in a stage that can still be scheduled.
func (jf *JobFlowImpl) ListAvailableJobs(ctx context.Context) (*dto.ListJobsResponse, error) {
	jobs, err := jf.jobRepo.ListSchedulable(ctx)
	if err != nil {
		return nil, NewBusinessError("JOB_LIST_FAILED", "Failed to list available jobs", err)
	}

	dtos := make([]dto.JobDTO, 0, len(jobs))
	for _, job := range jobs {
		dtos = append(dtos, ToJobDTO(*job))
	}

	return &dto.ListJobsResponse{
		Message: "Jobs retrieved successfully",
		Jobs:    dtos,
		Total:   int64(len(dtos)),
	}, nil
}

func (jf *JobFlowImpl) UpdateJob(ctx context.Context, id uint, request *dto.UpdateJobRequest, metadata *ClientMetadata) (*dto.UpdateJobResponse, error) {
	job, err := jf.jobRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("JOB_LOOKUP_FAILED", "Failed to look up job", err)
	}
	if job == nil {
		return nil, NewBusinessError("JOB_NOT_FOUND", "Job not found", ErrJobNotFound)
	}

	if request.Name != nil {
		job.Name = *request.Name
	}
	if request.Type != nil {
		job.Type = *request.Type
	}
	if request.Stage != nil {
		job.Stage = *request.Stage
	}
	if request.Priority != nil {
		job.Priority = *request.Priority
	}
	if request.QuotePrice != nil {
		job.QuotePrice = request.QuotePrice
	}
	if request.AgreedPrice != nil {
		job.AgreedPrice = request.AgreedPrice
	}
	if request.SoldAmount != nil {
		job.SoldAmount = request.SoldAmount
	}
	if request.Deposit1 != nil {
		job.Deposit1 = request.Deposit1
	}
	if request.Deposit2 != nil {
		job.Deposit2 = request.Deposit2
	}
	if request.MeasureDate != nil {
		job.MeasureDate = parseDatePtr(request.MeasureDate)
	}
	if request.DeliveryDate != nil {
		job.DeliveryDate = parseDatePtr(request.DeliveryDate)
	}
	if request.CompletionDate != nil {
		job.CompletionDate = parseDatePtr(request.CompletionDate)
	}
	if request.DepositDueDate != nil {
		job.DepositDueDate = parseDatePtr(request.DepositDueDate)
	}
	if request.InstallationAddress != nil {
		job.InstallationAddress = request.InstallationAddress
	}
	if request.Notes != nil {
		job.Notes = request.Notes
	}
	if request.Tags != nil {
		job.Tags = request.Tags
	}
	if request.HasCountingSheet != nil {
		job.HasCountingSheet = request.HasCountingSheet
	}
	if request.HasSchedule != nil {
		job.HasSchedule = request.HasSchedule
	}
	if request.HasInvoice != nil {
		job.HasInvoice = request.HasInvoice
	}
	if request.AssignedTeamName != nil {
		job.AssignedTeamName = request.AssignedTeamName
	}
	if request.PrimaryFitterName != nil {
		job.PrimaryFitterName = request.PrimaryFitterName
	}
	if request.SalespersonName != nil {
		job.SalespersonName = request.SalespersonName
	}
	if request.QuotationID != nil {
		job.QuotationID = request.QuotationID
	}
	job.UpdatedAt = utils.UTCNow()

	if err := jf.jobRepo.Update(ctx, job); err != nil {
		return nil, NewBusinessError("JOB_UPDATE_FAILED", "Failed to update job", err)
	}

	return &dto.UpdateJobResponse{
		Message: "Job updated successfully",
		Job:     ToJobDTO(*job),
	}, nil
}

// DeleteJob removes the job and all of its child rows in one transaction
func (jf *JobFlowImpl) DeleteJob(ctx context.Context, id uint, metadata *ClientMetadata) (*dto.DeleteJobResponse, error) {
	job, err := jf.jobRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("JOB_LOOKUP_FAILED", "Failed to look up job", err)
	}
	if job == nil {
		return nil, NewBusinessError("JOB_NOT_FOUND", "Job not found", ErrJobNotFound)
	}

	err = repository.WithTransaction(ctx, jf.db, func(ctx context.Context) error {
		return jf.jobRepo.Delete(ctx, id)
	})
	if err != nil {
		return nil, NewBusinessError("JOB_DELETE_FAILED", "Failed to delete job", err)
	}

	return &dto.DeleteJobResponse{
		Message: fmt.Sprintf("Job %d deleted successfully", id),
		ID:      id,
	}, nil
}

// GetPipeline merges every job and job-less customer into a single board.
// Jobs appear as "job-{id}" with their customer's contact details; customers
// that have no job yet appear once as "customer-{id}".
func (jf *JobFlowImpl) GetPipeline(ctx context.Context) (*dto.PipelineResponse, error) {
	customers, err := jf.customerRepo.ListActiveCustomers(ctx, 0, 0)
	if err != nil {
		return nil, NewBusinessError("PIPELINE_FAILED", "Failed to load customers", err)
	}
	jobs, err := jf.jobRepo.ByFilter(ctx, models.JobFilter{}, "created_at DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("PIPELINE_FAILED", "Failed to load jobs", err)
	}

	customersByID := make(map[uint]*models.Customer, len(customers))
	for _, customer := range customers {
		customersByID[customer.ID] = customer
	}

	hasJob := make(map[uint]bool, len(jobs))
	items := make([]dto.PipelineItem, 0, len(customers)+len(jobs))

	for _, job := range jobs {
		hasJob[job.CustomerID] = true

		item := dto.PipelineItem{
			Key:        fmt.Sprintf("job-%d", job.ID),
			Kind:       "job",
			CustomerID: job.CustomerID,
			JobID:      &job.ID,
			Reference:  &job.Reference,
			JobName:    &job.Name,
			JobType:    &job.Type,
			Stage:      job.Stage,
			QuotePrice: job.QuotePrice,
			SoldAmount: job.SoldAmount,
			CreatedAt:  job.CreatedAt.Format(time.RFC3339),
		}
		if customer, ok := customersByID[job.CustomerID]; ok {
			item.CustomerName = customer.Name
			item.Postcode = customer.Postcode
			item.Phone = customer.Phone
		}
		items = append(items, item)
	}

	for _, customer := range customers {
		if hasJob[customer.ID] {
			continue
		}
		items = append(items, dto.PipelineItem{
			Key:          fmt.Sprintf("customer-%d", customer.ID),
			Kind:         "customer",
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			Postcode:     customer.Postcode,
			Phone:        customer.Phone,
			Stage:        customer.Stage,
			CreatedAt:    customer.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.PipelineResponse{
		Message: "Pipeline retrieved successfully",
		Items:   items,
	}, nil
}
