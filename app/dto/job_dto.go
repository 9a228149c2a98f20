package dto

// JobDTO represents a job in API responses
type JobDTO struct {
	ID                  uint     `json:"id" example:"42"`
	UUID                string   `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	CustomerID          uint     `json:"customer_id" example:"123"`
	Reference           string   `json:"job_reference" example:"AZT-2025-0314-1045"`
	Name                string   `json:"job_name" example:"Smith kitchen refit"`
	Type                string   `json:"job_type" example:"Kitchen"`
	Stage               string   `json:"stage" example:"Lead"`
	Priority            string   `json:"priority" example:"Medium"`
	QuotePrice          *float64 `json:"quote_price,omitempty"`
	AgreedPrice         *float64 `json:"agreed_price,omitempty"`
	SoldAmount          *float64 `json:"sold_amount,omitempty"`
	Deposit1            *float64 `json:"deposit1,omitempty"`
	Deposit2            *float64 `json:"deposit2,omitempty"`
	MeasureDate         *string  `json:"measure_date,omitempty" example:"2025-03-14"`
	DeliveryDate        *string  `json:"delivery_date,omitempty"`
	CompletionDate      *string  `json:"completion_date,omitempty"`
	DepositDueDate      *string  `json:"deposit_due_date,omitempty"`
	InstallationAddress *string  `json:"installation_address,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
	Tags                []string `json:"tags"`
	HasCountingSheet    *bool    `json:"has_counting_sheet"`
	HasSchedule         *bool    `json:"has_schedule"`
	HasInvoice          *bool    `json:"has_invoice"`
	AssignedTeamName    *string  `json:"assigned_team_name,omitempty"`
	PrimaryFitterName   *string  `json:"primary_fitter_name,omitempty"`
	SalespersonName     *string  `json:"salesperson_name,omitempty"`
	QuotationID         *uint    `json:"quotation_id,omitempty"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// CreateJobRequest carries data to create a new job.
// Reference is generated when absent.
type CreateJobRequest struct {
	CustomerID          uint     `json:"customer_id" validate:"required" example:"123"`
	Reference           *string  `json:"job_reference,omitempty" validate:"omitempty,max=50"`
	Name                string   `json:"job_name" validate:"omitempty,max=100"`
	Type                *string  `json:"job_type,omitempty" validate:"omitempty,max=100"`
	Stage               *string  `json:"stage,omitempty" validate:"omitempty,max=50"`
	Priority            *string  `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	QuotePrice          *float64 `json:"quote_price,omitempty" validate:"omitempty,gte=0"`
	AgreedPrice         *float64 `json:"agreed_price,omitempty" validate:"omitempty,gte=0"`
	SoldAmount          *float64 `json:"sold_amount,omitempty" validate:"omitempty,gte=0"`
	Deposit1            *float64 `json:"deposit1,omitempty" validate:"omitempty,gte=0"`
	Deposit2            *float64 `json:"deposit2,omitempty" validate:"omitempty,gte=0"`
	MeasureDate         *string  `json:"measure_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate        *string  `json:"delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CompletionDate      *string  `json:"completion_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DepositDueDate      *string  `json:"deposit_due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	InstallationAddress *string  `json:"installation_address,omitempty" validate:"omitempty,max=500"`
	Notes               *string  `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Tags                []string `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	AssignedTeamName    *string  `json:"assigned_team_name,omitempty" validate:"omitempty,max=100"`
	PrimaryFitterName   *string  `json:"primary_fitter_name,omitempty" validate:"omitempty,max=100"`
	SalespersonName     *string  `json:"salesperson_name,omitempty" validate:"omitempty,max=100"`
	QuotationID         *uint    `json:"quotation_id,omitempty"`
}

// CreateJobResponse returns the created job
type CreateJobResponse struct {
	Message string `json:"message"`
	Job     JobDTO `json:"job"`
}

// UpdateJobRequest carries a partial update of a job. Only non-nil fields are applied.
type UpdateJobRequest struct {
	Name                *string  `json:"job_name,omitempty" validate:"omitempty,max=100"`
	Type                *string  `json:"job_type,omitempty" validate:"omitempty,max=100"`
	Stage               *string  `json:"stage,omitempty" validate:"omitempty,max=50"`
	Priority            *string  `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	QuotePrice          *float64 `json:"quote_price,omitempty" validate:"omitempty,gte=0"`
	AgreedPrice         *float64 `json:"agreed_price,omitempty" validate:"omitempty,gte=0"`
	SoldAmount          *float64 `json:"sold_amount,omitempty" validate:"omitempty,gte=0"`
	Deposit1            *float64 `json:"deposit1,omitempty" validate:"omitempty,gte=0"`
	Deposit2            *float64 `json:"deposit2,omitempty" validate:"omitempty,gte=0"`
	MeasureDate         *string  `json:"measure_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeliveryDate        *string  `json:"delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CompletionDate      *string  `json:"completion_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DepositDueDate      *string  `json:"deposit_due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	InstallationAddress *string  `json:"installation_address,omitempty" validate:"omitempty,max=500"`
	Notes               *string  `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Tags                []string `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	HasCountingSheet    *bool    `json:"has_counting_sheet,omitempty"`
	HasSchedule         *bool    `json:"has_schedule,omitempty"`
	HasInvoice          *bool    `json:"has_invoice,omitempty"`
	AssignedTeamName    *string  `json:"assigned_team_name,omitempty" validate:"omitempty,max=100"`
	PrimaryFitterName   *string  `json:"primary_fitter_name,omitempty" validate:"omitempty,max=100"`
	SalespersonName     *string  `json:"salesperson_name,omitempty" validate:"omitempty,max=100"`
	QuotationID         *uint    `json:"quotation_id,omitempty"`
}

// UpdateJobResponse returns the updated job
type UpdateJobResponse struct {
	Message string `json:"message"`
	Job     JobDTO `json:"job"`
}

// ListJobsRequest filters for listing jobs
type ListJobsRequest struct {
	CustomerID *uint   `json:"customer_id,omitempty"`
	Stage      *string `json:"stage,omitempty"`
	Type       *string `json:"job_type,omitempty"`
	Page       uint    `json:"page,omitempty"`
	PageSize   uint    `json:"page_size,omitempty"`
}

// ListJobsResponse returns a page of jobs
type ListJobsResponse struct {
	Message string   `json:"message"`
	Jobs    []JobDTO `json:"jobs"`
	Total   int64    `json:"total"`
}

// GetJobResponse returns a single job
type GetJobResponse struct {
	Message string `json:"message"`
	Job     JobDTO `json:"job"`
}

// DeleteJobResponse confirms a job deletion
type DeleteJobResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// PipelineItem is one entry of the combined customer/job pipeline.
// Key is "customer-{id}" for bare customers and "job-{id}" for jobs.
type PipelineItem struct {
	Key          string   `json:"key" example:"job-42"`
	Kind         string   `json:"kind" example:"job"`
	CustomerID   uint     `json:"customer_id"`
	CustomerName string   `json:"customer_name"`
	Postcode     string   `json:"postcode,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	JobID        *uint    `json:"job_id,omitempty"`
	Reference    *string  `json:"job_reference,omitempty"`
	JobName      *string  `json:"job_name,omitempty"`
	JobType      *string  `json:"job_type,omitempty"`
	Stage        string   `json:"stage"`
	QuotePrice   *float64 `json:"quote_price,omitempty"`
	SoldAmount   *float64 `json:"sold_amount,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// PipelineResponse returns the combined pipeline view
type PipelineResponse struct {
	Message string         `json:"message"`
	Items   []PipelineItem `json:"items"`
}
