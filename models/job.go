package models

import (
	"fmt"
	"time"

	"github.com/aztec-interiors/fitflow/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Job stages
const (
	JobStageLead         = "Lead"
	JobStageQuoted       = "Quoted"
	JobStageSold         = "Sold"
	JobStageAccepted     = "Accepted"
	JobStageProduction   = "Production"
	JobStageDelivery     = "Delivery"
	JobStageInstallation = "Installation"
	JobStageCompleted    = "Completed"
	JobStageCancelled    = "Cancelled"
	JobPriorityLow       = "Low"
	JobPriorityMedium    = "Medium"
	JobPriorityHigh      = "High"
	JobPriorityCritical  = "Critical"
)

// SchedulableJobStages are the post-sale stages in which a job is ready to
// be put on the fitting schedule.
var SchedulableJobStages = []string{JobStageAccepted, JobStageProduction, JobStageDelivery, JobStageInstallation}

// Job represents a fitting job for a customer.
// Table: jobs
// CustomerID intentionally carries no DB-level foreign key: jobs survive the
// deletion of their customer so that installation history is retained.
// Reference is unique and auto-generated (AZT-YYYY-MMDD-HHMM) when absent.
// Tags stored as TEXT[].
type Job struct {
	ID   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`

	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	Reference string `gorm:"type:varchar(50);uniqueIndex;not null" json:"job_reference"`
	Name      string `gorm:"type:varchar(100)" json:"job_name"`
	Type      string `gorm:"type:varchar(100);not null;default:'Kitchen'" json:"job_type"`
	Stage     string `gorm:"type:varchar(50);not null;default:'Lead';index" json:"stage"`
	Priority  string `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`

	QuotePrice  *float64 `gorm:"type:numeric(12,2)" json:"quote_price,omitempty"`
	AgreedPrice *float64 `gorm:"type:numeric(12,2)" json:"agreed_price,omitempty"`
	SoldAmount  *float64 `gorm:"type:numeric(12,2)" json:"sold_amount,omitempty"`
	Deposit1    *float64 `gorm:"type:numeric(12,2)" json:"deposit1,omitempty"`
	Deposit2    *float64 `gorm:"type:numeric(12,2)" json:"deposit2,omitempty"`

	MeasureDate    *time.Time `gorm:"type:date" json:"measure_date,omitempty"`
	DeliveryDate   *time.Time `gorm:"type:date" json:"delivery_date,omitempty"`
	CompletionDate *time.Time `gorm:"type:date" json:"completion_date,omitempty"`
	DepositDueDate *time.Time `gorm:"type:date" json:"deposit_due_date,omitempty"`

	InstallationAddress *string        `gorm:"type:text" json:"installation_address,omitempty"`
	Notes               *string        `gorm:"type:text" json:"notes,omitempty"`
	Tags                pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"tags"`

	HasCountingSheet *bool `gorm:"default:false" json:"has_counting_sheet"`
	HasSchedule      *bool `gorm:"default:false" json:"has_schedule"`
	HasInvoice       *bool `gorm:"default:false" json:"has_invoice"`

	AssignedTeamName  *string `gorm:"type:varchar(100)" json:"assigned_team_name,omitempty"`
	PrimaryFitterName *string `gorm:"type:varchar(100)" json:"primary_fitter_name,omitempty"`
	SalespersonName   *string `gorm:"type:varchar(100)" json:"salesperson_name,omitempty"`

	QuotationID *uint `gorm:"index" json:"quotation_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations (application-level, no DB constraints)
	Customer      *Customer         `gorm:"-" json:"customer,omitempty"`
	Documents     []JobDocument     `gorm:"foreignKey:JobID" json:"documents,omitempty"`
	Checklists    []JobChecklist    `gorm:"foreignKey:JobID" json:"checklists,omitempty"`
	ScheduleItems []JobScheduleItem `gorm:"foreignKey:JobID" json:"schedule_items,omitempty"`
	Rooms         []JobRoom         `gorm:"foreignKey:JobID" json:"rooms,omitempty"`
	FormLinks     []JobFormLink     `gorm:"foreignKey:JobID" json:"form_links,omitempty"`
	NoteEntries   []JobNote         `gorm:"foreignKey:JobID" json:"job_notes,omitempty"`
	Invoices      []JobInvoice      `gorm:"foreignKey:JobID" json:"invoices,omitempty"`
}

func (Job) TableName() string { return "jobs" }

// BeforeCreate ensures UUID, reference and timestamps are set
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.UUID == uuid.Nil {
		j.UUID = uuid.New()
	}
	if j.Reference == "" {
		j.Reference = GenerateJobReference(utils.UTCNow())
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = utils.UTCNow()
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// GenerateJobReference builds a job reference of the form AZT-YYYY-MMDD-HHMM
func GenerateJobReference(t time.Time) string {
	return fmt.Sprintf("%s-%04d-%02d%02d-%02d%02d",
		utils.JobReferencePrefix, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute())
}

// JobFilter represents filter criteria for job queries
type JobFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	CustomerID    *uint      `json:"customer_id,omitempty"`
	Reference     *string    `json:"job_reference,omitempty"`
	Type          *string    `json:"job_type,omitempty"`
	Stage         *string    `json:"stage,omitempty"`
	Stages        []string   `json:"stages,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	QuotationID   *uint      `json:"quotation_id,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
