package models

import (
	"time"

	"github.com/aztec-interiors/fitflow/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Form submission sources
const (
	FormSourceWeb  = "web_form"
	FormSourceScan = "scan"
)

// CustomerFormData stores the raw payload of a customer form submission.
// Table: customer_form_data
// FormData holds the serialized JSON exactly as submitted.
type CustomerFormData struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`
	FormData    string    `gorm:"type:text;not null" json:"form_data"`
	TokenUsed   string    `gorm:"type:varchar(64);not null;default:''" json:"token_used"`
	SubmittedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"submitted_at"`
}

func (CustomerFormData) TableName() string { return "customer_form_data" }

func (f *CustomerFormData) BeforeCreate(tx *gorm.DB) error {
	if f.SubmittedAt.IsZero() {
		f.SubmittedAt = utils.UTCNow()
	}
	return nil
}

// CustomerFormDataFilter represents filter criteria for form data queries
type CustomerFormDataFilter struct {
	ID              *uint      `json:"id,omitempty"`
	CustomerID      *uint      `json:"customer_id,omitempty"`
	TokenUsed       *string    `json:"token_used,omitempty"`
	SubmittedAfter  *time.Time `json:"submitted_after,omitempty"`
	SubmittedBefore *time.Time `json:"submitted_before,omitempty"`
}

// FormSubmission stores structured form data extracted from scans or web forms.
// Table: form_submissions
// CustomerID is nullable: a scanned sheet is persisted before anyone links it
// to a customer.
type FormSubmission struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	CustomerID  *uint     `gorm:"index" json:"customer_id,omitempty"`
	Source      string    `gorm:"type:varchar(20);not null;default:'web_form';index" json:"source"`
	Data        string    `gorm:"type:text;not null" json:"data"`
	RawText     *string   `gorm:"type:text" json:"raw_text,omitempty"`
	PDFPath     *string   `gorm:"type:text" json:"pdf_path,omitempty"`
	ExcelPath   *string   `gorm:"type:text" json:"excel_path,omitempty"`
	SubmittedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"submitted_at"`
}

func (FormSubmission) TableName() string { return "form_submissions" }

func (s *FormSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = utils.UTCNow()
	}
	return nil
}

// FormSubmissionFilter represents filter criteria for form submission queries
type FormSubmissionFilter struct {
	ID              *uint      `json:"id,omitempty"`
	UUID            *uuid.UUID `json:"uuid,omitempty"`
	CustomerID      *uint      `json:"customer_id,omitempty"`
	Unlinked        *bool      `json:"unlinked,omitempty"`
	Source          *string    `json:"source,omitempty"`
	SubmittedAfter  *time.Time `json:"submitted_after,omitempty"`
	SubmittedBefore *time.Time `json:"submitted_before,omitempty"`
}
