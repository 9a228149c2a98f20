// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/aztec-interiors/fitflow/app/dto"
	"github.com/aztec-interiors/fitflow/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	DeviceInfo map[string]string `json:"device_info,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		DeviceInfo: make(map[string]string),
		Additional: make(map[string]string),
	}
}

// AddDeviceInfo adds device information to the metadata
func (cm *ClientMetadata) AddDeviceInfo(key, value string) {
	if cm.DeviceInfo == nil {
		cm.DeviceInfo = make(map[string]string)
	}
	cm.DeviceInfo[key] = value
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToCustomerDTO converts a customer model to its API representation
func ToCustomerDTO(customer models.Customer) dto.CustomerDTO {
	return dto.CustomerDTO{
		ID:                     customer.ID,
		UUID:                   customer.UUID.String(),
		Name:                   customer.Name,
		Address:                customer.Address,
		Postcode:               customer.Postcode,
		Phone:                  customer.Phone,
		Email:                  customer.Email,
		ContactMade:            customer.ContactMade,
		PreferredContactMethod: customer.PreferredContactMethod,
		MarketingOptIn:         customer.MarketingOptIn,
		Stage:                  customer.Stage,
		Status:                 customer.Status,
		Notes:                  customer.Notes,
		ProjectTypes:           customer.ProjectTypes,
		Salesperson:            customer.Salesperson,
		DateOfMeasure:          formatDatePtr(customer.DateOfMeasure),
		CreatedBy:              customer.CreatedBy,
		CreatedAt:              customer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              customer.UpdatedAt.Format(time.RFC3339),
	}
}

// ToJobDTO converts a job model to its API representation
func ToJobDTO(job models.Job) dto.JobDTO {
	return dto.JobDTO{
		ID:                  job.ID,
		UUID:                job.UUID.String(),
		CustomerID:          job.CustomerID,
		Reference:           job.Reference,
		Name:                job.Name,
		Type:                job.Type,
		Stage:               job.Stage,
		Priority:            job.Priority,
		QuotePrice:          job.QuotePrice,
		AgreedPrice:         job.AgreedPrice,
		SoldAmount:          job.SoldAmount,
		Deposit1:            job.Deposit1,
		Deposit2:            job.Deposit2,
		MeasureDate:         formatDatePtr(job.MeasureDate),
		DeliveryDate:        formatDatePtr(job.DeliveryDate),
		CompletionDate:      formatDatePtr(job.CompletionDate),
		DepositDueDate:      formatDatePtr(job.DepositDueDate),
		InstallationAddress: job.InstallationAddress,
		Notes:               job.Notes,
		Tags:                job.Tags,
		HasCountingSheet:    job.HasCountingSheet,
		HasSchedule:         job.HasSchedule,
		HasInvoice:          job.HasInvoice,
		AssignedTeamName:    job.AssignedTeamName,
		PrimaryFitterName:   job.PrimaryFitterName,
		SalespersonName:     job.SalespersonName,
		QuotationID:         job.QuotationID,
		CreatedAt:           job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           job.UpdatedAt.Format(time.RFC3339),
	}
}

// ToQuotationDTO converts a quotation model, items included, to its API representation
func ToQuotationDTO(quotation models.Quotation) dto.QuotationDTO {
	items := make([]dto.QuotationItemDTO, 0, len(quotation.Items))
	for _, item := range quotation.Items {
		items = append(items, dto.QuotationItemDTO{
			ID:          item.ID,
			Item:        item.Item,
			Description: item.Description,
			Color:       item.Color,
			Amount:      item.Amount,
		})
	}
	return dto.QuotationDTO{
		ID:         quotation.ID,
		UUID:       quotation.UUID.String(),
		CustomerID: quotation.CustomerID,
		JobID:      quotation.JobID,
		Total:      quotation.Total,
		Status:     quotation.Status,
		Notes:      quotation.Notes,
		ExpiresAt:  formatDatePtr(quotation.ExpiresAt),
		Items:      items,
		CreatedAt:  quotation.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  quotation.UpdatedAt.Format(time.RFC3339),
	}
}

// ToFormSubmissionDTO converts a form submission model to its API representation
func ToFormSubmissionDTO(submission models.FormSubmission) dto.FormSubmissionDTO {
	return dto.FormSubmissionDTO{
		ID:          submission.ID,
		UUID:        submission.UUID.String(),
		CustomerID:  submission.CustomerID,
		Source:      submission.Source,
		Data:        submission.Data,
		RawText:     submission.RawText,
		PDFPath:     submission.PDFPath,
		ExcelPath:   submission.ExcelPath,
		SubmittedAt: submission.SubmittedAt.Format(time.RFC3339),
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

// normalizePage converts a 1-based page and page size into limit and offset.
// Zero values fall back to page 1 with the default page size.
func normalizePage(page, pageSize uint) (limit, offset int, err error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		return 0, 0, ErrInvalidPageSize
	}
	return int(pageSize), int((page - 1) * pageSize), nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 100
)
