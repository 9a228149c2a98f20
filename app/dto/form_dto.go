package dto

// GenerateFormLinkRequest carries data to issue a single-use form token.
// JobID is optional; when present the token is recorded against the job.
type GenerateFormLinkRequest struct {
	JobID *uint `json:"job_id,omitempty"`
}

// GenerateFormLinkResponse returns the issued token and its expiry
type GenerateFormLinkResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token" example:"a1B2c3D4e5F6g7H8i9J0k1L2m3N4o5P6"`
	ExpiresAt string `json:"expires_at" example:"2025-01-16T10:30:00Z"`
}

// ValidateFormTokenResponse reports whether a form token can still be used
type ValidateFormTokenResponse struct {
	Valid     bool   `json:"valid"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// SubmitCustomerFormRequest carries a public customer form submission.
// Token is optional; when present it must be valid and unused.
// FormData keys follow the survey form schema; customer_name and
// customer_address are mandatory.
type SubmitCustomerFormRequest struct {
	Token    string            `json:"token,omitempty"`
	FormData map[string]string `json:"formData" validate:"required"`
}

// SubmitCustomerFormResponse confirms the created customer
type SubmitCustomerFormResponse struct {
	Message    string `json:"message"`
	CustomerID uint   `json:"customer_id"`
}

// CleanupTokensResponse reports the result of an expired-token sweep
type CleanupTokensResponse struct {
	Message         string `json:"message"`
	CleanedTokens   int    `json:"cleaned_tokens"`
	RemainingTokens int    `json:"remaining_tokens"`
}

// FormSubmissionDTO represents a structured form submission in API responses
type FormSubmissionDTO struct {
	ID          uint    `json:"id"`
	UUID        string  `json:"uuid"`
	CustomerID  *uint   `json:"customer_id,omitempty"`
	Source      string  `json:"source" example:"scan"`
	Data        string  `json:"data"`
	RawText     *string `json:"raw_text,omitempty"`
	PDFPath     *string `json:"pdf_path,omitempty"`
	ExcelPath   *string `json:"excel_path,omitempty"`
	SubmittedAt string  `json:"submitted_at"`
}

// ListFormSubmissionsRequest filters for listing form submissions
type ListFormSubmissionsRequest struct {
	CustomerID *uint   `json:"customer_id,omitempty"`
	Source     *string `json:"source,omitempty"`
	Unlinked   bool    `json:"unlinked,omitempty"`
	Page       uint    `json:"page,omitempty"`
	PageSize   uint    `json:"page_size,omitempty"`
}

// ListFormSubmissionsResponse returns a page of form submissions
type ListFormSubmissionsResponse struct {
	Message     string              `json:"message"`
	Submissions []FormSubmissionDTO `json:"submissions"`
	Total       int64               `json:"total"`
}

// LinkFormSubmissionRequest attaches a stored submission to a customer
type LinkFormSubmissionRequest struct {
	CustomerID uint `json:"customer_id" validate:"required"`
}

// LinkFormSubmissionResponse returns the updated submission
type LinkFormSubmissionResponse struct {
	Message    string            `json:"message"`
	Submission FormSubmissionDTO `json:"submission"`
}
