package dto

// QuotationItemDTO represents a quotation line item in API responses
type QuotationItemDTO struct {
	ID          uint    `json:"id"`
	Item        string  `json:"item" example:"Sliding wardrobe doors"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" example:"Graphite"`
	Amount      float64 `json:"amount" example:"1250.50"`
}

// QuotationDTO represents a quotation in API responses
type QuotationDTO struct {
	ID         uint               `json:"id"`
	UUID       string             `json:"uuid"`
	CustomerID uint               `json:"customer_id"`
	JobID      *uint              `json:"job_id,omitempty"`
	Total      float64            `json:"total"`
	Status     string             `json:"status" example:"Draft"`
	Notes      *string            `json:"notes,omitempty"`
	ExpiresAt  *string            `json:"expires_at,omitempty" example:"2025-06-30"`
	Items      []QuotationItemDTO `json:"items"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
}

// QuotationItemInput is a line item as supplied by the client
type QuotationItemInput struct {
	Item        string  `json:"item" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=50"`
	Amount      float64 `json:"amount" validate:"gte=0"`
}

// CreateQuotationRequest carries data to create a new quotation.
// Total is required; items are optional and may be empty.
type CreateQuotationRequest struct {
	CustomerID uint                 `json:"customer_id" validate:"required"`
	JobID      *uint                `json:"job_id,omitempty"`
	Total      *float64             `json:"total" validate:"required,gte=0"`
	Status     *string              `json:"status,omitempty" validate:"omitempty,max=50"`
	Notes      *string              `json:"notes,omitempty" validate:"omitempty,max=5000"`
	ExpiresAt  *string              `json:"expires_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Items      []QuotationItemInput `json:"items,omitempty" validate:"omitempty,dive"`
}

// CreateQuotationResponse returns the created quotation
type CreateQuotationResponse struct {
	Message   string       `json:"message"`
	Quotation QuotationDTO `json:"quotation"`
}

// UpdateQuotationRequest carries a partial update of a quotation.
// When Items is non-nil the existing items are removed and replaced in full.
type UpdateQuotationRequest struct {
	JobID     *uint                `json:"job_id,omitempty"`
	Total     *float64             `json:"total,omitempty" validate:"omitempty,gte=0"`
	Status    *string              `json:"status,omitempty" validate:"omitempty,max=50"`
	Notes     *string              `json:"notes,omitempty" validate:"omitempty,max=5000"`
	ExpiresAt *string              `json:"expires_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Items     []QuotationItemInput `json:"items,omitempty" validate:"omitempty,dive"`
}

// UpdateQuotationResponse returns the updated quotation
type UpdateQuotationResponse struct {
	Message   string       `json:"message"`
	Quotation QuotationDTO `json:"quotation"`
}

// ListQuotationsRequest filters for listing quotations
type ListQuotationsRequest struct {
	CustomerID *uint   `json:"customer_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       uint    `json:"page,omitempty"`
	PageSize   uint    `json:"page_size,omitempty"`
}

// ListQuotationsResponse returns a page of quotations
type ListQuotationsResponse struct {
	Message    string         `json:"message"`
	Quotations []QuotationDTO `json:"quotations"`
	Total      int64          `json:"total"`
}

// GetQuotationResponse returns a single quotation with items
type GetQuotationResponse struct {
	Message   string       `json:"message"`
	Quotation QuotationDTO `json:"quotation"`
}

// DeleteQuotationResponse confirms a quotation deletion
type DeleteQuotationResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}
