// Package dto contains Data Transfer Objects for API request and response structures
package dto

// CustomerDTO represents a customer in API responses
type CustomerDTO struct {
	ID                     uint     `json:"id" example:"123"`
	UUID                   string   `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name                   string   `json:"name" example:"Jane Smith"`
	Address                string   `json:"address" example:"12 Harewood Road, Leeds LS2 9AB"`
	Postcode               string   `json:"postcode" example:"LS2 9AB"`
	Phone                  string   `json:"phone" example:"07700900123"`
	Email                  string   `json:"email" example:"jane@example.com"`
	ContactMade            string   `json:"contact_made" example:"Yes"`
	PreferredContactMethod *string  `json:"preferred_contact_method,omitempty" example:"Phone"`
	MarketingOptIn         *bool    `json:"marketing_opt_in" example:"false"`
	Stage                  string   `json:"stage" example:"Lead"`
	Status                 string   `json:"status" example:"Active"`
	Notes                  string   `json:"notes"`
	ProjectTypes           []string `json:"project_types" example:"Kitchen,Bedroom"`
	Salesperson            *string  `json:"salesperson,omitempty" example:"Dave Wilson"`
	DateOfMeasure          *string  `json:"date_of_measure,omitempty" example:"2025-03-14"`
	CreatedBy              string   `json:"created_by" example:"System"`
	CreatedAt              string   `json:"created_at" example:"2025-01-15T10:30:00Z"`
	UpdatedAt              string   `json:"updated_at" example:"2025-01-15T10:30:00Z"`
}

// CreateCustomerRequest carries data to create a new customer
type CreateCustomerRequest struct {
	Name                   string   `json:"name" validate:"required,min=1,max=100" example:"Jane Smith"`
	Address                string   `json:"address" validate:"omitempty,max=500" example:"12 Harewood Road, Leeds LS2 9AB"`
	Phone                  string   `json:"phone" validate:"omitempty,max=20" example:"07700900123"`
	Email                  string   `json:"email" validate:"omitempty,email,max=100" example:"jane@example.com"`
	ContactMade            *string  `json:"contact_made,omitempty" validate:"omitempty,oneof=Yes No Unknown"`
	PreferredContactMethod *string  `json:"preferred_contact_method,omitempty" validate:"omitempty,max=20"`
	MarketingOptIn         *bool    `json:"marketing_opt_in,omitempty"`
	Stage                  *string  `json:"stage,omitempty" validate:"omitempty,max=50"`
	Status                 *string  `json:"status,omitempty" validate:"omitempty,max=50"`
	Notes                  *string  `json:"notes,omitempty" validate:"omitempty,max=5000"`
	ProjectTypes           []string `json:"project_types,omitempty" validate:"omitempty,dive,max=50"`
	Salesperson            *string  `json:"salesperson,omitempty" validate:"omitempty,max=100"`
	DateOfMeasure          *string  `json:"date_of_measure,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CreatedBy              *string  `json:"created_by,omitempty" validate:"omitempty,max=100"`
}

// CreateCustomerResponse returns the created customer
type CreateCustomerResponse struct {
	Message  string      `json:"message"`
	Customer CustomerDTO `json:"customer"`
}

// UpdateCustomerRequest carries a partial update of a customer.
// Only non-nil fields are applied. A changed address re-derives the postcode.
type UpdateCustomerRequest struct {
	Name                   *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Address                *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone                  *string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email                  *string  `json:"email,omitempty" validate:"omitempty,email,max=100"`
	ContactMade            *string  `json:"contact_made,omitempty" validate:"omitempty,oneof=Yes No Unknown"`
	PreferredContactMethod *string  `json:"preferred_contact_method,omitempty" validate:"omitempty,max=20"`
	MarketingOptIn         *bool    `json:"marketing_opt_in,omitempty"`
	Stage                  *string  `json:"stage,omitempty" validate:"omitempty,max=50"`
	Status                 *string  `json:"status,omitempty" validate:"omitempty,max=50"`
	Notes                  *string  `json:"notes,omitempty" validate:"omitempty,max=5000"`
	ProjectTypes           []string `json:"project_types,omitempty" validate:"omitempty,dive,max=50"`
	Salesperson            *string  `json:"salesperson,omitempty" validate:"omitempty,max=100"`
	DateOfMeasure          *string  `json:"date_of_measure,omitempty" validate:"omitempty,datetime=2006-01-02"`
	UpdatedBy              *string  `json:"updated_by,omitempty" validate:"omitempty,max=100"`
}

// UpdateCustomerResponse returns the updated customer
type UpdateCustomerResponse struct {
	Message  string      `json:"message"`
	Customer CustomerDTO `json:"customer"`
}

// ListCustomersRequest filters for listing customers
type ListCustomersRequest struct {
	Stage      *string `json:"stage,omitempty"`
	Status     *string `json:"status,omitempty"`
	ActiveOnly bool    `json:"active_only,omitempty"`
	Page       uint    `json:"page,omitempty"`
	PageSize   uint    `json:"page_size,omitempty"`
}

// ListCustomersResponse returns a page of customers
type ListCustomersResponse struct {
	Message   string        `json:"message"`
	Customers []CustomerDTO `json:"customers"`
	Total     int64         `json:"total"`
}

// GetCustomerResponse returns a single customer with its related records
type GetCustomerResponse struct {
	Message    string         `json:"message"`
	Customer   CustomerDTO    `json:"customer"`
	Jobs       []JobDTO       `json:"jobs"`
	Quotations []QuotationDTO `json:"quotations"`
}

// DeleteCustomerResponse confirms a customer deletion
type DeleteCustomerResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}
