// Package models contains domain entities and business models for the fitting-company backend
package models

import (
	"time"

	"github.com/aztec-interiors/fitflow/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Customer contact_made values
const (
	ContactMadeYes     = "Yes"
	ContactMadeNo      = "No"
	ContactMadeUnknown = "Unknown"
)

// Customer preferred contact methods
const (
	ContactMethodPhone    = "Phone"
	ContactMethodEmail    = "Email"
	ContactMethodWhatsApp = "WhatsApp"
)

// Customer represents a (potential) customer of the fitting company.
// Table: customers
// Postcode is derived from Address on create and whenever the address changes.
// ProjectTypes stored as TEXT[].
// Deleting a customer removes quotations and form data but keeps jobs (see repository layer).
type Customer struct {
	ID   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`

	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Address  string `gorm:"type:text" json:"address"`
	Postcode string `gorm:"type:varchar(10);index" json:"postcode"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Email    string `gorm:"type:varchar(100)" json:"email"`

	ContactMade            string  `gorm:"type:varchar(10);not null;default:'Unknown'" json:"contact_made"`
	PreferredContactMethod *string `gorm:"type:varchar(20)" json:"preferred_contact_method,omitempty"`
	MarketingOptIn         *bool   `gorm:"default:false" json:"marketing_opt_in"`

	Stage         string         `gorm:"type:varchar(50);not null;default:'Lead';index" json:"stage"`
	Status        string         `gorm:"type:varchar(50);not null;default:'Active';index" json:"status"`
	Notes         string         `gorm:"type:text" json:"notes"`
	ProjectTypes  pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"project_types"`
	Salesperson   *string        `gorm:"type:varchar(100)" json:"salesperson,omitempty"`
	DateOfMeasure *time.Time     `gorm:"type:date" json:"date_of_measure,omitempty"`

	CreatedBy string    `gorm:"type:varchar(100);not null;default:'System'" json:"created_by"`
	UpdatedBy *string   `gorm:"type:varchar(100)" json:"updated_by,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Jobs       []Job              `gorm:"foreignKey:CustomerID" json:"jobs,omitempty"`
	Quotations []Quotation        `gorm:"foreignKey:CustomerID" json:"quotations,omitempty"`
	FormData   []CustomerFormData `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string { return "customers" }

// BeforeCreate ensures UUID, postcode and timestamps are set
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.Postcode == "" {
		c.Postcode = utils.DerivePostcode(c.Address)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// CustomerFilter represents filter criteria for customer queries
type CustomerFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Postcode      *string    `json:"postcode,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Stage         *string    `json:"stage,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Salesperson   *string    `json:"salesperson,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
