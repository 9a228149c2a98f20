package models

import (
	"time"

	"github.com/aztec-interiors/fitflow/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quotation statuses
const (
	QuotationStatusDraft    = "Draft"
	QuotationStatusSent     = "Sent"
	QuotationStatusAccepted = "Accepted"
	QuotationStatusDeclined = "Declined"
	QuotationStatusExpired  = "Expired"
)

// Quotation is a priced offer for a customer, optionally tied to a job.
// Table: quotations
// Items are replaced wholesale on update (delete then insert, one transaction).
type Quotation struct {
	ID   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`

	CustomerID uint  `gorm:"not null;index" json:"customer_id"`
	JobID      *uint `gorm:"uniqueIndex" json:"job_id,omitempty"`

	Total     float64    `gorm:"type:numeric(12,2);not null" json:"total"`
	Status    string     `gorm:"type:varchar(50);not null;default:'Draft';index" json:"status"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`
	ExpiresAt *time.Time `gorm:"type:date" json:"expires_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items        []QuotationItem    `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
	ProductItems []ProductQuoteItem `gorm:"foreignKey:QuotationID" json:"product_items,omitempty"`
}

func (Quotation) TableName() string { return "quotations" }

func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.UUID == uuid.Nil {
		q.UUID = uuid.New()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = utils.UTCNow()
	}
	if q.UpdatedAt.IsZero() {
		q.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// QuotationItem is a single line of a quotation
type QuotationItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	QuotationID uint    `gorm:"not null;index" json:"quotation_id"`
	Item        string  `gorm:"type:varchar(255);not null" json:"item"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Color       *string `gorm:"type:varchar(50)" json:"color,omitempty"`
	Amount      float64 `gorm:"type:numeric(12,2);not null" json:"amount"`
}

func (QuotationItem) TableName() string { return "quotation_items" }

// ProductQuoteItem links a catalogue product to a quotation with a quantity
// and an optional price override. Deleted together with the quotation.
type ProductQuoteItem struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuotationID uint     `gorm:"not null;index" json:"quotation_id"`
	ProductID   uint     `gorm:"not null;index" json:"product_id"`
	Quantity    int      `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   *float64 `gorm:"type:numeric(12,2)" json:"unit_price,omitempty"`
}

func (ProductQuoteItem) TableName() string { return "product_quote_items" }

// QuotationFilter represents filter criteria for quotation queries
type QuotationFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	CustomerID    *uint      `json:"customer_id,omitempty"`
	JobID         *uint      `json:"job_id,omitempty"`
	Status        *string    `json:"status,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
