package models

import (
	"time"
)

// Brand is an appliance manufacturer in the catalog
type Brand struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Website   *string   `gorm:"type:varchar(255)" json:"website,omitempty"`
	IsActive  *bool     `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Brand) TableName() string { return "brands" }

// ApplianceCategory groups catalog products (ovens, hobs, extractors...)
type ApplianceCategory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	IsActive    *bool     `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ApplianceCategory) TableName() string { return "appliance_categories" }

// Product is a catalog appliance that can be attached to job rooms
type Product struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BrandID    uint      `gorm:"not null;index" json:"brand_id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	ModelCode  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"model_code"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Price      *float64  `gorm:"type:numeric(12,2)" json:"price,omitempty"`
	IsActive   *bool     `gorm:"default:true;index" json:"is_active"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Brand    *Brand             `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Category *ApplianceCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string { return "products" }

// ProductFilter represents filter criteria for product queries
type ProductFilter struct {
	ID         *uint   `json:"id,omitempty"`
	BrandID    *uint   `json:"brand_id,omitempty"`
	CategoryID *uint   `json:"category_id,omitempty"`
	ModelCode  *string `json:"model_code,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}
