package models

import (
	"time"
)

// Team is an installation crew
type Team struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Color     *string   `gorm:"type:varchar(20)" json:"color,omitempty"`
	IsActive  *bool     `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Team) TableName() string { return "teams" }

// Fitter is an installer, optionally attached to a team
type Fitter struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone     *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	TeamID    *uint     `gorm:"index" json:"team_id,omitempty"`
	IsActive  *bool     `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Fitter) TableName() string { return "fitters" }

// Salesperson sells jobs and owns customer relationships
type Salesperson struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     *string   `gorm:"type:varchar(100)" json:"email,omitempty"`
	Phone     *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	IsActive  *bool     `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Salesperson) TableName() string { return "salespersons" }

// StaffFilter covers the simple list queries on teams, fitters and salespersons
type StaffFilter struct {
	ID       *uint   `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
	TeamID   *uint   `json:"team_id,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
