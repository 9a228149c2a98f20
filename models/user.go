package models

import (
	"time"

	"github.com/aztec-interiors/fitflow/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	UserRoleAdmin   = "admin"
	UserRoleManager = "manager"
	UserRoleUser    = "user"
)

// User is a staff account that can log in to the back office
type User struct {
	ID   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`

	Email        string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"` // Never serialize password hash
	FirstName    string  `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string  `gorm:"type:varchar(100);not null" json:"last_name"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Department   *string `gorm:"type:varchar(50)" json:"department,omitempty"`
	Phone        *string `gorm:"type:varchar(20)" json:"phone,omitempty"`

	IsActive   *bool `gorm:"default:true;index" json:"is_active"`
	IsVerified *bool `gorm:"default:false" json:"is_verified"`

	LastLoginAt *time.Time `gorm:"index" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == uuid.Nil {
		u.UUID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = utils.UTCNow()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID       *uint      `json:"id,omitempty"`
	UUID     *uuid.UUID `json:"uuid,omitempty"`
	Email    *string    `json:"email,omitempty"`
	Role     *string    `json:"role,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
