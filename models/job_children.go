package models

import (
	"time"

	"github.com/aztec-interiors/fitflow/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job child tables. All of them reference jobs.id without a DB constraint;
// the repository layer deletes them inside the same transaction as the job.

// JobDocument is a file attached to a job (plans, photos, signed paperwork)
type JobDocument struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	JobID      uint      `gorm:"not null;index" json:"job_id"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	StoredPath string    `gorm:"type:text;not null" json:"stored_path"`
	Category   string    `gorm:"type:varchar(50);not null;default:'general'" json:"category"`
	SizeBytes  int64     `gorm:"not null;default:0" json:"size_bytes"`
	UploadedBy *string   `gorm:"type:varchar(100)" json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (JobDocument) TableName() string { return "job_documents" }

func (d *JobDocument) BeforeCreate(tx *gorm.DB) error {
	if d.UUID == uuid.Nil {
		d.UUID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = utils.UTCNow()
	}
	return nil
}

// JobChecklist groups counting-sheet style checklist items for a job
type JobChecklist struct {
	ID        uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uint               `gorm:"not null;index" json:"job_id"`
	Title     string             `gorm:"type:varchar(100);not null" json:"title"`
	CreatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Items     []JobChecklistItem `gorm:"foreignKey:ChecklistID" json:"items,omitempty"`
}

func (JobChecklist) TableName() string { return "job_checklists" }

// JobChecklistItem is a single line in a job checklist
type JobChecklistItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ChecklistID uint    `gorm:"not null;index" json:"checklist_id"`
	Label       string  `gorm:"type:varchar(255);not null" json:"label"`
	Quantity    int     `gorm:"not null;default:1" json:"quantity"`
	Checked     *bool   `gorm:"default:false" json:"checked"`
	Notes       *string `gorm:"type:text" json:"notes,omitempty"`
}

func (JobChecklistItem) TableName() string { return "job_checklist_items" }

// JobScheduleItem is one entry on a job's installation schedule
type JobScheduleItem struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID       uint       `gorm:"not null;index" json:"job_id"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Date        time.Time  `gorm:"type:date;not null;index" json:"date"`
	StartTime   *string    `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	EndTime     *string    `gorm:"type:varchar(5)" json:"end_time,omitempty"`
	StaffName   *string    `gorm:"type:varchar(100)" json:"staff_name,omitempty"`
	Status      string     `gorm:"type:varchar(50);not null;default:'Scheduled'" json:"status"`
	Notes       *string    `gorm:"type:text" json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (JobScheduleItem) TableName() string { return "job_schedule_items" }

// JobRoom describes a room covered by the job (e.g. "Master Bedroom")
type JobRoom struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID      uint            `gorm:"not null;index" json:"job_id"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	RoomType   string          `gorm:"type:varchar(50);not null;default:'Kitchen'" json:"room_type"`
	Notes      *string         `gorm:"type:text" json:"notes,omitempty"`
	Appliances []RoomAppliance `gorm:"foreignKey:RoomID" json:"appliances,omitempty"`
	CreatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (JobRoom) TableName() string { return "job_rooms" }

// RoomAppliance links a catalog product (or a free-text appliance) to a room
type RoomAppliance struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    uint    `gorm:"not null;index" json:"room_id"`
	ProductID *uint   `gorm:"index" json:"product_id,omitempty"`
	Name      string  `gorm:"type:varchar(100);not null" json:"name"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Notes     *string `gorm:"type:text" json:"notes,omitempty"`
}

func (RoomAppliance) TableName() string { return "room_appliances" }

// JobFormLink records a form token issued in the context of a job
type JobFormLink struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uint      `gorm:"not null;index" json:"job_id"`
	Token     string    `gorm:"type:varchar(64);not null;index" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (JobFormLink) TableName() string { return "job_form_links" }

// JobNote is a dated free-text note against a job
type JobNote struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uint      `gorm:"not null;index" json:"job_id"`
	Author    string    `gorm:"type:varchar(100);not null;default:'System'" json:"author"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (JobNote) TableName() string { return "job_notes" }

// JobInvoice is an invoice raised against a job
type JobInvoice struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID      uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	JobID     uint       `gorm:"not null;index" json:"job_id"`
	Number    string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"number"`
	Amount    float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status    string     `gorm:"type:varchar(50);not null;default:'Draft'" json:"status"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (JobInvoice) TableName() string { return "job_invoices" }

func (i *JobInvoice) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == uuid.Nil {
		i.UUID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = utils.UTCNow()
	}
	return nil
}
