package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is one badge holder. BadgeNumber is the human-readable id
// printed into the QR badge; it is generated once at creation and never
// changes afterwards.
type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName    string    `gorm:"type:varchar(120);not null"`
	Email       string    `gorm:"type:varchar(120);uniqueIndex:uq_employee_email"`
	Phone       string    `gorm:"type:varchar(30)"`
	Position    string    `gorm:"type:varchar(80)"`
	BadgeNumber string    `gorm:"type:varchar(20);uniqueIndex:uq_employee_badge_number"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
