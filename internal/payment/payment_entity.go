package payment

import (
	"time"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// IsTerminal reports whether no further transition is permitted.
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// Receipt is one submitted proof-of-payment awaiting admin review.
// Status moves pending->approved or pending->rejected exactly once;
// DecidedAt is set if and only if the status is terminal.
type Receipt struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           string    `gorm:"type:varchar(64);not null;index"`
	UserName         string    `gorm:"type:varchar(120)"`
	UserEmail        string    `gorm:"type:varchar(120)"`
	PlanType         string    `gorm:"type:varchar(30);not null"`
	Amount           int64     `gorm:"not null"`
	ReceiptReference string    `gorm:"type:text;not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNotes       string    `gorm:"type:text"`
	CreatedAt        time.Time
	DecidedAt        *time.Time
}

func (Receipt) TableName() string { return "payment_receipts" }

func (r Receipt) snapshot() events.ReceiptSnapshot {
	return events.ReceiptSnapshot{
		ReceiptID:        r.ID.String(),
		UserID:           r.UserID,
		UserName:         r.UserName,
		UserEmail:        r.UserEmail,
		PlanType:         r.PlanType,
		Amount:           r.Amount,
		ReceiptReference: r.ReceiptReference,
		Status:           r.Status,
		AdminNotes:       r.AdminNotes,
		CreatedAt:        r.CreatedAt,
		DecidedAt:        r.DecidedAt,
	}
}
