package payment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists receipts in the external store. The in-process
// queue stays authoritative for transitions; the store is a write-through
// so dashboards survive a restart with their history intact.
type Repository interface {
	Create(ctx context.Context, r *Receipt) error
	UpdateDecision(ctx context.Context, r *Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	FindPending(ctx context.Context) ([]Receipt, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, receipt *Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *repository) UpdateDecision(ctx context.Context, receipt *Receipt) error {
	return r.db.WithContext(ctx).
		Model(&Receipt{}).
		Where("id = ?", receipt.ID).
		Updates(map[string]any{
			"status":      receipt.Status,
			"admin_notes": receipt.AdminNotes,
			"decided_at":  receipt.DecidedAt,
		}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	var receipt Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	return &receipt, err
}

func (r *repository) FindPending(ctx context.Context) ([]Receipt, error) {
	var receipts []Receipt
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&receipts).Error
	return receipts, err
}
