package payment

import (
	"context"
	"partner-funnel/internal/common/models"
	database "partner-funnel/internal/pkg/db"
)

type IRepository interface {
	Create(ctx context.Context, trx *models.PixTransaction) error
	FindByProviderID(ctx context.Context, providerID string) (*models.PixTransaction, error)
	UpdateStatus(ctx context.Context, providerID string, updates map[string]any) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, trx *models.PixTransaction) error {
	return r.db.WithContext(ctx).Create(trx).Error
}

func (r *Repository) FindByProviderID(ctx context.Context, providerID string) (*models.PixTransaction, error) {
	var trx models.PixTransaction
	err := r.db.WithContext(ctx).Where("provider_transaction_id = ?", providerID).First(&trx).Error
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, providerID string, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PixTransaction{}).
		Where("provider_transaction_id = ?", providerID).
		Updates(updates).Error
}
