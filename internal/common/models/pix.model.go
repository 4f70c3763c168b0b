package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PixTransaction records one checkout attempt against the PIX provider.
// Failed attempts are kept with FailureReason set.
type PixTransaction struct {
	ID                    uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID             string     `json:"session_id" gorm:"type:varchar(64);index"`
	ProviderTransactionID string     `json:"provider_transaction_id" gorm:"type:varchar(128);index"`
	CustomerName          string     `json:"customer_name" gorm:"type:varchar(255)"`
	CustomerEmail         string     `json:"customer_email" gorm:"type:varchar(255)"`
	CustomerPhone         string     `json:"customer_phone" gorm:"type:varchar(20)"`
	DocumentMasked        string     `json:"document_masked" gorm:"type:varchar(20)"`
	AmountMinor           int64      `json:"amount_minor" gorm:"not null"`
	PixCode               string     `json:"pix_code" gorm:"type:text"`
	QRCodeURL             string     `json:"qr_code_url" gorm:"type:text"`
	Status                string     `json:"status" gorm:"type:varchar(32);not null;default:'pending';index"`
	FailureReason         string     `json:"failure_reason" gorm:"type:text"`
	CreatedAt             time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	PaidAt                *time.Time `json:"paid_at"`
}

func (PixTransaction) TableName() string {
	return "pix_transactions"
}

func (t *PixTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
