package models

import (
	"time"

	"partner-funnel/internal/common/enum"
	"partner-funnel/internal/pkg/postal"
)

// FunnelState is the per-visitor funnel progress kept in Redis.
type FunnelState struct {
	ID                string                           `json:"id"`
	CurrentStep       enum.StepEnum                    `json:"currentStep"`
	PostalData        *postal.Result                   `json:"postalData,omitempty"`
	UserCheckedPostal bool                             `json:"userCheckedPostal"`
	ShowPostalModal   bool                             `json:"showPostalModal"`
	Steps             map[enum.StepEnum]map[string]any `json:"steps,omitempty"`
	LastPayment       *PaymentSnapshot                 `json:"lastPayment,omitempty"`
	CreatedAt         time.Time                        `json:"createdAt"`
	UpdatedAt         time.Time                        `json:"updatedAt"`
}

// PaymentSnapshot is the last checkout outcome shown on the payment step.
type PaymentSnapshot struct {
	TransactionID string    `json:"transactionId,omitempty"`
	Status        string    `json:"status"`
	PixCode       string    `json:"pixCode,omitempty"`
	PixQRCode     string    `json:"pixQrCode,omitempty"`
	AmountMinor   int64     `json:"amount"`
	Error         string    `json:"error,omitempty"`
	At            time.Time `json:"at"`
}

func NewFunnelState(id string) *FunnelState {
	now := time.Now().UTC()
	return &FunnelState{
		ID:          id,
		CurrentStep: enum.STEP_HOME,
		Steps:       map[enum.StepEnum]map[string]any{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
