package payment

import (
	"context"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/beacon"
	"partner-funnel/internal/pkg/pixpay"
	"partner-funnel/internal/repository"
)

type Service struct {
	ctx           context.Context
	rp            repository.IRepository
	pix           pixpay.IClient
	emitter       beacon.Emitter
	defaultAmount float64
}

type IService interface {
	Checkout(ctx context.Context, sessionID string, req *CheckoutRequest) *types.Response
	CheckStatus(ctx context.Context, transactionID string) *types.Response
}

func NewService(ctx context.Context, rp repository.IRepository, pix pixpay.IClient, emitter beacon.Emitter, defaultAmount float64) IService {
	return &Service{
		ctx:           ctx,
		rp:            rp,
		pix:           pix,
		emitter:       emitter,
		defaultAmount: defaultAmount,
	}
}

// Request/Response DTOs

type ItemRequest struct {
	Title     string  `json:"title" binding:"required,max=120"`
	Quantity  int     `json:"quantity" binding:"required,min=1,max=100"`
	UnitPrice float64 `json:"unitPrice" binding:"required,gt=0"`
	Tangible  bool    `json:"tangible"`
}

// CheckoutRequest is the payment form. Amount is in reais; zero means the
// configured default charge.
type CheckoutRequest struct {
	Name     string        `json:"name" binding:"required,max=120"`
	Document string        `json:"document" binding:"required,cpf"`
	Email    string        `json:"email" binding:"required,email,max=255"`
	Phone    string        `json:"phone" binding:"required,phonebr"`
	Amount   float64       `json:"amount" binding:"omitempty,gt=0"`
	Items    []ItemRequest `json:"items" binding:"omitempty,max=20,dive"`
}

type CheckoutResponse struct {
	TransactionID string `json:"transactionId"`
	PixCode       string `json:"pixCode,omitempty"`
	PixQRCode     string `json:"pixQrCode,omitempty"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
}

type StatusResponse struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Stale         bool   `json:"stale,omitempty"`
}
