package pixpay

import (
	"context"
	"errors"
	"math"
)

var (
	// ErrPaymentFailed wraps every provider-side or transport failure.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrIncompleteResponse means the provider answered 2xx without a PIX
	// code or QR reference.
	ErrIncompleteResponse = errors.New("payment response missing pix code and qr code")
	// ErrInvalidAmount rejects zero, negative and non-finite amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
)

type Item struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Tangible  bool   `json:"tangible"`
}

// PurchaseRequest is the caller-side input. Amount is in BRL reais.
type PurchaseRequest struct {
	Name     string
	Document string
	Email    string
	Phone    string
	Amount   float64
	Items    []Item
}

// Purchase is the normalized provider answer.
type Purchase struct {
	TransactionID string `json:"transactionId"`
	PixCode       string `json:"pixCode"`
	PixQRCode     string `json:"pixQrCode"`
	Status        string `json:"status"`
	AmountMinor   int64  `json:"amountMinor"`
}

type PaymentStatus struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

type IClient interface {
	CreatePurchase(ctx context.Context, req *PurchaseRequest) (*Purchase, error)
	CheckStatus(ctx context.Context, transactionID string) (*PaymentStatus, error)
}

// ToMinorUnits converts reais to centavos, rounding half away from zero.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	minor := int64(math.Round(amount * 100))
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}
