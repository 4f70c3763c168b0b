package pixpay

import (
	"context"
	"encoding/json"
	"fmt"
	"partner-funnel/internal/pkg/helper"
	"strings"
)

type Config struct {
	BaseURL          string
	SecretKey        string
	DefaultItemTitle string
}

// Client talks to the PIX provider's purchase API. Every call is a single
// attempt; there is no retry or idempotency key.
type Client struct {
	cfg  *Config
	http *helper.HTTPClient
}

func NewClient(cfg *Config, httpClient *helper.HTTPClient) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.DefaultItemTitle == "" {
		cfg.DefaultItemTitle = "Purchase"
	}
	return &Client{cfg: cfg, http: httpClient}
}

type purchasePayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CPF           string `json:"cpf"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
	Amount        int64  `json:"amount"`
	Traceable     bool   `json:"traceable"`
	Items         []Item `json:"items"`
}

func (c *Client) buildPayload(req *PurchaseRequest) (*purchasePayload, error) {
	amount, err := ToMinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}

	items := req.Items
	if len(items) == 0 {
		items = []Item{{
			Title:     c.cfg.DefaultItemTitle,
			Quantity:  1,
			UnitPrice: amount,
			Tangible:  false,
		}}
	}

	return &purchasePayload{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		CPF:           helper.OnlyDigits(req.Document),
		Phone:         helper.OnlyDigits(req.Phone),
		PaymentMethod: "PIX",
		Amount:        amount,
		Traceable:     true,
		Items:         items,
	}, nil
}

func (c *Client) CreatePurchase(ctx context.Context, req *PurchaseRequest) (*Purchase, error) {
	payload, err := c.buildPayload(req)
	if err != nil {
		return nil, err
	}

	res, err := c.http.HTTPRequest(&helper.HTTPRequestPayload{
		Method: helper.POST,
		URL:    c.cfg.BaseURL + "/transaction.purchase",
		Body:   payload,
	}, &helper.HTTPRequestConfig{Ctx: ctx, Bearer: c.cfg.SecretKey})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: provider status %d: %s", ErrPaymentFailed, res.StatusCode, providerMessage(res.Body))
	}

	purchase, err := normalizePurchase(res.Body)
	if err != nil {
		return nil, err
	}
	purchase.AmountMinor = payload.Amount
	return purchase, nil
}

func (c *Client) CheckStatus(ctx context.Context, transactionID string) (*PaymentStatus, error) {
	res, err := c.http.HTTPRequest(&helper.HTTPRequestPayload{
		Method: helper.GET,
		URL:    c.cfg.BaseURL + "/transaction.getPayment",
		Params: map[string]string{"id": transactionID},
	}, &helper.HTTPRequestConfig{Ctx: ctx, Bearer: c.cfg.SecretKey})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: provider status %d: %s", ErrPaymentFailed, res.StatusCode, providerMessage(res.Body))
	}

	var body map[string]any
	if err := json.Unmarshal(res.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: malformed status body: %v", ErrPaymentFailed, err)
	}
	pix := nested(body, "pix")

	return &PaymentStatus{
		TransactionID: helper.FirstNonEmpty(field(body, "id", "transactionId", "transaction_id"), transactionID),
		Status:        helper.FirstNonEmpty(field(body, "status"), field(pix, "status"), "pending"),
	}, nil
}
