package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"partner-funnel/internal/common/enum"
	"partner-funnel/internal/common/models"
	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/beacon"
	"partner-funnel/internal/pkg/helper"
	"partner-funnel/internal/pkg/logger"
	"partner-funnel/internal/pkg/pixpay"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const currency = "BRL"

func (s *Service) Checkout(ctx context.Context, sessionID string, req *CheckoutRequest) *types.Response {
	amount := lo.Ternary(req.Amount > 0, req.Amount, s.defaultAmount)
	amountMinor, err := pixpay.ToMinorUnits(amount)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "Invalid amount", Error: err})
	}

	items, err := toItems(req.Items)
	if err != nil {
		return helper.ParseResponse(&types.Response{Code: http.StatusBadRequest, Message: "Invalid items", Error: err})
	}

	purchase, err := s.pix.CreatePurchase(ctx, &pixpay.PurchaseRequest{
		Name:     req.Name,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		Amount:   amount,
		Items:    items,
	})

	trx := &models.PixTransaction{
		SessionID:      sessionID,
		CustomerName:   req.Name,
		CustomerEmail:  req.Email,
		CustomerPhone:  helper.OnlyDigits(req.Phone),
		DocumentMasked: helper.MaskDocument(req.Document),
		AmountMinor:    amountMinor,
	}

	if err != nil {
		trx.Status = enum.PAYMENT_FAILED.ToString()
		trx.FailureReason = err.Error()
		s.persist(ctx, trx)
		s.remember(sessionID, &models.PaymentSnapshot{Status: trx.Status, AmountMinor: amountMinor, Error: err.Error()})

		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadGateway,
			Message: "Payment could not be created",
			Error:   err,
		})
	}

	status := enum.NormalizePaymentStatus(purchase.Status).ToString()
	trx.ProviderTransactionID = purchase.TransactionID
	trx.PixCode = purchase.PixCode
	trx.QRCodeURL = purchase.PixQRCode
	trx.Status = status
	s.persist(ctx, trx)

	s.remember(sessionID, &models.PaymentSnapshot{
		TransactionID: purchase.TransactionID,
		Status:        status,
		PixCode:       purchase.PixCode,
		PixQRCode:     purchase.PixQRCode,
		AmountMinor:   amountMinor,
	})

	e := beacon.NewEvent(beacon.EventPurchase)
	e.SessionID = sessionID
	e.TransactionID = purchase.TransactionID
	e.Value = amountMinor
	e.Currency = currency
	s.emit(e)

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "PIX payment created",
		Data: CheckoutResponse{
			TransactionID: purchase.TransactionID,
			PixCode:       purchase.PixCode,
			PixQRCode:     purchase.PixQRCode,
			Status:        status,
			Amount:        amountMinor,
		},
	})
}

// CheckStatus asks the provider and syncs the stored record. When the
// provider is unreachable the stored status is returned marked stale.
func (s *Service) CheckStatus(ctx context.Context, transactionID string) *types.Response {
	stored, dbErr := s.rp.Payment.FindByProviderID(ctx, transactionID)
	if dbErr != nil && !errors.Is(dbErr, gorm.ErrRecordNotFound) {
		logger.Warning.Printf("Failed to read transaction %s: %v\n", transactionID, dbErr)
	}

	remote, err := s.pix.CheckStatus(ctx, transactionID)
	if err != nil {
		if stored != nil {
			return helper.ParseResponse(&types.Response{
				Message: "Payment status from last known state",
				Data:    StatusResponse{TransactionID: transactionID, Status: stored.Status, Stale: true},
			})
		}
		return helper.ParseResponse(&types.Response{Code: http.StatusBadGateway, Message: "Payment status unavailable", Error: err})
	}

	status := enum.NormalizePaymentStatus(remote.Status)
	if stored != nil && stored.Status != status.ToString() {
		updates := map[string]any{"status": status.ToString()}
		if status == enum.PAYMENT_PAID {
			updates["paid_at"] = time.Now().UTC()
		}
		if err := s.rp.Payment.UpdateStatus(ctx, transactionID, updates); err != nil {
			logger.Error.Printf("Failed to update transaction %s: %v\n", transactionID, err)
		}

		if status == enum.PAYMENT_PAID {
			e := beacon.NewEvent(beacon.EventPaymentPaid)
			e.SessionID = stored.SessionID
			e.TransactionID = transactionID
			e.Value = stored.AmountMinor
			e.Currency = currency
			s.emit(e)
		}
	}

	return helper.ParseResponse(&types.Response{
		Data: StatusResponse{TransactionID: transactionID, Status: status.ToString()},
	})
}

func toItems(in []ItemRequest) ([]pixpay.Item, error) {
	items := make([]pixpay.Item, 0, len(in))
	for i, it := range in {
		unit, err := pixpay.ToMinorUnits(it.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, pixpay.Item{Title: it.Title, Quantity: it.Quantity, UnitPrice: unit, Tangible: it.Tangible})
	}
	return items, nil
}

func (s *Service) persist(ctx context.Context, trx *models.PixTransaction) {
	if err := s.rp.Payment.Create(ctx, trx); err != nil {
		logger.Error.Printf("Failed to save pix transaction for session %q: %v\n", trx.SessionID, err)
	}
}

func (s *Service) remember(sessionID string, snap *models.PaymentSnapshot) {
	if sessionID == "" || s.rp.Session == nil {
		return
	}
	state, err := s.rp.Session.Get(sessionID)
	if err != nil {
		logger.Debug.Printf("Payment not stored on session %s: %v\n", sessionID, err)
		return
	}
	snap.At = time.Now().UTC()
	state.LastPayment = snap
	if err := s.rp.Session.Save(state); err != nil {
		logger.Warning.Printf("Failed to store payment on session %s: %v\n", sessionID, err)
	}
}

func (s *Service) emit(e *beacon.Event) {
	if s.emitter != nil {
		s.emitter.Emit(e)
	}
}
