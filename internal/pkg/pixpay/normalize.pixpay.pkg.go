package pixpay

import (
	"encoding/json"
	"fmt"
	"partner-funnel/internal/pkg/helper"
	"strconv"
	"strings"
)

// normalizePurchase accepts both the flat and the nested "pix" layouts the
// provider has shipped.
func normalizePurchase(raw []byte) (*Purchase, error) {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: malformed body: %v", ErrPaymentFailed, err)
	}
	pix := nested(body, "pix")

	p := &Purchase{
		TransactionID: field(body, "id", "transactionId", "transaction_id"),
		PixCode: helper.FirstNonEmpty(
			field(body, "pixCode", "pix_code", "copyPaste"),
			field(pix, "code", "copyPaste", "qrCodeText"),
		),
		PixQRCode: helper.FirstNonEmpty(
			field(body, "pixQrCode", "pix_qr_code", "qrCodeImage"),
			field(pix, "qrCode", "qrCodeImage", "imageUrl"),
		),
		Status: helper.FirstNonEmpty(field(body, "status"), field(pix, "status"), "pending"),
	}

	if p.PixCode == "" && p.PixQRCode == "" {
		return nil, ErrIncompleteResponse
	}
	return p, nil
}

func nested(body map[string]any, key string) map[string]any {
	if body == nil {
		return nil
	}
	m, _ := body[key].(map[string]any)
	return m
}

// field returns the first key present with a non-empty scalar value.
func field(body map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := body[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case map[string]any, []any:
			continue
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		default:
			if s := strings.TrimSpace(fmt.Sprintf("%v", t)); s != "" {
				return s
			}
		}
	}
	return ""
}

// providerMessage extracts a human message from an error body.
func providerMessage(raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return helper.FirstNonEmpty(msg, "no message")
	}
	return helper.FirstNonEmpty(field(body, "message", "error", "detail"), field(nested(body, "error"), "message"), "no message")
}
