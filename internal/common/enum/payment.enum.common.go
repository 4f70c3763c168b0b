package enum

type PaymentStatusEnum string

const (
	PAYMENT_PENDING   PaymentStatusEnum = "pending"
	PAYMENT_PAID      PaymentStatusEnum = "paid"
	PAYMENT_FAILED    PaymentStatusEnum = "failed"
	PAYMENT_EXPIRED   PaymentStatusEnum = "expired"
	PAYMENT_CANCELLED PaymentStatusEnum = "cancelled"
)

// NormalizePaymentStatus maps the provider's many status spellings onto ours.
// Unknown values are treated as pending.
func NormalizePaymentStatus(raw string) PaymentStatusEnum {
	switch raw {
	case "APPROVED", "approved", "PAID", "paid", "COMPLETED", "completed", "settled":
		return PAYMENT_PAID
	case "FAILED", "failed", "REFUSED", "refused", "DECLINED", "declined":
		return PAYMENT_FAILED
	case "EXPIRED", "expired":
		return PAYMENT_EXPIRED
	case "CANCELLED", "cancelled", "CANCELED", "canceled", "CHARGEBACK", "chargeback":
		return PAYMENT_CANCELLED
	}
	return PAYMENT_PENDING
}

func (e PaymentStatusEnum) ToString() string {
	return string(e)
}

func (e PaymentStatusEnum) IsFinal() bool {
	return e == PAYMENT_PAID || e == PAYMENT_FAILED || e == PAYMENT_EXPIRED || e == PAYMENT_CANCELLED
}
