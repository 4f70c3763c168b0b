package beacon

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventPurchase     = "purchase"
	EventLead         = "lead"
	EventPostalLookup = "postal_lookup"
	EventPaymentPaid  = "payment_paid"
)

// Event is one server-side conversion event. Value is in minor units.
type Event struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	SessionID     string            `json:"sessionId,omitempty"`
	TransactionID string            `json:"transactionId,omitempty"`
	Value         int64             `json:"value"`
	Currency      string            `json:"currency,omitempty"`
	OccurredAt    time.Time         `json:"occurredAt"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

func NewEvent(name string) *Event {
	return &Event{
		ID:         uuid.New(),
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
}

type Sink interface {
	Name() string
	Send(ctx context.Context, e *Event) error
}

// Emitter accepts events without waiting for delivery.
type Emitter interface {
	Emit(e *Event)
}

type Outcome struct {
	Sink     string `json:"sink"`
	Attempts int    `json:"attempts"`
	Err      error  `json:"-"`
}

func (o Outcome) OK() bool { return o.Err == nil }

// Report lists one outcome per sink, in sink registration order.
type Report struct {
	EventID  uuid.UUID
	Outcomes []Outcome
}

func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}
