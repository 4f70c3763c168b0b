package beacon

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"partner-funnel/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const QueueName = "beacon.events"

type Publisher interface {
	Publish(ctx context.Context, payload any) error
}

// QueueEmitter hands events to the broker; a worker dispatches them.
// When publishing fails the event is dispatched in-process instead.
type QueueEmitter struct {
	pub      Publisher
	fallback Emitter
	timeout  time.Duration
}

func NewQueueEmitter(pub Publisher, fallback Emitter) *QueueEmitter {
	return &QueueEmitter{pub: pub, fallback: fallback, timeout: 5 * time.Second}
}

func (q *QueueEmitter) Emit(e *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	if err := q.pub.Publish(ctx, e); err != nil {
		logger.Warning.Printf("Failed to queue %s event %s: %v\n", e.Name, e.ID, err)
		if q.fallback != nil {
			q.fallback.Emit(e)
		}
	}
}

// Handler consumes queued events. It fails the delivery only when every
// sink failed so the broker retry does not duplicate delivered events.
func Handler(d *Dispatcher) func(ctx context.Context, msg *amqp.Delivery) error {
	return func(ctx context.Context, msg *amqp.Delivery) error {
		var e Event
		if err := json.Unmarshal(msg.Body, &e); err != nil {
			logger.Error.Printf("Dropping malformed beacon message %s: %v\n", msg.MessageId, err)
			return nil
		}

		report := d.Dispatch(ctx, &e)
		if len(report.Outcomes) > 0 && len(report.Failed()) == len(report.Outcomes) {
			return fmt.Errorf("all %d sinks failed for event %s", len(report.Outcomes), e.ID)
		}
		return nil
	}
}
