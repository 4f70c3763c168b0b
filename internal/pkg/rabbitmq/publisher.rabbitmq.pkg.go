package rabbitmq

import (
	"context"
	"fmt"
	"sync"
)

type Publisher struct {
	mu       sync.Mutex
	channel  *ChannelManager
	queue    string
	declared bool
}

// NewPublisher publishes to queue through the default exchange, declaring
// the queue durable on first use.
func NewPublisher(ctx context.Context, conn *ConnectionManager, queue string) *Publisher {
	return &Publisher{channel: NewChannelManager(ctx, conn), queue: queue}
}

func (p *Publisher) Publish(ctx context.Context, payload any) error {
	msg, err := NewMessage(payload, nil)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel.GetChannel()
	if err != nil {
		return err
	}
	if !p.declared {
		if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", p.queue, err)
		}
		p.declared = true
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg.Publishing()); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.queue, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
