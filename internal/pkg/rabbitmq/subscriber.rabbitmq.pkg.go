package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"partner-funnel/internal/pkg/logger"

	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler processes one delivery. A returned error schedules a retry.
type MessageHandler func(ctx context.Context, msg *amqp.Delivery) error

type SubscribeOptions struct {
	QueueName        string
	ConsumerName     string
	WorkerCount      int
	PrefetchCount    int
	MaxRetryAttempts int
	RetryDelay       time.Duration
	DeadLetterName   string
	HandleTimeout    time.Duration
}

func DefaultSubscribeOptions(queueName string) *SubscribeOptions {
	return &SubscribeOptions{
		QueueName:        queueName,
		ConsumerName:     queueName,
		WorkerCount:      2,
		PrefetchCount:    10,
		MaxRetryAttempts: 3,
		RetryDelay:       5 * time.Second,
		DeadLetterName:   "fail:" + queueName,
		HandleTimeout:    time.Minute,
	}
}

type Subscriber struct {
	conn      *ConnectionManager
	channels  []*ChannelManager
	handler   MessageHandler
	opts      *SubscribeOptions
	pool      *ants.Pool
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning atomic.Bool
}

func NewSubscriber(ctx context.Context, conn *ConnectionManager, handler MessageHandler, opts *SubscribeOptions) (*Subscriber, error) {
	if opts == nil || opts.QueueName == "" {
		return nil, fmt.Errorf("subscriber needs a queue name")
	}
	ctx, cancel := context.WithCancel(ctx)

	pool, err := ants.NewPool(opts.WorkerCount, ants.WithOptions(ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i any) {
			logger.Error.Printf("Subscriber worker panic: %v\n", i)
		},
	}))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create subscriber pool: %w", err)
	}

	sub := &Subscriber{
		conn:     conn,
		handler:  handler,
		opts:     opts,
		pool:     pool,
		ctx:      ctx,
		cancel:   cancel,
		channels: make([]*ChannelManager, opts.WorkerCount),
	}
	for i := range sub.channels {
		sub.channels[i] = NewChannelManager(ctx, conn)
	}
	return sub, nil
}

func (s *Subscriber) Start() error {
	if s.isRunning.Swap(true) {
		return fmt.Errorf("subscriber is already running")
	}
	for i := 0; i < s.opts.WorkerCount; i++ {
		workerID := i
		s.wg.Add(1)
		if err := s.pool.Submit(func() { s.runWorker(workerID) }); err != nil {
			s.wg.Done()
			return fmt.Errorf("failed to start worker %d: %w", workerID, err)
		}
	}
	return nil
}

func (s *Subscriber) runWorker(workerID int) {
	defer s.wg.Done()

	backoff := time.Second
	for s.isRunning.Load() && s.ctx.Err() == nil {
		if err := s.consume(workerID); err != nil {
			logger.Warning.Printf("Worker %d consume error: %v\n", workerID, err)
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, 30*time.Second)
			continue
		}
		backoff = time.Second
	}
}

func (s *Subscriber) consume(workerID int) error {
	ch, err := s.channels[workerID].GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}
	if err := ch.Qos(s.opts.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}
	if _, err := ch.QueueDeclare(s.opts.QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	consumer := fmt.Sprintf("%s-%d-%d", s.opts.ConsumerName, workerID, time.Now().Unix())
	msgs, err := ch.ConsumeWithContext(s.ctx, s.opts.QueueName, consumer, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for msg := range msgs {
		s.process(ch, &msg)
	}
	return nil
}

func (s *Subscriber) process(ch *amqp.Channel, msg *amqp.Delivery) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.HandleTimeout)
	defer cancel()

	err := s.handle(ctx, msg)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			logger.Error.Printf("Failed to ack %s: %v\n", msg.MessageId, ackErr)
		}
		return
	}

	attempt := RetryCount(msg.Headers) + 1
	headers := amqp.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[retryHeader] = int32(attempt)

	target := s.opts.QueueName
	if attempt > s.opts.MaxRetryAttempts {
		target = s.opts.DeadLetterName
		headers["x-death-reason"] = err.Error()
		headers["x-death-time"] = time.Now().Format(time.RFC3339)
		if _, derr := ch.QueueDeclare(target, true, false, false, false, nil); derr != nil {
			logger.Error.Printf("Failed to declare dead letter queue: %v\n", derr)
			_ = msg.Nack(false, true)
			return
		}
		logger.Warning.Printf("Message %s moved to %s after %d attempts: %v\n", msg.MessageId, target, attempt-1, err)
	} else {
		logger.Warning.Printf("Message %s failed (attempt %d), retrying in %v: %v\n", msg.MessageId, attempt, s.opts.RetryDelay, err)
		select {
		case <-s.ctx.Done():
			_ = msg.Nack(false, true)
			return
		case <-time.After(s.opts.RetryDelay):
		}
	}

	if perr := ch.PublishWithContext(s.ctx, "", target, false, false, republishing(msg, headers)); perr != nil {
		logger.Error.Printf("Failed to republish %s: %v\n", msg.MessageId, perr)
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}

func (s *Subscriber) handle(ctx context.Context, msg *amqp.Delivery) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return s.handler(ctx, msg)
}

func (s *Subscriber) Stop() error {
	if !s.isRunning.Swap(false) {
		return nil
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		return fmt.Errorf("timeout waiting for workers to stop")
	}

	for i, ch := range s.channels {
		if err := ch.Close(); err != nil {
			logger.Error.Printf("Error closing channel for worker %d: %v\n", i, err)
		}
	}
	s.pool.Release()
	return nil
}

func (s *Subscriber) IsHealthy() bool {
	return s.isRunning.Load() && s.pool.Running() > 0
}
