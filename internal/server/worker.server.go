package serverApp

import (
	"context"
	"fmt"
	"time"

	"partner-funnel/internal/pkg/beacon"
	"partner-funnel/internal/pkg/logger"
	"partner-funnel/internal/pkg/rabbitmq"

	"github.com/panjf2000/ants/v2"
)

// InitWorker starts the background consumers and returns a func that
// stops them. Add new consumers to the workers slice.
func InitWorker(ctx context.Context, rb *rabbitmq.ConnectionManager, dispatcher *beacon.Dispatcher) (func(), error) {
	pool, err := ants.NewPool(10, ants.WithOptions(ants.Options{
		ExpiryDuration: time.Hour,
		Nonblocking:    true,
		PanicHandler: func(i any) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	beaconSub, err := rabbitmq.NewSubscriber(ctx, rb, beacon.Handler(dispatcher), rabbitmq.DefaultSubscribeOptions(beacon.QueueName))
	if err != nil {
		pool.Release()
		return nil, err
	}

	workers := []*rabbitmq.Subscriber{beaconSub}
	for _, w := range workers {
		w := w
		err = pool.Submit(func() {
			if err := w.Start(); err != nil {
				logger.Error.Printf("Failed to start worker: %v\n", err)
			}
		})
		if err != nil {
			pool.Release()
			return nil, fmt.Errorf("failed to submit task to pool: %w", err)
		}
	}

	return func() {
		for _, w := range workers {
			if err := w.Stop(); err != nil {
				logger.Error.Printf("Failed to stop worker: %v\n", err)
			}
		}
		pool.Release()
	}, nil
}
