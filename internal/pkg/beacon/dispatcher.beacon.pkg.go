package beacon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"partner-funnel/internal/pkg/logger"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
)

type DispatcherOptions struct {
	RetryDelay  time.Duration
	SendTimeout time.Duration
	PoolSize    int
}

// Dispatcher fans one event out to every sink. Sinks run concurrently and
// each failed sink is retried once after RetryDelay.
type Dispatcher struct {
	sinks []Sink
	opts  DispatcherOptions
	pool  *ants.Pool
	wg    sync.WaitGroup
	ctx   context.Context
	stop  context.CancelFunc
}

func NewDispatcher(opts DispatcherOptions, sinks ...Sink) (*Dispatcher, error) {
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = 16
	}

	pool, err := ants.NewPool(opts.PoolSize, ants.WithOptions(ants.Options{
		ExpiryDuration: time.Minute,
		PanicHandler: func(i any) {
			logger.Error.Printf("Beacon pool panic: %v\n", i)
		},
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create beacon pool: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	return &Dispatcher{sinks: sinks, opts: opts, pool: pool, ctx: ctx, stop: stop}, nil
}

func (d *Dispatcher) SinkNames() []string {
	return lo.Map(d.sinks, func(s Sink, _ int) string { return s.Name() })
}

// Dispatch blocks until every sink has finished its attempts.
func (d *Dispatcher) Dispatch(ctx context.Context, e *Event) Report {
	report := Report{EventID: e.ID, Outcomes: make([]Outcome, len(d.sinks))}

	var wg sync.WaitGroup
	for i, sink := range d.sinks {
		i, sink := i, sink
		wg.Add(1)
		task := func() {
			defer wg.Done()
			report.Outcomes[i] = d.deliver(ctx, sink, e)
		}
		if err := d.pool.Submit(task); err != nil {
			// pool closed: run inline so the event is not lost
			task()
		}
	}
	wg.Wait()

	for _, o := range report.Failed() {
		logger.Zap().Sugar().Warnw("beacon sink failed",
			"event", e.Name, "event_id", e.ID, "sink", o.Sink, "attempts", o.Attempts, "error", o.Err)
	}
	return report
}

// Emit dispatches in the background. Close waits for pending emits.
func (d *Dispatcher) Emit(e *Event) {
	if d.ctx.Err() != nil {
		logger.Warning.Printf("Beacon dispatcher closed, dropping %s event %s\n", e.Name, e.ID)
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Dispatch(d.ctx, e)
	}()
}

func (d *Dispatcher) Close() {
	d.stop()
	d.wg.Wait()
	d.pool.Release()
}

func (d *Dispatcher) deliver(ctx context.Context, sink Sink, e *Event) Outcome {
	out := Outcome{Sink: sink.Name()}

	out.Attempts, out.Err = 1, d.attempt(ctx, sink, e)
	if out.Err == nil {
		return out
	}

	select {
	case <-ctx.Done():
		return out
	case <-time.After(d.opts.RetryDelay):
	}
	out.Attempts, out.Err = 2, d.attempt(ctx, sink, e)
	return out
}

func (d *Dispatcher) attempt(ctx context.Context, sink Sink, e *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink %s panicked: %v", sink.Name(), r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.opts.SendTimeout)
	defer cancel()
	return sink.Send(ctx, e)
}
