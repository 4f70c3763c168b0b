package progress

import (
	"context"
	"time"
)

// DefaultStatuses are shown while a registration is "being analysed".
var DefaultStatuses = []string{
	"Checking your details",
	"Validating postal code coverage",
	"Looking up available routes",
	"Preparing your partner profile",
	"Almost done",
}

// Sequence steps through fixed status texts over a total duration. It is
// presentation only and does not wait on real work.
type Sequence struct {
	Statuses []string
	Duration time.Duration
}

func New(statuses []string, duration time.Duration) *Sequence {
	if len(statuses) == 0 {
		statuses = DefaultStatuses
	}
	return &Sequence{Statuses: statuses, Duration: duration}
}

// Interval is the pause before each status after the first.
func (s *Sequence) Interval() time.Duration {
	if len(s.Statuses) == 0 || s.Duration <= 0 {
		return 0
	}
	return s.Duration / time.Duration(len(s.Statuses))
}

// Run calls onStatus for each status in order, then onComplete once.
// If ctx ends first Run returns ctx.Err() and onComplete is not called.
func (s *Sequence) Run(ctx context.Context, onStatus func(i int, status string), onComplete func()) error {
	interval := s.Interval()
	var timer *time.Timer

	for i, status := range s.Statuses {
		if i > 0 && interval > 0 {
			if timer == nil {
				timer = time.NewTimer(interval)
				defer timer.Stop()
			} else {
				timer.Reset(interval)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if onStatus != nil {
			onStatus(i, status)
		}
	}

	if interval > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	if onComplete != nil {
		onComplete()
	}
	return nil
}
