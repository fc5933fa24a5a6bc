package worker

import (
	"context"
	"time"
)

// Worker background job
type Worker interface {
	Run(ctx context.Context) error
}

const (
	defaultDelay    = 100 * time.Millisecond
	defaultErrDelay = time.Second
)

// TickWorker runs onTick in a loop, backing off after an error.
// Returning an error from onTick when there is nothing to do ("EOF") slows the loop down.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick blocks until ctx is done
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = defaultDelay
	}

	if errDelay <= 0 {
		errDelay = defaultErrDelay
	}

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err != nil {
				dur = errDelay
			} else {
				dur = delay
			}
		}
	}
}
