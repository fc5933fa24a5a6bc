package clock

import (
	"context"
	"lending/core"
	"sync"
	"time"
)

type systemClock struct {
	now  func() time.Time
	mux  sync.Mutex
	last int64
}

// New system clock in unix seconds, never goes backwards
func New() core.Clock {
	return &systemClock{now: time.Now}
}

func (c *systemClock) Now(_ context.Context) (int64, error) {
	t := c.now().Unix()

	c.mux.Lock()
	defer c.mux.Unlock()

	if t < c.last {
		t = c.last
	}

	c.last = t
	return t, nil
}

// Fixed clock that always reports ts, for command line inspection
type Fixed int64

// Now returns the fixed timestamp
func (f Fixed) Now(_ context.Context) (int64, error) {
	return int64(f), nil
}
