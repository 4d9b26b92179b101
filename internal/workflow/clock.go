package workflow

import (
	"sync"
	"time"
)

// Clock supplies the instants written into Start and End nodes.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// nodeTimestamp renders the instant a Start or End click records: UTC,
// whole seconds, RFC 3339.
func nodeTimestamp(c Clock) string {
	return c.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// FakeClock stands still until advanced, so stamped nodes compare exactly.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(at time.Time) *FakeClock {
	return &FakeClock{now: at}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
