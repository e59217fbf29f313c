package clock

import "time"

// FakeClock pins Now to a chosen instant so lifecycle transitions and
// validity windows can be asserted against fixed dates. Not safe for
// concurrent use.
type FakeClock struct {
	current time.Time
}

// NewFakeClock returns a clock frozen at t, normalized to UTC.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t.UTC()}
}

func (c *FakeClock) Now() time.Time { return c.current }

// Advance moves the frozen instant forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
