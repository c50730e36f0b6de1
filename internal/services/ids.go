package services

import (
	"sync"
	"time"
)

// IDSource hands out entity ids. Implementations must be safe for
// concurrent use and never return the same id twice.
type IDSource interface {
	Next() int64
}

// Clock is the default IDSource: wall-clock milliseconds, bumped to
// last+1 whenever two ids would collide or the clock steps backwards.
type Clock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClock returns a Clock that will never issue an id <= seed.
func NewClock(seed int64) *Clock {
	return &Clock{last: seed, now: time.Now}
}

// Next returns max(now_ms, last+1).
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// Observe raises the floor so ids persisted elsewhere are never reissued.
func (c *Clock) Observe(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id > c.last {
		c.last = id
	}
}
