package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock returns a fixed instant until moved with Set or Advance.
type MockClock struct {
	mu   sync.Mutex
	time time.Time
	step time.Duration
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{time: t}
}

// NewSteppingClock advances by step after every Now call.
func NewSteppingClock(start time.Time, step time.Duration) *MockClock {
	return &MockClock{time: start, step: step}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.time
	c.time = c.time.Add(c.step)
	return now
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.time = t
	c.mu.Unlock()
}

func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.time = c.time.Add(d)
	c.mu.Unlock()
}
