package mocks

import (
	"time"

	"github.com/mcoot/jeopardy-go2/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Time only moves when Advance or Set is called.
type MockClock struct {
	CurrentTime time.Time
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Since returns the mocked time elapsed since t
func (c *MockClock) Since(t time.Time) time.Duration {
	return c.CurrentTime.Sub(t)
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// AdvanceSeconds moves the clock forward by a fractional number of seconds
func (c *MockClock) AdvanceSeconds(seconds float64) {
	c.Advance(time.Duration(seconds * float64(time.Second)))
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
