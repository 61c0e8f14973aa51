package loop

import "time"

// Clock provides wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real monotonic clock.
type SystemClock struct{}

// Now returns the current time with monotonic clock reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a Clock that only moves when told to.
type MockClock struct {
	now time.Time
}

// NewMockClock creates a clock frozen at start.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (c *MockClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Stopwatch reports milliseconds elapsed since it was started, which is
// the time base frame callbacks receive.
type Stopwatch struct {
	clock Clock
	start time.Time
}

// NewStopwatch starts a stopwatch on clock. A nil clock uses SystemClock.
func NewStopwatch(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Stopwatch{clock: clock, start: clock.Now()}
}

// Reset restarts the stopwatch at zero.
func (s *Stopwatch) Reset() {
	s.start = s.clock.Now()
}

// Millis returns elapsed milliseconds.
func (s *Stopwatch) Millis() float64 {
	return float64(s.clock.Now().Sub(s.start)) / float64(time.Millisecond)
}
