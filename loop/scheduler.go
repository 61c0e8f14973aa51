// Package loop drives the ambient field: a two-state mount lifecycle over a
// host-provided frame scheduler and viewport.
package loop

// FrameFunc is a frame callback. now is milliseconds since the host started
// its clock, monotonic.
type FrameFunc func(now float64)

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

// Scheduler runs a callback once on the next display frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) Handle
	CancelFrame(h Handle)
}

type pendingFrame struct {
	handle Handle
	fn     FrameFunc
}

// ManualScheduler is a Scheduler whose frames fire only when Fire is called.
// Hosts call Fire once per display refresh; tests call it directly.
// Not safe for concurrent use.
type ManualScheduler struct {
	next    Handle
	pending []pendingFrame
	fired   int
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame queues fn for the next Fire.
func (s *ManualScheduler) RequestFrame(fn FrameFunc) Handle {
	s.next++
	s.pending = append(s.pending, pendingFrame{handle: s.next, fn: fn})
	return s.next
}

// CancelFrame drops a queued request. Unknown or already fired handles are ignored.
func (s *ManualScheduler) CancelFrame(h Handle) {
	for i, p := range s.pending {
		if p.handle == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Fire runs every callback queued before the call, in request order, and
// returns how many ran. Callbacks requested while firing wait for the next Fire.
func (s *ManualScheduler) Fire(now float64) int {
	batch := s.pending
	s.pending = nil
	for _, p := range batch {
		p.fn(now)
	}
	s.fired += len(batch)
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// Fired returns the total number of callbacks run.
func (s *ManualScheduler) Fired() int {
	return s.fired
}
