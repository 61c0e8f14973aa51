//go:build js && wasm

package webhost

import (
	"syscall/js"

	"github.com/pthm-cable/aurora/loop"
)

// Scheduler maps frame requests onto requestAnimationFrame. Callback time
// is the rAF timestamp relative to the scheduler's creation.
type Scheduler struct {
	window  js.Value
	origin  float64
	next    loop.Handle
	pending map[loop.Handle]rafRequest
}

type rafRequest struct {
	id js.Value
	fn js.Func
}

// NewScheduler creates a scheduler on the global window.
func NewScheduler() *Scheduler {
	w := js.Global()
	return &Scheduler{
		window:  w,
		origin:  w.Get("performance").Call("now").Float(),
		pending: make(map[loop.Handle]rafRequest),
	}
}

// RequestFrame wraps fn in a js.Func that is released after it runs once.
func (s *Scheduler) RequestFrame(fn loop.FrameFunc) loop.Handle {
	s.next++
	h := s.next
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		s.release(h)
		ts := s.origin
		if len(args) > 0 {
			ts = args[0].Float()
		}
		fn(ts - s.origin)
		return nil
	})
	id := s.window.Call("requestAnimationFrame", cb)
	s.pending[h] = rafRequest{id: id, fn: cb}
	return h
}

// CancelFrame cancels a pending request and releases its callback.
func (s *Scheduler) CancelFrame(h loop.Handle) {
	req, ok := s.pending[h]
	if !ok {
		return
	}
	s.window.Call("cancelAnimationFrame", req.id)
	s.release(h)
}

func (s *Scheduler) release(h loop.Handle) {
	if req, ok := s.pending[h]; ok {
		req.fn.Release()
		delete(s.pending, h)
	}
}

// Pending returns the number of outstanding requests.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
