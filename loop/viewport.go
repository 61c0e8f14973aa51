package loop

// Viewport reports the display size and notifies listeners when it changes.
type Viewport interface {
	Size() (width, height int)
	// AddResizeListener registers fn and returns a func that unregisters it.
	AddResizeListener(fn func(width, height int)) (remove func())
}

type listener struct {
	id uint64
	fn func(width, height int)
}

// Window is a Viewport whose size is set by its host.
// Not safe for concurrent use; hosts resize it on the frame goroutine.
type Window struct {
	width, height int
	listeners     []listener
	nextID        uint64
}

// NewWindow creates a viewport of the given size.
func NewWindow(width, height int) *Window {
	return &Window{width: width, height: height}
}

// Size returns the current size.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// AddResizeListener registers fn. Calling the returned func more than once is safe.
func (w *Window) AddResizeListener(fn func(width, height int)) func() {
	w.nextID++
	id := w.nextID
	w.listeners = append(w.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range w.listeners {
			if l.id == id {
				w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

// Resize updates the size and notifies listeners in registration order.
// A resize to the current size is ignored.
func (w *Window) Resize(width, height int) {
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height
	for _, l := range append([]listener(nil), w.listeners...) {
		l.fn(width, height)
	}
}

// Listeners returns the number of registered listeners.
func (w *Window) Listeners() int {
	return len(w.listeners)
}
