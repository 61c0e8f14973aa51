//go:build js && wasm

package webhost

import (
	"sync"
	"syscall/js"
)

// Viewport reports the browser window's inner size and forwards its
// resize events.
type Viewport struct {
	window js.Value
}

// NewViewport wraps the global window.
func NewViewport() *Viewport {
	return &Viewport{window: js.Global()}
}

func (v *Viewport) Size() (int, int) {
	return v.window.Get("innerWidth").Int(), v.window.Get("innerHeight").Int()
}

// AddResizeListener registers fn for "resize" events. The returned func
// removes the listener and releases its callback; it is safe to call twice.
func (v *Viewport) AddResizeListener(fn func(width, height int)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(v.Size())
		return nil
	})
	v.window.Call("addEventListener", "resize", cb)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.window.Call("removeEventListener", "resize", cb)
			cb.Release()
		})
	}
}
