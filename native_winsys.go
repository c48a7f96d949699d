package lumen

import (
	"time"

	"github.com/lumen-ui/lumen/internal/native"
)

// NativeWindowSystem drives the platform windowing library through the
// dynamically loaded native bridge. It is the default backend when no
// other WindowSystem is installed.
type NativeWindowSystem struct{}

// NewNativeWindowSystem returns a window system backed by the native
// bridge library.
func NewNativeWindowSystem() *NativeWindowSystem {
	return &NativeWindowSystem{}
}

// Initialize loads the native library and starts the windowing
// subsystem.
func (s *NativeWindowSystem) Initialize() error {
	return native.WSInit()
}

// Uninitialize shuts the windowing subsystem down.
func (s *NativeWindowSystem) Uninitialize() {
	native.WSShutdown()
}

// WaitEventsTimeout pumps native events, blocking at most timeout.
func (s *NativeWindowSystem) WaitEventsTimeout(timeout time.Duration) {
	ms := timeout.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	native.WaitEventsTimeout(uint32(ms))
}

// PostEmptyEvent wakes a WaitEventsTimeout blocked on another thread.
func (s *NativeWindowSystem) PostEmptyEvent() {
	native.PostEmptyEvent()
}

// NativeWindow is a Window over a native OS window.
type NativeWindow struct {
	uid    string
	handle native.Handle

	onResize func()
	onTick   func(TickEvent)
	onMouse  func(MouseEvent)
}

var _ Window = (*NativeWindow)(nil)

// NewNativeWindow creates an OS window. It does not show it; the
// window becomes visible when added to an Application.
func NewNativeWindow(title string, width, height int) (*NativeWindow, error) {
	h, err := native.CreateWindow(title, width, height)
	if err != nil {
		return nil, err
	}
	return &NativeWindow{uid: NewWindowUID(), handle: h}, nil
}

// UID returns the window's unique identifier.
func (w *NativeWindow) UID() string { return w.uid }

// Show toggles window visibility.
func (w *NativeWindow) Show(visible bool) {
	native.ShowWindow(w.handle, visible)
}

// SetTitle updates the OS window title.
func (w *NativeWindow) SetTitle(title string) {
	native.SetWindowTitle(w.handle, title)
}

// SetOnResize installs the resize callback.
func (w *NativeWindow) SetOnResize(fn func()) { w.onResize = fn }

// SetOnTickEvent installs the tick callback.
func (w *NativeWindow) SetOnTickEvent(fn func(TickEvent)) { w.onTick = fn }

// SetOnMouseEvent installs the mouse callback.
func (w *NativeWindow) SetOnMouseEvent(fn func(MouseEvent)) { w.onMouse = fn }

// OnResize invokes the resize callback.
func (w *NativeWindow) OnResize() {
	if w.onResize != nil {
		w.onResize()
	}
}

// OnTickEvent invokes the tick callback.
func (w *NativeWindow) OnTickEvent(ev TickEvent) {
	if w.onTick != nil {
		w.onTick(ev)
	}
}

// OnMouseEvent invokes the mouse callback.
func (w *NativeWindow) OnMouseEvent(ev MouseEvent) {
	if w.onMouse != nil {
		w.onMouse(ev)
	}
}

// PostRedraw asks the OS to schedule a repaint.
func (w *NativeWindow) PostRedraw() {
	native.RequestRedraw(w.handle)
}

// MakeDrawContextCurrent binds the window's draw context to the
// calling thread and returns the previously bound one.
func (w *NativeWindow) MakeDrawContextCurrent() DrawContext {
	return native.MakeContextCurrent(w.handle)
}

// RestoreDrawContext rebinds a context returned by
// MakeDrawContextCurrent.
func (w *NativeWindow) RestoreDrawContext(ctx DrawContext) {
	if c, ok := ctx.(native.Context); ok {
		native.RestoreContext(c)
	}
}

// DestroyWindow releases the OS window. Called by the registry at the
// deferred-destruction point; not for direct use while the window is
// still registered.
func (w *NativeWindow) DestroyWindow() {
	native.DestroyWindow(w.handle)
	w.handle = 0
}
