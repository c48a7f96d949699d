package lumen

import "time"

// WindowSystem abstracts the native windowing/event backend. The run
// loop initializes it lazily, waits on it once per tick, and
// uninitializes it when a run cycle finishes so a later cycle can
// initialize it again.
type WindowSystem interface {
	// Initialize prepares the backend. Called from the loop-owning
	// goroutine before the first window is created, and again after a
	// prior Uninitialize when the loop restarts.
	Initialize() error

	// Uninitialize tears the backend down. All windows are destroyed
	// before this is called.
	Uninitialize()

	// WaitEventsTimeout blocks until a native event arrives or the
	// timeout elapses, whichever comes first. This is the only blocking
	// point inside a tick.
	WaitEventsTimeout(timeout time.Duration)
}

// RemoteWindowSystem is the capability interface for window systems
// that serve windows to remote clients instead of local displays.
// AddWindow checks for it with a type assertion and wires the relays;
// no run-time type inspection beyond that is needed.
type RemoteWindowSystem interface {
	WindowSystem

	// SetMouseEventCallback installs the relay invoked (on the
	// loop-owning goroutine) for each client mouse event, keyed by
	// window UID.
	SetMouseEventCallback(fn func(windowUID string, ev MouseEvent))

	// SetRedrawCallback installs the relay invoked (on the loop-owning
	// goroutine) when a client requests a redraw of a window.
	SetRedrawCallback(fn func(windowUID string))

	// StartServer starts accepting client sessions. Idempotent: calling
	// it when the server is already running is a no-op.
	StartServer() error
}
