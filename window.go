package lumen

import "github.com/google/uuid"

// DrawContext is an opaque token for a previously current drawing
// context, returned by Window.MakeDrawContextCurrent so the caller can
// restore it afterwards.
type DrawContext any

// TickEvent is delivered to every active window once per tick cycle,
// independent of input events.
type TickEvent struct{}

// MouseEventType classifies a MouseEvent.
type MouseEventType int

const (
	// MouseMove is a pointer motion event.
	MouseMove MouseEventType = iota
	// MouseButtonDown is a button press.
	MouseButtonDown
	// MouseButtonUp is a button release.
	MouseButtonUp
	// MouseWheel is a scroll event.
	MouseWheel
)

// MouseButton identifies which button a MouseEvent refers to.
type MouseButton int

const (
	// MouseButtonNone means no button was involved.
	MouseButtonNone MouseButton = iota
	// MouseButtonLeft is the primary button.
	MouseButtonLeft
	// MouseButtonRight is the secondary button.
	MouseButtonRight
	// MouseButtonMiddle is the wheel button.
	MouseButtonMiddle
)

// MouseEvent is the pointer event shape relayed between window systems
// and windows.
type MouseEvent struct {
	Type   MouseEventType `json:"type"`
	X      int            `json:"x"`
	Y      int            `json:"y"`
	Button MouseButton    `json:"button"`
	// WheelDX/WheelDY carry scroll deltas for MouseWheel events.
	WheelDX float64 `json:"wheel_dx,omitempty"`
	WheelDY float64 `json:"wheel_dy,omitempty"`
}

// Window is the contract the run loop requires from a window
// implementation. Widget toolkits build on top of this; the loop itself
// only shows, ticks, redraws and destroys.
//
// All methods are invoked on the loop-owning goroutine.
type Window interface {
	// UID returns a stable unique identifier for the window.
	UID() string

	// Show toggles window visibility.
	Show(visible bool)

	// OnResize tells the window to rerun its layout pass.
	OnResize()

	// OnTickEvent delivers the periodic tick.
	OnTickEvent(e TickEvent)

	// OnMouseEvent delivers a pointer event.
	OnMouseEvent(e MouseEvent)

	// PostRedraw schedules a redraw of the window.
	PostRedraw()

	// MakeDrawContextCurrent binds the window's drawing context and
	// returns the previously current one.
	MakeDrawContextCurrent() DrawContext

	// RestoreDrawContext rebinds a context returned by
	// MakeDrawContextCurrent.
	RestoreDrawContext(ctx DrawContext)

	// DestroyWindow releases the window's native resources. Called only
	// from the registry's destroy flush, never from inside one of the
	// window's own callbacks.
	DestroyWindow()
}

// NewWindowUID generates a unique window identifier. Window
// implementations are free to supply their own scheme instead.
func NewWindowUID() string {
	return "window_" + uuid.NewString()
}
