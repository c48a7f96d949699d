package lumen

// The window registry is an arena with generation-tagged handles.
// Windows occupy slots; a WindowHandle is (index, generation) and goes
// stale the moment its slot is freed, so callers can never resurrect a
// destroyed window through an old handle.
//
// A slot is in exactly one state at a time, which makes the
// active/pending-destroy disjointness invariant structural. A slot
// tagged pending-destroy never returns to active; it is physically
// freed only by flushPendingDestroy, the designated end-of-tick safe
// point, because native backends forbid destroying a window while one
// of its own event callbacks is still on the stack.
//
// All registry state is touched exclusively by the loop-owning
// goroutine; no synchronization is needed.

// WindowHandle is a stable reference to a registered window. The zero
// value is invalid and never matches a live window.
type WindowHandle struct {
	index int
	gen   uint32
}

// Valid reports whether the handle has ever referred to a window. It
// does not check liveness; use Application.Window for that.
func (h WindowHandle) Valid() bool {
	return h.gen != 0
}

type slotState uint8

const (
	slotFree slotState = iota
	slotActive
	slotPendingDestroy
)

type windowSlot struct {
	win   Window
	gen   uint32
	state slotState
}

type windowRegistry struct {
	slots []windowSlot
	free  []int

	activeCount  int
	pendingCount int
}

// add inserts a window as active and returns its handle. Generations
// start at 1 so the zero handle stays invalid.
func (r *windowRegistry) add(w Window) WindowHandle {
	var idx int
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, windowSlot{})
		idx = len(r.slots) - 1
	}
	slot := &r.slots[idx]
	slot.win = w
	slot.gen++
	slot.state = slotActive
	r.activeCount++
	return WindowHandle{index: idx, gen: slot.gen}
}

// get returns the window for a handle if it is still active.
func (r *windowRegistry) get(h WindowHandle) (Window, bool) {
	if h.index < 0 || h.index >= len(r.slots) {
		return nil, false
	}
	slot := &r.slots[h.index]
	if slot.state != slotActive || slot.gen != h.gen {
		return nil, false
	}
	return slot.win, true
}

// remove moves an active window to pending-destroy. Returns false for
// stale or already-removed handles.
func (r *windowRegistry) remove(h WindowHandle) bool {
	if h.index < 0 || h.index >= len(r.slots) {
		return false
	}
	slot := &r.slots[h.index]
	if slot.state != slotActive || slot.gen != h.gen {
		return false
	}
	slot.state = slotPendingDestroy
	r.activeCount--
	r.pendingCount++
	return true
}

// handleOf finds the handle for an active window by identity. Linear
// scan, like every lookup here: window counts are tens, not thousands,
// so an index structure would buy nothing.
func (r *windowRegistry) handleOf(w Window) (WindowHandle, bool) {
	for i := range r.slots {
		slot := &r.slots[i]
		if slot.state == slotActive && slot.win == w {
			return WindowHandle{index: i, gen: slot.gen}, true
		}
	}
	return WindowHandle{}, false
}

// byUID finds an active window by its UID.
func (r *windowRegistry) byUID(uid string) (Window, bool) {
	for i := range r.slots {
		slot := &r.slots[i]
		if slot.state == slotActive && slot.win.UID() == uid {
			return slot.win, true
		}
	}
	return nil, false
}

// uids returns the UIDs of all active windows.
func (r *windowRegistry) uids() []string {
	out := make([]string, 0, r.activeCount)
	for i := range r.slots {
		if r.slots[i].state == slotActive {
			out = append(out, r.slots[i].win.UID())
		}
	}
	return out
}

// forEachActive invokes fn for every active window in slot order.
func (r *windowRegistry) forEachActive(fn func(Window)) {
	for i := range r.slots {
		if r.slots[i].state == slotActive {
			fn(r.slots[i].win)
		}
	}
}

// firstActive returns the handle of the lowest active slot.
func (r *windowRegistry) firstActive() (WindowHandle, bool) {
	for i := range r.slots {
		if r.slots[i].state == slotActive {
			return WindowHandle{index: i, gen: r.slots[i].gen}, true
		}
	}
	return WindowHandle{}, false
}

// flushPendingDestroy destroys every pending window and frees its slot.
// Must only run from the loop's own tick, after event and callback
// processing for that tick is complete.
func (r *windowRegistry) flushPendingDestroy() {
	if r.pendingCount == 0 {
		return
	}
	for i := range r.slots {
		slot := &r.slots[i]
		if slot.state != slotPendingDestroy {
			continue
		}
		slot.win.DestroyWindow()
		slot.win = nil
		slot.state = slotFree
		slot.gen++ // stale-proof any handle still pointing here
		r.free = append(r.free, i)
		r.pendingCount--
	}
}
