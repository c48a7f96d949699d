package lumen

// Cross-thread post queue. Producers on any goroutine enqueue closures
// bound for the loop-owning goroutine, optionally targeted at a window;
// the loop drains once per tick.
//
// The queue is a buffered channel rather than a mutex-guarded slice so
// the lock-ordering hazard with a host environment's global lock cannot
// arise by construction: a producer holding the host lock can at worst
// block on a full channel, and the drain's collect phase runs without
// needing the host lock, so it always makes progress and frees the
// producer. The host lock is only required for phase two, invoking the
// closures, at which point no queue state is held.

type postedFunc struct {
	target WindowHandle // zero handle: not bound to a window
	fn     func()
}

type postQueue struct {
	ch chan postedFunc
}

func newPostQueue(size int) *postQueue {
	if size < 1 {
		size = defaultPostQueueSize
	}
	return &postQueue{ch: make(chan postedFunc, size)}
}

// post enqueues a closure. Callable from any goroutine; blocks only if
// the queue is full.
func (q *postQueue) post(target WindowHandle, fn func()) {
	q.ch <- postedFunc{target: target, fn: fn}
}

// collect moves every queued closure into buf without blocking,
// preserving enqueue order.
func (q *postQueue) collect(buf []postedFunc) []postedFunc {
	for {
		select {
		case p := <-q.ch:
			buf = append(buf, p)
		default:
			return buf
		}
	}
}

// drainPosted runs the per-tick drain. The unlocker parameter makes the
// host-lock contract part of the signature: the collect phase runs with
// the host lock released, and the lock is reacquired before any closure
// is invoked, since closures may call back into host code.
//
// Closures bound to a window that is no longer active are dropped
// silently; at-most-once delivery, no re-queueing.
func (a *Application) drainPosted(unlocker EnvUnlocker) {
	unlocker.Unlock()
	a.postScratch = a.posts.collect(a.postScratch[:0])
	unlocker.Relock()

	for _, p := range a.postScratch {
		if !p.target.Valid() {
			p.fn()
			continue
		}
		w, ok := a.registry.get(p.target)
		if !ok {
			continue
		}
		prev := w.MakeDrawContextCurrent()
		p.fn()
		w.RestoreDrawContext(prev)
		w.PostRedraw()
	}
}
