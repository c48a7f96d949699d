package lumen

import (
	"fmt"
	"runtime"
	"time"
)

const (
	// tickInterval is the target cadence of the run loop. Each step
	// waits on native events for at most this long before ticking.
	tickInterval = 10 * time.Millisecond

	// tickJitterFactor lets a tick fire slightly early so that OS
	// timer jitter does not skip whole ticks.
	tickJitterFactor = 0.95
)

// RunStatus is the outcome of a single run-loop step.
type RunStatus int

const (
	// RunStatusContinue means the loop should be stepped again.
	RunStatusContinue RunStatus = iota
	// RunStatusFinished means shutdown was requested and, if the step
	// was asked to clean up, the environment has been torn down.
	RunStatusFinished
)

func (s RunStatus) String() string {
	switch s {
	case RunStatusContinue:
		return "continue"
	case RunStatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("RunStatus(%d)", int(s))
	}
}

// Run drives the loop until the last window closes or RequestQuit is
// called, then tears the environment down and returns. The Application
// is reusable afterwards: Initialize and Run again for another cycle.
//
// Run pins itself to its OS thread because windowing backends require
// event polling and window calls on one thread.
func (a *Application) Run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var unlocker NoopUnlocker
	for {
		status, err := a.RunOneTick(&unlocker, true)
		if err != nil {
			return err
		}
		if status == RunStatusFinished {
			return nil
		}
	}
}

// RunOneTick executes one step of the run loop and returns whether the
// caller should keep stepping. Embedding hosts that own the outer loop
// call this directly and pass their own EnvUnlocker so the host
// environment (for example an interpreter lock) is released while the
// step blocks in the native event wait and the post-queue drain.
//
// cleanupIfNoWindows controls what happens when shutdown is detected:
// true tears down the environment (Run's behavior), false leaves it up
// so the host can keep the backends alive across cycles.
//
// The first step of a cycle validates the configuration; failures are
// reported to the user via the alert handler and returned as errors
// with RunStatusFinished.
func (a *Application) RunOneTick(unlocker EnvUnlocker, cleanupIfNoWindows bool) (RunStatus, error) {
	if !a.running {
		if err := a.checkStartupConfig(); err != nil {
			return RunStatusFinished, err
		}
		if err := a.prepareForRunning(); err != nil {
			return RunStatusFinished, err
		}
		a.running = true
		a.lastTick = a.Now()
	}

	done := a.processQueuedEvents(unlocker)

	if done {
		if cleanupIfNoWindows {
			a.joinAllTasks()
			a.running = false
			a.cleanupAfterRunning()
		}
		// One cycle's quit must not bleed into the next.
		a.quitRequested = false
		return RunStatusFinished, nil
	}
	return RunStatusContinue, nil
}

// processQueuedEvents performs one step: bounded native event wait,
// tick dispatch, posted-closure drain, task reap, and deferred window
// destruction. Reports whether shutdown was requested.
func (a *Application) processQueuedEvents(unlocker EnvUnlocker) bool {
	unlocker.Unlock()
	a.ws.WaitEventsTimeout(tickInterval)
	unlocker.Relock()

	if now := a.Now(); now-a.lastTick >= tickJitterFactor*tickInterval.Seconds() {
		a.registry.forEachActive(func(w Window) {
			w.OnTickEvent(TickEvent{})
		})
		a.lastTick = now
	}

	a.drainPosted(unlocker)
	a.reapFinishedTasks()

	// Deferred destruction happens here, outside any backend callback,
	// so a window may close itself from its own event handler.
	a.registry.flushPendingDestroy()

	return a.quitRequested
}

// checkStartupConfig validates the configuration the loop depends on.
// Problems are shown to the user in a native alert, logged, and
// returned; the loop refuses to start.
func (a *Application) checkStartupConfig() error {
	var err error
	switch {
	case !a.initialized:
		err = ErrNotInitialized
	case !dirExists(a.renderer.ResourcePath()):
		err = fmt.Errorf("%w: resource directory %q does not exist",
			ErrMissingResource, a.renderer.ResourcePath())
	case !fileExists(a.fontPath):
		err = fmt.Errorf("%w: %q", ErrMissingFont, a.fontPath)
	default:
		return nil
	}

	a.logger.Error("cannot start run loop", "err", err)
	if a.alert != nil {
		a.alert("Cannot start", err.Error())
	}
	return err
}
