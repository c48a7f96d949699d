package lumen

import "sync/atomic"

// Task is a handle to a unit of work running on its own goroutine.
// Tasks must not touch window or registry state directly; they route
// any such interaction through Application.PostToMainThread.
type Task struct {
	finished atomic.Bool
	done     chan struct{}
}

func startTask(fn func()) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer func() {
			t.finished.Store(true)
			close(t.done)
		}()
		fn()
	}()
	return t
}

// IsFinished reports whether the task's work has completed.
func (t *Task) IsFinished() bool {
	return t.finished.Load()
}

// Wait blocks until the task finishes. This is the explicit join: the
// run loop calls it when reaping (non-blocking in practice, the
// finished flag is already set) and during teardown, where it may block
// for as long as the task runs. There is no cancellation; the only
// lifecycle controls are "let it finish" and "block until it finishes".
func (t *Task) Wait() {
	<-t.done
}

// reapFinishedTasks removes completed tasks from the list. Joining here
// never blocks meaningfully because only tasks with the finished flag
// set are touched.
func (a *Application) reapFinishedTasks() {
	kept := a.tasks[:0]
	for _, t := range a.tasks {
		if t.IsFinished() {
			t.Wait()
			continue
		}
		kept = append(kept, t)
	}
	// Drop dangling references past the new length.
	for i := len(kept); i < len(a.tasks); i++ {
		a.tasks[i] = nil
	}
	a.tasks = kept
}

// joinAllTasks blocks until every outstanding task finishes. Tasks may
// hold references into the rendering backend, so the backend must
// outlive them; this runs before the environment is uninitialized.
func (a *Application) joinAllTasks() {
	for _, t := range a.tasks {
		t.Wait()
	}
	a.tasks = a.tasks[:0]
}
