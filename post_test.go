package lumen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainPostedPreservesOrder(t *testing.T) {
	app := newTestApp(t, &fakeWinSys{})

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		app.PostToMainThread(WindowHandle{}, func() { got = append(got, i) })
	}

	app.drainPosted(NoopUnlocker{})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)

	// The queue is empty now; a second drain runs nothing.
	app.drainPosted(NoopUnlocker{})
	assert.Len(t, got, 5)
}

func TestDrainPostedWindowTarget(t *testing.T) {
	app := newTestApp(t, &fakeWinSys{})
	w := newFakeWindow("w1")
	h := app.AddWindow(w)

	ran := false
	app.PostToMainThread(h, func() { ran = true })
	app.drainPosted(NoopUnlocker{})

	assert.True(t, ran)
	assert.Equal(t, 1, w.ctxMade, "closure runs with the window's context current")
	assert.Equal(t, 1, w.ctxRestored)
	assert.Equal(t, 1, w.redraws, "a redraw follows every window-bound closure")
}

func TestDrainPostedDropsStaleTarget(t *testing.T) {
	app := newTestApp(t, &fakeWinSys{})
	w := newFakeWindow("w1")
	h := app.AddWindow(w)

	ran := false
	app.PostToMainThread(h, func() { ran = true })
	app.RemoveWindow(h)

	app.drainPosted(NoopUnlocker{})
	assert.False(t, ran, "closures for removed windows are dropped, not run")
	assert.Zero(t, w.ctxMade)
}

func TestDrainPostedUnlocksAroundCollect(t *testing.T) {
	app := newTestApp(t, &fakeWinSys{})
	app.PostToMainThread(WindowHandle{}, func() {})

	var u countingUnlocker
	app.drainPosted(&u)
	assert.Equal(t, 1, u.unlocks)
	assert.Equal(t, 1, u.relocks)
}

func TestPostFromManyGoroutines(t *testing.T) {
	app := newTestApp(t, &fakeWinSys{})

	const producers = 8
	const perProducer = 20

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				app.PostToMainThread(WindowHandle{}, func() {})
			}
		}()
	}
	wg.Wait()

	buf := app.posts.collect(nil)
	require.Len(t, buf, producers*perProducer, "every post delivered exactly once")
}
