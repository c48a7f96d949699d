package lumen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumen-ui/lumen/rendering"
)

// fakeWindow records every call the run loop makes against it.
type fakeWindow struct {
	uid     string
	visible bool

	resizes   int
	ticks     int
	redraws   int
	destroyed bool

	mouseEvents []MouseEvent

	ctxMade     int
	ctxRestored int

	onTick func()
}

func newFakeWindow(uid string) *fakeWindow {
	return &fakeWindow{uid: uid}
}

func (w *fakeWindow) UID() string        { return w.uid }
func (w *fakeWindow) Show(visible bool)  { w.visible = visible }
func (w *fakeWindow) OnResize()          { w.resizes++ }
func (w *fakeWindow) PostRedraw()        { w.redraws++ }
func (w *fakeWindow) DestroyWindow()     { w.destroyed = true }
func (w *fakeWindow) OnMouseEvent(e MouseEvent) {
	w.mouseEvents = append(w.mouseEvents, e)
}

func (w *fakeWindow) OnTickEvent(TickEvent) {
	w.ticks++
	if w.onTick != nil {
		w.onTick()
	}
}

func (w *fakeWindow) MakeDrawContextCurrent() DrawContext {
	w.ctxMade++
	return "ctx:" + w.uid
}

func (w *fakeWindow) RestoreDrawContext(ctx DrawContext) {
	if ctx == DrawContext("ctx:"+w.uid) {
		w.ctxRestored++
	}
}

// fakeWinSys is a WindowSystem whose event wait is scripted: by default
// it returns immediately, or it sleeps out the timeout to simulate an
// idle display server.
type fakeWinSys struct {
	initCalls   int
	uninitCalls int
	waitCalls   int

	sleepFullTimeout bool
}

func (s *fakeWinSys) Initialize() error { s.initCalls++; return nil }
func (s *fakeWinSys) Uninitialize()     { s.uninitCalls++ }

func (s *fakeWinSys) WaitEventsTimeout(timeout time.Duration) {
	s.waitCalls++
	if s.sleepFullTimeout {
		time.Sleep(timeout)
	}
}

// recordingLogger captures log messages per level.
type recordingLogger struct {
	debugs []string
	infos  []string
	warns  []string
	errors []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.debugs = append(l.debugs, msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.errors = append(l.errors, msg) }

// countingUnlocker records Unlock/Relock pairing.
type countingUnlocker struct {
	unlocks int
	relocks int
}

func (u *countingUnlocker) Unlock() { u.unlocks++ }
func (u *countingUnlocker) Relock() { u.relocks++ }

// writeTestResources builds a minimal resource bundle: a theme that
// points at a stub font that exists.
func writeTestResources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	theme := "font_path = \"test.ttf\"\nfont_size = 14\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ThemeFileName), []byte(theme), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.ttf"), []byte("stub"), 0o644))
	return dir
}

// newTestApp returns an initialized headless Application over ws with
// alerts suppressed.
func newTestApp(t *testing.T, ws WindowSystem) *Application {
	t.Helper()
	app := New(
		WithWindowSystem(ws),
		WithRenderBackend(rendering.BackendHeadless),
		WithAlertHandler(func(string, string) {}),
	)
	require.NoError(t, app.Initialize(writeTestResources(t)))
	return app
}
