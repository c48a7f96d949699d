// Package lumen implements the process-wide application run loop for
// Lumen windows: the window registry, the cross-thread post queue, the
// background task manager, and the tick scheduler that composes them.
//
// One designated goroutine owns every window, registry, and task-list
// structure and performs all native windowing and rendering calls; the
// post queue is the only state other goroutines may touch. Background
// work goes through Application.RunInThread and reports back through
// Application.PostToMainThread.
package lumen

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lumen-ui/lumen/logging"
	"github.com/lumen-ui/lumen/rendering"
)

const defaultPostQueueSize = 256

// Configuration errors surfaced by Initialize and the run loop.
var (
	// ErrNotInitialized means the run loop was started before
	// Initialize configured a resource bundle.
	ErrNotInitialized = errors.New("lumen: Initialize was not called")
	// ErrMissingResource means the resource bundle is absent or lacks
	// the expected UI resource file.
	ErrMissingResource = errors.New("lumen: resource bundle missing or incomplete")
	// ErrMissingFont means the configured UI font does not exist.
	ErrMissingFont = errors.New("lumen: UI font not found")
)

// UserFontInfo records an extra font registered for a language or a set
// of code points. Consumed by widget toolkits when building font
// atlases; the run loop only collects them.
type UserFontInfo struct {
	Path       string
	LangCode   string
	CodePoints []rune
}

// Application is the process-wide run-loop coordinator. Construct one
// with New at process start and pass it by reference to collaborators;
// unit tests may hold several independent instances.
//
// Unless stated otherwise, methods must be called from the goroutine
// that drives the run loop. PostToMainThread is the cross-goroutine
// entry point.
type Application struct {
	logger logging.Logger
	alert  AlertHandler

	ws            WindowSystem
	wsInitialized bool
	renderer      *rendering.Engine
	renderBackend rendering.Backend

	theme    Theme
	fontPath string
	fonts    []UserFontInfo

	registry    windowRegistry
	posts       *postQueue
	postScratch []postedFunc
	tasks       []*Task

	initialized   bool
	running       bool
	quitRequested bool

	epoch    time.Time
	lastTick float64
}

// Option configures an Application at construction time.
type Option func(*Application)

// WithLogger installs a logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// WithWindowSystem installs a window system ahead of the lazy default.
func WithWindowSystem(ws WindowSystem) Option {
	return func(a *Application) { a.ws = ws }
}

// WithRenderBackend selects the rendering backend activated when the
// loop prepares to run. Tests use rendering.BackendHeadless.
func WithRenderBackend(b rendering.Backend) Option {
	return func(a *Application) { a.renderBackend = b }
}

// WithAlertHandler replaces the native message box used for
// configuration errors.
func WithAlertHandler(fn AlertHandler) Option {
	return func(a *Application) { a.alert = fn }
}

// WithPostQueueSize sets the post queue capacity (default 256). A full
// queue blocks producers until the next drain.
func WithPostQueueSize(n int) Option {
	return func(a *Application) { a.posts = newPostQueue(n) }
}

// New constructs an Application with the default theme and a silent
// logger. It performs no I/O; Initialize does.
func New(opts ...Option) *Application {
	a := &Application{
		logger:        logging.NewNoOpLogger(),
		alert:         nativeAlert,
		renderer:      rendering.NewEngine(),
		renderBackend: rendering.BackendAuto,
		theme:         DefaultTheme(),
		posts:         newPostQueue(defaultPostQueueSize),
		epoch:         time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialize configures the resource bundle and prepares the backends
// so windows can be created before Run. The bundle must contain the UI
// theme file; its absence is a hard error. Calling Initialize again
// after a completed run cycle re-prepares the backends without
// re-reading configuration.
func (a *Application) Initialize(resourcePath string) error {
	if a.initialized {
		// The run loop may have finished and torn the backends down;
		// make window creation possible again. Configuration is not
		// re-read.
		if resourcePath != a.renderer.ResourcePath() {
			a.logger.Warn("Initialize called again with a different resource path; keeping the configured one",
				"configured", a.renderer.ResourcePath(), "requested", resourcePath)
		}
		return a.prepareForRunning()
	}

	themePath := filepath.Join(resourcePath, ThemeFileName)
	if !fileExists(themePath) {
		return fmt.Errorf("%w: %s not found under %s", ErrMissingResource, ThemeFileName, resourcePath)
	}

	th, err := LoadTheme(themePath)
	if err != nil {
		return err
	}
	a.theme = th
	a.fontPath = th.FontPath
	if !filepath.IsAbs(a.fontPath) {
		a.fontPath = filepath.Join(resourcePath, th.FontPath)
	}

	a.renderer.SetResourcePath(resourcePath)
	if err := a.prepareForRunning(); err != nil {
		return err
	}

	a.initialized = true
	a.logger.Info("application initialized", "resource_path", resourcePath, "font", a.fontPath)
	return nil
}

// IsInitialized reports whether a resource bundle has been configured.
func (a *Application) IsInitialized() bool {
	return a.initialized
}

// Theme returns the active theme.
func (a *Application) Theme() Theme {
	return a.theme
}

// ResourcePath returns the configured resource bundle path.
func (a *Application) ResourcePath() string {
	return a.renderer.ResourcePath()
}

// FontPath returns the resolved UI font file path.
func (a *Application) FontPath() string {
	return a.fontPath
}

// Renderer exposes the rendering engine handle for collaborators that
// need resource-path or backend information.
func (a *Application) Renderer() *rendering.Engine {
	return a.renderer
}

// SetWindowSystem installs the windowing backend. Must happen before
// the backend is first initialized; afterwards the call is ignored with
// a warning, because windows already belong to the old backend.
func (a *Application) SetWindowSystem(ws WindowSystem) {
	if a.wsInitialized {
		a.logger.Warn("SetWindowSystem ignored: window system already initialized")
		return
	}
	a.ws = ws
}

// GetWindowSystem returns the installed window system, if any.
func (a *Application) GetWindowSystem() WindowSystem {
	return a.ws
}

// Now returns monotonic seconds since this Application was constructed.
func (a *Application) Now() float64 {
	return time.Since(a.epoch).Seconds()
}

// SetFontForLanguage registers an extra font to cover a language. The
// name is resolved through the system font directories; unknown fonts
// are skipped with a warning.
func (a *Application) SetFontForLanguage(font, langCode string) {
	path := FindFontPath(font)
	if path == "" {
		a.logger.Warn("could not find font", "font", font)
		return
	}
	a.fonts = append(a.fonts, UserFontInfo{Path: path, LangCode: langCode})
}

// SetFontForCodePoints registers an extra font for specific code
// points.
func (a *Application) SetFontForCodePoints(font string, codePoints []rune) {
	path := FindFontPath(font)
	if path == "" {
		a.logger.Warn("could not find font", "font", font)
		return
	}
	a.fonts = append(a.fonts, UserFontInfo{Path: path, CodePoints: codePoints})
}

// UserFonts returns the fonts registered via SetFontForLanguage and
// SetFontForCodePoints.
func (a *Application) UserFonts() []UserFontInfo {
	return a.fonts
}

// AddWindow registers a window: it gets an initial resize pass, is
// shown, and starts receiving ticks. When the installed window system
// is a remote variant, the mouse and redraw relays are wired first and
// the session acceptor is started (a no-op if already running).
func (a *Application) AddWindow(w Window) WindowHandle {
	if rws, ok := a.ws.(RemoteWindowSystem); ok {
		// A client message carries only the window UID; route it to the
		// window if it is still registered by then.
		rws.SetMouseEventCallback(func(uid string, ev MouseEvent) {
			if target, ok := a.registry.byUID(uid); ok {
				target.OnMouseEvent(ev)
			}
		})
		rws.SetRedrawCallback(func(uid string) {
			if target, ok := a.registry.byUID(uid); ok {
				target.PostRedraw()
			}
		})
		if err := rws.StartServer(); err != nil {
			a.logger.Error("remote window system server failed to start", "err", err)
		}
	}

	w.OnResize() // so the window gets an initial layout
	w.Show(true)
	h := a.registry.add(w)
	a.logger.Debug("window added", "uid", w.UID())
	return h
}

// RemoveWindow hides the window and schedules its destruction for the
// end of the current tick. Removing the last active window requests
// loop shutdown. Stale handles are ignored.
func (a *Application) RemoveWindow(h WindowHandle) {
	w, ok := a.registry.get(h)
	if !ok {
		return
	}
	w.Show(false)
	a.registry.remove(h)
	a.logger.Debug("window removed", "uid", w.UID())

	if a.registry.activeCount == 0 {
		a.quitRequested = true
	}
}

// HandleOf returns the handle for a registered window, matched by
// identity.
func (a *Application) HandleOf(w Window) (WindowHandle, bool) {
	return a.registry.handleOf(w)
}

// Window returns the window a handle refers to, or false if the handle
// is stale or the window is pending destruction.
func (a *Application) Window(h WindowHandle) (Window, bool) {
	return a.registry.get(h)
}

// WindowUIDs lists the UIDs of all active windows.
func (a *Application) WindowUIDs() []string {
	return a.registry.uids()
}

// WindowByUID finds an active window by UID. Linear scan; window
// counts are small.
func (a *Application) WindowByUID(uid string) Window {
	w, _ := a.registry.byUID(uid)
	return w
}

// Quit removes every active window, which requests loop shutdown.
func (a *Application) Quit() {
	for {
		h, ok := a.registry.firstActive()
		if !ok {
			return
		}
		a.RemoveWindow(h)
	}
}

// RequestQuit asks the loop to finish at the next step boundary. It
// never preempts an in-progress step.
func (a *Application) RequestQuit() {
	a.quitRequested = true
}

// RunInThread starts fn on its own goroutine and tracks it. Finished
// tasks are reaped automatically each tick; outstanding ones are joined
// before the environment is torn down, so a task may safely hold
// rendering resources for its whole lifetime. Call from the
// loop-owning goroutine only.
func (a *Application) RunInThread(fn func()) *Task {
	t := startTask(fn)
	a.tasks = append(a.tasks, t)
	return t
}

// PostToMainThread enqueues fn to run on the loop-owning goroutine
// during the next tick's drain. Safe to call from any goroutine. A
// valid target handle scopes the closure to that window: its draw
// context is made current around the call and a redraw is posted after;
// if the window is gone by drain time the closure is dropped silently.
// Pass the zero WindowHandle for closures not bound to a window.
func (a *Application) PostToMainThread(target WindowHandle, fn func()) {
	a.posts.post(target, fn)
}

// Terminate is the idempotent hard shutdown: it removes and destroys
// all windows, joins every background task, and uninitializes the
// backends. Safe to call after a clean Run finish and during abnormal
// host-environment exit.
func (a *Application) Terminate() {
	// Must keep working when called after a successful cleanup; every
	// step below tolerates already-released state.
	a.Quit()
	a.registry.flushPendingDestroy()
	a.joinAllTasks()
	a.running = false
	a.quitRequested = false
	a.cleanupAfterRunning()
}

func (a *Application) prepareForRunning() error {
	if a.ws == nil {
		a.ws = NewNativeWindowSystem()
	}
	if !a.wsInitialized {
		if err := a.ws.Initialize(); err != nil {
			return fmt.Errorf("lumen: window system: %w", err)
		}
		a.wsInitialized = true
	}
	if err := a.renderer.SelectBackend(a.renderBackend); err != nil {
		return err
	}
	return nil
}

func (a *Application) cleanupAfterRunning() {
	// Shut rendering down first: leaked renderer threads keep the
	// process alive after an embedding script finishes.
	a.renderer.Destroy()
	if a.ws != nil && a.wsInitialized {
		a.ws.Uninitialize()
	}
	a.wsInitialized = false
}
