// Package native provides Go bindings to the Lumen native windowing and
// rendering library via purego, so no CGo toolchain is required.
//
// The native library (liblumen_native) owns the OS event queue, window
// surfaces and the GPU context. Everything here must be called from the
// thread that owns the run loop; the only exception is PostEmptyEvent,
// which exists precisely to wake that thread from another one.
package native

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Handle identifies a native window inside the library.
type Handle uint64

// Context is an opaque GPU context handle, returned by MakeContextCurrent
// so the prior context can be restored.
type Context uint64

var (
	libOnce   sync.Once
	libHandle uintptr
	libErr    error
)

// Registered function pointers. Populated once by Load.
var (
	fnWSInit          func() int32
	fnWSShutdown      func()
	fnWSWaitEvents    func(timeoutMs uint32)
	fnWSPostEmpty     func()
	fnWindowCreate    func(title string, width, height int32) uint64
	fnWindowShow      func(handle uint64, visible int32)
	fnWindowDestroy   func(handle uint64)
	fnWindowRedraw    func(handle uint64)
	fnWindowSetTitle  func(handle uint64, title string)
	fnCtxMakeCurrent  func(handle uint64) uint64
	fnCtxRestore      func(ctx uint64)
	fnEngineInit      func(backend int32, resourcePath string) int32
	fnEngineShutdown  func()
	fnEngineVersion   func() string
)

func libraryName() string {
	switch runtime.GOOS {
	case "darwin":
		return "liblumen_native.dylib"
	case "windows":
		return "lumen_native.dll"
	default:
		return "liblumen_native.so"
	}
}

// libraryPath locates the native library: an explicit override via
// LUMEN_NATIVE_LIB, then next to the executable, then the working
// directory, then the bare name for the system loader to resolve.
func libraryPath() string {
	if p := os.Getenv("LUMEN_NATIVE_LIB"); p != "" {
		return p
	}

	name := libraryName()
	var searchPaths []string
	if exe, err := os.Executable(); err == nil {
		execDir := filepath.Dir(exe)
		searchPaths = append(searchPaths,
			filepath.Join(execDir, name),
			filepath.Join(execDir, "lib", name),
		)
	}
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(cwd, name))
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return name
}

// Load opens the native library and registers all function pointers.
// It is idempotent; every exported call goes through it first.
func Load() error {
	libOnce.Do(func() {
		path := libraryPath()
		libHandle, libErr = openLibrary(path)
		if libErr != nil {
			libErr = fmt.Errorf("native: load %s: %w", path, libErr)
			return
		}

		register(&fnWSInit, "lumen_ws_init")
		register(&fnWSShutdown, "lumen_ws_shutdown")
		register(&fnWSWaitEvents, "lumen_ws_wait_events")
		register(&fnWSPostEmpty, "lumen_ws_post_empty_event")
		register(&fnWindowCreate, "lumen_window_create")
		register(&fnWindowShow, "lumen_window_show")
		register(&fnWindowDestroy, "lumen_window_destroy")
		register(&fnWindowRedraw, "lumen_window_request_redraw")
		register(&fnWindowSetTitle, "lumen_window_set_title")
		register(&fnCtxMakeCurrent, "lumen_ctx_make_current")
		register(&fnCtxRestore, "lumen_ctx_restore")
		register(&fnEngineInit, "lumen_engine_init")
		register(&fnEngineShutdown, "lumen_engine_shutdown")
		register(&fnEngineVersion, "lumen_engine_version")
	})
	return libErr
}

// WSInit initializes the native window system.
func WSInit() error {
	if err := Load(); err != nil {
		return err
	}
	if rc := fnWSInit(); rc != 0 {
		return fmt.Errorf("native: window system init failed (code %d)", rc)
	}
	return nil
}

// WSShutdown tears down the native window system. Windows must already
// be destroyed.
func WSShutdown() {
	if libErr == nil && fnWSShutdown != nil {
		fnWSShutdown()
	}
}

// WaitEventsTimeout blocks until a native event arrives or the timeout
// elapses, whichever comes first.
func WaitEventsTimeout(timeoutMs uint32) {
	fnWSWaitEvents(timeoutMs)
}

// PostEmptyEvent wakes a thread blocked in WaitEventsTimeout. Safe to
// call from any thread.
func PostEmptyEvent() {
	fnWSPostEmpty()
}

// CreateWindow creates a native window. The window starts hidden.
func CreateWindow(title string, width, height int) (Handle, error) {
	if err := Load(); err != nil {
		return 0, err
	}
	h := fnWindowCreate(title, int32(width), int32(height))
	if h == 0 {
		return 0, fmt.Errorf("native: window creation failed")
	}
	return Handle(h), nil
}

// ShowWindow toggles window visibility.
func ShowWindow(h Handle, visible bool) {
	v := int32(0)
	if visible {
		v = 1
	}
	fnWindowShow(uint64(h), v)
}

// DestroyWindow releases the native window and its surface.
func DestroyWindow(h Handle) {
	fnWindowDestroy(uint64(h))
}

// RequestRedraw schedules a redraw for the window.
func RequestRedraw(h Handle) {
	fnWindowRedraw(uint64(h))
}

// SetWindowTitle updates the window title.
func SetWindowTitle(h Handle, title string) {
	fnWindowSetTitle(uint64(h), title)
}

// MakeContextCurrent binds the window's GPU context and returns the
// previously current one.
func MakeContextCurrent(h Handle) Context {
	return Context(fnCtxMakeCurrent(uint64(h)))
}

// RestoreContext rebinds a context returned by MakeContextCurrent.
func RestoreContext(ctx Context) {
	fnCtxRestore(uint64(ctx))
}

// EngineInit initializes the rendering engine with the given backend
// and resource path.
func EngineInit(backend int32, resourcePath string) error {
	if err := Load(); err != nil {
		return err
	}
	if rc := fnEngineInit(backend, resourcePath); rc != 0 {
		return fmt.Errorf("native: engine init failed (code %d)", rc)
	}
	return nil
}

// EngineShutdown destroys the rendering engine instance.
func EngineShutdown() {
	if libErr == nil && fnEngineShutdown != nil {
		fnEngineShutdown()
	}
}

// Version returns the native library version string.
func Version() string {
	if err := Load(); err != nil {
		return ""
	}
	return fnEngineVersion()
}
