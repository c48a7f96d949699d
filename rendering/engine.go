// Package rendering manages the lifecycle of the rendering engine
// backing all Lumen windows.
//
// The engine is owned by the Application and passed by reference to the
// collaborators that need it; there is no package-level instance, so
// independent Applications in tests get independent engines.
package rendering

import (
	"fmt"

	"github.com/lumen-ui/lumen/internal/native"
)

// Backend selects the rendering implementation.
type Backend int

const (
	// BackendAuto picks the platform default (currently the native GPU
	// backend).
	BackendAuto Backend = iota
	// BackendNative renders through the native library's GPU engine.
	BackendNative
	// BackendHeadless performs no rendering. Used by tests and by
	// embeddings that only exercise the run loop.
	BackendHeadless
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendNative:
		return "native"
	case BackendHeadless:
		return "headless"
	default:
		return "auto"
	}
}

// Engine is a handle to the rendering backend. All methods must be
// called from the loop-owning goroutine; background tasks that hold an
// *Engine may only do so for its lifetime guarantees, not to call it.
type Engine struct {
	backend      Backend
	resourcePath string
	active       bool
}

// NewEngine returns an inactive engine. SelectBackend activates it.
func NewEngine() *Engine {
	return &Engine{}
}

// SelectBackend activates the engine with the given backend. Selecting
// while already active is a no-op, so the run loop can call this on
// every prepare step, including re-entry after a full shutdown.
func (e *Engine) SelectBackend(b Backend) error {
	if e.active {
		return nil
	}
	if b == BackendAuto {
		b = BackendNative
	}
	if b == BackendNative {
		if err := native.EngineInit(int32(b), e.resourcePath); err != nil {
			return fmt.Errorf("rendering: select backend %s: %w", b, err)
		}
	}
	e.backend = b
	e.active = true
	return nil
}

// Destroy tears the engine down. Must not be called while windows or
// background tasks still reference GPU resources; the run loop joins
// all tasks first. Safe to call when inactive.
func (e *Engine) Destroy() {
	if !e.active {
		return
	}
	if e.backend == BackendNative {
		native.EngineShutdown()
	}
	e.active = false
}

// Active reports whether a backend is currently selected.
func (e *Engine) Active() bool {
	return e.active
}

// Backend returns the selected backend (meaningful only while active).
func (e *Engine) Backend() Backend {
	return e.backend
}

// SetResourcePath records where engine assets (materials, shaders,
// fonts) live. Must be set before SelectBackend activates a native
// backend.
func (e *Engine) SetResourcePath(path string) {
	e.resourcePath = path
}

// ResourcePath returns the configured resource path.
func (e *Engine) ResourcePath() string {
	return e.resourcePath
}
