//go:build darwin || linux

package native

import (
	"github.com/ebitengine/purego"
)

// openLibrary loads the native library on Unix-like systems.
func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
}
