package native

import (
	"github.com/ebitengine/purego"
)

// register binds a Go function pointer to a native symbol. Missing
// symbols panic inside purego, which is what we want: a partially
// linked native library is not something the run loop can limp through.
func register(fptr any, name string) {
	purego.RegisterLibFunc(fptr, libHandle, name)
}
