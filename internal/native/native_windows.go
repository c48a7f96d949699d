//go:build windows

package native

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// openLibrary loads the native library on Windows.
func openLibrary(path string) (uintptr, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL failed: %w", err)
	}
	return uintptr(dll.Handle), nil
}
