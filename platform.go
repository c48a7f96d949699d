package lumen

import (
	"os"
	"path/filepath"
	"runtime"
)

// Platform identifies the operating system the application runs on.
type Platform string

const (
	PlatformMacOS   Platform = "darwin"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformWeb     Platform = "js"
	PlatformUnknown Platform = "unknown"
)

// CurrentPlatform returns the platform the app is running on.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMacOS
	case "ios":
		return PlatformIOS
	case "android":
		return PlatformAndroid
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	case "js":
		return PlatformWeb
	default:
		return PlatformUnknown
	}
}

// IsMobile returns true on iOS or Android.
func IsMobile() bool {
	p := CurrentPlatform()
	return p == PlatformIOS || p == PlatformAndroid
}

// IsDesktop returns true on macOS, Linux, or Windows.
func IsDesktop() bool {
	p := CurrentPlatform()
	return p == PlatformMacOS || p == PlatformLinux || p == PlatformWindows
}

// IsMacOS returns true on macOS.
func IsMacOS() bool {
	return CurrentPlatform() == PlatformMacOS
}

// SupportsNativeDialogs reports whether blocking native alert dialogs
// are available; elsewhere configuration errors fall back to the log.
func SupportsNativeDialogs() bool {
	return IsDesktop()
}

// SupportsMultiWindow reports whether the platform can host more than
// one window per application.
func SupportsMultiWindow() bool {
	return IsDesktop()
}

// systemFontDirs returns the platform's font search directories, used
// by FindFontPath for fonts outside the resource bundle.
func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch CurrentPlatform() {
	case PlatformMacOS:
		return []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
			filepath.Join(home, "Library", "Fonts"),
		}
	case PlatformWindows:
		return []string{`c:\Windows\Fonts`}
	case PlatformLinux:
		return []string{
			"/usr/share/fonts",
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"),
		}
	default:
		return nil
	}
}
