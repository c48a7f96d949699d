package lumen

import "github.com/sqweek/dialog"

// AlertHandler surfaces a blocking alert to the user. The default shows
// a native message box, because stderr is invisible when the process
// was launched as a packaged app with no attached console. Replace it
// via WithAlertHandler (tests do, and so can embedders with their own
// error UI).
type AlertHandler func(title, message string)

func nativeAlert(title, message string) {
	if !SupportsNativeDialogs() {
		return
	}
	dialog.Message("%s", message).Title(title).Error()
}
