package main

import (
	"fyne.io/fyne/v2"
)

// UpdateWidgetOnMainThread schedules a widget update function to run on the main Fyne thread.
// This is required because Fyne widgets cannot be updated directly from goroutines;
// the display is redrawn from the control loop goroutine.
func UpdateWidgetOnMainThread(callback func()) {
	if callback == nil {
		return
	}
	fyne.Do(callback)
}
