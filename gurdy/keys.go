package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/gogurdy/pkg/config"
	"github.com/itohio/gogurdy/pkg/display"
	"github.com/itohio/gogurdy/pkg/scope"
)

// createKeyPanel creates the virtual keybox: one button per key, the EX,
// pause and crank buttons and a latch holding X down for chords.
func createKeyPanel(state *appState) fyne.CanvasObject {
	kb := state.cfg.Keybox
	open := state.cfg.MIDI.High.OpenNote

	keys := container.NewGridWithColumns(12)
	for i, pin := range kb.Pins[1:] {
		label := fmt.Sprintf("%s\n%s", display.NoteName(open+i+1), keyRole(state, i))
		keys.Add(newPinButton(state, label, pin))
	}

	controls := container.NewHBox(
		newPinButton(state, "EX1", kb.EXPins[0]),
		newPinButton(state, "EX2", kb.EXPins[1]),
		newPinButton(state, "EX3", kb.EXPins[2]),
		newPinButton(state, "Pause", kb.PausePin),
		newPinButton(state, "Crank", kb.CrankPin),
	)

	xPin := kb.Pins[kb.X+1]
	state.holdX = widget.NewCheck("Hold X", func(on bool) {
		handleHoldX(state, xPin, on)
	})
	controls.Add(state.holdX)

	setKeyButtonsEnabled(state, false)

	return container.NewVBox(keys, controls)
}

// newPinButton creates a button tapping pin on the mocked keybox.
func newPinButton(state *appState, label string, pin int) *widget.Button {
	btn := widget.NewButton(label, func() {
		if state.mock != nil {
			state.mock.Tap(pin)
		}
	})
	state.keyButtons = append(state.keyButtons, btn)
	return btn
}

// handleHoldX presses or releases the X key on the mocked keybox.
func handleHoldX(state *appState, pin int, on bool) {
	if state.mock == nil {
		return
	}
	if on {
		state.mock.Press(pin)
	} else {
		state.mock.Release(pin)
	}
}

// setKeyButtonsEnabled enables the virtual keys. They only work with a mocked
// keybox.
func setKeyButtonsEnabled(state *appState, enabled bool) {
	for _, btn := range state.keyButtons {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
	if state.holdX != nil {
		if enabled {
			state.holdX.Enable()
		} else {
			state.holdX.SetChecked(false)
			state.holdX.Disable()
		}
	}
}

// keyRole returns the role label of key i.
func keyRole(state *appState, i int) string {
	kb := state.cfg.Keybox
	switch i {
	case kb.X:
		return "X"
	case kb.A:
		return "A"
	case kb.B:
		return "B"
	case kb.TposeUp:
		return "T+"
	case kb.TposeDown:
		return "T-"
	case kb.Button1:
		return "1"
	case kb.Button2:
		return "2"
	case kb.Button3:
		return "3"
	case kb.Button4:
		return "4"
	case kb.Button5:
		return "5"
	case kb.Button6:
		return "6"
	}
	return ""
}

// scopeRows lists the pins shown by the scope: the role keys, EX, pause and
// crank.
func scopeRows(cfg *config.Config) []scope.Row {
	kb := cfg.Keybox
	rows := []scope.Row{
		{Pin: kb.CrankPin, Label: "Crank"},
		{Pin: kb.PausePin, Label: "Pause"},
		{Pin: kb.EXPins[0], Label: "EX1"},
		{Pin: kb.EXPins[1], Label: "EX2"},
		{Pin: kb.EXPins[2], Label: "EX3"},
	}
	for i, pin := range kb.Pins[1:] {
		rows = append(rows, scope.Row{Pin: pin, Label: display.NoteName(cfg.MIDI.High.OpenNote + i + 1)})
	}
	return rows
}
