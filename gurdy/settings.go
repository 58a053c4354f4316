package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"gitlab.com/gomidi/midi/v2"

	"github.com/itohio/gogurdy/pkg/display"
	"github.com/itohio/gogurdy/pkg/keybox"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	// Create tabs
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createMIDITab(state),
		createKeyboxTab(state),
		createTuningTab(state),
		createMockTab(state),
	)

	// Create dialog with tabs as content
	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// saveConfig writes the configuration and reports failures in a dialog.
func saveConfig(state *appState) {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
	}
}

// reconnect restarts the session so changed settings take effect.
func reconnect(state *appState) {
	if state.session == nil {
		return
	}
	handleConnect(state)
	handleConnect(state)
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := keybox.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.BaudRate))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			changed := false
			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}
				changed = state.cfg.Serial.Port != selectedPort
				state.cfg.Serial.Port = selectedPort
			}
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil && baud > 0 {
				changed = changed || state.cfg.Serial.BaudRate != baud
				state.cfg.Serial.BaudRate = baud
			}
			saveConfig(state)

			// Restart the session on the new port
			if changed && !state.useMock {
				reconnect(state)
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createMIDITab creates the MIDI output configuration tab.
func createMIDITab(state *appState) *container.TabItem {
	portOptions := []string{""}
	for _, out := range midi.GetOutPorts() {
		portOptions = append(portOptions, out.String())
	}

	portSelect := widget.NewSelect(portOptions, nil)
	portSelect.PlaceHolder = "(first available)"
	if state.cfg.MIDI.OutPort != "" {
		portSelect.SetSelected(state.cfg.MIDI.OutPort)
	}

	velocityEntry := widget.NewEntry()
	velocityEntry.SetText(strconv.Itoa(int(state.cfg.MIDI.Velocity)))

	highEntry := widget.NewEntry()
	highEntry.SetText(strconv.Itoa(state.cfg.MIDI.High.OpenNote))

	lowEntry := widget.NewEntry()
	lowEntry.SetText(strconv.Itoa(state.cfg.MIDI.Low.OpenNote))

	droneEntry := widget.NewEntry()
	droneEntry.SetText(strconv.Itoa(state.cfg.MIDI.Drone.OpenNote))

	trompEntry := widget.NewEntry()
	trompEntry.SetText(strconv.Itoa(state.cfg.MIDI.Tromp.OpenNote))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Output Port", Widget: portSelect},
			{Text: "Velocity", Widget: velocityEntry},
			{Text: "High String", Widget: highEntry},
			{Text: "Low String", Widget: lowEntry},
			{Text: "Drone", Widget: droneEntry},
			{Text: "Trompette", Widget: trompEntry},
		},
		OnSubmit: func() {
			state.cfg.MIDI.OutPort = portSelect.Selected
			if v, err := strconv.ParseUint(velocityEntry.Text, 10, 7); err == nil && v > 0 {
				state.cfg.MIDI.Velocity = uint8(v)
			}
			setNote(&state.cfg.MIDI.High.OpenNote, highEntry.Text)
			setNote(&state.cfg.MIDI.Low.OpenNote, lowEntry.Text)
			setNote(&state.cfg.MIDI.Drone.OpenNote, droneEntry.Text)
			setNote(&state.cfg.MIDI.Tromp.OpenNote, trompEntry.Text)
			saveConfig(state)
			reconnect(state)
		},
	}

	return container.NewTabItem("MIDI", form)
}

// setNote parses a MIDI note number or name shown by the display into dst.
func setNote(dst *int, text string) {
	if n, err := strconv.Atoi(text); err == nil && n >= 0 && n <= 127 {
		*dst = n
		return
	}
	for n := 0; n <= 127; n++ {
		if display.NoteName(n) == text {
			*dst = n
			return
		}
	}
}

// createKeyboxTab creates the Keybox configuration tab.
func createKeyboxTab(state *appState) *container.TabItem {
	debounceEntry := widget.NewEntry()
	debounceEntry.SetText(state.cfg.Keybox.Debounce.String())

	loopEntry := widget.NewEntry()
	loopEntry.SetText(state.cfg.Menu.LoopPeriod.String())

	pollEntry := widget.NewEntry()
	pollEntry.SetText(state.cfg.Menu.PollDelay.String())

	eepromEntry := widget.NewEntry()
	eepromEntry.SetText(state.cfg.EX.EEPROMPath)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Debounce", Widget: debounceEntry},
			{Text: "Loop Period", Widget: loopEntry},
			{Text: "Menu Poll Delay", Widget: pollEntry},
			{Text: "EEPROM Image", Widget: eepromEntry},
		},
		OnSubmit: func() {
			if d, err := time.ParseDuration(debounceEntry.Text); err == nil {
				state.cfg.Keybox.Debounce = d
			}
			if d, err := time.ParseDuration(loopEntry.Text); err == nil && d > 0 {
				state.cfg.Menu.LoopPeriod = d
			}
			if d, err := time.ParseDuration(pollEntry.Text); err == nil && d > 0 {
				state.cfg.Menu.PollDelay = d
			}
			if eepromEntry.Text != "" {
				state.cfg.EX.EEPROMPath = eepromEntry.Text
			}
			saveConfig(state)
			reconnect(state)
		},
	}

	return container.NewTabItem("Keybox", form)
}

// createTuningTab creates the Tuning configuration tab.
func createTuningTab(state *appState) *container.TabItem {
	maxTransposeEntry := widget.NewEntry()
	maxTransposeEntry.SetText(strconv.Itoa(state.cfg.Tuning.MaxTranspose))

	toggleStepsEntry := widget.NewEntry()
	toggleStepsEntry.SetText(strconv.Itoa(state.cfg.Tuning.ToggleSteps))

	volumeStepEntry := widget.NewEntry()
	volumeStepEntry.SetText(strconv.Itoa(state.cfg.Tuning.VolumeStep))

	screenSelect := widget.NewSelect([]string{string(display.ScreenNote), string(display.ScreenDetail)}, nil)
	screenSelect.SetSelected(state.cfg.Tuning.PlayScreen)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Max Transpose", Widget: maxTransposeEntry},
			{Text: "Transpose Toggle Steps", Widget: toggleStepsEntry},
			{Text: "Volume Step", Widget: volumeStepEntry},
			{Text: "Play Screen", Widget: screenSelect},
		},
		OnSubmit: func() {
			if v, err := strconv.Atoi(maxTransposeEntry.Text); err == nil && v > 0 {
				state.cfg.Tuning.MaxTranspose = v
			}
			if v, err := strconv.Atoi(toggleStepsEntry.Text); err == nil {
				state.cfg.Tuning.ToggleSteps = v
			}
			if v, err := strconv.Atoi(volumeStepEntry.Text); err == nil && v > 0 {
				state.cfg.Tuning.VolumeStep = v
			}
			if screenSelect.Selected != "" {
				state.cfg.Tuning.PlayScreen = screenSelect.Selected
			}
			state.cfg.Tuning.ClampToggleSteps()
			toggleStepsEntry.SetText(strconv.Itoa(state.cfg.Tuning.ToggleSteps))
			saveConfig(state)
			reconnect(state)
		},
	}

	return container.NewTabItem("Tuning", form)
}

// createMockTab creates the Mock keybox configuration tab.
func createMockTab(state *appState) *container.TabItem {
	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(state.cfg.Mock.SampleRate.String())

	pressDurationEntry := widget.NewEntry()
	pressDurationEntry.SetText(state.cfg.Mock.PressDuration.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Sample Rate", Widget: sampleRateEntry},
			{Text: "Press Duration", Widget: pressDurationEntry},
		},
		OnSubmit: func() {
			if sr, err := time.ParseDuration(sampleRateEntry.Text); err == nil && sr > 0 {
				state.cfg.Mock.SampleRate = sr
			}
			if pd, err := time.ParseDuration(pressDurationEntry.Text); err == nil && pd > 0 {
				state.cfg.Mock.PressDuration = pd
			}
			saveConfig(state)
			if state.useMock {
				reconnect(state)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
