package button

import "time"

var _ Pressable = (*Toggle)(nil)

// Toggle is a button with an on/off latch: press and release once to turn it
// on, again to turn it off.
type Toggle struct {
	*Button
	on bool
}

// NewToggle creates a toggle button with the latch off.
func NewToggle(pin Pin, interval time.Duration, opts ...Option) *Toggle {
	return &Toggle{Button: New(pin, interval, opts...)}
}

// Update advances the debounce state and flips the latch on a press edge.
// Releases never change the latch.
func (t *Toggle) Update() {
	t.Button.Update()
	if t.WasPressed() {
		t.on = !t.on
	}
}

// ToggleOn returns the latch.
func (t *Toggle) ToggleOn() bool {
	return t.on
}

// SetToggle forces the latch, e.g. to switch a mode off after a menu choice.
func (t *Toggle) SetToggle(on bool) {
	t.on = on
}
