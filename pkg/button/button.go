// Package button turns raw digital inputs into debounced press and release
// edges, and builds latching and function-selecting buttons on top of them.
//
// All buttons are driven by calling Update from a single polling loop; there
// are no timers or goroutines inside this package.
package button

import "time"

// Pin is a raw digital input. machine.Pin satisfies it under TinyGo.
type Pin interface {
	Get() bool
}

// PinFunc adapts a function to the Pin interface.
type PinFunc func() bool

// Get returns the pin level.
func (f PinFunc) Get() bool { return f() }

// Pressable is anything that produces press edges from Update.
type Pressable interface {
	Update()
	WasPressed() bool
}

// Option configures a Button.
type Option func(*Button)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Button) {
		b.now = now
	}
}

// WithActiveHigh treats a high level as pressed. By default buttons are wired
// to ground with a pull-up, so a low level is pressed.
func WithActiveHigh() Option {
	return func(b *Button) {
		b.activeHigh = true
	}
}

var _ Pressable = (*Button)(nil)

// Button is a debounced momentary button.
//
// A new level is accepted only after the raw input has held it for the
// configured interval; shorter glitches are ignored. Edge flags are valid from
// the Update that produced them until the next Update.
type Button struct {
	pin        Pin
	interval   time.Duration
	activeHigh bool
	now        func() time.Time

	stable    bool      // debounced pressed state
	pending   bool      // most recent raw pressed state
	changedAt time.Time // when pending last changed
	pressed   bool      // press edge seen by the last Update
	released  bool      // release edge seen by the last Update
}

// New creates a button on pin. The current level is taken as the initial
// stable state, so a key held at startup does not report a press.
func New(pin Pin, interval time.Duration, opts ...Option) *Button {
	b := &Button{
		pin:      pin,
		interval: interval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.stable = b.read()
	b.pending = b.stable
	b.changedAt = b.now()

	return b
}

// Interval returns the debounce interval.
func (b *Button) Interval() time.Duration {
	return b.interval
}

// Update samples the pin and advances the debounce state.
func (b *Button) Update() {
	b.pressed, b.released = false, false

	now := b.now()
	level := b.read()
	if level != b.pending {
		b.pending = level
		b.changedAt = now
	}

	if b.pending == b.stable || now.Sub(b.changedAt) < b.interval {
		return
	}

	b.stable = b.pending
	if b.stable {
		b.pressed = true
	} else {
		b.released = true
	}
}

// WasPressed reports whether the last Update confirmed a press (the falling
// edge of an active-low input).
func (b *Button) WasPressed() bool {
	return b.pressed
}

// WasReleased reports whether the last Update confirmed a release.
func (b *Button) WasReleased() bool {
	return b.released
}

// BeingPressed returns the debounced state.
func (b *Button) BeingPressed() bool {
	return b.stable
}

func (b *Button) read() bool {
	return b.pin.Get() == b.activeHigh
}
