// Package mute owns the mute modes of the melody, drone and trompette voices
// and the actions EX buttons can trigger on them.
package mute

import (
	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/button"
	"github.com/itohio/gogurdy/pkg/logging"
)

// Voice is a sound source whose mute flag the controller manages.
type Voice interface {
	SetMute(muted bool)
	Mute() bool
	IsPlaying() bool
	SoundOff()
	SoundOn()
	OpenNote() int
}

// Voices are the voices of the instrument.
type Voices struct {
	High  Voice
	Low   Voice
	Drone Voice
	Tromp Voice
	Buzz  Voice
}

// ScreenKind selects the layout of the play screen.
type ScreenKind string

// Status is everything shown on the status screen.
type Status struct {
	High, Low, Drone, Tromp int // open notes
	Transpose               int
	Capo                    int
	Offset                  int
	MuteHigh                bool
	MuteLow                 bool
	MuteDrone               bool
	MuteTromp               bool
}

// Display renders the play and status screens. full asks DrawPlayScreen to
// redraw the static parts of the play screen too.
type Display interface {
	DrawPlayScreen(pitch int, kind ScreenKind, full bool)
	PrintDisplay(s Status)
}

// Tuner holds transpose, capo, key offset and volume.
type Tuner interface {
	Transpose() int
	Capo() int
	KeyOffset() int

	VolumeUp()
	VolumeDown()
	CycleCapo(playing bool)
	TransposeUp(playing bool)
	TransposeDown(playing bool)
	TransposeTo(playing bool, steps int)
}

var _ button.Cycler = (*Controller)(nil)

// Controller runs the mute cycles. It must only be used from the control loop.
type Controller struct {
	v           Voices
	disp        Display
	tuner       Tuner
	screen      ScreenKind
	toggleSteps int
	log         *zap.Logger

	melody MelodyMode
	drone  DroneMode
	tromp  TrompMode
}

// Option configures a Controller.
type Option func(*Controller)

// WithScreen sets the play screen layout.
func WithScreen(kind ScreenKind) Option {
	return func(c *Controller) {
		c.screen = kind
	}
}

// WithToggleSteps sets the target of ActionTransposeToggle.
func WithToggleSteps(steps int) Option {
	return func(c *Controller) {
		c.toggleSteps = steps
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.log = logging.OrNop(l)
	}
}

// New creates a controller with every voice audible.
func New(v Voices, disp Display, tuner Tuner, opts ...Option) *Controller {
	c := &Controller{
		v:     v,
		disp:  disp,
		tuner: tuner,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, voice := range []Voice{v.High, v.Low, v.Drone, v.Tromp, v.Buzz} {
		voice.SetMute(false)
	}

	return c
}

// MelodyMode returns the current melody mode.
func (c *Controller) MelodyMode() MelodyMode { return c.melody }

// DroneMode returns the current drone/trompette mode.
func (c *Controller) DroneMode() DroneMode { return c.drone }

// TrompMode returns the current trompette mode.
func (c *Controller) TrompMode() TrompMode { return c.tromp }

// CycleMelodyMute advances Both -> HighOnly -> LowOnly -> Both.
func (c *Controller) CycleMelodyMute() {
	c.melody = c.melody.Next()
	high, low := c.melody.Muted()
	c.setMute(c.v.High, high)
	c.setMute(c.v.Low, low)

	c.log.Debug("melody mute", zap.Stringer("mode", c.melody))
	c.RefreshDisplay()
}

// CycleDroneTrompMute steps through all four drone/trompette combinations.
func (c *Controller) CycleDroneTrompMute() {
	c.applyDrone(c.drone.Next())

	c.log.Debug("drone/tromp mute", zap.Stringer("mode", c.drone))
	c.RefreshDisplay()
}

// CycleDroneMute flips the drone and leaves the trompette as it is.
func (c *Controller) CycleDroneMute() {
	drone, tromp := c.drone.Muted()
	c.applyDrone(droneModeOf(!drone, tromp))

	c.log.Debug("drone mute", zap.Stringer("mode", c.drone))
	c.RefreshDisplay()
}

// CycleTrompMute flips the trompette and buzz and leaves the drone as it is.
func (c *Controller) CycleTrompMute() {
	drone, _ := c.drone.Muted()
	c.applyDrone(droneModeOf(drone, c.tromp.Next().Muted()))

	c.log.Debug("tromp mute", zap.Stringer("mode", c.drone))
	c.RefreshDisplay()
}

// applyDrone moves to mode m and keeps the trompette mode in step with it.
// The buzz is muted exactly when the trompette is.
func (c *Controller) applyDrone(m DroneMode) {
	c.drone = m
	drone, tromp := m.Muted()
	c.tromp = trompModeOf(tromp)

	c.setMute(c.v.Drone, drone)
	c.setMute(c.v.Tromp, tromp)
	c.setMute(c.v.Buzz, tromp)
}

// setMute updates the flag of v. A sounding voice whose flag changed is
// restarted so the change is heard immediately.
func (c *Controller) setMute(v Voice, muted bool) {
	changed := v.Mute() != muted
	v.SetMute(muted)
	if changed && v.IsPlaying() {
		v.SoundOff()
		v.SoundOn()
	}
}

// Status returns what the status screen shows.
func (c *Controller) Status() Status {
	return Status{
		High:      c.v.High.OpenNote(),
		Low:       c.v.Low.OpenNote(),
		Drone:     c.v.Drone.OpenNote(),
		Tromp:     c.v.Tromp.OpenNote(),
		Transpose: c.tuner.Transpose(),
		Capo:      c.tuner.Capo(),
		Offset:    c.tuner.KeyOffset(),
		MuteHigh:  c.v.High.Mute(),
		MuteLow:   c.v.Low.Mute(),
		MuteDrone: c.v.Drone.Mute(),
		MuteTromp: c.v.Tromp.Mute(),
	}
}

// RefreshDisplay draws the play screen while the melody sounds and the
// status screen otherwise.
func (c *Controller) RefreshDisplay() {
	if c.v.High.IsPlaying() {
		pitch := c.v.High.OpenNote() + c.tuner.Transpose() + c.tuner.KeyOffset()
		c.disp.DrawPlayScreen(pitch, c.screen, false)
		return
	}
	c.disp.PrintDisplay(c.Status())
}
