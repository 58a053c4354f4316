// Package gurdy wires the keybox, EX buttons, voices and display into a
// playable instrument driven by a cooperative control loop.
package gurdy

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/button"
	"github.com/itohio/gogurdy/pkg/config"
	"github.com/itohio/gogurdy/pkg/display"
	"github.com/itohio/gogurdy/pkg/logging"
	"github.com/itohio/gogurdy/pkg/mute"
	"github.com/itohio/gogurdy/pkg/store"
	"github.com/itohio/gogurdy/pkg/tune"
	"github.com/itohio/gogurdy/pkg/voice"
)

// PauseText is the content of the pause screen.
const PauseText = " ------ Paused ------\n" +
	" 1) EX1 Function     \n" +
	" 2) EX2 Function     \n" +
	" 3) EX3 Function     \n" +
	"                     \n" +
	" X) Resume           \n"

// Pins hands out the physical pins by number.
type Pins interface {
	Pin(n int) button.Pin
}

// Option configures an Instrument.
type Option func(*options)

type options struct {
	log     *zap.Logger
	buttons []button.Option
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = logging.OrNop(l)
	}
}

// WithClock sets the clock used for debouncing.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.buttons = append(o.buttons, button.WithClock(now))
	}
}

// Instrument is the whole hurdy-gurdy. It is not safe for concurrent use;
// Step and Run must be called from one goroutine.
type Instrument struct {
	cfg  *config.Config
	log  *zap.Logger
	st   store.Store
	disp *display.Text

	keys  []*button.Button // keys[i] plays key offset i+1
	ex    [3]*button.EX
	pause *button.Toggle
	crank *button.Toggle

	strings []*voice.String
	voices  mute.Voices
	tuner   *tune.State
	ctrl    *mute.Controller

	paused bool
	menu   *button.ChoiceMenu
}

// New builds an instrument reading pins, persisting EX choices to st and
// playing through send. The EX functions are loaded from st.
func New(cfg *config.Config, pins Pins, st store.Store, send voice.Sender, disp *display.Text, opts ...Option) *Instrument {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Instrument{
		cfg:  cfg,
		log:  o.log,
		st:   st,
		disp: disp,
	}

	kb := cfg.Keybox
	for _, p := range kb.Pins[1:] {
		g.keys = append(g.keys, button.New(pins.Pin(p), kb.Debounce, o.buttons...))
	}

	for i, slot := range []store.Slot{store.SlotEX1, store.SlotEX2, store.SlotEX3} {
		fn := button.LoadFunc(st, slot, button.Func(cfg.EX.Defaults[i]), g.log)
		g.ex[i] = button.NewEX(pins.Pin(kb.EXPins[i]), fn, kb.Debounce, o.buttons...)
		g.log.Info("ex function", zap.Stringer("slot", slot), zap.Stringer("func", fn))
	}
	g.pause = button.NewToggle(pins.Pin(kb.PausePin), kb.Debounce, o.buttons...)
	g.crank = button.NewToggle(pins.Pin(kb.CrankPin), kb.Debounce, o.buttons...)

	g.tuner = tune.New(cfg.Tuning, g.log)
	m := cfg.MIDI
	newString := func(name string, vc config.VoiceConfig, offset func() int) *voice.String {
		s := voice.New(name, send, vc.Channel, vc.OpenNote, m.Velocity, offset, g.log)
		g.strings = append(g.strings, s)
		return s
	}
	g.voices = mute.Voices{
		High:  newString("high", m.High, g.tuner.MelodyOffset),
		Low:   newString("low", m.Low, g.tuner.MelodyOffset),
		Drone: newString("drone", m.Drone, g.tuner.DroneOffset),
		Tromp: newString("tromp", m.Tromp, g.tuner.DroneOffset),
		Buzz:  newString("buzz", m.Buzz, g.tuner.DroneOffset),
	}
	tv := make([]tune.Voice, 0, len(g.strings))
	for _, s := range g.strings {
		tv = append(tv, s)
	}
	g.tuner.SetVoices(tv...)
	g.tuner.ApplyVolume()

	g.ctrl = mute.New(g.voices, disp, g.tuner,
		mute.WithScreen(mute.ScreenKind(cfg.Tuning.PlayScreen)),
		mute.WithToggleSteps(cfg.Tuning.ToggleSteps),
		mute.WithLogger(g.log),
	)
	g.ctrl.RefreshDisplay()

	return g
}

// Controller returns the mute controller.
func (g *Instrument) Controller() *mute.Controller { return g.ctrl }

// Tuner returns the transpose and volume state.
func (g *Instrument) Tuner() *tune.State { return g.tuner }

// Voices returns the strings in high, low, drone, trompette, buzz order.
func (g *Instrument) Voices() []*voice.String { return g.strings }

// EXFunc returns the function bound to EX button i (0..2).
func (g *Instrument) EXFunc(i int) button.Func { return g.ex[i].Func() }

// Paused reports whether the pause screen is shown.
func (g *Instrument) Paused() bool { return g.paused }

// Menu returns the active choice menu, or nil.
func (g *Instrument) Menu() *button.ChoiceMenu { return g.menu }

// Playing reports whether the crank is turning.
func (g *Instrument) Playing() bool { return g.voices.High.IsPlaying() }

// Run steps the instrument every loop period until ctx is done. All voices
// are stopped on return.
func (g *Instrument) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.cfg.Menu.LoopPeriod)
	defer ticker.Stop()
	defer g.stop()

	g.log.Info("instrument running", zap.Duration("period", g.cfg.Menu.LoopPeriod))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			g.Step()
		}
	}
}

// Step runs one iteration of the control loop.
func (g *Instrument) Step() {
	for _, e := range g.ex {
		e.Update()
	}
	g.pause.Update()
	g.crank.Update()

	// The menu owns the keys while it runs.
	if g.menu != nil {
		st := g.menu.Poll()
		if !st.Done() {
			return
		}
		g.log.Debug("choice menu closed", zap.Stringer("slot", g.menu.Slot()), zap.Stringer("state", st))
		g.menu = nil
		g.disp.PrintScreen(PauseText)
		return
	}

	for _, k := range g.keys {
		k.Update()
	}

	if g.paused {
		g.stepPaused()
		return
	}

	if g.pause.WasPressed() && g.pause.ToggleOn() {
		g.enterPause()
		return
	}

	if g.crank.WasPressed() {
		if g.crank.ToggleOn() {
			g.start()
		} else {
			g.stop()
		}
		g.ctrl.RefreshDisplay()
	}

	if g.key(g.cfg.Keybox.X).BeingPressed() {
		if a := g.chord(); a != mute.ActionNone {
			g.log.Debug("action", zap.Stringer("action", a))
			g.ctrl.Do(a)
			g.ctrl.RefreshDisplay()
		}
	}

	g.updateKeyOffset()

	for _, e := range g.ex {
		if !e.WasPressed() {
			continue
		}
		if e.Func() == button.FuncPauseMenu {
			g.pause.SetToggle(true)
			g.enterPause()
			return
		}
		e.DoFunc(g.ctrl)
	}
}

// chord returns the action of the key pressed together with X.
func (g *Instrument) chord() mute.Action {
	kb := g.cfg.Keybox
	switch {
	case g.key(kb.TposeUp).WasPressed():
		return mute.ActionTransposeUp
	case g.key(kb.TposeDown).WasPressed():
		return mute.ActionTransposeDown
	case g.key(kb.A).WasPressed():
		return mute.ActionCycleCapo
	case g.key(kb.B).WasPressed():
		return mute.ActionTransposeToggle
	case g.key(kb.Button1).WasPressed():
		return mute.ActionVolumeDown
	case g.key(kb.Button2).WasPressed():
		return mute.ActionVolumeUp
	}
	return mute.ActionNone
}

// updateKeyOffset follows the highest held key and restarts the melody when
// it moves.
func (g *Instrument) updateKeyOffset() {
	offset := 0
	for i := len(g.keys) - 1; i >= 0; i-- {
		if g.keys[i].BeingPressed() {
			offset = i + 1
			break
		}
	}
	if offset == g.tuner.KeyOffset() {
		return
	}

	g.tuner.SetKeyOffset(offset)
	if !g.Playing() {
		return
	}
	for _, v := range []mute.Voice{g.voices.High, g.voices.Low} {
		v.SoundOff()
		v.SoundOn()
	}
	g.ctrl.RefreshDisplay()
}

func (g *Instrument) stepPaused() {
	kb := g.cfg.Keybox
	for i, k := range []int{kb.Button1, kb.Button2, kb.Button3} {
		if g.key(k).WasPressed() {
			g.openMenu(i)
			return
		}
	}

	if g.key(kb.X).WasPressed() || (g.pause.WasPressed() && !g.pause.ToggleOn()) {
		g.leavePause()
	}
}

func (g *Instrument) enterPause() {
	g.stop()
	g.crank.SetToggle(false)
	g.paused = true
	g.disp.PrintScreen(PauseText)
	g.log.Debug("paused")
}

func (g *Instrument) leavePause() {
	g.paused = false
	g.pause.SetToggle(false)
	g.crank.SetToggle(false)
	g.ctrl.RefreshDisplay()
	g.log.Debug("resumed")
}

func (g *Instrument) openMenu(i int) {
	kb := g.cfg.Keybox
	keys := button.ChoiceKeys{Back: g.key(kb.X)}
	for j, k := range []int{kb.Button1, kb.Button2, kb.Button3, kb.Button4, kb.Button5, kb.Button6} {
		keys.Choices[j] = g.key(k)
	}

	slot := store.Slot(i + 1)
	g.menu = button.NewChoiceMenu(g.ex[i], slot, g.st, keys, g.disp, g.log)
	g.menu.Start()
	g.disp.PrintScreen(button.ChoiceText)
}

func (g *Instrument) start() {
	for _, s := range g.strings {
		if !s.IsPlaying() {
			s.SoundOn()
		}
	}
}

func (g *Instrument) stop() {
	for _, s := range g.strings {
		if s.IsPlaying() {
			s.SoundOff()
		}
	}
}

// key returns the button at role index i. Out-of-range indexes yield a key
// that is never pressed.
func (g *Instrument) key(i int) *button.Button {
	if i < 0 || i >= len(g.keys) {
		return idle
	}
	return g.keys[i]
}

var idle = button.New(button.PinFunc(func() bool { return true }), 0)
