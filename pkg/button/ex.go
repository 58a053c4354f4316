package button

import (
	"time"

	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/logging"
	"github.com/itohio/gogurdy/pkg/store"
)

// Func selects what an EX button does when pressed.
type Func int

const (
	// FuncPauseMenu does nothing here; the caller opens the pause menu.
	FuncPauseMenu Func = iota + 1
	FuncCycleMelodyMute
	FuncCycleDroneTrompMute
	FuncCycleDroneMute
	FuncCycleTrompMute
)

// Valid reports whether f is one of the selectable functions.
func (f Func) Valid() bool {
	return f >= FuncPauseMenu && f <= FuncCycleTrompMute
}

func (f Func) String() string {
	switch f {
	case FuncPauseMenu:
		return "Open Pause Menu"
	case FuncCycleMelodyMute:
		return "Cycle Mel. Mute"
	case FuncCycleDroneTrompMute:
		return "Cycle Dn/Tr. Mute"
	case FuncCycleDroneMute:
		return "Toggle Drone Mute"
	case FuncCycleTrompMute:
		return "Toggle Tromp Mute"
	}
	return "Unknown"
}

// Cycler runs the mute cycles an EX button can be bound to.
type Cycler interface {
	CycleMelodyMute()
	CycleDroneTrompMute()
	CycleDroneMute()
	CycleTrompMute()
}

var _ Pressable = (*EX)(nil)

// EX is a button whose action is chosen by the player and persisted.
type EX struct {
	*Button
	fn Func
}

// NewEX creates an EX button bound to fn.
func NewEX(pin Pin, fn Func, interval time.Duration, opts ...Option) *EX {
	return &EX{
		Button: New(pin, interval, opts...),
		fn:     fn,
	}
}

// Func returns the bound function.
func (e *EX) Func() Func {
	return e.fn
}

// SetFunc binds fn. Callers only pass valid codes; the choice menu guarantees it.
func (e *EX) SetFunc(fn Func) {
	e.fn = fn
}

// DoFunc runs the bound function on c. FuncPauseMenu and unknown codes do
// nothing.
func (e *EX) DoFunc(c Cycler) {
	switch e.fn {
	case FuncCycleMelodyMute:
		c.CycleMelodyMute()
	case FuncCycleDroneTrompMute:
		c.CycleDroneTrompMute()
	case FuncCycleDroneMute:
		c.CycleDroneMute()
	case FuncCycleTrompMute:
		c.CycleTrompMute()
	}
}

// ChoiceScreen shows the function menu for this button and blocks until a
// choice or cancel key is pressed. A choice is persisted to slot in st.
func (e *EX) ChoiceScreen(slot store.Slot, st store.Store, keys ChoiceKeys, screen Screen, delay time.Duration, log *zap.Logger) MenuState {
	return NewChoiceMenu(e, slot, st, keys, screen, log).Run(delay)
}

// LoadFunc reads the function persisted in slot, falling back to def when the
// slot is blank, unreadable or holds an unknown code.
func LoadFunc(st store.Store, slot store.Slot, def Func, log *zap.Logger) Func {
	b, err := store.ReadSlot(st, slot)
	if err != nil {
		logging.OrNop(log).Warn("failed to read ex function", zap.Stringer("slot", slot), zap.Error(err))
		return def
	}

	fn := Func(b)
	if !fn.Valid() {
		return def
	}
	return fn
}
