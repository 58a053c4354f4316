package button

import (
	"time"

	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/logging"
	"github.com/itohio/gogurdy/pkg/store"
)

// MenuState is the state of a ChoiceMenu.
type MenuState int

const (
	MenuIdle MenuState = iota
	MenuAwaitingChoice
	MenuCommitted
	MenuCancelled
)

func (s MenuState) String() string {
	switch s {
	case MenuIdle:
		return "idle"
	case MenuAwaitingChoice:
		return "awaiting"
	case MenuCommitted:
		return "committed"
	case MenuCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Done reports whether s is terminal.
func (s MenuState) Done() bool {
	return s == MenuCommitted || s == MenuCancelled
}

// Screen prints a full-screen block of text.
type Screen interface {
	PrintScreen(text string)
}

// ChoiceKeys are the keys read by the choice menu. Choices[0..4] select
// functions 1..5; Choices[5] and Back leave without a change.
type ChoiceKeys struct {
	Choices [6]Pressable
	Back    Pressable
}

// ChoiceText is the content of the EX function menu.
const ChoiceText = " --EX Button Func.-- \n" +
	" Choose EX  Function:\n" +
	" 1) Open Pause Menu  \n" +
	" 2) Cycle Mel. Mute  \n" +
	" 3) Cycle Dn/Tr. Mute\n" +
	" 4) Toggle Drone Mute\n" +
	" 5) Toggle Tromp Mute\n" +
	" X or 6) Go Back     \n"

// ChoiceMenu lets the player pick the function of one EX button.
//
// It is polled: each Poll redraws the menu, updates the menu keys and checks
// them once. The menu has no timeout; only a key press ends it.
type ChoiceMenu struct {
	ex     *EX
	slot   store.Slot
	st     store.Store
	keys   ChoiceKeys
	screen Screen
	log    *zap.Logger

	state MenuState
}

// NewChoiceMenu creates an idle menu for ex persisting to slot.
func NewChoiceMenu(ex *EX, slot store.Slot, st store.Store, keys ChoiceKeys, screen Screen, log *zap.Logger) *ChoiceMenu {
	log = logging.OrNop(log)
	return &ChoiceMenu{
		ex:     ex,
		slot:   slot,
		st:     st,
		keys:   keys,
		screen: screen,
		log:    log,
	}
}

// Slot returns the slot this menu persists to.
func (m *ChoiceMenu) Slot() store.Slot {
	return m.slot
}

// State returns the current state.
func (m *ChoiceMenu) State() MenuState {
	return m.state
}

// Start (re)enters the awaiting state.
func (m *ChoiceMenu) Start() {
	m.state = MenuAwaitingChoice
}

// Poll runs one iteration of the menu and returns the resulting state.
// Polling an idle or finished menu does nothing.
func (m *ChoiceMenu) Poll() MenuState {
	if m.state != MenuAwaitingChoice {
		return m.state
	}

	m.screen.PrintScreen(ChoiceText)

	for _, k := range m.keys.Choices {
		k.Update()
	}
	m.keys.Back.Update()

	for i, k := range m.keys.Choices[:5] {
		if k.WasPressed() {
			m.commit(Func(i + 1))
			return m.state
		}
	}

	if m.keys.Choices[5].WasPressed() || m.keys.Back.WasPressed() {
		m.state = MenuCancelled
	}
	return m.state
}

// Run starts the menu and polls it every delay until it finishes.
func (m *ChoiceMenu) Run(delay time.Duration) MenuState {
	m.Start()
	for {
		if st := m.Poll(); st.Done() {
			return st
		}
		time.Sleep(delay)
	}
}

func (m *ChoiceMenu) commit(fn Func) {
	m.ex.SetFunc(fn)

	// Best effort: the in-memory choice stands even if the write fails.
	if err := store.WriteSlot(m.st, m.slot, byte(fn)); err != nil {
		m.log.Warn("failed to persist ex function",
			zap.Stringer("slot", m.slot),
			zap.Stringer("func", fn),
			zap.Error(err))
	} else {
		m.log.Info("ex function changed", zap.Stringer("slot", m.slot), zap.Stringer("func", fn))
	}

	m.state = MenuCommitted
}
