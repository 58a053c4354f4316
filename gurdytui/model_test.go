package main

import (
	"errors"
	"testing"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gogurdy/pkg/config"
)

type recordingTapper struct {
	taps     []int
	presses  []int
	releases []int
}

func (r *recordingTapper) Tap(pin int)     { r.taps = append(r.taps, pin) }
func (r *recordingTapper) Press(pin int)   { r.presses = append(r.presses, pin) }
func (r *recordingTapper) Release(pin int) { r.releases = append(r.releases, pin) }

func newTestModel() (model, *recordingTapper, chan string) {
	keys := &recordingTapper{}
	frames := make(chan string, 1)
	return newModel(config.Default(), keys, frames, "start", nil), keys, frames
}

func press(t *testing.T, m model, msg tea.KeyMsg) model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok)
	return nm
}

func TestModel_TapsKeys(t *testing.T) {
	m, keys, _ := newTestModel()
	cfg := config.Default()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, []int{cfg.Keybox.Pins[1], cfg.Keybox.EXPins[1], cfg.Keybox.CrankPin, cfg.Keybox.PausePin}, keys.taps)
}

func TestModel_HoldX(t *testing.T) {
	m, keys, _ := newTestModel()
	xPin := config.Default().Keybox.Pins[1]

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'`'}})
	assert.True(t, m.holdX)
	assert.Equal(t, []int{xPin}, keys.presses)
	assert.Contains(t, m.View(), "X held")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'`'}})
	assert.False(t, m.holdX)
	assert.Equal(t, []int{xPin}, keys.releases)
}

func TestModel_QuitReleasesX(t *testing.T) {
	m, keys, _ := newTestModel()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'`'}})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.NotNil(t, cmd)
	assert.Len(t, keys.releases, 1)
	assert.Empty(t, next.View())
}

func TestModel_Frame(t *testing.T) {
	m, _, frames := newTestModel()
	assert.Contains(t, m.View(), "start")

	frames <- "Hi: G4"
	msg := m.Init()()
	m = receive(t, m, msg)
	assert.Contains(t, m.View(), "Hi: G4")
}

func receive(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "keeps listening for frames")
	nm, ok := next.(model)
	require.True(t, ok)
	return nm
}

func TestPublishFrame_KeepsLatest(t *testing.T) {
	frames := make(chan string, 1)
	publishFrame(frames, "a")
	publishFrame(frames, "b")

	assert.Equal(t, "b", <-frames)
}

func TestModel_ShowsIssue(t *testing.T) {
	warning := fault.Wrap(errors.New("no ports"), fmsg.WithDesc("midi output unavailable", "No MIDI output port found"))
	m := newModel(config.Default(), &recordingTapper{}, make(chan string), "", warning)

	assert.Contains(t, m.View(), "No MIDI output port found")
	assert.NotContains(t, m.View(), "no ports")
}
