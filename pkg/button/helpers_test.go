package button

import (
	"errors"
	"time"

	"github.com/itohio/gogurdy/pkg/store"
)

// fakePin is an idle-high input; pressing pulls it low.
type fakePin struct {
	level bool
}

func newFakePin() *fakePin { return &fakePin{level: true} }

func (p *fakePin) Get() bool { return p.level }
func (p *fakePin) press()    { p.level = false }
func (p *fakePin) release()  { p.level = true }

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeKey reports a press on its pressAt-th update (1-based, 0 = never).
type fakeKey struct {
	pressAt int
	updates int
	pressed bool
}

func (k *fakeKey) Update() {
	k.updates++
	k.pressed = k.pressAt > 0 && k.updates == k.pressAt
}

func (k *fakeKey) WasPressed() bool { return k.pressed }

func newChoiceKeys() (ChoiceKeys, [6]*fakeKey, *fakeKey) {
	var keys ChoiceKeys
	var choices [6]*fakeKey
	for i := range choices {
		choices[i] = &fakeKey{}
		keys.Choices[i] = choices[i]
	}
	back := &fakeKey{}
	keys.Back = back
	return keys, choices, back
}

type recordingScreen struct {
	texts []string
}

func (s *recordingScreen) PrintScreen(text string) {
	s.texts = append(s.texts, text)
}

type recordingCycler struct {
	calls []string
}

func (c *recordingCycler) CycleMelodyMute()     { c.calls = append(c.calls, "melody") }
func (c *recordingCycler) CycleDroneTrompMute() { c.calls = append(c.calls, "drone+tromp") }
func (c *recordingCycler) CycleDroneMute()      { c.calls = append(c.calls, "drone") }
func (c *recordingCycler) CycleTrompMute()      { c.calls = append(c.calls, "tromp") }

// brokenStore fails every access.
type brokenStore struct{}

var errBroken = errors.New("eeprom unavailable")

func (brokenStore) Get(int) (byte, error) { return 0, errBroken }
func (brokenStore) Put(int, byte) error   { return errBroken }

var _ store.Store = brokenStore{}
