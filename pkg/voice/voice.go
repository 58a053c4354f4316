// Package voice plays the instrument's strings as MIDI notes.
package voice

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/logging"
	"github.com/itohio/gogurdy/pkg/mute"
	"github.com/itohio/gogurdy/pkg/tune"
)

// Sender sends one MIDI message.
type Sender func(msg midi.Message) error

// ccVolume is the MIDI channel volume controller.
const ccVolume = 7

var (
	_ mute.Voice = (*String)(nil)
	_ tune.Voice = (*String)(nil)
)

// String is one virtual string on its own MIDI channel.
//
// A muted string still tracks whether it is playing, so unmuting it and
// restarting it makes it heard straight away.
type String struct {
	name     string
	send     Sender
	channel  uint8
	open     int
	velocity uint8
	offset   func() int
	log      *zap.Logger

	muted   bool
	playing bool
	note    uint8
	sounded bool // a NoteOn for note is outstanding
}

// New creates a string. offset supplies the current pitch offset at SoundOn;
// nil means no offset.
func New(name string, send Sender, channel uint8, open int, velocity uint8, offset func() int, log *zap.Logger) *String {
	if offset == nil {
		offset = func() int { return 0 }
	}
	log = logging.OrNop(log)
	return &String{
		name:     name,
		send:     send,
		channel:  channel,
		open:     open,
		velocity: velocity,
		offset:   offset,
		log:      log,
	}
}

// Name returns the string name.
func (s *String) Name() string { return s.name }

// SetMute sets the mute flag. It takes effect on the next SoundOn.
func (s *String) SetMute(muted bool) { s.muted = muted }

// Mute returns the mute flag.
func (s *String) Mute() bool { return s.muted }

// IsPlaying reports whether the string is playing, muted or not.
func (s *String) IsPlaying() bool { return s.playing }

// OpenNote returns the open string note.
func (s *String) OpenNote() int { return s.open }

// Note returns the note last started.
func (s *String) Note() int { return int(s.note) }

// SoundOn starts the string at open note + offset. Nothing is sent while muted.
func (s *String) SoundOn() {
	s.note = clampNote(s.open + s.offset())
	s.playing = true
	if s.muted {
		return
	}
	s.sendMsg(midi.NoteOn(s.channel, s.note, s.velocity))
	s.sounded = true
}

// SoundOff stops the string, releasing whatever note was sent.
func (s *String) SoundOff() {
	if s.sounded {
		s.sendMsg(midi.NoteOff(s.channel, s.note))
		s.sounded = false
	}
	s.playing = false
}

// SetVolume sets the channel volume.
func (s *String) SetVolume(v uint8) {
	s.sendMsg(midi.ControlChange(s.channel, ccVolume, v))
}

func (s *String) sendMsg(msg midi.Message) {
	if s.send == nil {
		return
	}
	if err := s.send(msg); err != nil {
		s.log.Warn("failed to send midi message",
			zap.String("string", s.name),
			zap.Stringer("msg", msg),
			zap.Error(err))
	}
}

func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}

// OpenOut finds the first output port whose name contains name (case
// insensitive; empty matches any port) and returns a sender for it.
// A MIDI driver must be registered by the caller.
func OpenOut(name string) (Sender, drivers.Out, error) {
	want := strings.ToLower(name)
	for _, out := range midi.GetOutPorts() {
		if want != "" && !strings.Contains(strings.ToLower(out.String()), want) {
			continue
		}
		send, err := midi.SendTo(out)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open midi port %s: %w", out.String(), err)
		}
		return send, out, nil
	}
	return nil, nil, fmt.Errorf("no midi output port matching %q", name)
}
