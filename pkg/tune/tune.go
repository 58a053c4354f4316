// Package tune keeps the transpose, capo, key offset and volume of the
// instrument and retunes sounding voices when they change.
package tune

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/config"
	"github.com/itohio/gogurdy/pkg/logging"
	"github.com/itohio/gogurdy/pkg/mute"
)

// MaxVolume is the MIDI channel volume ceiling.
const MaxVolume = 127

// Voice is a voice the tuner can restart and set the volume of.
type Voice interface {
	IsPlaying() bool
	SoundOff()
	SoundOn()
	SetVolume(v uint8)
}

var _ mute.Tuner = (*State)(nil)

// State implements mute.Tuner.
//
// Melody voices sound at open note + transpose + key offset; drone, trompette
// and buzz at open note + transpose + capo.
type State struct {
	cfg    config.TuningConfig
	voices []Voice
	log    *zap.Logger

	transpose int
	capoIdx   int
	key       int
	volume    int
}

// New creates a tuner at zero transpose and capo. voices are retuned on every
// change.
func New(cfg config.TuningConfig, log *zap.Logger, voices ...Voice) *State {
	log = logging.OrNop(log)
	if len(cfg.CapoSteps) == 0 {
		cfg.CapoSteps = []int{0}
	}
	return &State{
		cfg:    cfg,
		voices: voices,
		log:    log,
		volume: clamp(cfg.Volume, 0, MaxVolume),
	}
}

// SetVoices replaces the voices retuned on changes.
func (s *State) SetVoices(voices ...Voice) {
	s.voices = voices
}

// Transpose returns the transpose in semitones.
func (s *State) Transpose() int { return s.transpose }

// Capo returns the capo offset in semitones.
func (s *State) Capo() int { return s.cfg.CapoSteps[s.capoIdx] }

// KeyOffset returns the offset of the pressed keybox key.
func (s *State) KeyOffset() int { return s.key }

// Volume returns the channel volume (0..127).
func (s *State) Volume() int { return s.volume }

// VolumePercent returns the volume as a rounded percentage.
func (s *State) VolumePercent() int {
	return int(math32.Round(float32(s.volume) * 100 / MaxVolume))
}

// MelodyOffset is the pitch offset of the melody strings.
func (s *State) MelodyOffset() int { return s.transpose + s.key }

// DroneOffset is the pitch offset of the drone, trompette and buzz.
func (s *State) DroneOffset() int { return s.transpose + s.Capo() }

// SetKeyOffset sets the key offset. It does not retune; the caller restarts
// the melody voices.
func (s *State) SetKeyOffset(key int) {
	s.key = key
}

// VolumeUp raises the volume by one step, up to MaxVolume.
func (s *State) VolumeUp() {
	s.setVolume(s.volume + s.cfg.VolumeStep)
}

// VolumeDown lowers the volume by one step, down to zero.
func (s *State) VolumeDown() {
	s.setVolume(s.volume - s.cfg.VolumeStep)
}

// ApplyVolume sends the current volume to every voice.
func (s *State) ApplyVolume() {
	for _, v := range s.voices {
		v.SetVolume(uint8(s.volume))
	}
}

func (s *State) setVolume(v int) {
	s.volume = clamp(v, 0, MaxVolume)
	s.ApplyVolume()
	s.log.Debug("volume", zap.Int("volume", s.volume))
}

// CycleCapo moves the capo to the next configured position.
func (s *State) CycleCapo(playing bool) {
	s.retune(playing, func() {
		s.capoIdx = (s.capoIdx + 1) % len(s.cfg.CapoSteps)
	})
	s.log.Debug("capo", zap.Int("capo", s.Capo()))
}

// TransposeUp transposes up one semitone, up to the configured maximum.
func (s *State) TransposeUp(playing bool) {
	s.TransposeTo(playing, s.transpose+1)
}

// TransposeDown transposes down one semitone, down to minus the maximum.
func (s *State) TransposeDown(playing bool) {
	s.TransposeTo(playing, s.transpose-1)
}

// TransposeTo sets the transpose, clamped to ±MaxTranspose.
func (s *State) TransposeTo(playing bool, steps int) {
	steps = clamp(steps, -s.cfg.MaxTranspose, s.cfg.MaxTranspose)
	if steps == s.transpose {
		return
	}
	s.retune(playing, func() {
		s.transpose = steps
	})
	s.log.Debug("transpose", zap.Int("transpose", s.transpose))
}

// retune applies change between stopping and restarting the sounding voices.
func (s *State) retune(playing bool, change func()) {
	var sounding []Voice
	if playing {
		for _, v := range s.voices {
			if v.IsPlaying() {
				v.SoundOff()
				sounding = append(sounding, v)
			}
		}
	}

	change()

	for _, v := range sounding {
		v.SoundOn()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
