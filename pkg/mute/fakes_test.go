package mute

type fakeVoice struct {
	name    string
	open    int
	muted   bool
	playing bool
	offs    int
	ons     int
}

func (v *fakeVoice) SetMute(muted bool) { v.muted = muted }
func (v *fakeVoice) Mute() bool         { return v.muted }
func (v *fakeVoice) IsPlaying() bool    { return v.playing }
func (v *fakeVoice) SoundOff()          { v.offs++ }
func (v *fakeVoice) SoundOn()           { v.ons++ }
func (v *fakeVoice) OpenNote() int      { return v.open }

func (v *fakeVoice) refreshes() int {
	return v.ons
}

type fakeDisplay struct {
	plays    []int
	kinds    []ScreenKind
	statuses []Status
}

func (d *fakeDisplay) DrawPlayScreen(pitch int, kind ScreenKind, _ bool) {
	d.plays = append(d.plays, pitch)
	d.kinds = append(d.kinds, kind)
}

func (d *fakeDisplay) PrintDisplay(s Status) {
	d.statuses = append(d.statuses, s)
}

type fakeTuner struct {
	transpose int
	capo      int
	key       int
	max       int // clamp of TransposeTo when non-zero

	calls   []string
	playing []bool
}

func (t *fakeTuner) Transpose() int { return t.transpose }
func (t *fakeTuner) Capo() int      { return t.capo }
func (t *fakeTuner) KeyOffset() int { return t.key }

func (t *fakeTuner) VolumeUp()   { t.calls = append(t.calls, "vol+") }
func (t *fakeTuner) VolumeDown() { t.calls = append(t.calls, "vol-") }

func (t *fakeTuner) CycleCapo(playing bool) {
	t.calls = append(t.calls, "capo")
	t.playing = append(t.playing, playing)
}

func (t *fakeTuner) TransposeUp(playing bool) {
	t.calls = append(t.calls, "up")
	t.playing = append(t.playing, playing)
	t.transpose++
}

func (t *fakeTuner) TransposeDown(playing bool) {
	t.calls = append(t.calls, "down")
	t.playing = append(t.playing, playing)
	t.transpose--
}

func (t *fakeTuner) TransposeTo(playing bool, steps int) {
	t.calls = append(t.calls, "to")
	t.playing = append(t.playing, playing)
	if t.max > 0 {
		steps = max(-t.max, min(steps, t.max))
	}
	t.transpose = steps
}

type rig struct {
	high, low, drone, tromp, buzz *fakeVoice
	disp                          *fakeDisplay
	tuner                         *fakeTuner
	c                             *Controller
}

func newRig(opts ...Option) *rig {
	r := &rig{
		high:  &fakeVoice{name: "high", open: 67, muted: true},
		low:   &fakeVoice{name: "low", open: 55},
		drone: &fakeVoice{name: "drone", open: 48},
		tromp: &fakeVoice{name: "tromp", open: 60},
		buzz:  &fakeVoice{name: "buzz", open: 60, muted: true},
		disp:  &fakeDisplay{},
		tuner: &fakeTuner{},
	}
	r.c = New(Voices{High: r.high, Low: r.low, Drone: r.drone, Tromp: r.tromp, Buzz: r.buzz}, r.disp, r.tuner, opts...)
	return r
}

func (r *rig) play() {
	for _, v := range []*fakeVoice{r.high, r.low, r.drone, r.tromp, r.buzz} {
		v.playing = true
	}
}
