package mute

// Action is anything a button can trigger on the controller.
type Action int

const (
	ActionNone Action = iota
	ActionCycleMelodyMute
	ActionCycleDroneTrompMute
	ActionCycleDroneMute
	ActionCycleTrompMute
	ActionVolumeUp
	ActionVolumeDown
	ActionCycleCapo
	ActionTransposeUp
	ActionTransposeDown
	ActionTransposeToggle
)

var actionNames = map[Action]string{
	ActionNone:                "none",
	ActionCycleMelodyMute:     "cycle melody mute",
	ActionCycleDroneTrompMute: "cycle drone/tromp mute",
	ActionCycleDroneMute:      "toggle drone mute",
	ActionCycleTrompMute:      "toggle tromp mute",
	ActionVolumeUp:            "volume up",
	ActionVolumeDown:          "volume down",
	ActionCycleCapo:           "cycle capo",
	ActionTransposeUp:         "transpose up",
	ActionTransposeDown:       "transpose down",
	ActionTransposeToggle:     "transpose toggle",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Do runs action a. Unknown actions do nothing.
func (c *Controller) Do(a Action) {
	switch a {
	case ActionCycleMelodyMute:
		c.CycleMelodyMute()
	case ActionCycleDroneTrompMute:
		c.CycleDroneTrompMute()
	case ActionCycleDroneMute:
		c.CycleDroneMute()
	case ActionCycleTrompMute:
		c.CycleTrompMute()
	case ActionVolumeUp:
		c.VolumeUp()
	case ActionVolumeDown:
		c.VolumeDown()
	case ActionCycleCapo:
		c.CycleCapo()
	case ActionTransposeUp:
		c.TransposeUp()
	case ActionTransposeDown:
		c.TransposeDown()
	case ActionTransposeToggle:
		c.TransposeToggle(c.toggleSteps)
	}
}

// VolumeUp raises the volume of all voices one step.
func (c *Controller) VolumeUp() {
	c.tuner.VolumeUp()
}

// VolumeDown lowers the volume of all voices one step.
func (c *Controller) VolumeDown() {
	c.tuner.VolumeDown()
}

// CycleCapo moves the capo to its next position.
func (c *Controller) CycleCapo() {
	c.tuner.CycleCapo(c.playing())
}

// TransposeUp transposes up one semitone.
func (c *Controller) TransposeUp() {
	c.tuner.TransposeUp(c.playing())
}

// TransposeDown transposes down one semitone.
func (c *Controller) TransposeDown() {
	c.tuner.TransposeDown(c.playing())
}

// TransposeToggle transposes to steps, or back to zero if already there.
// A target beyond the tuner's range counts as reached once the transpose
// stops moving towards it.
func (c *Controller) TransposeToggle(steps int) {
	playing := c.playing()
	before := c.tuner.Transpose()
	if before != steps {
		c.tuner.TransposeTo(playing, steps)
		if c.tuner.Transpose() != before {
			return
		}
	}
	c.tuner.TransposeTo(playing, 0)
}

func (c *Controller) playing() bool {
	return c.v.High.IsPlaying()
}
