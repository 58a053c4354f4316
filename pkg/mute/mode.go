package mute

// MelodyMode says which melody strings are audible. There is no mode with
// both muted.
type MelodyMode int

const (
	MelodyBoth     MelodyMode = iota // high on, low on
	MelodyHighOnly                   // high on, low off
	MelodyLowOnly                    // high off, low on
)

// Next returns the following mode in the cycle Both -> HighOnly -> LowOnly -> Both.
func (m MelodyMode) Next() MelodyMode {
	return (m + 1) % 3
}

// Muted returns the mute flags of the high and low strings in this mode.
func (m MelodyMode) Muted() (high, low bool) {
	switch m {
	case MelodyHighOnly:
		return false, true
	case MelodyLowOnly:
		return true, false
	}
	return false, false
}

func (m MelodyMode) String() string {
	switch m {
	case MelodyBoth:
		return "both"
	case MelodyHighOnly:
		return "high"
	case MelodyLowOnly:
		return "low"
	}
	return "unknown"
}

// DroneMode encodes the mute flags of the drone and trompette strings.
type DroneMode int

const (
	DroneBothOn  DroneMode = iota // drone on, trompette on
	DroneBothOff                  // drone off, trompette off
	DroneOnly                     // drone on, trompette off
	TrompOnly                     // drone off, trompette on
)

// Next returns the following mode in the cycle BothOn -> BothOff -> DroneOnly -> TrompOnly -> BothOn.
func (m DroneMode) Next() DroneMode {
	return (m + 1) % 4
}

// Muted returns the mute flags of the drone and trompette in this mode.
func (m DroneMode) Muted() (drone, tromp bool) {
	switch m {
	case DroneBothOff:
		return true, true
	case DroneOnly:
		return false, true
	case TrompOnly:
		return true, false
	}
	return false, false
}

func (m DroneMode) String() string {
	switch m {
	case DroneBothOn:
		return "both on"
	case DroneBothOff:
		return "both off"
	case DroneOnly:
		return "drone only"
	case TrompOnly:
		return "tromp only"
	}
	return "unknown"
}

// droneModeOf is the inverse of DroneMode.Muted.
func droneModeOf(drone, tromp bool) DroneMode {
	switch {
	case drone && tromp:
		return DroneBothOff
	case tromp:
		return DroneOnly
	case drone:
		return TrompOnly
	}
	return DroneBothOn
}

// TrompMode says whether the trompette (and with it the buzz) is audible.
type TrompMode int

const (
	TrompOn TrompMode = iota
	TrompOff
)

// Next flips the mode.
func (m TrompMode) Next() TrompMode {
	return (m + 1) % 2
}

// Muted reports whether the trompette is muted in this mode.
func (m TrompMode) Muted() bool {
	return m == TrompOff
}

func trompModeOf(muted bool) TrompMode {
	if muted {
		return TrompOff
	}
	return TrompOn
}
