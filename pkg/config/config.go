package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the instrument configuration.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	MIDI   MIDIConfig   `yaml:"midi"`
	Keybox KeyboxConfig `yaml:"keybox"`
	EX     EXConfig     `yaml:"ex"`
	Tuning TuningConfig `yaml:"tuning"`
	Menu   MenuConfig   `yaml:"menu"`
	Log    LogConfig    `yaml:"log"`
	Mock   MockConfig   `yaml:"mock"`
}

// SerialConfig contains the keybox scanner link configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// VoiceConfig describes one MIDI voice.
type VoiceConfig struct {
	Channel  uint8 `yaml:"channel"`   // 0-based MIDI channel
	OpenNote int   `yaml:"open_note"` // MIDI note of the open string
}

// MIDIConfig contains MIDI output configuration.
type MIDIConfig struct {
	OutPort  string      `yaml:"out_port"` // Substring of the output port name
	Velocity uint8       `yaml:"velocity"`
	High     VoiceConfig `yaml:"high"`
	Low      VoiceConfig `yaml:"low"`
	Drone    VoiceConfig `yaml:"drone"`
	Tromp    VoiceConfig `yaml:"tromp"`
	Buzz     VoiceConfig `yaml:"buzz"`
}

// KeyboxConfig maps physical pins to keys and key roles.
//
// Pins is indexed by MIDI note offset; index 0 is never a key (no key plays
// the open string) and holds -1. Role indexes (X, A, ...) are zero-based key
// indexes, i.e. the key at Pins[i+1].
type KeyboxConfig struct {
	Pins     []int         `yaml:"pins"`
	Debounce time.Duration `yaml:"debounce"`

	X         int `yaml:"x"`
	A         int `yaml:"a"`
	B         int `yaml:"b"`
	Button1   int `yaml:"button_1"`
	Button2   int `yaml:"button_2"`
	Button3   int `yaml:"button_3"`
	Button4   int `yaml:"button_4"`
	Button5   int `yaml:"button_5"`
	Button6   int `yaml:"button_6"`
	TposeUp   int `yaml:"tpose_up"`
	TposeDown int `yaml:"tpose_down"`

	EXPins   []int `yaml:"ex_pins"`
	PausePin int   `yaml:"pause_pin"`
	CrankPin int   `yaml:"crank_pin"`
}

// NumKeys returns the number of playable keys.
func (k KeyboxConfig) NumKeys() int {
	if len(k.Pins) == 0 {
		return 0
	}
	return len(k.Pins) - 1
}

// EXConfig contains EX button configuration.
type EXConfig struct {
	Defaults   []int  `yaml:"defaults"`    // Function codes used when the EEPROM slot is blank
	EEPROMPath string `yaml:"eeprom_path"` // File backing the persisted slots
}

// TuningConfig contains transpose, capo and volume parameters.
type TuningConfig struct {
	MaxTranspose int    `yaml:"max_transpose"`
	CapoSteps    []int  `yaml:"capo_steps"`
	VolumeStep   int    `yaml:"volume_step"`
	Volume       int    `yaml:"volume"`
	ToggleSteps  int    `yaml:"toggle_steps"` // Target of the transpose toggle action
	PlayScreen   string `yaml:"play_screen"`
}

// ClampToggleSteps limits ToggleSteps to ±MaxTranspose.
func (t *TuningConfig) ClampToggleSteps() {
	t.ToggleSteps = max(-t.MaxTranspose, min(t.ToggleSteps, t.MaxTranspose))
}

// MenuConfig contains timing of the control loop and of the modal menus.
type MenuConfig struct {
	PollDelay  time.Duration `yaml:"poll_delay"`
	LoopPeriod time.Duration `yaml:"loop_period"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"` // Log to this file instead of stderr
}

// MockConfig contains mock keybox configuration.
type MockConfig struct {
	SampleRate    time.Duration `yaml:"sample_rate"`    // How often the mock publishes pin levels
	PressDuration time.Duration `yaml:"press_duration"` // How long a tapped key is held down
}

// DefaultPins is the keybox pin layout of the reference instrument.
var DefaultPins = []int{-1, 2, 24, 3, 25, 26, 4, 27, 5, 28, 29, 6, 30,
	7, 31, 8, 32, 33, 18, 34, 19, 35, 36, 20, 37}

// Default returns a default configuration with sensible values.
func Default() *Config {
	numKeys := len(DefaultPins) - 1
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: 115200,
		},
		MIDI: MIDIConfig{
			OutPort:  "",
			Velocity: 56,
			High:     VoiceConfig{Channel: 0, OpenNote: 67}, // G4
			Low:      VoiceConfig{Channel: 1, OpenNote: 55}, // G3
			Drone:    VoiceConfig{Channel: 2, OpenNote: 48}, // C3
			Tromp:    VoiceConfig{Channel: 3, OpenNote: 60}, // C4
			Buzz:     VoiceConfig{Channel: 4, OpenNote: 60},
		},
		Keybox: KeyboxConfig{
			Pins:      append([]int(nil), DefaultPins...),
			Debounce:  5 * time.Millisecond,
			X:         0,
			A:         numKeys - 2,
			B:         numKeys - 5,
			Button1:   1,
			Button2:   3,
			Button3:   4,
			Button4:   6,
			Button5:   8,
			Button6:   9,
			TposeUp:   numKeys - 1,
			TposeDown: numKeys - 3,
			EXPins:    []int{38, 39, 40},
			PausePin:  41,
			CrankPin:  14,
		},
		EX: EXConfig{
			Defaults:   []int{2, 3, 1},
			EEPROMPath: "eeprom.bin",
		},
		Tuning: TuningConfig{
			MaxTranspose: 12,
			CapoSteps:    []int{0, 2, 4},
			VolumeStep:   10,
			Volume:       127,
			ToggleSteps:  5,
			PlayScreen:   "note",
		},
		Menu: MenuConfig{
			PollDelay:  200 * time.Millisecond,
			LoopPeriod: time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
		Mock: MockConfig{
			SampleRate:    time.Millisecond,
			PressDuration: 60 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.MIDI.Velocity == 0 {
		c.MIDI.Velocity = def.MIDI.Velocity
	}

	if len(c.Keybox.Pins) == 0 {
		c.Keybox.Pins = def.Keybox.Pins
	}
	if c.Keybox.Debounce == 0 {
		c.Keybox.Debounce = def.Keybox.Debounce
	}
	if len(c.Keybox.EXPins) != 3 {
		c.Keybox.EXPins = def.Keybox.EXPins
	}

	if len(c.EX.Defaults) != 3 {
		c.EX.Defaults = def.EX.Defaults
	}
	if c.EX.EEPROMPath == "" {
		c.EX.EEPROMPath = def.EX.EEPROMPath
	}

	if c.Tuning.MaxTranspose == 0 {
		c.Tuning.MaxTranspose = def.Tuning.MaxTranspose
	}
	if len(c.Tuning.CapoSteps) == 0 {
		c.Tuning.CapoSteps = def.Tuning.CapoSteps
	}
	if c.Tuning.VolumeStep == 0 {
		c.Tuning.VolumeStep = def.Tuning.VolumeStep
	}
	if c.Tuning.PlayScreen == "" {
		c.Tuning.PlayScreen = def.Tuning.PlayScreen
	}
	c.Tuning.ClampToggleSteps()

	if c.Menu.PollDelay == 0 {
		c.Menu.PollDelay = def.Menu.PollDelay
	}
	if c.Menu.LoopPeriod == 0 {
		c.Menu.LoopPeriod = def.Menu.LoopPeriod
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}

	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.PressDuration == 0 {
		c.Mock.PressDuration = def.Mock.PressDuration
	}
}
