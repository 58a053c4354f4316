package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, 24, cfg.Keybox.NumKeys())
	assert.Equal(t, -1, cfg.Keybox.Pins[0])
	assert.Equal(t, 5*time.Millisecond, cfg.Keybox.Debounce)
	assert.Equal(t, 0, cfg.Keybox.X)
	assert.Equal(t, 22, cfg.Keybox.A)
	assert.Equal(t, 19, cfg.Keybox.B)
	assert.Equal(t, 23, cfg.Keybox.TposeUp)
	assert.Equal(t, 21, cfg.Keybox.TposeDown)
	assert.Len(t, cfg.Keybox.EXPins, 3)
	assert.Equal(t, []int{2, 3, 1}, cfg.EX.Defaults)
	assert.Equal(t, []int{0, 2, 4}, cfg.Tuning.CapoSteps)
	assert.Equal(t, 200*time.Millisecond, cfg.Menu.PollDelay)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDefault_PinsAreCopied(t *testing.T) {
	cfg := Default()
	cfg.Keybox.Pins[1] = 99

	assert.Equal(t, 2, DefaultPins[1])
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
  baud_rate: 57600

midi:
  out_port: "Synth"
  velocity: 90
  high:
    channel: 0
    open_note: 62

keybox:
  pins: [-1, 10, 11, 12]
  debounce: 8ms
  ex_pins: [1, 2, 3]

ex:
  defaults: [5, 4, 3]
  eeprom_path: "/tmp/gurdy.bin"

tuning:
  max_transpose: 7
  capo_steps: [0, 5]
  toggle_steps: 3

menu:
  poll_delay: 50ms

log:
  level: debug
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 57600, cfg.Serial.BaudRate)
	assert.Equal(t, "Synth", cfg.MIDI.OutPort)
	assert.Equal(t, uint8(90), cfg.MIDI.Velocity)
	assert.Equal(t, 62, cfg.MIDI.High.OpenNote)
	assert.Equal(t, 3, cfg.Keybox.NumKeys())
	assert.Equal(t, 8*time.Millisecond, cfg.Keybox.Debounce)
	assert.Equal(t, []int{5, 4, 3}, cfg.EX.Defaults)
	assert.Equal(t, "/tmp/gurdy.bin", cfg.EX.EEPROMPath)
	assert.Equal(t, 7, cfg.Tuning.MaxTranspose)
	assert.Equal(t, []int{0, 5}, cfg.Tuning.CapoSteps)
	assert.Equal(t, 3, cfg.Tuning.ToggleSteps)
	assert.Equal(t, 50*time.Millisecond, cfg.Menu.PollDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyACM0"
ex:
  defaults: [1]
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)                 // default
	assert.Equal(t, 24, cfg.Keybox.NumKeys())                    // default
	assert.Equal(t, []int{2, 3, 1}, cfg.EX.Defaults)             // wrong length, default
	assert.Equal(t, 200*time.Millisecond, cfg.Menu.PollDelay)    // default
	assert.Equal(t, time.Millisecond, cfg.Menu.LoopPeriod)       // default
	assert.Equal(t, 60*time.Millisecond, cfg.Mock.PressDuration) // default
}

func TestLoad_ToggleStepsClamped(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("tuning:\n  max_transpose: 12\n  toggle_steps: 14\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Tuning.ToggleSteps)
}

func TestClampToggleSteps(t *testing.T) {
	tc := TuningConfig{MaxTranspose: 7, ToggleSteps: -9}
	tc.ClampToggleSteps()
	assert.Equal(t, -7, tc.ToggleSteps)

	tc.ToggleSteps = 5
	tc.ClampToggleSteps()
	assert.Equal(t, 5, tc.ToggleSteps)
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.Tuning.ToggleSteps = 7

	tmpfile, err := os.CreateTemp("", "test_save_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	err = cfg.Save(tmpfile.Name())
	require.NoError(t, err)

	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", loaded.Serial.Port)
	assert.Equal(t, 7, loaded.Tuning.ToggleSteps)
	assert.Equal(t, cfg.Keybox.Pins, loaded.Keybox.Pins)
}
