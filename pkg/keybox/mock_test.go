package keybox

import (
	"testing"
	"time"

	"github.com/itohio/gogurdy/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMockConfig() *config.MockConfig {
	return &config.MockConfig{
		SampleRate:    time.Millisecond,
		PressDuration: 20 * time.Millisecond,
	}
}

func TestNewMock_Defaults(t *testing.T) {
	m := NewMock(nil)

	assert.Equal(t, time.Millisecond, m.cfg.SampleRate)
	assert.False(t, m.IsConnected())
	assert.False(t, m.Held(3))
}

func TestMock_PressRelease(t *testing.T) {
	m := NewMock(testMockConfig())

	m.Press(3)
	assert.True(t, m.Held(3))
	assert.False(t, m.Held(4))

	m.Release(3)
	assert.False(t, m.Held(3))
}

func TestMock_OutOfRangePins(t *testing.T) {
	m := NewMock(testMockConfig())

	m.Press(-1)
	m.Press(64)
	m.Tap(70)

	assert.Equal(t, ^uint64(0), m.levels)
	assert.False(t, m.Held(64))
}

func TestMock_Tap(t *testing.T) {
	m := NewMock(testMockConfig())

	m.Tap(5)
	assert.True(t, m.Held(5))

	assert.Eventually(t, func() bool { return !m.Held(5) }, time.Second, time.Millisecond)
}

func TestMock_PressCancelsTap(t *testing.T) {
	m := NewMock(testMockConfig())

	m.Tap(5)
	m.Press(5)

	time.Sleep(50 * time.Millisecond)
	assert.True(t, m.Held(5))
}

func TestMock_ConnectTwice(t *testing.T) {
	m := NewMock(testMockConfig())
	require.NoError(t, m.Connect())
	defer m.Close()

	assert.Error(t, m.Connect())
}

func TestMock_FramesCarryLevels(t *testing.T) {
	m := NewMock(testMockConfig())
	require.NoError(t, m.Connect())
	defer m.Close()

	m.Press(7)

	deadline := time.After(time.Second)
	for {
		select {
		case f := <-m.Frames():
			if !f.Level(7) {
				assert.True(t, f.Level(6))
				return
			}
		case <-deadline:
			t.Fatal("no frame with pin 7 pressed")
		}
	}
}
