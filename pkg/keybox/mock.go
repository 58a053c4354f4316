package keybox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itohio/gogurdy/pkg/config"
)

// Mock simulates a keybox scanner. Pins are pulled up, so a pressed pin reads
// low.
type Mock struct {
	cfg *config.MockConfig

	frames    chan Frame
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	levels uint64
	timers map[int]*time.Timer
}

// NewMock creates a new mocked scanner with all pins released.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			SampleRate:    time.Millisecond,
			PressDuration: 60 * time.Millisecond,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:    cfg,
		frames: make(chan Frame, DefaultBufferSize),
		ctx:    ctx,
		cancel: cancel,
		levels: ^uint64(0),
		timers: make(map[int]*time.Timer),
	}
}

// Connect starts publishing frames.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true

	go m.generateFrames()

	return nil
}

// Close stops the mocked scanner.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	for pin, t := range m.timers {
		t.Stop()
		delete(m.timers, pin)
	}
	close(m.frames)

	return nil
}

// Frames returns the channel of scanned frames.
func (m *Mock) Frames() <-chan Frame {
	return m.frames
}

// IsConnected returns whether the mock is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Press holds pin down until Release is called.
func (m *Mock) Press(pin int) {
	if pin < 0 || pin >= MaxPins {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimer(pin)
	m.levels &^= 1 << uint(pin)
}

// Release lets pin go back high.
func (m *Mock) Release(pin int) {
	if pin < 0 || pin >= MaxPins {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimer(pin)
	m.levels |= 1 << uint(pin)
}

// Tap presses pin and releases it after the configured press duration.
func (m *Mock) Tap(pin int) {
	if pin < 0 || pin >= MaxPins {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimer(pin)
	m.levels &^= 1 << uint(pin)
	m.timers[pin] = time.AfterFunc(m.cfg.PressDuration, func() {
		m.Release(pin)
	})
}

// Held reports whether pin is currently pressed.
func (m *Mock) Held(pin int) bool {
	if pin < 0 || pin >= MaxPins {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.levels&(1<<uint(pin)) == 0
}

// stopTimer cancels a pending tap release. Callers hold mu.
func (m *Mock) stopTimer(pin int) {
	if t, ok := m.timers[pin]; ok {
		t.Stop()
		delete(m.timers, pin)
	}
}

// generateFrames publishes the current levels at the sample rate.
func (m *Mock) generateFrames() {
	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			m.mu.RLock()
			if !m.connected {
				m.mu.RUnlock()
				return
			}
			select {
			case m.frames <- Frame{Timestamp: now, Levels: m.levels}:
			default:
				// Channel full, skip
			}
			m.mu.RUnlock()
		}
	}
}
