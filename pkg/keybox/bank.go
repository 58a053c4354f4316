package keybox

import (
	"sync"

	"github.com/itohio/gogurdy/pkg/button"
)

// Bank holds the most recent pin levels received from a Device. Pins read
// high until a frame says otherwise.
type Bank struct {
	mu     sync.RWMutex
	levels uint64
	frames int
}

// NewBank creates a bank with all pins high.
func NewBank() *Bank {
	return &Bank{levels: ^uint64(0)}
}

// Run copies frames into the bank until the channel is closed.
func (b *Bank) Run(frames <-chan Frame) {
	for f := range frames {
		b.Set(f)
	}
}

// Set stores the levels of f.
func (b *Bank) Set(f Frame) {
	b.mu.Lock()
	b.levels = f.Levels
	b.frames++
	b.mu.Unlock()
}

// Level returns the last known level of pin.
func (b *Bank) Level(pin int) bool {
	if pin < 0 || pin >= MaxPins {
		return true
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.levels&(1<<uint(pin)) != 0
}

// Frames returns how many frames were stored.
func (b *Bank) Frames() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frames
}

// Pin returns a button pin reading n from the bank.
func (b *Bank) Pin(n int) button.Pin {
	return button.PinFunc(func() bool { return b.Level(n) })
}
