package store

import "sync"

var _ Store = (*Memory)(nil)

// Memory is an in-memory image, used by tests and the simulator.
type Memory struct {
	mu     sync.RWMutex
	cells  [Size]byte
	writes int
}

// NewMemory returns an erased image.
func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.cells {
		m.cells[i] = Blank
	}
	return m
}

// Get returns the byte at addr.
func (m *Memory) Get(addr int) (byte, error) {
	if err := checkAddr(addr); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cells[addr], nil
}

// Put stores b at addr.
func (m *Memory) Put(addr int, b byte) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[addr] = b
	m.writes++
	return nil
}

// Writes returns the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
