// Package store persists small per-button settings in a byte-addressed
// EEPROM image.
package store

import (
	"errors"
	"fmt"
)

// Size is the number of addressable bytes in an image.
const Size = 64

// Slot addresses. Each slot holds a single byte.
const (
	AddrEX1 = 0x10
	AddrEX2 = 0x11
	AddrEX3 = 0x12
)

// Blank is the value of an erased cell.
const Blank byte = 0xFF

// ErrAddress is returned for reads and writes outside the image.
var ErrAddress = errors.New("address out of range")

// Store defines byte-level access to persisted configuration.
// Writes are synchronous: once Put returns nil the value survives a restart.
type Store interface {
	Get(addr int) (byte, error)
	Put(addr int, b byte) error
}

// Slot identifies the persisted setting of one EX button (1, 2 or 3).
type Slot int

// Slots of the three EX buttons.
const (
	SlotEX1 Slot = 1
	SlotEX2 Slot = 2
	SlotEX3 Slot = 3
)

// Addr returns the address of the slot, or -1 for an unknown slot.
func (s Slot) Addr() int {
	switch s {
	case SlotEX1:
		return AddrEX1
	case SlotEX2:
		return AddrEX2
	case SlotEX3:
		return AddrEX3
	}
	return -1
}

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	return s.Addr() >= 0
}

func (s Slot) String() string {
	return fmt.Sprintf("EX%d", int(s))
}

// ReadSlot reads the byte persisted in slot s.
func ReadSlot(st Store, s Slot) (byte, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("slot %d: %w", int(s), ErrAddress)
	}
	return st.Get(s.Addr())
}

// WriteSlot persists b in slot s.
func WriteSlot(st Store, s Slot, b byte) error {
	if !s.Valid() {
		return fmt.Errorf("slot %d: %w", int(s), ErrAddress)
	}
	return st.Put(s.Addr(), b)
}

func checkAddr(addr int) error {
	if addr < 0 || addr >= Size {
		return fmt.Errorf("address %d: %w", addr, ErrAddress)
	}
	return nil
}
