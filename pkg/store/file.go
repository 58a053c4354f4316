package store

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var _ Store = (*File)(nil)

// File is an image backed by a file on disk. Every write is synced before
// Put returns.
type File struct {
	mu sync.Mutex
	f  *os.File
}

// Open opens the image at path, creating an erased one if it does not exist
// or is shorter than Size.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open eeprom image %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat eeprom image %s: %w", path, err)
	}

	if info.Size() < Size {
		pad := make([]byte, Size-info.Size())
		for i := range pad {
			pad[i] = Blank
		}
		if _, err := f.WriteAt(pad, info.Size()); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to initialise eeprom image %s: %w", path, err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to sync eeprom image %s: %w", path, err)
		}
	}

	return &File{f: f}, nil
}

// Get returns the byte at addr.
func (s *File) Get(addr int) (byte, error) {
	if err := checkAddr(addr); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf [1]byte
	if _, err := s.f.ReadAt(buf[:], int64(addr)); err != nil && err != io.EOF {
		return 0, fmt.Errorf("failed to read address %d: %w", addr, err)
	}
	return buf[0], nil
}

// Put stores b at addr and syncs the image.
func (s *File) Put(addr int, b byte) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.f.WriteAt([]byte{b}, int64(addr)); err != nil {
		return fmt.Errorf("failed to write address %d: %w", addr, err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync address %d: %w", addr, err)
	}
	return nil
}

// Close closes the image file.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
