// Package keybox reads raw pin levels from the keybox scanner MCU and exposes
// them as pins for the button package.
package keybox

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/logging"
)

const (
	// DefaultBaudRate is the baud rate of the scanner firmware.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the frames channel buffer.
	DefaultBufferSize = 100
	// MaxPins is the number of pins a frame can carry.
	MaxPins = 64
)

// Frame is one scan of all pins. Bit n of Levels is the level of pin n.
type Frame struct {
	Timestamp time.Time
	Levels    uint64
}

// Level returns the level of pin.
func (f Frame) Level(pin int) bool {
	if pin < 0 || pin >= MaxPins {
		return true
	}
	return f.Levels&(1<<uint(pin)) != 0
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial is a connection to the scanner MCU.
type Serial struct {
	port     string
	baudRate int
	bufSize  int
	log      *zap.Logger

	conn      serial.Port
	frames    chan Frame
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Serial instance with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int, log *zap.Logger) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}
	log = logging.OrNop(log)

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		log:      log,
		frames:   make(chan Frame, bufSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port and starts reading frames.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	port, err := serial.Open(d.port, &serial.Mode{
		BaudRate: d.baudRate,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	go d.readFrames(port)

	return nil
}

// Close closes the connection and stops reading frames.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	d.cancel()

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			d.log.Warn("error closing serial port", zap.Error(err))
		}
		d.conn = nil
	}

	d.connected = false

	return nil
}

// Frames returns the channel of scanned frames. It is closed once the
// connection is closed or lost.
func (d *Serial) Frames() <-chan Frame {
	return d.frames
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readFrames reads lines from r and parses them into frames.
func (d *Serial) readFrames(r io.Reader) {
	defer close(d.frames)
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("panic in readFrames", zap.Any("panic", r))
		}
	}()

	scanner := bufio.NewScanner(r)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && d.ctx.Err() == nil {
				d.log.Warn("error reading from serial port", zap.Error(err))
			}
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		frame, err := parseLine(line)
		if err != nil {
			d.log.Debug("failed to parse line", zap.String("line", line), zap.Error(err))
			continue
		}

		select {
		case d.frames <- frame:
		case <-d.ctx.Done():
			return
		default:
			d.log.Debug("frames channel full, dropping frame")
		}
	}
}

// parseLine parses a line from the scanner into a Frame.
// Format: unix_micros,levels_hex
// Example: 1234567890123,fffffffffffffffb
func parseLine(line string) (Frame, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return Frame{}, fmt.Errorf("invalid line format: expected 2 comma-separated values, got %d", len(parts))
	}

	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	levels, err := strconv.ParseUint(parts[1], 16, 64)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid levels: %w", err)
	}

	return Frame{
		Timestamp: time.Unix(0, timestampMicros*1000),
		Levels:    levels,
	}, nil
}
