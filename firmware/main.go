//go:build tinygo

//go:generate tinygo flash -target=teensy41

// Keybox scanner: reads every key, EX, pause and crank pin and reports their
// raw levels to the host. Debouncing is left to the host.
package main

import (
	"machine"
	"strconv"
	"time"
)

var (
	uart = machine.Serial

	// Levels
	levels     uint64
	lastLevels uint64

	// Timing
	lastScan time.Time
	lastSent time.Time

	// Output buffer for one line
	lineBuffer [40]byte
)

func main() {
	for _, p := range scanPins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	// Initialize timing
	lastScan = time.Now()
	lastSent = lastScan
	lastLevels = scan()

	// Main loop
	for {
		now := time.Now()

		if now.Sub(lastScan) >= time.Duration(SCAN_INTERVAL_MS)*time.Millisecond {
			levels = scan()
			lastScan = now

			// Send on change, or as a heartbeat so the host can tell the link is alive
			if levels != lastLevels || now.Sub(lastSent) >= time.Duration(HEARTBEAT_INTERVAL_MS)*time.Millisecond {
				outputLevels(now)
				lastLevels = levels
				lastSent = now
			}
		}

		// Small delay to prevent tight loop (but still allow precise timing)
		time.Sleep(100 * time.Microsecond)
	}
}

// scan reads all pins into a bit mask. Unused bits read high.
func scan() uint64 {
	mask := ^uint64(0)
	for i, p := range scanPins {
		if !p.Get() {
			mask &^= 1 << uint(i)
		}
	}
	return mask
}

func outputLevels(now time.Time) {
	// Output format: "unix_micros,levels_hex\n"
	// Example: "1234567890123,fffffffffffffffb\n"
	line := strconv.AppendInt(lineBuffer[:0], now.UnixNano()/1000, 10)
	line = append(line, ',')
	line = strconv.AppendUint(line, levels, 16)
	line = append(line, '\n')
	uart.Write(line)
}
