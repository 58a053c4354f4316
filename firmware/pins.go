//go:build tinygo

package main

import "machine"

const (
	// Scanning configuration
	SCAN_INTERVAL_MS      = 1  // Pin scan interval in milliseconds
	HEARTBEAT_INTERVAL_MS = 50 // Resend unchanged levels this often

	// Serial configuration
	// Format "unix_micros,levels_hex\n"
	// Example: "1234567890123456,fffffc3fffffffff\n" = ~34 bytes max per line
	// Worst case one line per scan: 1000 lines/sec * 34 bytes = 34,000 bytes/sec,
	// which only USB CDC sustains. On a hardware UART, 115200 baud covers
	// 20 heartbeats/sec with a few hundred changes/sec of headroom.
	UART_BAUD_RATE = 115200
)

// scanPins are the pins reported in each frame; bit n of the levels is
// scanPins[n]. All are pulled up, so a pressed key reads low.
var scanPins = [...]machine.Pin{
	machine.D0, machine.D1, machine.D2, machine.D3, machine.D4, machine.D5,
	machine.D6, machine.D7, machine.D8, machine.D9, machine.D10, machine.D11,
	machine.D12, machine.D13, machine.D14, machine.D15, machine.D16, machine.D17,
	machine.D18, machine.D19, machine.D20, machine.D21, machine.D22, machine.D23,
	machine.D24, machine.D25, machine.D26, machine.D27, machine.D28, machine.D29,
	machine.D30, machine.D31, machine.D32, machine.D33, machine.D34, machine.D35,
	machine.D36, machine.D37, machine.D38, machine.D39, machine.D40, machine.D41,
}
