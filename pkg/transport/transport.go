// Package transport opens byte channels to boards.
package transport

import (
	"strings"
	"time"

	"github.com/robotalks/arduino.go/pkg/board"
)

// DefaultDrainTimeout is the quiet time which ends a read once data arrived.
const DefaultDrainTimeout = 10 * time.Millisecond

// Open opens a transport by address.
// ws:// and wss:// addresses are dialed as WebSocket, anything else is
// a serial device. A baud rate <= 0 means board.DefaultBaudRate.
func Open(address string, baud int) (board.Transport, error) {
	if baud <= 0 {
		baud = board.DefaultBaudRate
	}
	if IsWebSocketAddress(address) {
		return DialWebSocket(address, baud)
	}
	return OpenSerial(address, baud)
}

// IsWebSocketAddress tells whether the address is a WebSocket URL.
func IsWebSocketAddress(address string) bool {
	return strings.HasPrefix(address, "ws://") || strings.HasPrefix(address, "wss://")
}
