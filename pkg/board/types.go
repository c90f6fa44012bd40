package board

import (
	"strconv"
	"strings"
	"time"
)

// Pin identifies a physical pin on the board.
type Pin int

// Level is the digital level of a pin.
type Level int

// Levels.
const (
	Low Level = iota
	High
)

// String implements fmt.Stringer.
func (l Level) String() string {
	if l == High {
		return "HIGH"
	}
	return "LOW"
}

const (
	// ReadyMarker is printed by the firmware when it accepts the next byte.
	ReadyMarker = "?"

	// DefaultBaudRate is used when no baud rate is specified.
	DefaultBaudRate = 115200
	// DefaultReadTimeout bounds a single read attempt.
	DefaultReadTimeout = 2 * time.Second

	// MaxPin is the largest pin whose pin byte fits in one byte.
	MaxPin Pin = 0xff - pinOffset
	// MaxAnalogValue is the largest analog value.
	MaxAnalogValue = 0xff

	pinOffset = 48
)

// Control line names.
const (
	LineDTR = "DTR"
	LineRTS = "RTS"
)

// Transport is the raw byte channel to the board.
type Transport interface {
	// Write writes all bytes.
	Write([]byte) error
	// ReadAvailable returns what arrives within timeout, it may be empty.
	ReadAvailable(timeout time.Duration) ([]byte, error)
	// SetControlLine asserts or deasserts a modem control line.
	SetControlLine(name string, asserted bool) error
	// Close releases the channel.
	Close() error
	// Address identifies the connection, e.g. the device path.
	Address() string
	// BaudRate is the effective baud rate.
	BaudRate() int
}

// Reading is the cleaned payload of an analog read.
type Reading string

// Int parses the reading as a decimal number.
func (r Reading) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(r)))
}

// ValidatePin checks the pin can be encoded as a pin byte.
func ValidatePin(pin Pin) error {
	if pin < 0 {
		return &ArgumentError{Arg: "pin", Value: int(pin), Reason: "negative"}
	}
	if pin > MaxPin {
		return &ArgumentError{Arg: "pin", Value: int(pin), Reason: "pin byte exceeds 255"}
	}
	return nil
}

// ValidateAnalogValue checks value is within [0, 255].
func ValidateAnalogValue(value int) error {
	if value < 0 || value > MaxAnalogValue {
		return &ArgumentError{Arg: "value", Value: value, Reason: "out of range [0, 255]"}
	}
	return nil
}

func pinByte(pin Pin) byte {
	return byte(pin + pinOffset)
}
