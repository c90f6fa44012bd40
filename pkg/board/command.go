package board

import (
	"fmt"
	"strings"
)

// Command bytes.
const (
	CodeLow         byte = '0'
	CodeHigh        byte = '1'
	CodeAnalogWrite byte = '3'
	CodeAnalogRead  byte = '4'
	CodeShutdown    byte = '5'
)

const hexDigits = "0123456789ABCDEF"

// Command is a logical operation encoded into single-byte steps.
// Each step is sent after its own handshake.
type Command interface {
	Encode() ([]byte, error)
	String() string
}

// ConfigureOutputs registers output pins.
type ConfigureOutputs struct {
	Pins []Pin
}

// Encode implements Command.
func (c *ConfigureOutputs) Encode() ([]byte, error) {
	if len(c.Pins) > 0xff {
		return nil, &ArgumentError{Arg: "pins", Value: len(c.Pins), Reason: "count exceeds 255"}
	}
	steps := make([]byte, 0, len(c.Pins)+1)
	steps = append(steps, byte(len(c.Pins)))
	for _, pin := range c.Pins {
		if err := ValidatePin(pin); err != nil {
			return nil, err
		}
		steps = append(steps, pinByte(pin))
	}
	return steps, nil
}

// String implements fmt.Stringer.
func (c *ConfigureOutputs) String() string {
	pins := make([]string, len(c.Pins))
	for n, pin := range c.Pins {
		pins[n] = fmt.Sprint(int(pin))
	}
	return "ConfigureOutputs(" + strings.Join(pins, ",") + ")"
}

// SetDigital sets the level of a pin.
type SetDigital struct {
	Pin   Pin
	Level Level
}

// Encode implements Command.
func (c *SetDigital) Encode() ([]byte, error) {
	if err := ValidatePin(c.Pin); err != nil {
		return nil, err
	}
	code := CodeLow
	if c.Level == High {
		code = CodeHigh
	}
	return []byte{code, pinByte(c.Pin)}, nil
}

// String implements fmt.Stringer.
func (c *SetDigital) String() string {
	return fmt.Sprintf("SetDigital(%d,%s)", c.Pin, c.Level)
}

// WriteAnalog writes a PWM duty value.
type WriteAnalog struct {
	Pin   Pin
	Value int
}

// Encode implements Command.
// The value is sent as two uppercase hex digits, most significant first.
func (c *WriteAnalog) Encode() ([]byte, error) {
	if err := ValidatePin(c.Pin); err != nil {
		return nil, err
	}
	if err := ValidateAnalogValue(c.Value); err != nil {
		return nil, err
	}
	return []byte{
		CodeAnalogWrite,
		hexDigits[c.Value>>4],
		hexDigits[c.Value&0xf],
		pinByte(c.Pin),
	}, nil
}

// String implements fmt.Stringer.
func (c *WriteAnalog) String() string {
	return fmt.Sprintf("WriteAnalog(%d,%d)", c.Pin, c.Value)
}

// ReadAnalog queries an analog pin.
type ReadAnalog struct {
	Pin Pin
}

// Encode implements Command.
func (c *ReadAnalog) Encode() ([]byte, error) {
	if err := ValidatePin(c.Pin); err != nil {
		return nil, err
	}
	return []byte{CodeAnalogRead, pinByte(c.Pin)}, nil
}

// String implements fmt.Stringer.
func (c *ReadAnalog) String() string {
	return fmt.Sprintf("ReadAnalog(%d)", c.Pin)
}

// Shutdown stops the firmware.
type Shutdown struct{}

// Encode implements Command.
func (c *Shutdown) Encode() ([]byte, error) {
	return []byte{CodeShutdown}, nil
}

// String implements fmt.Stringer.
func (c *Shutdown) String() string {
	return "Shutdown"
}
