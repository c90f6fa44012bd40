package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/arduino.go/pkg/framework"
)

// Controller drives a board over a Transport.
// All operations are serialized, including the handshake waits,
// so the byte stream of one command never interleaves with another.
type Controller struct {
	// ReadTimeout bounds each handshake read attempt and the analog reply read.
	ReadTimeout time.Duration

	transport Transport
	states    PinStates
	outputs   []Pin
	closed    bool
	lock      sync.Mutex
}

// New creates a Controller which owns the transport.
func New(t Transport) *Controller {
	return &Controller{
		ReadTimeout: DefaultReadTimeout,
		transport:   t,
	}
}

// String implements fmt.Stringer.
func (c *Controller) String() string {
	return fmt.Sprintf("board on %s at %d baud", c.transport.Address(), c.transport.BaudRate())
}

func (c *Controller) sync() *Synchronizer {
	return &Synchronizer{Transport: c.transport, Timeout: c.ReadTimeout}
}

// ConfigureOutputs registers the output pins used by AllOff.
// The same pins are returned on success.
func (c *Controller) ConfigureOutputs(ctx context.Context, pins ...Pin) ([]Pin, error) {
	cmd := &ConfigureOutputs{Pins: append([]Pin(nil), pins...)}
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if err := c.sync().Send(ctx, cmd); err != nil {
		return nil, err
	}
	c.outputs = cmd.Pins
	return pins, nil
}

// Outputs returns the registered output pins.
func (c *Controller) Outputs() []Pin {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]Pin{}, c.outputs...)
}

// SetLow sets a pin low.
func (c *Controller) SetLow(ctx context.Context, pin Pin) error {
	return c.setDigital(ctx, pin, Low)
}

// SetHigh sets a pin high.
func (c *Controller) SetHigh(ctx context.Context, pin Pin) error {
	return c.setDigital(ctx, pin, High)
}

func (c *Controller) setDigital(ctx context.Context, pin Pin, level Level) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.setDigitalLocked(ctx, pin, level)
}

func (c *Controller) setDigitalLocked(ctx context.Context, pin Pin, level Level) error {
	if c.closed {
		return ErrClosed
	}
	if err := ValidatePin(pin); err != nil {
		return err
	}
	// recorded before sending and kept even if sending fails.
	c.states.Record(pin, level)
	return c.sync().Send(ctx, &SetDigital{Pin: pin, Level: level})
}

// State returns the last commanded level of a pin.
func (c *Controller) State(pin Pin) Level {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.states.State(pin)
}

// States returns all recorded levels.
func (c *Controller) States() map[Pin]Level {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.states.Snapshot()
}

// IsHigh reports whether the pin was last set high.
func (c *Controller) IsHigh(pin Pin) bool {
	return c.State(pin) == High
}

// IsLow reports whether the pin was last set low or never set.
func (c *Controller) IsLow(pin Pin) bool {
	return c.State(pin) == Low
}

// AnalogWrite writes a value in [0, 255] to a pin.
func (c *Controller) AnalogWrite(ctx context.Context, pin Pin, value int) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.sync().Send(ctx, &WriteAnalog{Pin: pin, Value: value})
}

// AnalogRead reads a pin and returns the reply with line endings removed.
func (c *Controller) AnalogRead(ctx context.Context, pin Pin) (Reading, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return "", ErrClosed
	}
	if err := c.sync().Send(ctx, &ReadAnalog{Pin: pin}); err != nil {
		return "", err
	}
	r, err := ReadResponse(c.transport, c.ReadTimeout)
	if err == nil {
		glog.V(2).Infof("%s: pin %d read %q", c.transport.Address(), pin, string(r))
	}
	return r, err
}

// AllOff sets every output pin low, in order.
// It stops at the first failure.
func (c *Controller) AllOff(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return ErrClosed
	}
	for _, pin := range c.outputs {
		if err := c.setDigitalLocked(ctx, pin, Low); err != nil {
			return err
		}
	}
	return nil
}

// Close implements io.Closer.
func (c *Controller) Close() error {
	return c.CloseContext(context.Background())
}

// CloseContext stops the firmware, deasserts DTR to reset the board and
// releases the transport. The transport is released even if stopping fails.
func (c *Controller) CloseContext(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	c.states.Reset()
	c.outputs = nil

	var errs fx.AggregatedError
	errs.Add(c.sync().Send(ctx, &Shutdown{}))
	if err := c.transport.SetControlLine(LineDTR, false); err != nil {
		if errors.Is(err, ErrControlLineUnsupported) {
			glog.V(2).Infof("%s: DTR reset skipped", c.transport.Address())
		} else {
			errs.Add(err)
		}
	}
	errs.Add(c.transport.Close())
	glog.Infof("%s: closed", c.transport.Address())
	return errs.Aggregate()
}
