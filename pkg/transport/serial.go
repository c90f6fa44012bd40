package transport

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/robotalks/arduino.go/pkg/board"
)

// SerialPort is the subset of serial.Port used by Serial.
type SerialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	SetDTR(dtr bool) error
	SetRTS(rts bool) error
	Close() error
}

// Serial implements board.Transport over a serial port.
type Serial struct {
	// DrainTimeout ends a read once the line is quiet for this long.
	DrainTimeout time.Duration

	port    SerialPort
	name    string
	baud    int
	timeout time.Duration
	buf     []byte
}

// OpenSerial opens a serial device with 8 data bits, no parity and one stop bit.
func OpenSerial(name string, baud int) (*Serial, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	glog.Infof("%s: opened at %d baud", name, baud)
	return NewSerial(port, name, baud), nil
}

// NewSerial wraps an opened port.
func NewSerial(port SerialPort, name string, baud int) *Serial {
	return &Serial{
		DrainTimeout: DefaultDrainTimeout,
		port:         port,
		name:         name,
		baud:         baud,
		buf:          make([]byte, 64),
	}
}

// Address implements board.Transport.
func (s *Serial) Address() string {
	return s.name
}

// BaudRate implements board.Transport.
func (s *Serial) BaudRate() int {
	return s.baud
}

// Write implements board.Transport.
func (s *Serial) Write(p []byte) error {
	for len(p) > 0 {
		n, err := s.port.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// ReadAvailable implements board.Transport.
// It waits up to timeout for data, then keeps reading until nothing
// arrives within DrainTimeout.
func (s *Serial) ReadAvailable(timeout time.Duration) ([]byte, error) {
	n, err := s.readWithin(timeout)
	if err != nil || n == 0 {
		return nil, err
	}
	data := append([]byte(nil), s.buf[:n]...)
	drain := s.DrainTimeout
	if drain <= 0 {
		drain = DefaultDrainTimeout
	}
	for {
		if n, err = s.readWithin(drain); err != nil {
			return data, err
		}
		if n == 0 {
			break
		}
		data = append(data, s.buf[:n]...)
	}
	glog.V(4).Infof("%s: RCV %q", s.name, data)
	return data, nil
}

func (s *Serial) readWithin(timeout time.Duration) (int, error) {
	if timeout != s.timeout {
		if err := s.port.SetReadTimeout(timeout); err != nil {
			return 0, err
		}
		s.timeout = timeout
	}
	return s.port.Read(s.buf)
}

// SetControlLine implements board.Transport.
func (s *Serial) SetControlLine(name string, asserted bool) error {
	var err error
	switch name {
	case board.LineDTR:
		err = s.port.SetDTR(asserted)
	case board.LineRTS:
		err = s.port.SetRTS(asserted)
	default:
		return fmt.Errorf("%w: %s", board.ErrControlLineUnsupported, name)
	}
	if isNotImplemented(err) {
		return fmt.Errorf("%w: %s: %v", board.ErrControlLineUnsupported, name, err)
	}
	return err
}

// Close implements board.Transport.
func (s *Serial) Close() error {
	return s.port.Close()
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		return portErr.Code() == serial.FunctionNotImplemented
	}
	var portErrVal serial.PortError
	if errors.As(err, &portErrVal) {
		return portErrVal.Code() == serial.FunctionNotImplemented
	}
	return false
}

// PortInfo describes a serial port found on the system.
type PortInfo struct {
	Name         string `json:"name"`
	USB          bool   `json:"usb,omitempty"`
	VID          string `json:"vid,omitempty"`
	PID          string `json:"pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Product      string `json:"product,omitempty"`
}

// String implements fmt.Stringer.
func (p PortInfo) String() string {
	if !p.USB {
		return p.Name
	}
	s := fmt.Sprintf("%s USB %s:%s", p.Name, p.VID, p.PID)
	if p.SerialNumber != "" {
		s += " SN " + p.SerialNumber
	}
	if p.Product != "" {
		s += " " + p.Product
	}
	return s
}

// ListPorts enumerates serial ports.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{
			Name:         d.Name,
			USB:          d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	return ports, nil
}
