package transport

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/arduino.go/pkg/board"
)

// WebSocket implements board.Transport for a board exposed by a
// serial-to-WebSocket proxy. Each binary frame carries raw serial bytes.
type WebSocket struct {
	conn    *websocket.Conn
	address string
	baud    int
}

// DialWebSocket connects to a proxy. The baud rate is informational,
// the proxy owns the serial settings.
func DialWebSocket(address string, baud int) (*WebSocket, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket address: %w", err)
	}
	origin := "http://" + u.Host
	if u.Scheme == "wss" {
		origin = "https://" + u.Host
	}
	conn, err := websocket.Dial(address, "", origin)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	glog.Infof("%s: connected", address)
	return NewWebSocket(conn, address, baud), nil
}

// NewWebSocket wraps an established connection.
func NewWebSocket(conn *websocket.Conn, address string, baud int) *WebSocket {
	conn.PayloadType = websocket.BinaryFrame
	return &WebSocket{conn: conn, address: address, baud: baud}
}

// Address implements board.Transport.
func (w *WebSocket) Address() string {
	return w.address
}

// BaudRate implements board.Transport.
func (w *WebSocket) BaudRate() int {
	return w.baud
}

// Write implements board.Transport.
func (w *WebSocket) Write(p []byte) error {
	return websocket.Message.Send(w.conn, p)
}

// ReadAvailable implements board.Transport.
// A frame not received within timeout results in empty data.
func (w *WebSocket) ReadAvailable(timeout time.Duration) ([]byte, error) {
	if err := w.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	var data []byte
	if err := websocket.Message.Receive(w.conn, &data); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, nil
		}
		return nil, err
	}
	glog.V(4).Infof("%s: RCV %q", w.address, data)
	return data, nil
}

// SetControlLine implements board.Transport.
// Control lines aren't carried over WebSocket.
func (w *WebSocket) SetControlLine(name string, asserted bool) error {
	return fmt.Errorf("%w: %s over websocket", board.ErrControlLineUnsupported, name)
}

// Close implements board.Transport.
func (w *WebSocket) Close() error {
	return w.conn.Close()
}
