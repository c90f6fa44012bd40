package transport

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/robotalks/arduino.go/pkg/board"
)

// firmwareProxy prompts "?" before every byte and records what it gets.
func firmwareProxy(received chan<- byte) websocket.Handler {
	return func(conn *websocket.Conn) {
		conn.PayloadType = websocket.BinaryFrame
		for {
			if err := websocket.Message.Send(conn, []byte("?\r\n")); err != nil {
				return
			}
			var data []byte
			if err := websocket.Message.Receive(conn, &data); err != nil {
				close(received)
				return
			}
			for _, b := range data {
				received <- b
			}
		}
	}
}

func TestWebSocketTransport(t *testing.T) {
	received := make(chan byte, 16)
	srv := httptest.NewServer(firmwareProxy(received))
	defer srv.Close()

	address := "ws" + strings.TrimPrefix(srv.URL, "http")
	tr, err := Open(address, 0)
	require.NoError(t, err)
	require.Equal(t, board.DefaultBaudRate, tr.BaudRate())
	require.Equal(t, address, tr.Address())

	ctl := board.New(tr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, ctl.SetHigh(ctx, 7))
	require.Equal(t, byte('1'), <-received)
	require.Equal(t, byte('7'), <-received)

	require.NoError(t, ctl.Close())
	require.Equal(t, byte('5'), <-received)
}

func TestWebSocketReadTimeout(t *testing.T) {
	srv := httptest.NewServer(websocket.Handler(func(conn *websocket.Conn) {
		var data []byte
		websocket.Message.Receive(conn, &data)
	}))
	defer srv.Close()

	tr, err := DialWebSocket("ws"+strings.TrimPrefix(srv.URL, "http"), 9600)
	require.NoError(t, err)
	defer tr.Close()
	data, err := tr.ReadAvailable(10 * time.Millisecond)
	require.NoError(t, err)
	require.Empty(t, data)
	require.True(t, errors.Is(tr.SetControlLine(board.LineDTR, false), board.ErrControlLineUnsupported))
}
