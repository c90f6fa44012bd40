package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/arduino.go/pkg/board"
	"github.com/robotalks/arduino.go/pkg/msgs"
)

// readyTransport is always ready and answers analog reads with reading.
type readyTransport struct {
	written []byte
	reading string
}

func (t *readyTransport) Write(p []byte) error {
	t.written = append(t.written, p...)
	return nil
}

func (t *readyTransport) ReadAvailable(time.Duration) ([]byte, error) {
	if n := len(t.written); n >= 2 && t.written[n-2] == board.CodeAnalogRead {
		t.written = append(t.written, 0)
		return []byte(t.reading + "\r\n"), nil
	}
	return []byte("?"), nil
}

func (t *readyTransport) SetControlLine(string, bool) error { return nil }
func (t *readyTransport) Close() error                      { return nil }
func (t *readyTransport) Address() string                   { return "test" }
func (t *readyTransport) BaudRate() int                     { return board.DefaultBaudRate }

func newTestBridge() (*Bridge, *readyTransport) {
	tr := &readyTransport{reading: "512"}
	return &Bridge{Board: board.New(tr), ID: "uno"}, tr
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name  string
		msg   msgs.Message
		reply msgs.Message
	}{
		{"outputs", &msgs.ConfigureOutputs{Pins: []uint32{2, 4}}, &msgs.OutputPins{Pins: []uint32{2, 4}}},
		{"high", &msgs.DigitalWrite{Pin: 2, High: true}, &msgs.CommandOK{}},
		{"state", &msgs.PinStateQuery{Pin: 2}, &msgs.PinState{Pin: 2, High: true}},
		{"all off", &msgs.AllOff{}, &msgs.CommandOK{}},
		{"state after off", &msgs.PinStateQuery{Pin: 2}, &msgs.PinState{Pin: 2}},
		{"analog write", &msgs.AnalogWrite{Pin: 9, Value: 0xa3}, &msgs.CommandOK{}},
		{"analog read", &msgs.AnalogRead{Pin: 1}, &msgs.AnalogReading{Pin: 1, Value: "512"}},
		{"bad value", &msgs.AnalogWrite{Pin: 9, Value: 300}, &msgs.CommandErr{
			Message:         "invalid argument value=300: out of range [0, 255]",
			InvalidArgument: true,
		}},
		{"unsupported", &msgs.OutputPins{}, &msgs.CommandErr{Message: msgs.ErrUnsupportedCommand.Error()}},
	}
	b, _ := newTestBridge()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reply := Execute(ctx, b.Board, tc.msg)
			require.True(t, proto.Equal(tc.reply, reply), "got %s", reply)
		})
	}
}

func TestExecuteClosed(t *testing.T) {
	b, _ := newTestBridge()
	require.NoError(t, b.Board.Close())
	reply := Execute(context.Background(), b.Board, &msgs.DigitalWrite{Pin: 1})
	require.Equal(t, &msgs.CommandErr{Message: board.ErrClosed.Error()}, reply)
}

func decodeReply(t *testing.T, data []byte) (*msgs.Typed, msgs.Message) {
	require.NotNil(t, data)
	typed, err := msgs.DecodeTyped(data)
	require.NoError(t, err)
	msg, err := typed.Decode()
	require.NoError(t, err)
	return typed, msg
}

func TestHandleCommand(t *testing.T) {
	b, tr := newTestBridge()
	typed, err := msgs.TypedFrom(&msgs.DigitalWrite{Pin: 3, High: true})
	require.NoError(t, err)
	typed.Sequence = 7
	payload, err := typed.Encode()
	require.NoError(t, err)

	reply, msg := decodeReply(t, b.handleCommand(context.Background(), payload))
	require.Equal(t, uint32(7), reply.Sequence)
	require.True(t, reply.IsReply())
	require.IsType(t, &msgs.CommandOK{}, msg)
	require.Equal(t, []byte{'1', '3'}, tr.written)
	require.True(t, b.Board.IsHigh(3))
}

func TestHandleCommandIgnored(t *testing.T) {
	b, _ := newTestBridge()
	require.Nil(t, b.handleCommand(context.Background(), []byte{0xff, 0xff}))

	typed, err := msgs.TypedFrom(&msgs.AnalogSample{Pin: 1})
	require.NoError(t, err)
	payload, err := typed.Encode()
	require.NoError(t, err)
	require.Nil(t, b.handleCommand(context.Background(), payload))
}

func TestHandleCommandUnknownType(t *testing.T) {
	b, _ := newTestBridge()
	payload, err := (&msgs.Typed{TypeId: 0x7ff0, Sequence: 3}).Encode()
	require.NoError(t, err)
	reply, msg := decodeReply(t, b.handleCommand(context.Background(), payload))
	require.Equal(t, uint32(3), reply.Sequence)
	require.IsType(t, &msgs.CommandErr{}, msg)
}

func TestSample(t *testing.T) {
	b, _ := newTestBridge()
	typed, msg := decodeReply(t, b.sample(context.Background(), 2))
	require.True(t, typed.IsEvent())
	sample := msg.(*msgs.AnalogSample)
	require.Equal(t, uint32(2), sample.Pin)
	require.Equal(t, "512", sample.Value)
	require.NotZero(t, sample.Timestamp)
}
