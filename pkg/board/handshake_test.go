package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAwaitReady(t *testing.T) {
	testCases := []struct {
		name    string
		replies []string
		reads   int
	}{
		{"immediate", nil, 1},
		{"not ready twice", []string{"not ready", "not ready"}, 3},
		{"empty on timeout", []string{"", "", ""}, 4},
		{"line endings", []string{"?\r\n"}, 1},
		{"bare newline", []string{"\n"}, 2},
		{"marker with noise", []string{"??"}, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := newScriptTransport(tc.replies...)
			s := &Synchronizer{Transport: tr, Timeout: time.Millisecond}
			require.NoError(t, s.AwaitReady(context.Background()))
			require.Equal(t, tc.reads, tr.readCount())
		})
	}
}

func TestAwaitReadyTransportError(t *testing.T) {
	errRead := errors.New("read failed")
	tr := newScriptTransport()
	tr.readErr = errRead
	s := &Synchronizer{Transport: tr}
	require.Equal(t, errRead, s.AwaitReady(context.Background()))
	require.Equal(t, 1, tr.readCount())
}

func TestAwaitReadyDeadline(t *testing.T) {
	tr := newScriptTransport()
	for i := 0; i < 1000; i++ {
		tr.reply("busy")
	}
	tr.readDelay = time.Millisecond
	s := &Synchronizer{Transport: tr, Timeout: time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Equal(t, context.DeadlineExceeded, s.AwaitReady(ctx))
	require.Less(t, tr.readCount(), 1000)
}

func TestSendWaitsBeforeEachByte(t *testing.T) {
	tr := newScriptTransport("x", "?", "y", "?")
	s := &Synchronizer{Transport: tr}
	require.NoError(t, s.Send(context.Background(), &SetDigital{Pin: 2, Level: High}))
	require.Equal(t, []byte{'1', '2'}, tr.bytes())
	require.Equal(t, 4, tr.readCount())
}

func TestSendInvalidNoTransport(t *testing.T) {
	tr := newScriptTransport()
	s := &Synchronizer{Transport: tr}
	err := s.Send(context.Background(), &WriteAnalog{Pin: 1, Value: 300})
	require.True(t, errors.Is(err, ErrInvalidArgument))
	require.Zero(t, tr.readCount())
	require.Empty(t, tr.bytes())
}
