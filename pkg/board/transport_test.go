package board

import (
	"errors"
	"sync"
	"time"
)

var errWrite = errors.New("write failed")

// scriptTransport replies with scripted chunks, then the ready marker.
type scriptTransport struct {
	replies   [][]byte
	reads     int
	written   []byte
	writeErr  error
	readErr   error
	lineErr   error
	lines     map[string]bool
	closed    int
	lock      sync.Mutex
	readDelay time.Duration
}

func newScriptTransport(replies ...string) *scriptTransport {
	t := &scriptTransport{lines: make(map[string]bool)}
	t.reply(replies...)
	return t
}

func (t *scriptTransport) reply(replies ...string) *scriptTransport {
	t.lock.Lock()
	defer t.lock.Unlock()
	for _, r := range replies {
		t.replies = append(t.replies, []byte(r))
	}
	return t
}

func (t *scriptTransport) Write(p []byte) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.writeErr != nil {
		return t.writeErr
	}
	t.written = append(t.written, p...)
	return nil
}

func (t *scriptTransport) ReadAvailable(timeout time.Duration) ([]byte, error) {
	if t.readDelay > 0 {
		time.Sleep(t.readDelay)
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.reads++
	if t.readErr != nil {
		return nil, t.readErr
	}
	if len(t.replies) == 0 {
		return []byte(ReadyMarker + "\r\n"), nil
	}
	r := t.replies[0]
	t.replies = t.replies[1:]
	return r, nil
}

func (t *scriptTransport) SetControlLine(name string, asserted bool) error {
	if t.lineErr != nil {
		return t.lineErr
	}
	t.lines[name] = asserted
	return nil
}

func (t *scriptTransport) Close() error {
	t.closed++
	return nil
}

func (t *scriptTransport) Address() string {
	return "/dev/test"
}

func (t *scriptTransport) BaudRate() int {
	return DefaultBaudRate
}

func (t *scriptTransport) bytes() []byte {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]byte(nil), t.written...)
}

func (t *scriptTransport) readCount() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.reads
}
