package board

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// Synchronizer waits for the readiness marker before each byte.
type Synchronizer struct {
	Transport Transport
	Timeout   time.Duration
}

// AwaitReady blocks until the firmware prints the readiness marker.
// Anything else read meanwhile is discarded. There's no retry limit:
// if the firmware never becomes ready, it returns only when ctx is done,
// which is checked between read attempts.
func (s *Synchronizer) AwaitReady(ctx context.Context) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := s.Transport.ReadAvailable(timeout)
		if err != nil {
			return err
		}
		text := stripLineEndings(data)
		if text == ReadyMarker {
			return nil
		}
		if text != "" && glog.V(4) {
			glog.Infof("%s: discard %q", s.Transport.Address(), text)
		}
	}
}

// SendByte sends one byte after the handshake.
func (s *Synchronizer) SendByte(ctx context.Context, b byte) error {
	if err := s.AwaitReady(ctx); err != nil {
		return err
	}
	glog.V(4).Infof("%s: SND %#02x", s.Transport.Address(), b)
	return s.Transport.Write([]byte{b})
}

// Send sends a command byte by byte.
func (s *Synchronizer) Send(ctx context.Context, cmd Command) error {
	steps, err := cmd.Encode()
	if err != nil {
		return err
	}
	glog.V(2).Infof("%s: %s", s.Transport.Address(), cmd)
	for _, b := range steps {
		if err = s.SendByte(ctx, b); err != nil {
			return err
		}
	}
	return nil
}
