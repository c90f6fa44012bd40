package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/arduino.go/pkg/board"
	"github.com/robotalks/arduino.go/pkg/bridge/mqtt"
	"github.com/robotalks/arduino.go/pkg/msgs"
)

// Defaults.
const (
	DefaultCommandTimeout = 10 * time.Second
	DefaultConnectTimeout = 5 * time.Second
)

// Meta is published retained on <id>/meta while the bridge is up.
type Meta struct {
	Description string            `json:"description,omitempty"`
	Address     string            `json:"address"`
	BaudRate    int               `json:"baud_rate"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Bridge serves one board under <prefix><id>/:
//
//	cmd   commands in, as msgs.Typed
//	msg   replies (same sequence as the command) and events out
//	meta  retained JSON Meta, cleared on exit
type Bridge struct {
	Board          *board.Controller
	Queue          *mqtt.Queue
	ID             string
	Meta           Meta
	CommandTimeout time.Duration
	PollPins       []board.Pin
	PollInterval   time.Duration

	cmdCh chan []byte
}

// New creates a Bridge connecting to the broker at brokerURL.
func New(ctl *board.Controller, brokerURL, id string) (*Bridge, error) {
	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+id+"/meta", nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("arduino:" + id)
	}
	b := &Bridge{
		Board:          ctl,
		Queue:          mqtt.NewQueue(opts, topicPrefix),
		ID:             id,
		CommandTimeout: DefaultCommandTimeout,
		cmdCh:          make(chan []byte, 16),
	}
	b.Queue.OnConnect = func(*mqtt.Queue) { b.publishMeta() }
	return b, nil
}

// Name implements framework.Named.
func (b *Bridge) Name() string {
	return "bridge:" + b.ID
}

// Run implements framework.Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	sub := b.Queue.Sub(b.ID+"/cmd", mqtt.Handler(b.enqueue))
	if err := b.Queue.Connect(DefaultConnectTimeout); err != nil {
		return err
	}
	defer b.Queue.Close()
	defer sub.Close()

	var poll <-chan time.Time
	if len(b.PollPins) > 0 && b.PollInterval > 0 {
		ticker := time.NewTicker(b.PollInterval)
		defer ticker.Stop()
		poll = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			b.Queue.PubWith(b.ID+"/meta", nil, 1, true).WaitTimeout(time.Second)
			return ctx.Err()
		case payload := <-b.cmdCh:
			if reply := b.handleCommand(ctx, payload); reply != nil {
				b.Queue.Pub(b.ID+"/msg", reply)
			}
		case <-poll:
			for _, pin := range b.PollPins {
				if event := b.sample(ctx, pin); event != nil {
					b.Queue.Pub(b.ID+"/msg", event)
				}
			}
		}
	}
}

func (b *Bridge) enqueue(_ string, payload []byte) {
	select {
	case b.cmdCh <- payload:
	default:
		glog.Warningf("%s: command dropped, queue full", b.ID)
	}
}

func (b *Bridge) publishMeta() {
	meta, err := json.Marshal(&b.Meta)
	if err != nil {
		glog.Errorf("%s: encode meta: %v", b.ID, err)
		return
	}
	b.Queue.PubWith(b.ID+"/meta", meta, 1, true)
}

// handleCommand decodes and executes a command, returning the encoded reply.
// Undecodable payloads are dropped, unknown command types get CommandErr.
func (b *Bridge) handleCommand(ctx context.Context, payload []byte) []byte {
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		glog.Warningf("%s: bad command: %v", b.ID, err)
		return nil
	}
	if !typed.IsCommand() {
		return nil
	}
	var reply msgs.Message
	if msg, err := typed.Decode(); err != nil {
		reply = msgs.NewCommandErr(err)
	} else {
		timeout := b.CommandTimeout
		if timeout <= 0 {
			timeout = DefaultCommandTimeout
		}
		cmdCtx, cancel := context.WithTimeout(ctx, timeout)
		reply = Execute(cmdCtx, b.Board, msg)
		cancel()
		glog.V(2).Infof("%s: %s => %s", b.ID, msg, reply)
	}
	return b.encode(reply, typed.Sequence)
}

func (b *Bridge) sample(ctx context.Context, pin board.Pin) []byte {
	timeout := b.CommandTimeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	r, err := b.Board.AnalogRead(cmdCtx, pin)
	if err != nil {
		glog.Warningf("%s: poll pin %d: %v", b.ID, pin, err)
		return nil
	}
	return b.encode(&msgs.AnalogSample{
		Pin:       uint32(pin),
		Value:     string(r),
		Timestamp: time.Now().UnixNano(),
	}, 0)
}

func (b *Bridge) encode(msg msgs.Message, seq uint32) []byte {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		glog.Errorf("%s: %v", b.ID, err)
		return nil
	}
	typed.Sequence = seq
	data, err := typed.Encode()
	if err != nil {
		glog.Errorf("%s: encode: %v", b.ID, err)
		return nil
	}
	return data
}
