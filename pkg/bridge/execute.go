// Package bridge exposes a board to remote clients over MQTT.
package bridge

import (
	"context"
	"errors"

	"github.com/robotalks/arduino.go/pkg/board"
	"github.com/robotalks/arduino.go/pkg/msgs"
)

// Execute runs a command message on the board and returns the reply.
func Execute(ctx context.Context, ctl *board.Controller, msg msgs.Message) msgs.Message {
	var err error
	switch m := msg.(type) {
	case *msgs.ConfigureOutputs:
		pins := make([]board.Pin, len(m.Pins))
		for n, pin := range m.Pins {
			pins[n] = board.Pin(pin)
		}
		if _, err = ctl.ConfigureOutputs(ctx, pins...); err == nil {
			return &msgs.OutputPins{Pins: m.Pins}
		}
	case *msgs.DigitalWrite:
		if m.High {
			err = ctl.SetHigh(ctx, board.Pin(m.Pin))
		} else {
			err = ctl.SetLow(ctx, board.Pin(m.Pin))
		}
	case *msgs.PinStateQuery:
		return &msgs.PinState{Pin: m.Pin, High: ctl.IsHigh(board.Pin(m.Pin))}
	case *msgs.AllOff:
		err = ctl.AllOff(ctx)
	case *msgs.AnalogWrite:
		err = ctl.AnalogWrite(ctx, board.Pin(m.Pin), int(m.Value))
	case *msgs.AnalogRead:
		var r board.Reading
		if r, err = ctl.AnalogRead(ctx, board.Pin(m.Pin)); err == nil {
			return &msgs.AnalogReading{Pin: m.Pin, Value: string(r)}
		}
	default:
		err = msgs.ErrUnsupportedCommand
	}
	if err != nil {
		reply := msgs.NewCommandErr(err)
		reply.InvalidArgument = errors.Is(err, board.ErrInvalidArgument)
		return reply
	}
	return &msgs.CommandOK{}
}
