// Package msgs defines the messages a bridged board exchanges over MQTT.
package msgs

import (
	"github.com/golang/protobuf/proto"
)

// TypeID masks
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
	TypeIDMaskReply uint32 = 0x00008000
)

// Message Kinds
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupDigital uint32 = 0x00010000
	GroupAnalog  uint32 = 0x00020000
)

// TypeIDs
const (
	CommandOKTypeID        uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID       uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	ConfigureOutputsTypeID uint32 = GroupDigital | 0x0000
	OutputPinsTypeID       uint32 = ConfigureOutputsTypeID | TypeIDMaskReply
	DigitalWriteTypeID     uint32 = GroupDigital | 0x0001
	PinStateQueryTypeID    uint32 = GroupDigital | 0x0002
	PinStateTypeID         uint32 = PinStateQueryTypeID | TypeIDMaskReply
	AllOffTypeID           uint32 = GroupDigital | 0x0003
	AnalogWriteTypeID      uint32 = GroupAnalog | 0x0000
	AnalogReadTypeID       uint32 = GroupAnalog | 0x0001
	AnalogReadingTypeID    uint32 = AnalogReadTypeID | TypeIDMaskReply
	AnalogSampleTypeID     uint32 = TypeIDKindEvent | GroupAnalog | 0x0001
)

// Message is a message which can be serialized over the wire.
type Message interface {
	proto.Message
}

func newMessage(typeID uint32) Message {
	switch typeID {
	case CommandOKTypeID:
		return &CommandOK{}
	case CommandErrTypeID:
		return &CommandErr{}
	case ConfigureOutputsTypeID:
		return &ConfigureOutputs{}
	case OutputPinsTypeID:
		return &OutputPins{}
	case DigitalWriteTypeID:
		return &DigitalWrite{}
	case PinStateQueryTypeID:
		return &PinStateQuery{}
	case PinStateTypeID:
		return &PinState{}
	case AllOffTypeID:
		return &AllOff{}
	case AnalogWriteTypeID:
		return &AnalogWrite{}
	case AnalogReadTypeID:
		return &AnalogRead{}
	case AnalogReadingTypeID:
		return &AnalogReading{}
	case AnalogSampleTypeID:
		return &AnalogSample{}
	}
	return nil
}

// TypeIDOf returns the type ID of a known message.
func TypeIDOf(msg Message) (uint32, bool) {
	switch msg.(type) {
	case *CommandOK:
		return CommandOKTypeID, true
	case *CommandErr:
		return CommandErrTypeID, true
	case *ConfigureOutputs:
		return ConfigureOutputsTypeID, true
	case *OutputPins:
		return OutputPinsTypeID, true
	case *DigitalWrite:
		return DigitalWriteTypeID, true
	case *PinStateQuery:
		return PinStateQueryTypeID, true
	case *PinState:
		return PinStateTypeID, true
	case *AllOff:
		return AllOffTypeID, true
	case *AnalogWrite:
		return AnalogWriteTypeID, true
	case *AnalogRead:
		return AnalogReadTypeID, true
	case *AnalogReading:
		return AnalogReadingTypeID, true
	case *AnalogSample:
		return AnalogSampleTypeID, true
	}
	return 0, false
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return &CommandErr{Message: err.Error()}
}

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }
