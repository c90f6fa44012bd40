package msgs

import (
	"github.com/golang/protobuf/proto"
)

// Typed is the envelope carried over MQTT.
type Typed struct {
	TypeId   uint32 `protobuf:"varint,1,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Sequence uint32 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Message  []byte `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *Typed) Reset()         { *m = Typed{} }
func (m *Typed) String() string { return proto.CompactTextString(m) }
func (*Typed) ProtoMessage()    {}

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
}

func (m *CommandOK) Reset()         { *m = CommandOK{} }
func (m *CommandOK) String() string { return proto.CompactTextString(m) }
func (*CommandOK) ProtoMessage()    {}

// CommandErr is the generic reply representing a command error.
type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
	// InvalidArgument is set when the board rejected the arguments
	// without touching the wire.
	InvalidArgument bool `protobuf:"varint,2,opt,name=invalid_argument,json=invalidArgument,proto3" json:"invalid_argument,omitempty"`
}

func (m *CommandErr) Reset()         { *m = CommandErr{} }
func (m *CommandErr) String() string { return proto.CompactTextString(m) }
func (*CommandErr) ProtoMessage()    {}

// ConfigureOutputs registers output pins.
type ConfigureOutputs struct {
	Pins []uint32 `protobuf:"varint,1,rep,packed,name=pins,proto3" json:"pins,omitempty"`
}

func (m *ConfigureOutputs) Reset()         { *m = ConfigureOutputs{} }
func (m *ConfigureOutputs) String() string { return proto.CompactTextString(m) }
func (*ConfigureOutputs) ProtoMessage()    {}

// OutputPins replies the registered output pins.
type OutputPins struct {
	Pins []uint32 `protobuf:"varint,1,rep,packed,name=pins,proto3" json:"pins,omitempty"`
}

func (m *OutputPins) Reset()         { *m = OutputPins{} }
func (m *OutputPins) String() string { return proto.CompactTextString(m) }
func (*OutputPins) ProtoMessage()    {}

// DigitalWrite sets a pin high or low.
type DigitalWrite struct {
	Pin  uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	High bool   `protobuf:"varint,2,opt,name=high,proto3" json:"high,omitempty"`
}

func (m *DigitalWrite) Reset()         { *m = DigitalWrite{} }
func (m *DigitalWrite) String() string { return proto.CompactTextString(m) }
func (*DigitalWrite) ProtoMessage()    {}

// PinStateQuery asks for the cached level of a pin.
type PinStateQuery struct {
	Pin uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
}

func (m *PinStateQuery) Reset()         { *m = PinStateQuery{} }
func (m *PinStateQuery) String() string { return proto.CompactTextString(m) }
func (*PinStateQuery) ProtoMessage()    {}

// PinState replies the cached level of a pin.
type PinState struct {
	Pin  uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	High bool   `protobuf:"varint,2,opt,name=high,proto3" json:"high,omitempty"`
}

func (m *PinState) Reset()         { *m = PinState{} }
func (m *PinState) String() string { return proto.CompactTextString(m) }
func (*PinState) ProtoMessage()    {}

// AnalogWrite writes a value in [0, 255].
type AnalogWrite struct {
	Pin   uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	Value uint32 `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *AnalogWrite) Reset()         { *m = AnalogWrite{} }
func (m *AnalogWrite) String() string { return proto.CompactTextString(m) }
func (*AnalogWrite) ProtoMessage()    {}

// AnalogRead reads a pin.
type AnalogRead struct {
	Pin uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
}

func (m *AnalogRead) Reset()         { *m = AnalogRead{} }
func (m *AnalogRead) String() string { return proto.CompactTextString(m) }
func (*AnalogRead) ProtoMessage()    {}

// AnalogReading replies the payload of an analog read.
type AnalogReading struct {
	Pin   uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	Value string `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *AnalogReading) Reset()         { *m = AnalogReading{} }
func (m *AnalogReading) String() string { return proto.CompactTextString(m) }
func (*AnalogReading) ProtoMessage()    {}

// AllOff sets all output pins low.
type AllOff struct {
}

func (m *AllOff) Reset()         { *m = AllOff{} }
func (m *AllOff) String() string { return proto.CompactTextString(m) }
func (*AllOff) ProtoMessage()    {}

// AnalogSample is the event of a polled analog read.
type AnalogSample struct {
	Pin       uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	Value     string `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
	Timestamp int64  `protobuf:"varint,3,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

func (m *AnalogSample) Reset()         { *m = AnalogSample{} }
func (m *AnalogSample) String() string { return proto.CompactTextString(m) }
func (*AnalogSample) ProtoMessage()    {}
