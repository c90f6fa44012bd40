package msgs

import (
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"
)

// ErrUnknownType indicates unknown type id.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}

var (
	// ErrNotSerializable indicates the message is not serializable.
	ErrNotSerializable = errors.New("not serializable message")
	// ErrUnsupportedCommand indicates the command is unsupported.
	ErrUnsupportedCommand = errors.New("unsupported command")
)

// TypedFrom wraps a message into Typed.
func TypedFrom(msg Message) (*Typed, error) {
	typeID, ok := TypeIDOf(msg)
	if !ok {
		return nil, ErrNotSerializable
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Typed{TypeId: typeID, Message: data}, nil
}

// DecodeTyped decodes the envelope.
func DecodeTyped(data []byte) (*Typed, error) {
	var typed Typed
	if err := proto.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	return &typed, nil
}

// Encode encodes the envelope.
func (m *Typed) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// Decode decodes the wrapped message.
func (m *Typed) Decode() (Message, error) {
	msg := newMessage(m.TypeId)
	if msg == nil {
		return nil, &ErrUnknownType{TypeID: m.TypeId}
	}
	if err := proto.Unmarshal(m.Message, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Kind returns the kind of the message.
func (m *Typed) Kind() uint32 {
	return m.TypeId & TypeIDMaskKind
}

// IsCommand indicates the message is a command.
func (m *Typed) IsCommand() bool {
	return m.Kind() == TypeIDKindCommand && m.TypeId&TypeIDMaskReply == 0
}

// IsReply indicates the message is a reply to a command.
func (m *Typed) IsReply() bool {
	return m.Kind() == TypeIDKindCommand && m.TypeId&TypeIDMaskReply != 0
}

// IsEvent indicates the message is an event.
func (m *Typed) IsEvent() bool {
	return m.Kind() == TypeIDKindEvent
}
