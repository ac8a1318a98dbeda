// Package protomsg exposes protobuf messages to the interop protocol.
// Messages are dynamic: their schema comes from descriptors loaded at run
// time, so any message type can be inspected and edited without generated
// code.
//
// Fields are members, repeated fields are arrays, map fields are hashes
// and bytes fields are buffers. A message's descriptor is its metaobject.
// Views onto repeated, map and bytes fields are live: they read and write
// the message they came from. Messages are not synchronized; callers
// sharing one between goroutines must serialize access.
package protomsg

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
)

// Message wraps a dynamic message. Messages use their descriptor as
// interop shape, so each message type gets its own table.
type Message struct {
	m *dynamic.Message
}

// Wrap exposes an existing dynamic message.
func Wrap(m *dynamic.Message) *Message { return &Message{m: m} }

// New creates an empty message of the given type.
func New(md *desc.MessageDescriptor) *Message { return Wrap(dynamic.NewMessage(md)) }

// Unmarshal decodes the binary encoding of a message of the given type.
func Unmarshal(md *desc.MessageDescriptor, data []byte) (*Message, error) {
	m := dynamic.NewMessage(md)
	if err := m.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("protomsg: unmarshal %s: %w", md.GetFullyQualifiedName(), err)
	}
	return Wrap(m), nil
}

func (msg *Message) InteropShape() any { return msg.m.GetMessageDescriptor() }

// Dynamic returns the wrapped message.
func (msg *Message) Dynamic() *dynamic.Message { return msg.m }

// Descriptor returns the message's type.
func (msg *Message) Descriptor() *desc.MessageDescriptor { return msg.m.GetMessageDescriptor() }

// Marshal returns the binary encoding of the message.
func (msg *Message) Marshal() ([]byte, error) { return msg.m.Marshal() }

func (msg *Message) String() string { return msg.m.String() }

// List is a live view of a repeated field.
type List struct {
	m     *dynamic.Message
	field *desc.FieldDescriptor
}

// Map is a live view of a map field.
type Map struct {
	m     *dynamic.Message
	field *desc.FieldDescriptor
}

// Bytes is the value of a bytes field. It is read-only; a field is
// changed by writing a new value to it.
type Bytes struct {
	data []byte
}
