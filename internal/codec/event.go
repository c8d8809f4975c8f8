// Package codec encodes and decodes the fixed-layout records of the Linux
// input subsystem ABI. Raw byte layouts never leave this package: the rest of
// the codebase works with the typed Event and setup structs and calls Marshal
// or Unmarshal at the syscall boundary.
//
// All records are little-endian with the field order and widths of the 64-bit
// kernel headers: input_event is {sec:64, usec:64, type:16, code:16, value:32}.
package codec

import (
	"encoding/binary"
	"fmt"
)

// EventSize is the wire size of one input_event record on a 64-bit kernel.
const EventSize = 24

// Event mirrors struct input_event
type Event struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// NewEvent builds an event with a zeroed timestamp. The kernel fills the
// timestamp when it consumes the record, so emitted events never carry one.
func NewEvent(typ, code uint16, value int32) Event {
	return Event{Type: typ, Code: code, Value: value}
}

// Marshal packs the event into its 24-byte kernel representation
func (e Event) Marshal() []byte {
	buf := make([]byte, EventSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(e.Sec))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(e.Usec))
	binary.LittleEndian.PutUint16(buf[16:18], e.Type)
	binary.LittleEndian.PutUint16(buf[18:20], e.Code)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(e.Value))
	return buf
}

// Unmarshal decodes one input_event record. It is the structural inverse of
// Marshal and rejects anything that is not exactly one record long.
func Unmarshal(buf []byte) (Event, error) {
	if len(buf) != EventSize {
		return Event{}, fmt.Errorf("input event record is %d bytes, want %d", len(buf), EventSize)
	}
	return Event{
		Sec:   int64(binary.LittleEndian.Uint64(buf[0:8])),
		Usec:  int64(binary.LittleEndian.Uint64(buf[8:16])),
		Type:  binary.LittleEndian.Uint16(buf[16:18]),
		Code:  binary.LittleEndian.Uint16(buf[18:20]),
		Value: int32(binary.LittleEndian.Uint32(buf[20:24])),
	}, nil
}
