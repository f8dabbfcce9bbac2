package system

import (
	"encoding/binary"
	"errors"
)

// Linux input-event-codes.h
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvRel = 0x02

	RelX = 0x00
	RelY = 0x01

	KeyReleased = 0
	KeyPressed  = 1
	KeyRepeated = 2
)

// ErrNoInputDevices is returned when no evdev device could be opened.
var ErrNoInputDevices = errors.New("no evdev input devices")

// InputEvent is one decoded struct input_event without its timestamp.
type InputEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

// EventLayout describes the size of struct input_event on this platform.
// The record is a struct timeval followed by u16 type, u16 code, s32 value.
type EventLayout struct {
	TimevalSize int
}

// RecordSize is the size of one input_event record.
func (l EventLayout) RecordSize() int { return l.TimevalSize + 2 + 2 + 4 }

// DecodeEvents parses every complete record in buf. A trailing partial
// record is ignored.
func (l EventLayout) DecodeEvents(buf []byte) []InputEvent {
	size := l.RecordSize()
	if size <= 8 {
		return nil
	}
	tv := l.TimevalSize
	events := make([]InputEvent, 0, len(buf)/size)
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off : off+size]
		events = append(events, InputEvent{
			Type:  binary.LittleEndian.Uint16(rec[tv : tv+2]),
			Code:  binary.LittleEndian.Uint16(rec[tv+2 : tv+4]),
			Value: int32(binary.LittleEndian.Uint32(rec[tv+4 : tv+8])),
		})
	}
	return events
}
