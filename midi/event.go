package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is a note notification from the keyboard
type Event struct {
	Type     uint8 // NoteOn, NoteOff
	Channel  uint8 // 0-15
	Note     uint8
	Velocity uint8
}

// Message encodes the event as a MIDI message
func (e Event) Message() gomidi.Message {
	if e.Type == NoteOff {
		return gomidi.NoteOff(e.Channel, e.Note)
	}
	return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
}

// Decode reads a note-on/off message back into an Event.
// A note-on with velocity 0 decodes as NoteOff.
func Decode(msg gomidi.Message) (Event, bool) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		if velocity == 0 {
			return Event{Type: NoteOff, Channel: channel, Note: key}, true
		}
		return Event{Type: NoteOn, Channel: channel, Note: key, Velocity: velocity}, true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return Event{Type: NoteOff, Channel: channel, Note: key}, true
	}
	return Event{}, false
}
