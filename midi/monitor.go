package midi

import (
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-klavier/note"
)

// Entry is one recorded notification
type Entry struct {
	Event   Event
	Message gomidi.Message
	At      time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %-4s %s", e.At.Format("15:04:05.000"), note.Note(e.Event.Note).Name(), e.Message.String())
}

// Monitor keeps the most recent press/release notifications as MIDI
// messages, for display. It never talks to hardware.
type Monitor struct {
	channel  uint8
	velocity uint8
	size     int

	mu      sync.RWMutex
	entries []Entry
	total   int
	now     func() time.Time
}

// NewMonitor records messages on channel (0-15) with the given note-on
// velocity, keeping the last size entries
func NewMonitor(channel, velocity uint8, size int) *Monitor {
	if channel > 15 {
		channel = 15
	}
	if velocity == 0 || velocity > 127 {
		velocity = 100
	}
	if size < 1 {
		size = 1
	}
	return &Monitor{
		channel:  channel,
		velocity: velocity,
		size:     size,
		now:      time.Now,
	}
}

// NoteOn records a press
func (m *Monitor) NoteOn(n note.Note) {
	m.record(Event{Type: NoteOn, Channel: m.channel, Note: uint8(n), Velocity: m.velocity}, n)
}

// NoteOff records a release
func (m *Monitor) NoteOff(n note.Note) {
	m.record(Event{Type: NoteOff, Channel: m.channel, Note: uint8(n)}, n)
}

func (m *Monitor) record(ev Event, n note.Note) {
	if !n.Valid() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{Event: ev, Message: ev.Message(), At: m.now()})
	if len(m.entries) > m.size {
		m.entries = m.entries[len(m.entries)-m.size:]
	}
	m.total++
}

// Recent returns the kept entries, oldest first
func (m *Monitor) Recent() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Total returns how many notifications were recorded overall
func (m *Monitor) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}
