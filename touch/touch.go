// Package touch maps concurrent touch contacts onto note presses.
//
// Each contact is either absent or resting on one key. A key stays down
// while at least one contact rests on it, so lifting one of two fingers
// from the same key does not release it.
package touch

import (
	"golang.org/x/exp/slices"

	"go-klavier/debug"
	"go-klavier/input"
	"go-klavier/note"
)

// HitTester resolves a surface point to the key drawn there
type HitTester interface {
	NoteAt(x, y float64) (note.Note, bool)
}

// HitTestFunc adapts a function to HitTester
type HitTestFunc func(x, y float64) (note.Note, bool)

func (f HitTestFunc) NoteAt(x, y float64) (note.Note, bool) {
	return f(x, y)
}

// Tracker owns the contact -> note map
type Tracker struct {
	bus    *input.Bus
	player input.Player
	hit    HitTester
	keys   note.Range

	contacts map[input.ContactID]note.Note
	sub      *input.Subscription
}

// New creates a disabled tracker
func New(bus *input.Bus, player input.Player, hit HitTester, keys note.Range) *Tracker {
	return &Tracker{
		bus:      bus,
		player:   player,
		hit:      hit,
		keys:     keys,
		contacts: make(map[input.ContactID]note.Note),
	}
}

// Enable subscribes to touch events
func (t *Tracker) Enable() {
	if t.sub.Active() {
		return
	}
	t.sub = t.bus.Subscribe(t.handle,
		input.TouchStart, input.TouchMove, input.TouchEnd, input.TouchCancel)
}

// Disable drops the subscription and lifts every contact, releasing each
// held key once
func (t *Tracker) Disable() {
	t.sub.Close()
	t.sub = nil

	var held []note.Note
	for _, n := range t.contacts {
		if !slices.Contains(held, n) {
			held = append(held, n)
		}
	}
	slices.Sort(held)
	t.contacts = make(map[input.ContactID]note.Note)
	for _, n := range held {
		t.player.Release(n)
	}
}

// Enabled reports whether the tracker is listening
func (t *Tracker) Enabled() bool {
	return t.sub.Active()
}

// Contacts returns a snapshot of the live contacts
func (t *Tracker) Contacts() map[input.ContactID]note.Note {
	out := make(map[input.ContactID]note.Note, len(t.contacts))
	for id, n := range t.contacts {
		out[id] = n
	}
	return out
}

func (t *Tracker) handle(ev input.Event) {
	for _, c := range ev.Contacts {
		switch ev.Kind {
		case input.TouchStart:
			t.start(c)
		case input.TouchMove:
			t.move(c)
		case input.TouchEnd, input.TouchCancel:
			t.end(c)
		default:
			debug.Log("touch", "unexpected event %v", ev.Kind)
		}
	}
}

func (t *Tracker) noteAt(c input.Contact) (note.Note, bool) {
	if t.hit == nil {
		return 0, false
	}
	n, ok := t.hit.NoteAt(c.X, c.Y)
	if !ok || !n.Valid() || !t.keys.Contains(n) {
		return 0, false
	}
	return n, true
}

func (t *Tracker) start(c input.Contact) {
	n, ok := t.noteAt(c)
	if !ok {
		debug.Log("touch", "contact %d started off keys at (%.1f, %.1f)", c.ID, c.X, c.Y)
		return
	}
	// a reused id that never ended still counts as leaving its old key
	prev, had := t.contacts[c.ID]
	t.contacts[c.ID] = n
	t.player.Press(n)
	if had && prev != n {
		t.releaseIfLast(prev, c.ID)
	}
}

func (t *Tracker) move(c input.Contact) {
	prev, had := t.contacts[c.ID]
	n, ok := t.noteAt(c)

	switch {
	case !had && !ok:
		return
	case !had:
		// slid onto the keys from outside; this contact never pressed
		t.contacts[c.ID] = n
		t.player.Press(n)
	case !ok:
		delete(t.contacts, c.ID)
		t.releaseIfLast(prev, c.ID)
	case n == prev:
		return
	default:
		t.player.Press(n)
		t.contacts[c.ID] = n
		t.releaseIfLast(prev, c.ID)
	}
}

func (t *Tracker) end(c input.Contact) {
	prev, had := t.contacts[c.ID]
	if !had {
		return
	}
	delete(t.contacts, c.ID)
	t.releaseIfLast(prev, c.ID)
}

// releaseIfLast releases n unless another contact still rests on it
func (t *Tracker) releaseIfLast(n note.Note, leaving input.ContactID) {
	for id, other := range t.contacts {
		if id != leaving && other == n {
			debug.LogEvery(16, "touch", "%v still held by contact %d", n, id)
			return
		}
	}
	t.player.Release(n)
}
