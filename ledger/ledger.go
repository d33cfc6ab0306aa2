// Package ledger holds the authoritative set of pressed notes.
//
// A Ledger runs either uncontrolled, where its own press/release history
// decides what is active, or controlled, where an owner supplies the
// visible set and learns about attempted changes through OnChange.
package ledger

import (
	"golang.org/x/exp/slices"

	"go-klavier/debug"
	"go-klavier/note"
)

// Mode is either Uncontrolled or Controlled
type Mode interface {
	isMode()
}

// Uncontrolled lets the ledger manage its own active set
type Uncontrolled struct{}

// Controlled overrides the visible active set with Notes, verbatim.
// A nil or empty Notes still means controlled: "supplied but empty".
type Controlled struct {
	Notes []note.Note
}

func (Uncontrolled) isMode() {}
func (Controlled) isMode()   {}

// Callbacks are the ledger's only outbound notifications
type Callbacks struct {
	OnPress   func(n note.Note)
	OnRelease func(n note.Note)
	OnChange  func(active []note.Note)
}

// Ledger is the note state machine. It is not safe for concurrent use;
// every call is expected from the host's single event loop.
type Ledger struct {
	touched bool
	active  []note.Note
	mode    Mode
	cb      Callbacks
}

// New creates a ledger seeded with the controlled notes if mode is
// Controlled, otherwise with defaults.
func New(defaults []note.Note, mode Mode, cb Callbacks) *Ledger {
	mode = normalize(mode)
	seed := defaults
	if c, ok := mode.(Controlled); ok {
		seed = c.Notes
	}
	return &Ledger{
		active: slices.Clone(seed),
		mode:   mode,
		cb:     cb,
	}
}

func normalize(m Mode) Mode {
	switch m := m.(type) {
	case Controlled:
		return Controlled{Notes: slices.Clone(m.Notes)}
	case *Controlled:
		if m == nil {
			return Uncontrolled{}
		}
		return Controlled{Notes: slices.Clone(m.Notes)}
	default:
		return Uncontrolled{}
	}
}

// SetMode applies the mode for the next update. Switching modes or
// replacing the controlled notes never fires OnChange.
func (l *Ledger) SetMode(m Mode) {
	l.mode = normalize(m)
}

// Mode returns the current mode
func (l *Ledger) Mode() Mode {
	return l.mode
}

// Controlled reports whether an override list is in effect
func (l *Ledger) Controlled() bool {
	_, ok := l.mode.(Controlled)
	return ok
}

// SetCallbacks replaces the notification callbacks
func (l *Ledger) SetCallbacks(cb Callbacks) {
	l.cb = cb
}

// Touched reports whether the ledger has seen its first press
func (l *Ledger) Touched() bool {
	return l.touched
}

// Active returns the externally visible active set
func (l *Ledger) Active() []note.Note {
	if c, ok := l.mode.(Controlled); ok {
		return slices.Clone(c.Notes)
	}
	return slices.Clone(l.active)
}

// Internal returns the ledger's own active set, whatever the mode
func (l *Ledger) Internal() []note.Note {
	return slices.Clone(l.active)
}

// IsActive reports whether n is in the visible set
func (l *Ledger) IsActive(n note.Note) bool {
	if c, ok := l.mode.(Controlled); ok {
		return slices.Contains(c.Notes, n)
	}
	return slices.Contains(l.active, n)
}

// Press turns n on. The first press ever replaces any default notes.
// OnPress fires on every call, including re-presses of an active note.
func (l *Ledger) Press(n note.Note) {
	next := l.active
	switch {
	case !l.touched:
		l.touched = true
		next = []note.Note{n}
	case !slices.Contains(l.active, n):
		next = append(slices.Clone(l.active), n)
	}
	debug.Log("ledger", "press %v -> %v", n, next)

	changed := l.commit(next)
	if l.cb.OnPress != nil {
		l.cb.OnPress(n)
	}
	if changed {
		l.notify()
	}
}

// Release turns n off. OnRelease fires even if n was not active.
func (l *Ledger) Release(n note.Note) {
	next := l.active
	if i := slices.Index(l.active, n); i >= 0 {
		next = slices.Delete(slices.Clone(l.active), i, i+1)
	}
	debug.Log("ledger", "release %v -> %v", n, next)

	changed := l.commit(next)
	if l.cb.OnRelease != nil {
		l.cb.OnRelease(n)
	}
	if changed {
		l.notify()
	}
}

// commit stores next and reports whether the content changed
func (l *Ledger) commit(next []note.Note) bool {
	changed := !slices.Equal(l.active, next)
	l.active = next
	return changed
}

// notify hands the owner the internal set. It runs after the per-note
// callback, so in controlled mode the owner sees the note first and then
// the set it would have had.
func (l *Ledger) notify() {
	if l.cb.OnChange != nil {
		l.cb.OnChange(slices.Clone(l.active))
	}
}
