package input

import (
	"fmt"

	"go-klavier/note"
)

// Kind is the closed set of host input events
type Kind int

const (
	// Pointer events targeted at a single key
	PointerDown Kind = iota
	PointerUp
	PointerEnter
	PointerLeave
	// Pointer button released anywhere on the surface
	GlobalPointerUp

	// Multi-touch events carrying the changed contacts
	TouchStart
	TouchMove
	TouchEnd
	TouchCancel

	// Physical keyboard
	KeyDown
	KeyUp

	numKinds
)

var kindNames = [numKinds]string{
	PointerDown:     "pointerdown",
	PointerUp:       "pointerup",
	PointerEnter:    "pointerenter",
	PointerLeave:    "pointerleave",
	GlobalPointerUp: "globalpointerup",
	TouchStart:      "touchstart",
	TouchMove:       "touchmove",
	TouchEnd:        "touchend",
	TouchCancel:     "touchcancel",
	KeyDown:         "keydown",
	KeyUp:           "keyup",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Modifiers held while a key event was produced
type Modifiers struct {
	Meta  bool
	Alt   bool
	Shift bool
}

// Any reports whether any modifier is held
func (m Modifiers) Any() bool {
	return m.Meta || m.Alt || m.Shift
}

// ContactID identifies one touch contact for its whole lifetime
type ContactID int64

// Contact is a touch point in surface coordinates
type Contact struct {
	ID   ContactID
	X, Y float64
}

// Event is a single host input event.
// Pointer events set Note/HasNote to the key under the pointer,
// touch events set Contacts, key events set Key and Mods.
type Event struct {
	Kind     Kind
	Note     note.Note
	HasNote  bool
	Contacts []Contact
	Key      string
	Mods     Modifiers
}

// OnKey builds a pointer event targeted at n
func OnKey(kind Kind, n note.Note) Event {
	return Event{Kind: kind, Note: n, HasNote: true}
}

// Touches builds a touch event for the changed contacts
func Touches(kind Kind, contacts ...Contact) Event {
	return Event{Kind: kind, Contacts: contacts}
}

// KeyEvent builds a physical key event
func KeyEvent(kind Kind, key string, mods Modifiers) Event {
	return Event{Kind: kind, Key: key, Mods: mods}
}

// Player is the only surface input adapters use to affect note state
type Player interface {
	Press(n note.Note)
	Release(n note.Note)
}
