// Package pointer turns a single pointer's press/drag/release gesture
// into note presses.
package pointer

import (
	"golang.org/x/exp/slices"

	"go-klavier/debug"
	"go-klavier/input"
	"go-klavier/note"
)

// Adapter handles pointer events on keys. Dragging with the button held
// presses every key entered; keys are released only by their own
// up/leave events, so a fast drag can leave several notes sounding.
type Adapter struct {
	bus    *input.Bus
	player input.Player
	keys   note.Range

	// private to the adapter, never part of the visible note state
	down bool
	// notes this pointer pressed and has not released
	held []note.Note

	keySub *input.Subscription
	upSub  *input.Subscription
}

// New creates a disabled adapter
func New(bus *input.Bus, player input.Player, keys note.Range) *Adapter {
	return &Adapter{bus: bus, player: player, keys: keys}
}

// Enable subscribes to key-targeted pointer events
func (a *Adapter) Enable() {
	if a.keySub.Active() {
		return
	}
	a.keySub = a.bus.Subscribe(a.handle,
		input.PointerDown, input.PointerUp, input.PointerEnter, input.PointerLeave)
}

// Disable drops every subscription, forgets the button state and
// releases the notes this pointer still holds
func (a *Adapter) Disable() {
	a.keySub.Close()
	a.keySub = nil
	a.upSub.Close()
	a.upSub = nil
	a.down = false

	held := a.held
	a.held = nil
	for _, n := range held {
		a.player.Release(n)
	}
}

// Enabled reports whether the adapter is listening
func (a *Adapter) Enabled() bool {
	return a.keySub.Active()
}

// Down reports whether the button is held
func (a *Adapter) Down() bool {
	return a.down
}

func (a *Adapter) handle(ev input.Event) {
	if !ev.HasNote || !ev.Note.Valid() || !a.keys.Contains(ev.Note) {
		debug.Log("pointer", "%v without a playable key", ev.Kind)
		return
	}

	switch ev.Kind {
	case input.PointerDown:
		if !a.upSub.Active() {
			a.upSub = a.bus.Subscribe(a.globalUp, input.GlobalPointerUp)
		}
		a.down = true
		a.press(ev.Note)
	case input.PointerUp, input.PointerLeave:
		if a.down {
			a.release(ev.Note)
		}
	case input.PointerEnter:
		if a.down {
			a.press(ev.Note)
		}
	default:
		debug.Log("pointer", "unexpected event %v", ev.Kind)
	}
}

func (a *Adapter) press(n note.Note) {
	if !slices.Contains(a.held, n) {
		a.held = append(a.held, n)
	}
	a.player.Press(n)
}

func (a *Adapter) release(n note.Note) {
	if i := slices.Index(a.held, n); i >= 0 {
		a.held = slices.Delete(a.held, i, i+1)
	}
	a.player.Release(n)
}

// globalUp is one-shot: it clears the button and removes itself
func (a *Adapter) globalUp(input.Event) {
	a.down = false
	a.upSub.Close()
	a.upSub = nil
}
