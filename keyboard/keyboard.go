// Package keyboard plays notes from a computer keyboard through a keymap.
package keyboard

import (
	"go-klavier/debug"
	"go-klavier/input"
	"go-klavier/keymap"
	"go-klavier/note"
)

// Ledger is what the adapter needs from the note state: the two actions
// plus a read of the visible set to suppress key repeat.
type Ledger interface {
	input.Player
	IsActive(n note.Note) bool
}

// Adapter handles key-down / key-up events.
// Key-down presses only if the note is not already active, key-up always
// releases: a computer key has exactly one depressor.
type Adapter struct {
	bus    *input.Bus
	ledger Ledger
	keyMap keymap.KeyMap
	keys   note.Range

	// note each held key resolved to on key-down
	held map[string]note.Note

	sub *input.Subscription
}

// New creates a disabled adapter
func New(bus *input.Bus, ledger Ledger, km keymap.KeyMap, keys note.Range) *Adapter {
	return &Adapter{bus: bus, ledger: ledger, keyMap: km, keys: keys, held: make(map[string]note.Note)}
}

// Enable subscribes to key events
func (a *Adapter) Enable() {
	if a.sub.Active() {
		return
	}
	a.sub = a.bus.Subscribe(a.handle, input.KeyDown, input.KeyUp)
}

// Disable drops the subscription and releases the keys still held,
// whose key-up would otherwise never arrive
func (a *Adapter) Disable() {
	a.sub.Close()
	a.sub = nil
	for key, n := range a.held {
		delete(a.held, key)
		a.ledger.Release(n)
	}
}

// Enabled reports whether the adapter is listening
func (a *Adapter) Enabled() bool {
	return a.sub.Active()
}

// SetKeyMap swaps the keymap, e.g. after an octave shift. Keys already
// held still release the note they pressed.
func (a *Adapter) SetKeyMap(km keymap.KeyMap) {
	a.keyMap = km
}

// KeyMap returns the keymap in use
func (a *Adapter) KeyMap() keymap.KeyMap {
	return a.keyMap
}

func (a *Adapter) handle(ev input.Event) {
	if ev.Mods.Any() {
		return
	}
	if ev.Kind == input.KeyUp {
		if n, ok := a.held[ev.Key]; ok {
			delete(a.held, ev.Key)
			a.ledger.Release(n)
			return
		}
	}
	n, ok := a.keyMap.Lookup(ev.Key)
	if !ok || !a.keys.Contains(n) {
		debug.Log("keyboard", "ignoring %v %q", ev.Kind, ev.Key)
		return
	}

	switch ev.Kind {
	case input.KeyDown:
		if prev, ok := a.held[ev.Key]; ok && prev != n {
			a.ledger.Release(prev)
		}
		a.held[ev.Key] = n
		if !a.ledger.IsActive(n) {
			a.ledger.Press(n)
		}
	case input.KeyUp:
		a.ledger.Release(n)
	default:
		debug.Log("keyboard", "unexpected event %v", ev.Kind)
	}
}
