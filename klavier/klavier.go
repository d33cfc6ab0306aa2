// Package klavier assembles the note ledger and the input adapters into
// one embeddable keyboard.
package klavier

import (
	"github.com/pkg/errors"

	"go-klavier/debug"
	"go-klavier/input"
	"go-klavier/keyboard"
	"go-klavier/keymap"
	"go-klavier/ledger"
	"go-klavier/note"
	"go-klavier/pointer"
	"go-klavier/touch"
)

// Interactivity switches each input channel
type Interactivity struct {
	Mouse    bool `json:"mouse"`
	Touch    bool `json:"touch"`
	Keyboard bool `json:"keyboard"`
}

// AllInteractive enables every channel
func AllInteractive() Interactivity {
	return Interactivity{Mouse: true, Touch: true, Keyboard: true}
}

// NoneInteractive disables every channel
func NoneInteractive() Interactivity {
	return Interactivity{}
}

// Config is the configuration surface of a keyboard
type Config struct {
	NoteRange          note.Range
	DefaultActiveNotes []note.Note
	// Mode nil means uncontrolled
	Mode        ledger.Mode
	Interactive Interactivity
	KeyMap      keymap.KeyMap
	// HitTester resolves touch coordinates; touch input is ignored without one
	HitTester touch.HitTester

	OnPress   func(n note.Note)
	OnRelease func(n note.Note)
	OnChange  func(active []note.Note)
}

// DefaultConfig returns an uncontrolled, fully interactive 88-key setup
func DefaultConfig() Config {
	return Config{
		NoteRange:   note.DefaultRange,
		Mode:        ledger.Uncontrolled{},
		Interactive: AllInteractive(),
		KeyMap:      keymap.Default,
	}
}

// Props are the per-update inputs an owner may change after construction
type Props struct {
	Mode        ledger.Mode
	Interactive Interactivity
}

// Key is what a renderer needs for one key
type Key struct {
	Note   note.Note
	Active bool
}

// Klavier is one keyboard instance
type Klavier struct {
	bus         *input.Bus
	keys        note.Range
	interactive Interactivity

	ledger   *ledger.Ledger
	pointer  *pointer.Adapter
	touch    *touch.Tracker
	keyboard *keyboard.Adapter
}

// New validates cfg and wires the adapters to bus. The range is checked
// here once; adapters drop out-of-range input silently afterwards.
func New(bus *input.Bus, cfg Config) (*Klavier, error) {
	if bus == nil {
		return nil, errors.New("klavier: nil input bus")
	}
	if err := note.ValidateRange(cfg.NoteRange); err != nil {
		return nil, errors.Wrap(err, "klavier")
	}
	if cfg.KeyMap == nil {
		cfg.KeyMap = keymap.Default
	}

	l := ledger.New(cfg.DefaultActiveNotes, cfg.Mode, ledger.Callbacks{
		OnPress:   cfg.OnPress,
		OnRelease: cfg.OnRelease,
		OnChange:  cfg.OnChange,
	})

	k := &Klavier{
		bus:      bus,
		keys:     cfg.NoteRange,
		ledger:   l,
		pointer:  pointer.New(bus, l, cfg.NoteRange),
		touch:    touch.New(bus, l, cfg.HitTester, cfg.NoteRange),
		keyboard: keyboard.New(bus, l, cfg.KeyMap, cfg.NoteRange),
	}
	k.SetInteractive(cfg.Interactive)
	debug.Log("klavier", "new keyboard %v-%v interactive=%+v", cfg.NoteRange.First, cfg.NoteRange.Last, cfg.Interactive)
	return k, nil
}

// Update applies the owner's props for this update. Mode changes never
// fire OnChange.
func (k *Klavier) Update(p Props) {
	k.ledger.SetMode(p.Mode)
	k.SetInteractive(p.Interactive)
}

// SetMode switches between controlled and uncontrolled operation
func (k *Klavier) SetMode(m ledger.Mode) {
	k.ledger.SetMode(m)
}

// SetInteractive enables or disables each input channel
func (k *Klavier) SetInteractive(in Interactivity) {
	k.interactive = in
	toggle(k.pointer, in.Mouse)
	toggle(k.touch, in.Touch)
	toggle(k.keyboard, in.Keyboard)
}

type switchable interface {
	Enable()
	Disable()
}

func toggle(s switchable, on bool) {
	if on {
		s.Enable()
		return
	}
	s.Disable()
}

// Interactive returns the current channel switches
func (k *Klavier) Interactive() Interactivity {
	return k.interactive
}

// SetKeyMap swaps the computer keymap
func (k *Klavier) SetKeyMap(km keymap.KeyMap) {
	k.keyboard.SetKeyMap(km)
}

// KeyMap returns the computer keymap in use
func (k *Klavier) KeyMap() keymap.KeyMap {
	return k.keyboard.KeyMap()
}

// Range returns the playable notes
func (k *Klavier) Range() note.Range {
	return k.keys
}

// ActiveNotes returns the visible active set
func (k *Klavier) ActiveNotes() []note.Note {
	return k.ledger.Active()
}

// Controlled reports whether the owner supplies the active notes
func (k *Klavier) Controlled() bool {
	return k.ledger.Controlled()
}

// Keys returns every key in the range with its active state
func (k *Klavier) Keys() []Key {
	active := map[note.Note]bool{}
	for _, n := range k.ledger.Active() {
		active[n] = true
	}
	keys := make([]Key, 0, k.keys.Len())
	for _, n := range k.keys.Notes() {
		keys = append(keys, Key{Note: n, Active: active[n]})
	}
	return keys
}

// Press plays n as if from an input adapter
func (k *Klavier) Press(n note.Note) {
	k.ledger.Press(n)
}

// Release stops n as if from an input adapter
func (k *Klavier) Release(n note.Note) {
	k.ledger.Release(n)
}

// PointerDown reports whether the pointer button is held on the keyboard
func (k *Klavier) PointerDown() bool {
	return k.pointer.Down()
}

// Close removes every subscription
func (k *Klavier) Close() {
	k.SetInteractive(NoneInteractive())
}
