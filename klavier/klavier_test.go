package klavier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-klavier/input"
	"go-klavier/ledger"
	"go-klavier/note"
	"go-klavier/touch"
)

// keys are 10 units wide starting at note 60
var strip = touch.HitTestFunc(func(x, y float64) (note.Note, bool) {
	if x < 0 || y < 0 || y >= 10 {
		return 0, false
	}
	return note.Note(60 + int(x)/10), true
})

func newKlavier(t *testing.T, cfg Config) (*input.Bus, *Klavier) {
	t.Helper()
	bus := input.NewBus()
	k, err := New(bus, cfg)
	require.NoError(t, err)
	return bus, k
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	cfg := DefaultConfig()

	cfg.NoteRange = note.Range{First: 108, Last: 21}
	_, err := New(input.NewBus(), cfg)
	assert.True(t, errors.Is(err, note.ErrInvalidRangeOrder))

	cfg.NoteRange = note.Range{First: -1, Last: 127}
	_, err = New(input.NewBus(), cfg)
	assert.True(t, errors.Is(err, note.ErrInvalidRange))

	_, err = New(nil, DefaultConfig())
	assert.Error(t, err)
}

func TestKeysReflectActiveNotes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoteRange = note.Range{First: 60, Last: 64}
	cfg.DefaultActiveNotes = []note.Note{62}
	_, k := newKlavier(t, cfg)

	keys := k.Keys()
	require.Len(t, keys, 5)
	assert.Equal(t, Key{Note: 62, Active: true}, keys[2])
	assert.False(t, keys[0].Active)
}

func TestAllChannelsShareOneLedger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HitTester = strip
	var changes [][]note.Note
	cfg.OnChange = func(active []note.Note) { changes = append(changes, active) }
	bus, k := newKlavier(t, cfg)

	bus.Dispatch(input.OnKey(input.PointerDown, 60))
	bus.Dispatch(input.Touches(input.TouchStart, input.Contact{ID: 1, X: 25, Y: 5}))
	bus.Dispatch(input.KeyEvent(input.KeyDown, "e", input.Modifiers{}))
	assert.Equal(t, []note.Note{60, 62, 64}, k.ActiveNotes())

	// keyboard repeat of a note held by touch is suppressed
	bus.Dispatch(input.KeyEvent(input.KeyDown, "w", input.Modifiers{}))
	assert.Equal(t, []note.Note{60, 62, 64}, k.ActiveNotes())

	// and key-up releases it regardless of the touch
	bus.Dispatch(input.KeyEvent(input.KeyUp, "w", input.Modifiers{}))
	assert.Equal(t, []note.Note{60, 64}, k.ActiveNotes())
	assert.Len(t, changes, 4)
}

func TestTwoTouchesOnOneKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HitTester = strip
	bus, k := newKlavier(t, cfg)

	bus.Dispatch(input.Touches(input.TouchStart,
		input.Contact{ID: 1, X: 1, Y: 1},
		input.Contact{ID: 2, X: 9, Y: 9},
	))
	bus.Dispatch(input.Touches(input.TouchEnd, input.Contact{ID: 1, X: 1, Y: 1}))
	assert.Equal(t, []note.Note{60}, k.ActiveNotes())

	bus.Dispatch(input.Touches(input.TouchEnd, input.Contact{ID: 2, X: 9, Y: 9}))
	assert.Empty(t, k.ActiveNotes())
}

func TestDragGlissando(t *testing.T) {
	_, k := newKlavier(t, DefaultConfig())
	bus := k.bus

	bus.Dispatch(input.OnKey(input.PointerDown, 60))
	bus.Dispatch(input.OnKey(input.PointerEnter, 61))
	assert.True(t, k.PointerDown())
	assert.Equal(t, []note.Note{60, 61}, k.ActiveNotes())

	bus.Dispatch(input.OnKey(input.PointerUp, 61))
	bus.Dispatch(input.Event{Kind: input.GlobalPointerUp})
	assert.False(t, k.PointerDown())
	assert.Equal(t, []note.Note{60}, k.ActiveNotes())
}

func TestControlledOwnerDecides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ledger.Controlled{Notes: []note.Note{21, 23, 25}}
	var changes [][]note.Note
	cfg.OnChange = func(active []note.Note) { changes = append(changes, active) }
	bus, k := newKlavier(t, cfg)
	assert.True(t, k.Controlled())

	bus.Dispatch(input.OnKey(input.PointerDown, 60))
	assert.Equal(t, []note.Note{21, 23, 25}, k.ActiveNotes())
	assert.Equal(t, [][]note.Note{{60}}, changes)

	// owner honours the request
	k.Update(Props{Mode: ledger.Controlled{Notes: changes[0]}, Interactive: AllInteractive()})
	assert.Equal(t, []note.Note{60}, k.ActiveNotes())
	assert.Len(t, changes, 1)

	// and hands control back
	k.SetMode(nil)
	assert.False(t, k.Controlled())
	assert.Equal(t, []note.Note{60}, k.ActiveNotes())
}

func TestInteractivityPerChannel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HitTester = strip
	cfg.Interactive = Interactivity{Keyboard: true}
	bus, k := newKlavier(t, cfg)

	bus.Dispatch(input.OnKey(input.PointerDown, 60))
	bus.Dispatch(input.Touches(input.TouchStart, input.Contact{ID: 1, X: 15, Y: 1}))
	assert.Empty(t, k.ActiveNotes())
	assert.Equal(t, 0, bus.Subscribers(input.PointerDown))
	assert.Equal(t, 0, bus.Subscribers(input.TouchStart))

	bus.Dispatch(input.KeyEvent(input.KeyDown, "q", input.Modifiers{}))
	assert.Equal(t, []note.Note{60}, k.ActiveNotes())

	// turning the keyboard off lets go of the held key
	k.Update(Props{Interactive: Interactivity{Mouse: true}})
	assert.Equal(t, Interactivity{Mouse: true}, k.Interactive())
	assert.Empty(t, k.ActiveNotes())
	bus.Dispatch(input.KeyEvent(input.KeyDown, "w", input.Modifiers{}))
	bus.Dispatch(input.OnKey(input.PointerDown, 64))
	assert.Equal(t, []note.Note{64}, k.ActiveNotes())

	k.Close()
	for kind := input.PointerDown; kind <= input.KeyUp; kind++ {
		assert.Equal(t, 0, bus.Subscribers(kind), kind.String())
	}
}

func TestKeyMapSwap(t *testing.T) {
	bus, k := newKlavier(t, DefaultConfig())
	k.SetKeyMap(k.KeyMap().Transpose(-12))

	bus.Dispatch(input.KeyEvent(input.KeyDown, "q", input.Modifiers{}))
	assert.Equal(t, []note.Note{48}, k.ActiveNotes())
	assert.Equal(t, note.DefaultRange, k.Range())
}

func TestDirectPressAndRelease(t *testing.T) {
	var pressed, released []note.Note
	cfg := DefaultConfig()
	cfg.OnPress = func(n note.Note) { pressed = append(pressed, n) }
	cfg.OnRelease = func(n note.Note) { released = append(released, n) }
	_, k := newKlavier(t, cfg)

	k.Press(70)
	k.Release(70)
	assert.Equal(t, []note.Note{70}, pressed)
	assert.Equal(t, []note.Note{70}, released)
	assert.Empty(t, k.ActiveNotes())
}
