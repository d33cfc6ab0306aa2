package ledger

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-klavier/note"
)

type recorder struct {
	pressed  []note.Note
	released []note.Note
	changes  [][]note.Note
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnPress:   func(n note.Note) { r.pressed = append(r.pressed, n) },
		OnRelease: func(n note.Note) { r.released = append(r.released, n) },
		OnChange:  func(active []note.Note) { r.changes = append(r.changes, active) },
	}
}

func TestUncontrolledPressAndRelease(t *testing.T) {
	l := New(nil, nil, Callbacks{})
	assert.Empty(t, l.Active())
	assert.False(t, l.Controlled())

	l.Press(10)
	assert.Equal(t, []note.Note{10}, l.Active())
	assert.True(t, l.IsActive(10))

	l.Release(10)
	assert.Empty(t, l.Active())
	assert.False(t, l.IsActive(10))
}

func TestPressPreservesPressOrder(t *testing.T) {
	l := New(nil, Uncontrolled{}, Callbacks{})
	l.Press(64)
	l.Press(60)
	l.Press(67)
	assert.Equal(t, []note.Note{64, 60, 67}, l.Active())

	l.Release(60)
	assert.Equal(t, []note.Note{64, 67}, l.Active())
}

func TestFirstPressDiscardsDefaults(t *testing.T) {
	l := New([]note.Note{21, 23, 25}, nil, Callbacks{})
	assert.Equal(t, []note.Note{21, 23, 25}, l.Active())
	assert.False(t, l.Touched())

	l.Press(10)
	assert.Equal(t, []note.Note{10}, l.Active())
	assert.True(t, l.Touched())

	// only the first press resets the slate
	l.Press(11)
	assert.Equal(t, []note.Note{10, 11}, l.Active())
}

func TestFirstActionReleaseKeepsDefaults(t *testing.T) {
	l := New([]note.Note{21, 23, 25}, nil, Callbacks{})
	l.Release(23)
	assert.Equal(t, []note.Note{21, 25}, l.Active())
	assert.False(t, l.Touched())

	l.Press(30)
	assert.Equal(t, []note.Note{30}, l.Active())
}

func TestRepressFiresPressWithoutDuplicate(t *testing.T) {
	rec := &recorder{}
	l := New(nil, nil, rec.callbacks())

	l.Press(60)
	l.Press(60)

	assert.Equal(t, []note.Note{60}, l.Active())
	assert.Equal(t, []note.Note{60, 60}, rec.pressed)
	assert.Equal(t, [][]note.Note{{60}}, rec.changes)
}

func TestReleaseOfInactiveNoteStillNotifies(t *testing.T) {
	rec := &recorder{}
	l := New(nil, nil, rec.callbacks())

	l.Release(42)

	assert.Equal(t, []note.Note{42}, rec.released)
	assert.Empty(t, rec.changes)
	assert.Empty(t, l.Active())
}

func TestCallbacksReceiveNotesAndSets(t *testing.T) {
	rec := &recorder{}
	l := New(nil, nil, rec.callbacks())

	l.Press(10)
	l.Press(12)
	l.Release(10)

	assert.Equal(t, []note.Note{10, 12}, rec.pressed)
	assert.Equal(t, []note.Note{10}, rec.released)
	assert.Equal(t, [][]note.Note{{10}, {10, 12}, {12}}, rec.changes)
}

func TestPressThenReleaseRestoresSet(t *testing.T) {
	l := New(nil, nil, Callbacks{})
	l.Press(60)
	l.Press(64)
	before := l.Active()

	l.Press(67)
	l.Release(67)
	assert.Equal(t, before, l.Active())
}

func TestUncontrolledNeverHoldsDuplicates(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	l := New(nil, nil, Callbacks{})

	for i := 0; i < 2000; i++ {
		n := note.Note(r.Intn(8) + 60)
		if r.Intn(3) == 0 {
			l.Release(n)
		} else {
			l.Press(n)
		}

		seen := map[note.Note]bool{}
		for _, a := range l.Active() {
			assert.False(t, seen[a], "duplicate %v after step %d", a, i)
			seen[a] = true
		}
	}
}

func TestControlledVisibleSetIsOverride(t *testing.T) {
	rec := &recorder{}
	l := New(nil, Controlled{Notes: []note.Note{21, 23, 25}}, rec.callbacks())
	assert.True(t, l.Controlled())
	assert.Equal(t, []note.Note{21, 23, 25}, l.Active())

	l.Press(10)

	assert.Equal(t, []note.Note{21, 23, 25}, l.Active())
	assert.Equal(t, []note.Note{10}, l.Internal())
	assert.Equal(t, [][]note.Note{{10}}, rec.changes)
	assert.Equal(t, []note.Note{10}, rec.pressed)
}

func TestControlledOverrideIsVerbatim(t *testing.T) {
	l := New(nil, Controlled{Notes: []note.Note{30, 31, 31}}, Callbacks{})
	assert.Equal(t, []note.Note{30, 31, 31}, l.Active())
	assert.True(t, l.IsActive(31))
	assert.False(t, l.IsActive(60))
}

func TestExternalOverrideChangeDoesNotNotify(t *testing.T) {
	rec := &recorder{}
	l := New(nil, Controlled{Notes: []note.Note{21, 23, 25}}, rec.callbacks())

	l.SetMode(Controlled{Notes: []note.Note{30, 31, 31}})
	assert.Equal(t, []note.Note{30, 31, 31}, l.Active())

	l.SetMode(Uncontrolled{})
	l.SetMode(Controlled{})
	assert.Empty(t, rec.changes)
}

func TestSuppliedButEmptyIsControlled(t *testing.T) {
	l := New([]note.Note{60}, Controlled{}, Callbacks{})
	assert.True(t, l.Controlled())
	assert.Empty(t, l.Active())

	l.Press(62)
	assert.Empty(t, l.Active())
	assert.Equal(t, []note.Note{62}, l.Internal())
}

func TestInternalStateSurvivesControl(t *testing.T) {
	l := New(nil, nil, Callbacks{})
	l.Press(60)

	l.SetMode(Controlled{Notes: []note.Note{1}})
	l.Press(62)
	assert.Equal(t, []note.Note{1}, l.Active())

	l.SetMode(Uncontrolled{})
	assert.Equal(t, []note.Note{60, 62}, l.Active())
}

func TestOwnerHonouringChangeFollowsInput(t *testing.T) {
	var l *Ledger
	l = New(nil, Controlled{}, Callbacks{
		OnChange: func(active []note.Note) {
			l.SetMode(Controlled{Notes: active})
		},
	})

	l.Press(60)
	l.Press(64)
	assert.Equal(t, []note.Note{60, 64}, l.Active())
	l.Release(60)
	assert.Equal(t, []note.Note{64}, l.Active())
}

func TestPointerModeIsNormalized(t *testing.T) {
	var nilMode *Controlled
	l := New([]note.Note{1}, nilMode, Callbacks{})
	assert.False(t, l.Controlled())

	l.SetMode(&Controlled{Notes: []note.Note{5}})
	assert.True(t, l.Controlled())
	assert.Equal(t, []note.Note{5}, l.Active())
	assert.IsType(t, Controlled{}, l.Mode())
}

func TestOverrideIsCopied(t *testing.T) {
	notes := []note.Note{60, 62}
	l := New(nil, Controlled{Notes: notes}, Callbacks{})
	notes[0] = 0
	assert.Equal(t, []note.Note{60, 62}, l.Active())

	got := l.Active()
	got[0] = 1
	assert.Equal(t, []note.Note{60, 62}, l.Active())
}

func TestNoteCallbackPrecedesChange(t *testing.T) {
	var order []string
	l := New(nil, nil, Callbacks{
		OnPress:   func(n note.Note) { order = append(order, "press "+n.Name()) },
		OnRelease: func(n note.Note) { order = append(order, "release "+n.Name()) },
		OnChange:  func(active []note.Note) { order = append(order, "change") },
	})

	l.Press(60)
	l.Press(60)
	l.Release(60)
	assert.Equal(t, []string{"press C4", "change", "press C4", "release C4", "change"}, order)
}
