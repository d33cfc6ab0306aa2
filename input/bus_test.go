package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchReachesSubscribersInOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(func(ev Event) { got = append(got, "a:"+ev.Kind.String()) }, KeyDown, KeyUp)
	bus.Subscribe(func(ev Event) { got = append(got, "b:"+ev.Kind.String()) }, KeyDown)

	bus.Dispatch(KeyEvent(KeyDown, "q", Modifiers{}))
	bus.Dispatch(KeyEvent(KeyUp, "q", Modifiers{}))
	bus.Dispatch(OnKey(PointerDown, 60))

	assert.Equal(t, []string{"a:keydown", "b:keydown", "a:keyup"}, got)
}

func TestCloseDeregistersSynchronously(t *testing.T) {
	bus := NewBus()
	calls := 0
	sub := bus.Subscribe(func(Event) { calls++ }, PointerDown, GlobalPointerUp)
	assert.True(t, sub.Active())
	assert.Equal(t, 1, bus.Subscribers(PointerDown))

	sub.Close()
	sub.Close()
	assert.False(t, sub.Active())
	assert.Equal(t, 0, bus.Subscribers(PointerDown))
	assert.Equal(t, 0, bus.Subscribers(GlobalPointerUp))

	bus.Dispatch(OnKey(PointerDown, 60))
	assert.Equal(t, 0, calls)
}

func TestCloseDuringDispatch(t *testing.T) {
	bus := NewBus()
	var order []string

	var first *Subscription
	first = bus.Subscribe(func(Event) {
		order = append(order, "first")
		first.Close()
	}, GlobalPointerUp)

	var second *Subscription
	bus.Subscribe(func(Event) {
		order = append(order, "remover")
		second.Close()
	}, GlobalPointerUp)
	second = bus.Subscribe(func(Event) { order = append(order, "second") }, GlobalPointerUp)

	bus.Dispatch(Event{Kind: GlobalPointerUp})
	bus.Dispatch(Event{Kind: GlobalPointerUp})

	// first is one-shot, second is removed before it runs
	assert.Equal(t, []string{"first", "remover", "remover"}, order)
}

func TestUnknownKindsAreIgnored(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(func(Event) { t.Fatal("unexpected call") }, Kind(99))
	assert.Equal(t, 0, bus.Subscribers(Kind(99)))
	bus.Dispatch(Event{Kind: Kind(-1)})
	sub.Close()

	assert.Equal(t, "kind(99)", Kind(99).String())
	assert.Equal(t, "touchcancel", TouchCancel.String())
}

func TestModifiers(t *testing.T) {
	assert.False(t, Modifiers{}.Any())
	assert.True(t, Modifiers{Shift: true}.Any())
	assert.True(t, Modifiers{Meta: true}.Any())
	assert.True(t, Modifiers{Alt: true}.Any())
}
