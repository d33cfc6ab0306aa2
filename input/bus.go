package input

import (
	"github.com/google/uuid"

	"go-klavier/debug"
)

// Handler receives events for the kinds it subscribed to
type Handler func(ev Event)

type subscriber struct {
	id      uuid.UUID
	handler Handler
}

// Bus delivers host events to the currently subscribed handlers.
// All calls happen on the host's event loop; the bus holds no locks.
type Bus struct {
	subs [numKinds][]subscriber
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscription is a scoped registration; Close releases it.
type Subscription struct {
	bus   *Bus
	id    uuid.UUID
	kinds []Kind
}

// Subscribe registers h for the given kinds, in subscription order
func (b *Bus) Subscribe(h Handler, kinds ...Kind) *Subscription {
	s := &Subscription{bus: b, id: uuid.New()}
	for _, k := range kinds {
		if !k.Valid() {
			continue
		}
		b.subs[k] = append(b.subs[k], subscriber{id: s.id, handler: h})
		s.kinds = append(s.kinds, k)
	}
	return s
}

// Close removes the subscription. Safe to call more than once and from
// inside a handler; handlers removed mid-dispatch are not called again.
func (s *Subscription) Close() {
	if s == nil || s.bus == nil {
		return
	}
	for _, k := range s.kinds {
		s.bus.remove(k, s.id)
	}
	s.bus = nil
}

// Active reports whether the subscription has not been closed
func (s *Subscription) Active() bool {
	return s != nil && s.bus != nil
}

func (b *Bus) remove(k Kind, id uuid.UUID) {
	list := b.subs[k]
	for i, sub := range list {
		if sub.id == id {
			// copy so a dispatch in progress keeps its own snapshot
			next := make([]subscriber, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			b.subs[k] = next
			return
		}
	}
}

// Dispatch delivers ev synchronously to every handler subscribed to its kind
func (b *Bus) Dispatch(ev Event) {
	if !ev.Kind.Valid() {
		debug.Log("input", "dropping event of unknown kind %v", ev.Kind)
		return
	}
	snapshot := b.subs[ev.Kind]
	for _, sub := range snapshot {
		if !b.subscribed(ev.Kind, sub.id) {
			continue
		}
		sub.handler(ev)
	}
}

// Subscribers returns how many handlers listen for k
func (b *Bus) Subscribers(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return len(b.subs[k])
}

func (b *Bus) subscribed(k Kind, id uuid.UUID) bool {
	for _, sub := range b.subs[k] {
		if sub.id == id {
			return true
		}
	}
	return false
}
