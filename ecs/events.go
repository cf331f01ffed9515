package ecs

import "github.com/milk9111/gatebreach/common"

// EventType names an event payload.
type EventType string

const (
	EventContact       EventType = "contact"
	EventShotFired     EventType = "shot_fired"
	EventEntityDied    EventType = "entity_died"
	EventGateDestroyed EventType = "gate_destroyed"
	EventDamaged       EventType = "damaged"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// ShotEvent is the payload of EventShotFired.
type ShotEvent struct {
	Shooter    Entity
	Projectile Entity
	Position   common.Vec3
}

// DamageEvent is the payload of EventDamaged.
type DamageEvent struct {
	Target Entity
	Source Entity
	Amount int
}

// DeathEvent is the payload of EventEntityDied.
type DeathEvent struct {
	Entity   Entity
	Position common.Vec3
}

// ContactKind identifies trigger event phases.
type ContactKind string

const (
	ContactEnter ContactKind = "enter"
	ContactExit  ContactKind = "exit"
)

// ContactEvent is emitted by the physics world when two colliders start or
// stop overlapping.
type ContactEvent struct {
	A    Entity
	B    Entity
	Kind ContactKind
}

// Involves returns the other entity when e is one side of the contact.
func (c ContactEvent) Involves(e Entity) (Entity, bool) {
	switch e {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

// EventQueue is a FIFO of events for the current tick. At the end of a tick
// the queue rotates so the previous tick's events stay readable.
type EventQueue struct {
	items []Event
	last  []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Pending returns the events pushed during the current tick without
// consuming them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Last returns the events of the previous completed tick.
func (q *EventQueue) Last() []Event {
	if q == nil {
		return nil
	}
	return q.last
}

// Drain returns all current events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) rotate() {
	if q == nil {
		return
	}
	q.last = q.items
	q.items = nil
}

// Contacts filters the current tick's contact events.
func Contacts(w *World, kind ContactKind) []ContactEvent {
	var out []ContactEvent
	for _, evt := range w.Events().Pending() {
		if evt.Type != EventContact {
			continue
		}
		if c, ok := evt.Data.(ContactEvent); ok && c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
