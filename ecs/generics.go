package ecs

import "github.com/milk9111/gatebreach/ecs/component"

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// IsAlive reports whether an entity handle is still valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every alive entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

// DestroyEntity removes e and all of its components immediately. Systems
// should prefer QueueDestroy while iterating.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	if w.physicsWorld != nil {
		w.physicsWorld.Remove(e)
	}
	return w.entities.destroy(e)
}

// QueueDestroy marks e for destruction at the end of the current tick.
// Queuing the same entity twice is harmless.
func QueueDestroy(w *World, e Entity) {
	if w == nil || !w.entities.isAlive(e) {
		return
	}
	for _, p := range w.pendingDestroy {
		if p == e {
			return
		}
	}
	w.pendingDestroy = append(w.pendingDestroy, e)
}

// PendingDestroy reports whether e is queued for end-of-tick destruction.
func PendingDestroy(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	for _, p := range w.pendingDestroy {
		if p == e {
			return true
		}
	}
	return false
}

// FlushDestroyed destroys every queued entity and returns how many were
// still alive.
func FlushDestroyed(w *World) int {
	if w == nil {
		return 0
	}
	n := 0
	for _, e := range w.pendingDestroy {
		if DestroyEntity(w, e) {
			n++
		}
	}
	w.pendingDestroy = w.pendingDestroy[:0]
	return n
}

// Add attaches or replaces the component value of kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// Get returns the stored pointer so callers mutate components in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.store(kind.ID(), false).Get(e)
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

// First returns the first entity owning kind together with its value.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	return w.First(kind)
}
