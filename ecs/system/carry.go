package system

import (
	"log"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
)

// Interact runs the player's interact action: drop the held item into a drop
// zone the player stands in, or pick up the nearest carriable item within
// reach. Holding an item outside a zone does nothing. It reports whether
// anything changed hands.
func Interact(w *ecs.World, player ecs.Entity) bool {
	if w == nil {
		return false
	}
	carrier, ok := ecs.Get(w, player, component.CarrierComponent.Kind())
	if !ok {
		return false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	if carrier.Holding {
		zone, ok := dropZoneAt(w, t.Position)
		if !ok {
			return false
		}
		drop(w, carrier, zone)
		return true
	}

	item, ok := carriableInReach(w, player, t.Position)
	if !ok {
		return false
	}
	pickUp(w, carrier, item)
	return true
}

func pickUp(w *ecs.World, carrier *component.Carrier, item ecs.Entity) {
	c, _ := ecs.Get(w, item, component.CarriableComponent.Kind())
	c.Carried = true
	ecs.Remove(w, item, component.ColliderComponent.Kind())
	carrier.Item = uint64(item)
	carrier.Holding = true
	log.Printf("carry: picked up %s entity=%s", c.Name, item)
}

// drop places the held item on the zone, arms it when it is explosive and
// uses the zone up. A dropped item stays where it was placed.
func drop(w *ecs.World, carrier *component.Carrier, zone ecs.Entity) {
	item := ecs.Entity(carrier.Item)
	carrier.Item, carrier.Holding = 0, false
	if !ecs.IsAlive(w, item) {
		return
	}

	zt, _ := ecs.Get(w, zone, component.TransformComponent.Kind())
	if it, ok := ecs.Get(w, item, component.TransformComponent.Kind()); ok && zt != nil {
		it.Position = zt.Position
	}
	if c, ok := ecs.Get(w, item, component.CarriableComponent.Kind()); ok {
		if c.Radius > 0 {
			_ = ecs.Add(w, item, component.ColliderComponent.Kind(), &component.Collider{Radius: c.Radius})
		}
		log.Printf("carry: dropped %s entity=%s in zone entity=%s", c.Name, item, zone)
	}
	ecs.Remove(w, item, component.CarriableComponent.Kind())

	arm(w, item)
	ecs.QueueDestroy(w, zone)
}

// holdCarried keeps a held item in front of its carrier.
func holdCarried(w *ecs.World, carrier *component.Carrier, t *component.Transform) {
	if !carrier.Holding {
		return
	}
	it, ok := ecs.Get(w, ecs.Entity(carrier.Item), component.TransformComponent.Kind())
	if !ok {
		carrier.Item, carrier.Holding = 0, false
		return
	}
	it.Position = t.Position.Add(t.Forward().Scale(carrier.HoldDistance))
	it.Yaw = t.Yaw
}

func carriableInReach(w *ecs.World, player ecs.Entity, pos common.Vec3) (ecs.Entity, bool) {
	reach := interactReach(w, player)
	var best ecs.Entity
	found := false
	ecs.ForEach2(w, component.CarriableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Carriable, t *component.Transform) {
		if c.Carried || ecs.PendingDestroy(w, e) {
			return
		}
		if d := common.Distance(pos.Flat(), t.Position.Flat()); d <= reach {
			best, reach, found = e, d, true
		}
	})
	return best, found
}

func dropZoneAt(w *ecs.World, pos common.Vec3) (ecs.Entity, bool) {
	var zone ecs.Entity
	found := false
	ecs.ForEach2(w, component.DropZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, z *component.DropZone, t *component.Transform) {
		if found || ecs.PendingDestroy(w, e) {
			return
		}
		if common.Distance(pos.Flat(), t.Position.Flat()) <= z.Radius {
			zone, found = e, true
		}
	})
	return zone, found
}

func interactReach(w *ecs.World, player ecs.Entity) float64 {
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		return p.Interact
	}
	return 0
}

// Prompt is the interaction hint for the player's current surroundings, or
// "" when nothing is in reach.
func Prompt(w *ecs.World, player ecs.Entity) string {
	if w == nil {
		return ""
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return ""
	}
	if kp, ok := keypadInReach(w, player, t.Position); ok {
		return "Keypad [" + keypadDisplay(kp) + "]  digits, Enter, Backspace"
	}
	carrier, ok := ecs.Get(w, player, component.CarrierComponent.Kind())
	if !ok {
		return ""
	}
	if carrier.Holding {
		if _, ok := dropZoneAt(w, t.Position); ok {
			return "Press E to drop " + carriedName(w, carrier)
		}
		return "Carrying " + carriedName(w, carrier)
	}
	if item, ok := carriableInReach(w, player, t.Position); ok {
		c, _ := ecs.Get(w, item, component.CarriableComponent.Kind())
		return "Press E to pick up " + c.Name
	}
	return ""
}

func carriedName(w *ecs.World, carrier *component.Carrier) string {
	if c, ok := ecs.Get(w, ecs.Entity(carrier.Item), component.CarriableComponent.Kind()); ok && c.Name != "" {
		return c.Name
	}
	return "item"
}
