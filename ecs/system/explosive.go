package system

import (
	"log"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/mission"
	"github.com/milk9111/gatebreach/nav"
)

// Opener clears a navigation footprint, e.g. a destroyed gate or an opened
// door.
type Opener interface {
	Unblock(r nav.Rect)
}

// ExplosiveSystem detonates triggered fuel. A detonation destroys the linked
// gate, opens its footprint for navigation and tells the mission.
type ExplosiveSystem struct {
	mission *mission.State
	opener  Opener
	blast   EffectConfig
}

func NewExplosiveSystem(m *mission.State, opener Opener, blast EffectConfig) *ExplosiveSystem {
	return &ExplosiveSystem{mission: m, opener: opener, blast: blast}
}

func (s *ExplosiveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.ExplosiveComponent.Kind(), func(e ecs.Entity, ex *component.Explosive) {
		if !ex.Triggered || ex.Exploded {
			return
		}
		s.explode(w, e, ex)
	})
}

func (s *ExplosiveSystem) explode(w *ecs.World, e ecs.Entity, ex *component.Explosive) {
	ex.Exploded = true

	var pos common.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Position
	}
	if s.blast.TTL > 0 || ex.EffectTTL > 0 {
		ttl := ex.EffectTTL
		if ttl <= 0 {
			ttl = s.blast.TTL
		}
		if _, err := entity.NewEffect(w, component.EffectExplosion, pos, s.blast.Radius, ttl); err != nil {
			log.Printf("explosive: entity=%s effect: %v", e, err)
		}
	}

	gate := ecs.Entity(ex.Gate)
	if g, ok := ecs.Get(w, gate, component.GateComponent.Kind()); ok && !g.Destroyed {
		g.Destroyed = true
		if rect, ok := entity.GateRect(w, gate); ok && s.opener != nil {
			s.opener.Unblock(rect)
		}
		scheduleDestroy(w, gate, ex.DestroyDelay)
		w.Events().Push(ecs.Event{Type: ecs.EventGateDestroyed, Data: gate})
		s.mission.DestroyGate()
	}

	scheduleDestroy(w, e, ex.DestroyDelay)
}

// arm readies an explosive so damage can detonate it. Anything else is
// left alone.
func arm(w *ecs.World, e ecs.Entity) bool {
	ex, ok := ecs.Get(w, e, component.ExplosiveComponent.Kind())
	if !ok || ex.Armed || ex.Exploded {
		return false
	}
	ex.Armed = true
	log.Printf("explosive: entity=%s armed", e)
	return true
}

func scheduleDestroy(w *ecs.World, e ecs.Entity, delay float64) {
	if delay <= 0 {
		ecs.QueueDestroy(w, e)
		return
	}
	_ = ecs.Add(w, e, component.DestroyTimerComponent.Kind(), &component.DestroyTimer{Remaining: delay})
}
