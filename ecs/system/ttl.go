package system

import (
	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
)

// TTLSystem counts down TTL and DestroyTimer components and queues their
// entities for destruction when they expire.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if common.Expired(ttl.Seconds) {
			ecs.QueueDestroy(w, e)
		}
	})

	ecs.ForEach(w, component.DestroyTimerComponent.Kind(), func(e ecs.Entity, timer *component.DestroyTimer) {
		timer.Remaining -= dt
		if common.Expired(timer.Remaining) {
			ecs.QueueDestroy(w, e)
		}
	})
}
