package component

import "math"

// Health tracks hit points. Damage after death is ignored.
type Health struct {
	Max     int
	Current int
	Dead    bool
	// Reported is set once the health system has handled the death.
	Reported bool
}

// NewHealth returns a full health pool.
func NewHealth(max int) *Health {
	return &Health{Max: max, Current: max}
}

func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount and reports whether this call killed the entity.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || h.Dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		return true
	}
	return false
}

// Kill empties the pool and reports whether the entity was alive.
func (h *Health) Kill() bool {
	if h == nil || h.Dead {
		return false
	}
	return h.ApplyDamage(h.Current + 1)
}

// Heal adds amount up to Max. Dead entities stay dead.
func (h *Health) Heal(amount int) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Bars is the number of ten-point segments shown on a health bar.
func (h *Health) Bars() int {
	if h == nil || h.Current <= 0 {
		return 0
	}
	return int(math.Ceil(float64(h.Current) / 10))
}

// Regen restores health after a quiet period without damage.
type Regen struct {
	Delay    float64
	Amount   int
	Interval float64

	SinceDamage float64
	Accum       float64
	LastHealth  int
}

var HealthComponent = NewComponent[Health]()
var RegenComponent = NewComponent[Regen]()
