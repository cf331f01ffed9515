package ecs

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order and owns the tick boundary:
// it sets the clock delta, flushes deferred destruction and rotates events.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Step evaluates one tick of dt simulated seconds.
func (s *Scheduler) Step(w *World, dt float64) {
	if w == nil {
		return
	}
	w.clock.Delta = dt
	for _, system := range s.systems {
		system.Update(w)
	}
	FlushDestroyed(w)
	w.events.rotate()
	w.clock.Now += dt
	w.clock.Tick++
}

// Run steps the world ticks times with a fixed delta.
func (s *Scheduler) Run(w *World, ticks int, dt float64) {
	for i := 0; i < ticks; i++ {
		s.Step(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
