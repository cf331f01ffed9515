package ecs

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gatebreach/common"
)

const collisionTypeTrigger cp.CollisionType = 1

type physicsBody struct {
	body  *cp.Body
	shape *cp.Shape
	group uint
}

// PhysicsWorld owns a Chipmunk space used purely as a trigger service: every
// collider is a sensor circle on the ground plane (world X/Z mapped to cp X/Y).
// Overlap begin/end become ContactEvents.
type PhysicsWorld struct {
	space  *cp.Space
	bodies map[Entity]*physicsBody

	shapeToEntity map[*cp.Shape]Entity
	contacts      []ContactEvent
}

// NewPhysicsWorld creates an empty trigger space.
func NewPhysicsWorld() *PhysicsWorld {
	pw := &PhysicsWorld{
		space:         cp.NewSpace(),
		bodies:        make(map[Entity]*physicsBody),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Sync creates the sensor for e on first use and moves it to pos. Group is a
// Chipmunk filter group: shapes sharing a non-zero group never report
// contacts with each other.
func (pw *PhysicsWorld) Sync(e Entity, pos common.Vec3, radius float64, group uint) {
	if pw == nil || pw.space == nil || !e.Valid() || radius <= 0 {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		body := cp.NewBody(1, cp.MomentForCircle(1, 0, radius, cp.Vector{}))
		shape := cp.NewCircle(body, radius, cp.Vector{})
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeTrigger)
		pw.space.AddBody(body)
		pw.space.AddShape(shape)
		pb = &physicsBody{body: body, shape: shape}
		pw.bodies[e] = pb
		pw.shapeToEntity[shape] = e
	}
	if pb.group != group || !ok {
		pb.shape.SetFilter(cp.ShapeFilter{Group: group, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES})
		pb.group = group
	}
	pb.body.SetVelocityVector(cp.Vector{})
	pb.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Z})
}

// Remove drops the sensor for e, if any.
func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	delete(pw.bodies, e)
	delete(pw.shapeToEntity, pb.shape)
	pw.space.RemoveShape(pb.shape)
	pw.space.RemoveBody(pb.body)
}

// Has reports whether e currently owns a sensor.
func (pw *PhysicsWorld) Has(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.bodies[e]
	return ok
}

// Tracked returns every entity that owns a sensor.
func (pw *PhysicsWorld) Tracked() []Entity {
	if pw == nil {
		return nil
	}
	out := make([]Entity, 0, len(pw.bodies))
	for e := range pw.bodies {
		out = append(out, e)
	}
	return out
}

// Step advances the space and returns the contacts observed during it.
func (pw *PhysicsWorld) Step(dt float64) []ContactEvent {
	if pw == nil || pw.space == nil {
		return nil
	}
	pw.contacts = pw.contacts[:0]
	pw.space.Step(dt)
	out := make([]ContactEvent, len(pw.contacts))
	copy(out, pw.contacts)
	return out
}

func (pw *PhysicsWorld) record(arb *cp.Arbiter, kind ContactKind) {
	shapeA, shapeB := arb.Shapes()
	a, okA := pw.shapeToEntity[shapeA]
	b, okB := pw.shapeToEntity[shapeB]
	if !okA || !okB {
		return
	}
	pw.contacts = append(pw.contacts, ContactEvent{A: a, B: b, Kind: kind})
}

func (pw *PhysicsWorld) setupHandlers() {
	handler := pw.space.NewCollisionHandler(collisionTypeTrigger, collisionTypeTrigger)
	handler.UserData = pw
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			log.Println("physics: begin callback without world")
			return true
		}
		world.record(arb, ContactEnter)
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return
		}
		world.record(arb, ContactExit)
	}
}
