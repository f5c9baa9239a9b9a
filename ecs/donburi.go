package ecs

import (
	"github.com/setanarut/arcade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// BodyData links an entity to its arcade body.
type BodyData struct {
	Body *arcade.Body
}

// Body is the Donburi component holding an entity's arcade body.
var Body = donburi.NewComponentType[BodyData]()

// CollisionEvent is a resolved collision between two entities. A or B is donburi.Null
// for bodies without an entity, such as tiles.
type CollisionEvent struct {
	A, B  donburi.Entity
	Event arcade.CollideEvent
}

// CollisionEventType is the Donburi event type for arcade collisions.
var CollisionEventType = events.NewEventType[CollisionEvent]()

var bodyQuery = donburi.NewQuery(filter.Contains(Body))

// Bridge keeps an arcade World and a Donburi world in step.
type Bridge struct {
	World   donburi.World
	Physics *arcade.World
}

// NewBridge creates a Bridge and hooks physics collisions into CollisionEventType.
// An OnCollide already set on physics keeps running before the event is published.
func NewBridge(world donburi.World, physics *arcade.World) *Bridge {
	b := &Bridge{World: world, Physics: physics}
	previous := physics.OnCollide
	physics.OnCollide = func(ev arcade.CollideEvent) {
		if previous != nil {
			previous(ev)
		}
		CollisionEventType.Publish(world, CollisionEvent{
			A:     EntityOf(ev.A),
			B:     EntityOf(ev.B),
			Event: ev,
		})
	}
	return b
}

// EntityOf returns the entity a body is attached to, or donburi.Null.
func EntityOf(body *arcade.Body) donburi.Entity {
	if body == nil {
		return donburi.Null
	}
	if e, ok := body.UserData.(donburi.Entity); ok {
		return e
	}
	return donburi.Null
}

// Attach adds body to the physics world and to entity's Body component.
func (b *Bridge) Attach(entity donburi.Entity, body *arcade.Body) arcade.BodyID {
	entry := b.World.Entry(entity)
	if !entry.HasComponent(Body) {
		entry.AddComponent(Body)
	}
	Body.Get(entry).Body = body
	body.UserData = entity
	return b.Physics.Add(body)
}

// Create makes a new entity holding body.
func (b *Bridge) Create(body *arcade.Body) donburi.Entity {
	entity := b.World.Create(Body)
	b.Attach(entity, body)
	return entity
}

// BodyOf returns the body attached to entity, or nil.
func (b *Bridge) BodyOf(entity donburi.Entity) *arcade.Body {
	if !b.World.Valid(entity) {
		return nil
	}
	entry := b.World.Entry(entity)
	if !entry.HasComponent(Body) {
		return nil
	}
	return Body.Get(entry).Body
}

// Destroy removes entity and its body. Inside a physics step the removal waits for the
// step to end.
func (b *Bridge) Destroy(entity donburi.Entity) {
	destroy := func(*arcade.World, any) {
		if body := b.BodyOf(entity); body != nil {
			b.Physics.Remove(body.ID())
		}
		if b.World.Valid(entity) {
			b.World.Remove(entity)
		}
	}
	if b.Physics.IsLocked() {
		b.Physics.AddPostStepCallback(destroy, entity)
		return
	}
	destroy(b.Physics, entity)
}

// Each calls fn for every entity with a body.
func (b *Bridge) Each(fn func(entry *donburi.Entry, body *arcade.Body)) {
	bodyQuery.Each(b.World, func(entry *donburi.Entry) {
		fn(entry, Body.Get(entry).Body)
	})
}

// Update steps the physics world by elapsed seconds and delivers the queued collision events.
func (b *Bridge) Update(elapsed float64) int {
	steps := b.Physics.Update(elapsed)
	events.ProcessAllEvents(b.World)
	return steps
}
