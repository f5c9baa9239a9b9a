package arcade

import (
	"fmt"

	"github.com/setanarut/vec"
)

// BodyID is a handle into a World's body registry. The zero value refers to no body.
//
// Handles are weak: once the body is removed the handle resolves to nil, even if the
// registry slot is reused.
type BodyID uint64

// NoBody is the zero handle.
const NoBody BodyID = 0

func newBodyID(slot int, gen uint32) BodyID {
	return BodyID(uint64(gen)<<32 | uint64(slot+1))
}

func (id BodyID) slot() int {
	return int(uint32(id)) - 1
}

func (id BodyID) generation() uint32 {
	return uint32(id >> 32)
}

func (id BodyID) String() string {
	if id == NoBody {
		return "NoBody"
	}
	return fmt.Sprintf("Body#%d.%d", id.slot(), id.generation())
}

// BodyVelocityFunc is body velocity integration function type.
type BodyVelocityFunc func(body *Body, gravity vec.Vec2, dt float64)

// BodyPositionFunc is body position integration function type.
type BodyPositionFunc func(body *Body, dt float64)

// CollisionType tags bodies for collision handler lookup.
type CollisionType uint32

// Body is an axis-aligned rigid body. Position is the top-left corner of the box.
type Body struct {
	// UserData is an object that this body is associated with.
	//
	// You can use this get a reference to your game object or controller object from within callbacks.
	UserData any
	World    *World

	// CollisionType selects the CollisionHandler used for this body's pairs.
	CollisionType CollisionType

	// Solid bodies take part in Collide. Non-solid bodies only report Overlap.
	Solid bool
	// IsPlatform marks a body that can carry other bodies standing on it.
	IsPlatform bool
	// Tile marks static tiles, which get the pixel-exact tile response in Collide.
	Tile bool

	Alive  bool
	Active bool

	// Touching holds the sides touching something during the current step.
	// WasTouching holds the value from the previous step.
	Touching, WasTouching Direction

	Acceleration vec.Vec2
	// Drag slows an axis down while it has no acceleration. Pixels per second squared.
	Drag vec.Vec2
	// MaxVelocity clamps each axis. Zero means unlimited.
	MaxVelocity vec.Vec2
	// GravityScale multiplies the world gravity. Defaults to 1.
	GravityScale float64

	id            BodyID
	order         int // position in the World's insertion order
	position      vec.Vec2 // Top-left
	previous      vec.Vec2 // Position at the start of the step
	velocity      vec.Vec2
	width, height float64
	mass          float64
	massInverse   float64
	immovable     bool
	platform      BodyID
	velocityFunc  BodyVelocityFunc
	positionFunc  BodyPositionFunc
}

// String returns body id and bounds as string
func (b Body) String() string {
	return fmt.Sprint(b.id, " [", b.Bounds(), "]")
}

// NewBody initializes a movable solid body with top-left corner (x, y), size (w, h) and the given mass.
//
// A mass <= 0 is replaced by 1.
func NewBody(x, y, w, h, mass float64) *Body {
	body := &Body{
		Solid:        true,
		Alive:        true,
		Active:       true,
		GravityScale: 1,
		position:     vec.Vec2{X: x, Y: y},
		previous:     vec.Vec2{X: x, Y: y},
		width:        w,
		height:       h,
		velocityFunc: BodyUpdateVelocity,
		positionFunc: BodyUpdatePosition,
	}
	body.SetMass(mass)
	return body
}

// NewImmovableBody allocates and initializes a Body, and sets it immovable.
func NewImmovableBody(x, y, w, h float64) *Body {
	body := NewBody(x, y, w, h, 1)
	body.SetImmovable(true)
	body.GravityScale = 0
	return body
}

// ID returns the registry handle of the body. NoBody until the body is added to a World.
func (body *Body) ID() BodyID {
	return body.id
}

// Mass returns mass of the body
func (body *Body) Mass() float64 {
	return body.mass
}

// SetMass sets mass of the body. A mass <= 0 is replaced by 1.
func (body *Body) SetMass(mass float64) {
	if !(mass > 0) {
		mass = 1
	}
	body.mass = mass
	body.updateMassInverse()
}

// InverseMass returns 1/mass, or 0 for immovable bodies.
func (body *Body) InverseMass() float64 {
	return body.massInverse
}

// Immovable returns true if collisions never move this body.
func (body *Body) Immovable() bool {
	return body.immovable
}

// SetImmovable sets the immovable flag and keeps the inverse mass in sync.
func (body *Body) SetImmovable(immovable bool) {
	body.immovable = immovable
	body.updateMassInverse()
}

func (body *Body) updateMassInverse() {
	if body.immovable {
		body.massInverse = 0
	} else {
		body.massInverse = 1 / body.mass
	}
}

// Position returns the top-left corner of the body.
func (body *Body) Position() vec.Vec2 {
	return body.position
}

// SetPosition sets the top-left corner of the body.
func (body *Body) SetPosition(position vec.Vec2) {
	body.position = position
}

// Reset moves the body to position and forgets the previous position, so links and
// Delta see no movement.
func (body *Body) Reset(position vec.Vec2) {
	body.position = position
	body.previous = position
	body.velocity = vec.Vec2{}
	body.Touching = None
	body.WasTouching = None
	body.platform = NoBody
}

// PreviousPosition returns the position at the start of the current step.
func (body *Body) PreviousPosition() vec.Vec2 {
	return body.previous
}

// SavePosition stores the current position as the previous position.
// World.Step calls it once per step before integration.
func (body *Body) SavePosition() {
	body.previous = body.position
}

// Delta returns how far the body moved since the start of the step.
func (body *Body) Delta() vec.Vec2 {
	return body.position.Sub(body.previous)
}

// Velocity returns the velocity of the body.
func (body *Body) Velocity() vec.Vec2 {
	return body.velocity
}

// SetVelocity sets the velocity of the body.
//
// Shorthand for Body.SetVelocityVector()
func (body *Body) SetVelocity(x, y float64) {
	body.velocity = vec.Vec2{X: x, Y: y}
}

// SetVelocityVector sets the velocity of the body
func (body *Body) SetVelocityVector(v vec.Vec2) {
	body.velocity = v
}

// ApplyImpulse changes velocity by j scaled with the inverse mass.
func (body *Body) ApplyImpulse(j vec.Vec2) {
	body.velocity.X += j.X * body.massInverse
	body.velocity.Y += j.Y * body.massInverse
}

// Width returns the width of the body.
func (body *Body) Width() float64 {
	return body.width
}

// Height returns the height of the body.
func (body *Body) Height() float64 {
	return body.height
}

// SetSize sets width and height of the body.
func (body *Body) SetSize(w, h float64) {
	body.width = w
	body.height = h
}

// Bounds returns the box of the body at its current position.
func (body *Body) Bounds() AABB {
	return AABB{body.position.X, body.position.Y, body.width, body.height}
}

// MoveBounds returns the region the body sweeps over the next dt seconds at its current velocity.
func (body *Body) MoveBounds(dt float64) AABB {
	bb := body.Bounds()
	return bb.Union(bb.Offset(body.velocity.Scale(dt)))
}

// Platform returns the handle of the platform this body stands on, or NoBody.
func (body *Body) Platform() BodyID {
	return body.platform
}

// SetPlatform sets the platform handle. Collide assigns it; World.Step clears it every step.
func (body *Body) SetPlatform(id BodyID) {
	body.platform = id
}

// IsTouching returns true if any side in d touched something this step.
func (body *Body) IsTouching(d Direction) bool {
	return body.Touching.HasAny(d)
}

// JustTouched returns true if a side in d touches now but did not touch last step.
func (body *Body) JustTouched(d Direction) bool {
	return body.Touching.HasAny(d) && !body.WasTouching.HasAny(d)
}

// Exists returns true if the body is alive and active.
func (body *Body) Exists() bool {
	return body.Alive && body.Active
}

// Kill marks the body dead. Dead bodies are skipped by every collision and link.
func (body *Body) Kill() {
	body.Alive = false
}

// Revive marks the body alive again.
func (body *Body) Revive() {
	body.Alive = true
}

// KineticEnergy returns the kinetic energy of this body.
func (body *Body) KineticEnergy() float64 {
	// Need to do some fudging to avoid NaNs
	vsq := body.velocity.Dot(body.velocity)
	if vsq == 0 || body.immovable {
		return 0
	}
	return vsq * body.mass
}

// SetVelocityUpdateFunc sets the callback used to update a body's velocity.
func (body *Body) SetVelocityUpdateFunc(f BodyVelocityFunc) {
	body.velocityFunc = f
}

// SetPositionUpdateFunc sets the callback used to update a body's position.
func (body *Body) SetPositionUpdateFunc(f BodyPositionFunc) {
	body.positionFunc = f
}

// UpdateVelocity runs the body's velocity integration function.
func (body *Body) UpdateVelocity(gravity vec.Vec2, dt float64) {
	body.velocityFunc(body, gravity, dt)
}

// UpdatePosition runs the body's position integration function.
func (body *Body) UpdatePosition(dt float64) {
	body.positionFunc(body, dt)
}

// BodyUpdateVelocity is default velocity integration function.
//
// Acceleration and scaled gravity are added per axis. An axis without acceleration is
// slowed by Drag, then MaxVelocity clamps the result.
func BodyUpdateVelocity(body *Body, gravity vec.Vec2, dt float64) {
	if body.immovable {
		return
	}
	g := gravity.Scale(body.GravityScale)
	body.velocity.X = computeVelocity(body.velocity.X, body.Acceleration.X+g.X, body.Drag.X, body.MaxVelocity.X, dt)
	body.velocity.Y = computeVelocity(body.velocity.Y, body.Acceleration.Y+g.Y, body.Drag.Y, body.MaxVelocity.Y, dt)
}

// BodyUpdatePosition is default position integration function.
func BodyUpdatePosition(body *Body, dt float64) {
	body.position = body.position.Add(body.velocity.Scale(dt))
}

func computeVelocity(v, accel, drag, max, dt float64) float64 {
	if accel != 0 {
		v += accel * dt
	} else if drag != 0 {
		d := drag * dt
		if v-d > 0 {
			v -= d
		} else if v+d < 0 {
			v += d
		} else {
			v = 0
		}
	}
	if max > 0 {
		v = clamp(v, -max, max)
	}
	return v
}
