package arcade

import (
	"math"

	"github.com/setanarut/vec"
)

// CollideEvent describes one resolved (or overlapping) pair.
//
// TouchingA holds the side of A that touches B during this collision and TouchingB the side of B.
// Both are None for Overlap events.
type CollideEvent struct {
	A, B                 *Body
	TouchingA, TouchingB Direction
}

// CollideFunc is collision event function callback type. Events are passed by value.
type CollideFunc func(ev CollideEvent)

// Resolver resolves collisions between pairs of bodies with single-axis impulses.
//
// It holds no scratch state, so a Resolver can be shared freely as long as the bodies of
// concurrent calls do not overlap.
type Resolver struct {
	// TimeStep is the fixed physics step in seconds. It sizes the swept move bounds.
	TimeStep float64
	// InverseTimeStep is 1 / TimeStep. It turns gaps into velocities.
	InverseTimeStep float64
}

// NewResolver returns a Resolver for the given fixed step. A step <= 0 is replaced by DefaultTimeStep.
func NewResolver(timeStep float64) Resolver {
	if !(timeStep > 0) {
		timeStep = DefaultTimeStep
	}
	return Resolver{
		TimeStep:        timeStep,
		InverseTimeStep: 1 / timeStep,
	}
}

// Overlap returns true if both bodies exist and their move bounds intersect.
// fn, if not nil, is called with no touching sides.
func (r Resolver) Overlap(a, b *Body, fn CollideFunc) bool {
	if a == nil || b == nil || !a.Exists() || !b.Exists() {
		return false
	}
	if !a.MoveBounds(r.TimeStep).Intersects(b.MoveBounds(r.TimeStep)) {
		return false
	}
	if fn != nil {
		fn(CollideEvent{A: a, B: b})
	}
	return true
}

// CollideAny is Collide with every edge of b collidable.
func (r Resolver) CollideAny(a, b *Body, fn CollideFunc) bool {
	return r.Collide(a, b, fn, Any)
}

// Collide resolves a collision between a and b along the axis of least penetration.
//
// edges is the set of b's sides that may be hit; a pair hitting any other side is ignored.
// Use Up alone for one-way platforms. If a is a tile and b is not the pair is swapped, so the
// tile is always b in callbacks.
//
// Collide returns false, without touching either body, when the bodies are not solid, both
// immovable, do not overlap, hit an excluded edge or are already separating.
func (r Resolver) Collide(a, b *Body, fn CollideFunc, edges Direction) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	if !a.Solid || !b.Solid || (a.immovable && b.immovable) {
		return false
	}
	if a.Tile && !b.Tile {
		a, b = b, a
	}
	if !r.Overlap(a, b, nil) {
		return false
	}

	boundsA, boundsB := a.Bounds(), b.Bounds()
	distance := boundsA.Distance(boundsB)

	var (
		n        vec.Vec2
		depth    float64
		sideA    Direction
		vertical = distance.Y > distance.X
	)
	if vertical {
		depth = distance.Y
		if boundsB.Mid().Y >= boundsA.Mid().Y {
			n, sideA = vec.Vec2{X: 0, Y: 1}, Down
		} else {
			n, sideA = vec.Vec2{X: 0, Y: -1}, Up
		}
	} else {
		depth = distance.X
		if boundsB.Mid().X >= boundsA.Mid().X {
			n, sideA = vec.Vec2{X: 1, Y: 0}, Right
		} else {
			n, sideA = vec.Vec2{X: -1, Y: 0}, Left
		}
	}
	sideB := sideA.Opposite()
	if !edges.HasAny(sideB) {
		return false
	}

	if b.Tile {
		if !r.resolveTile(a, boundsB, n, depth) {
			return false
		}
	} else if !r.resolveBodies(a, b, n, depth) {
		return false
	}

	a.Touching |= sideA
	b.Touching |= sideB
	if sideA == Down && b.IsPlatform && a.Acceleration.X == 0 {
		a.platform = b.id
	}

	if fn != nil {
		fn(CollideEvent{A: a, B: b, TouchingA: sideA, TouchingB: sideB})
	}
	return true
}

// resolveTile places a flush against the tile edge and stops it on the axis of n.
func (r Resolver) resolveTile(a *Body, tile AABB, n vec.Vec2, depth float64) bool {
	remove := -a.velocity.Dot(n) + math.Max(depth, 0)*r.InverseTimeStep
	if remove >= 0 {
		return false
	}

	switch {
	case n.X > 0:
		a.position.X = tile.Left() - a.width
		a.velocity.X = 0
	case n.X < 0:
		a.position.X = tile.Right()
		a.velocity.X = 0
	case n.Y > 0:
		a.position.Y = tile.Top() - a.height
		a.velocity.Y = 0
	default:
		a.position.Y = tile.Bottom()
		a.velocity.Y = 0
	}
	return true
}

// resolveBodies applies equal and opposite impulses so the gap closes exactly in one step.
func (r Resolver) resolveBodies(a, b *Body, n vec.Vec2, depth float64) bool {
	relativeNormalVelocity := b.velocity.Sub(a.velocity).Dot(n)
	remove := relativeNormalVelocity + depth*r.InverseTimeStep
	if remove >= 0 {
		return false
	}

	impulse := remove / (a.massInverse + b.massInverse)
	a.velocity = a.velocity.Add(n.Scale(impulse * a.massInverse))
	b.velocity = b.velocity.Sub(n.Scale(impulse * b.massInverse))
	return true
}
