package arcade

import (
	"fmt"
	"math"
	"slices"

	"github.com/setanarut/vec"
)

// WildcardCollisionType matches any collision type in a CollisionHandler.
const WildcardCollisionType CollisionType = ^CollisionType(0)

// CollisionHandler customizes how bodies of two collision types interact.
//
// Bodies are passed in handler order: a has TypeA and b has TypeB.
type CollisionHandler struct {
	TypeA, TypeB CollisionType
	// Filter vetoes a pair before it is resolved. nil accepts every pair.
	Filter func(a, b *Body) bool
	// Edges is the set of b's sides that can be hit. None means Any.
	Edges Direction
	// Sensor pairs are only tested with Overlap and never resolved.
	Sensor bool
	// Collide is called for every resolved (or overlapping sensor) pair.
	Collide CollideFunc
	// UserData is passed through untouched.
	UserData any
}

type handlerKey struct {
	a, b CollisionType
}

func newHandlerKey(a, b CollisionType) handlerKey {
	if a > b {
		a, b = b, a
	}
	return handlerKey{a, b}
}

// PostStepCallbackFunc is called right before World.Step returns.
type PostStepCallbackFunc func(world *World, key any)

// PostStepCallback is a callback registered with AddPostStepCallback.
type PostStepCallback struct {
	callback PostStepCallbackFunc
	key      any
}

type bodySlot struct {
	body       *Body
	generation uint32
}

// World owns a set of bodies and steps them with a fixed time step.
//
// Collisions between registered bodies are found with a broad phase and resolved in
// insertion order; bodies are then resolved against every tilemap, integrated, and the
// links are relaxed. A World is not safe for concurrent use.
type World struct {
	UserData any

	// Gravity is added to the acceleration of every movable body, scaled by Body.GravityScale.
	Gravity vec.Vec2

	// MaxSubSteps bounds how many fixed steps a single Update may run.
	MaxSubSteps int

	// LinkIterations is the number of link relaxations per step.
	LinkIterations int

	// OnCollide is called for every resolved pair after the pair's handler.
	OnCollide CollideFunc

	// Camera, if set, is updated at the end of every step.
	Camera *Camera

	resolver    Resolver
	index       SpatialIndexer
	slots       []bodySlot
	free        []int
	bodies      []*Body
	links       LinkGroup
	tilemaps    []*Tilemap
	followers   []*Follower
	handlers    map[handlerKey]*CollisionHandler
	handler     *CollisionHandler // handler of the pair being resolved
	dispatch    CollideFunc
	candidates  []*Body
	accumulator float64
	stamp       uint

	locked            bool
	pendingAdd        []*Body
	pendingRemove     []BodyID
	postStepCallbacks []*PostStepCallback
	skipPostStep      bool
}

var defaultCollisionHandler = CollisionHandler{
	TypeA: WildcardCollisionType,
	TypeB: WildcardCollisionType,
}

// NewWorld allocates a World from cfg. cfg is validated first; invalid fields fall back
// to DefaultConfig values.
func NewWorld(cfg Config) *World {
	if err := cfg.Validate(); err != nil {
		cfg = DefaultConfig()
	}
	quadtree := NewQuadtree(cfg.Bounds, cfg.Quadtree.MaxObjects, cfg.Quadtree.MaxLevels)
	quadtree.TimeStep = cfg.TimeStep

	world := &World{
		Gravity:        cfg.Gravity,
		MaxSubSteps:    cfg.MaxSubSteps,
		LinkIterations: cfg.LinkIterations,
		resolver:       NewResolver(cfg.TimeStep),
		index:          quadtree,
		handlers:       map[handlerKey]*CollisionHandler{},
	}
	world.dispatch = world.dispatchCollision
	return world
}

// Resolver returns the resolver used by Step.
func (w *World) Resolver() Resolver {
	return w.resolver
}

// TimeStep returns the fixed step in seconds.
func (w *World) TimeStep() float64 {
	return w.resolver.TimeStep
}

// Stamp returns the number of steps run so far.
func (w *World) Stamp() uint {
	return w.stamp
}

// SetSpatialIndex replaces the broad phase. The index is rebuilt every step.
func (w *World) SetSpatialIndex(index SpatialIndexer) {
	w.index = index
}

// Add registers body and returns its handle. Adding a body twice returns the existing handle.
//
// Bodies added during a step get a handle right away but join the simulation when the step ends.
func (w *World) Add(body *Body) BodyID {
	if body.World == w && w.Body(body.id) == body {
		return body.id
	}

	var slot int
	if n := len(w.free); n > 0 {
		slot = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		slot = len(w.slots)
		w.slots = append(w.slots, bodySlot{})
	}
	w.slots[slot].body = body
	body.id = newBodyID(slot, w.slots[slot].generation)
	body.World = w

	if w.locked {
		w.pendingAdd = append(w.pendingAdd, body)
	} else {
		w.appendBody(body)
	}
	return body.id
}

func (w *World) appendBody(body *Body) {
	body.order = len(w.bodies)
	w.bodies = append(w.bodies, body)
}

// Remove unregisters the body behind id. Links to it are dropped. Stale handles are ignored.
//
// Bodies removed during a step leave the simulation when the step ends.
func (w *World) Remove(id BodyID) {
	if w.Body(id) == nil {
		return
	}
	if w.locked {
		w.pendingRemove = append(w.pendingRemove, id)
		return
	}
	w.remove(id)
}

func (w *World) remove(id BodyID) {
	body := w.Body(id)
	if body == nil {
		return
	}
	slot := id.slot()
	w.slots[slot].body = nil
	w.slots[slot].generation++
	w.free = append(w.free, slot)

	if i := slices.Index(w.bodies, body); i >= 0 {
		w.bodies = slices.Delete(w.bodies, i, i+1)
		for j := i; j < len(w.bodies); j++ {
			w.bodies[j].order = j
		}
	}
	w.pendingAdd = slices.DeleteFunc(w.pendingAdd, func(b *Body) bool { return b == body })

	kept := w.links.Links[:0]
	for _, link := range w.links.Links {
		if link.A != body && link.B != body {
			kept = append(kept, link)
		}
	}
	clear(w.links.Links[len(kept):])
	w.links.Links = kept

	body.World = nil
	body.id = NoBody
}

// Body resolves a handle. It returns nil for NoBody and for handles of removed bodies.
func (w *World) Body(id BodyID) *Body {
	if id == NoBody {
		return nil
	}
	slot := id.slot()
	if slot < 0 || slot >= len(w.slots) || w.slots[slot].generation != id.generation() {
		return nil
	}
	return w.slots[slot].body
}

// Contains returns true if body is registered in this world.
func (w *World) Contains(body *Body) bool {
	return body != nil && body.World == w && w.Body(body.id) == body
}

// BodyCount returns the number of simulated bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Each calls f for every simulated body in insertion order.
//
// Example:
//
//	world.Each(func(b *arcade.Body) {
//		fmt.Println(b.Position())
//	})
func (w *World) Each(f func(body *Body)) {
	for _, body := range w.bodies {
		f(body)
	}
}

// AddLink adds a link between two bodies and returns it.
func (w *World) AddLink(link *Link) *Link {
	w.links.Add(link)
	return link
}

// AddLinks adds every link of a group, typically a LinkGrid. The grid points are added too.
func (w *World) AddLinks(links ...*Link) {
	for _, link := range links {
		w.Add(link.A)
		w.Add(link.B)
	}
	w.links.Add(links...)
}

// AddGrid adds the points of grid in row-major order, then its links.
func (w *World) AddGrid(grid *LinkGrid) {
	for _, point := range grid.Points {
		w.Add(point)
	}
	w.links.Add(grid.Links...)
}

// RemoveLink removes link. It returns false if the link was not in the world.
func (w *World) RemoveLink(link *Link) bool {
	i := slices.Index(w.links.Links, link)
	if i < 0 {
		return false
	}
	w.links.Links = slices.Delete(w.links.Links, i, i+1)
	return true
}

// Links returns the links of the world. The slice must not be modified.
func (w *World) Links() []*Link {
	return w.links.Links
}

// AddTilemap adds a tilemap every body collides with.
func (w *World) AddTilemap(m *Tilemap) *Tilemap {
	w.tilemaps = append(w.tilemaps, m)
	return m
}

// Tilemaps returns the tilemaps of the world.
func (w *World) Tilemaps() []*Tilemap {
	return w.tilemaps
}

// AddFollower adds a path follower, updated at the end of every step.
func (w *World) AddFollower(f *Follower) *Follower {
	w.followers = append(w.followers, f)
	return f
}

// RemoveFollower removes f. It returns false if f was not in the world.
func (w *World) RemoveFollower(f *Follower) bool {
	i := slices.Index(w.followers, f)
	if i < 0 {
		return false
	}
	w.followers = slices.Delete(w.followers, i, i+1)
	return true
}

// AddCollisionHandler adds and returns the CollisionHandler for pairs of type a and b.
// Adding the same pair again, in any order, returns the existing handler.
//
// Use WildcardCollisionType as b for a handler matching a against anything.
func (w *World) AddCollisionHandler(a, b CollisionType) *CollisionHandler {
	key := newHandlerKey(a, b)
	if handler, ok := w.handlers[key]; ok {
		return handler
	}
	handler := &CollisionHandler{TypeA: a, TypeB: b}
	w.handlers[key] = handler
	return handler
}

// LookupHandler returns the handler for a pair and the bodies in handler order.
//
// The exact pair wins over a wildcard handler of a, which wins over a wildcard handler of b.
func (w *World) LookupHandler(a, b *Body) (*CollisionHandler, *Body, *Body) {
	typeA, typeB := a.CollisionType, b.CollisionType
	if handler, ok := w.handlers[newHandlerKey(typeA, typeB)]; ok {
		if handler.TypeA != typeA {
			a, b = b, a
		}
		return handler, a, b
	}
	if handler, ok := w.handlers[newHandlerKey(typeA, WildcardCollisionType)]; ok {
		return handler, a, b
	}
	if handler, ok := w.handlers[newHandlerKey(typeB, WildcardCollisionType)]; ok {
		return handler, b, a
	}
	return &defaultCollisionHandler, a, b
}

// IsLocked returns true from inside a step, when bodies cannot be added or removed directly.
func (w *World) IsLocked() bool {
	return w.locked
}

// PostStepCallback returns the callback registered under key, or nil.
func (w *World) PostStepCallback(key any) *PostStepCallback {
	for _, callback := range w.postStepCallbacks {
		if callback != nil && callback.key == key {
			return callback
		}
	}
	return nil
}

// AddPostStepCallback defines a callback to be run just before Step finishes.
//
// Only one callback per non-nil key is kept, so a body hit twice in a step is not removed
// twice. Registering a second callback for the same key is a no-op and returns false.
// Outside of a step the callback runs at the end of the next one.
func (w *World) AddPostStepCallback(f PostStepCallbackFunc, key any) bool {
	if f == nil || (key != nil && w.PostStepCallback(key) != nil) {
		return false
	}
	w.postStepCallbacks = append(w.postStepCallbacks, &PostStepCallback{callback: f, key: key})
	return true
}

func (w *World) lock() {
	w.locked = true
}

func (w *World) unlock(runPostStep bool) {
	w.locked = false

	for _, id := range w.pendingRemove {
		w.remove(id)
	}
	clear(w.pendingRemove)
	w.pendingRemove = w.pendingRemove[:0]

	for _, body := range w.pendingAdd {
		if w.Contains(body) {
			w.appendBody(body)
		}
	}
	clear(w.pendingAdd)
	w.pendingAdd = w.pendingAdd[:0]

	if runPostStep && !w.skipPostStep {
		w.skipPostStep = true
		// Callbacks may add more callbacks; those run in this pass too.
		for i := 0; i < len(w.postStepCallbacks); i++ {
			callback := w.postStepCallbacks[i]
			f := callback.callback
			callback.callback = nil
			if f != nil {
				f(w, callback.key)
			}
		}
		clear(w.postStepCallbacks)
		w.postStepCallbacks = w.postStepCallbacks[:0]
		w.skipPostStep = false
	}
}

// Step advances the world by one fixed time step.
func (w *World) Step() {
	dt := w.resolver.TimeStep
	w.stamp++

	w.lock()
	{
		// Integrate velocities and reset contact state.
		for _, body := range w.bodies {
			if !body.Exists() {
				continue
			}
			body.SavePosition()
			body.UpdateVelocity(w.Gravity, dt)
			body.WasTouching = body.Touching
			body.Touching = None
			body.platform = NoBody
		}

		// Broad phase.
		w.index.Clear()
		w.index.Insert(w.bodies...)

		// Body pairs, each pair once, in insertion order of the first body.
		for _, a := range w.bodies {
			if !a.Exists() {
				continue
			}
			w.candidates = w.index.Retrieve(w.candidates[:0], a.MoveBounds(dt))
			for _, b := range w.candidates {
				if b.order <= a.order {
					continue
				}
				w.collidePair(a, b)
			}
		}
		clear(w.candidates)

		// Bodies against tiles.
		for _, m := range w.tilemaps {
			for _, body := range w.bodies {
				w.handler = &defaultCollisionHandler
				m.Collide(w.resolver, body, w.dispatch)
			}
		}
		w.handler = nil

		// Integrate positions, carrying riders with their platforms.
		for _, body := range w.bodies {
			if !body.Exists() {
				continue
			}
			body.UpdatePosition(dt)
			if platform := w.Body(body.platform); platform != nil && platform != body {
				body.position.X += platform.velocity.X * dt
			}
		}

		for range w.LinkIterations {
			w.links.Update(dt)
		}

		for _, f := range w.followers {
			f.Update(w, dt)
		}
		if w.Camera != nil {
			w.Camera.Update(w, dt)
		}
	}
	w.unlock(true)
}

func (w *World) collidePair(a, b *Body) {
	handler, a, b := w.LookupHandler(a, b)
	if handler.Filter != nil && !handler.Filter(a, b) {
		return
	}
	w.handler = handler
	if handler.Sensor || !a.Solid || !b.Solid {
		w.resolver.Overlap(a, b, w.dispatch)
		return
	}
	edges := handler.Edges
	if edges == None {
		edges = Any
	}
	w.resolver.Collide(a, b, w.dispatch, edges)
}

func (w *World) dispatchCollision(ev CollideEvent) {
	// A platform resolved as A still carries the body resting on it.
	if ev.TouchingB == Down && ev.A.IsPlatform && ev.B.Acceleration.X == 0 && !ev.A.Tile {
		ev.B.platform = ev.A.id
	}
	if w.handler != nil && w.handler.Collide != nil {
		w.handler.Collide(ev)
	}
	if w.OnCollide != nil {
		w.OnCollide(ev)
	}
}

// Update runs as many fixed steps as fit in elapsed seconds plus the time left over from
// previous calls, at most MaxSubSteps. Time that still does not fit is dropped.
// It returns the number of steps run.
func (w *World) Update(elapsed float64) int {
	dt := w.resolver.TimeStep
	w.accumulator += elapsed

	steps := 0
	for w.accumulator >= dt && (w.MaxSubSteps <= 0 || steps < w.MaxSubSteps) {
		w.Step()
		w.accumulator -= dt
		steps++
	}
	if w.accumulator >= dt {
		w.accumulator = math.Mod(w.accumulator, dt)
	}
	return steps
}

// Alpha returns how far the leftover time is into the next step, in [0, 1).
// Use it to interpolate drawing between PreviousPosition and Position.
func (w *World) Alpha() float64 {
	return w.accumulator * w.resolver.InverseTimeStep
}

// QueryRegion calls f for every existing body whose bounds touch region.
func (w *World) QueryRegion(region AABB, f func(body *Body)) {
	for _, body := range w.bodies {
		if body.Exists() && body.Bounds().Intersects(region) {
			f(body)
		}
	}
}

// QueryPoint returns the last added existing body containing p, or nil.
func (w *World) QueryPoint(p vec.Vec2) *Body {
	for i := len(w.bodies) - 1; i >= 0; i-- {
		if body := w.bodies[i]; body.Exists() && body.Bounds().ContainsPoint(p) {
			return body
		}
	}
	return nil
}

// DebugInfo holds world statistics.
type DebugInfo struct {
	Bodies, Links, TornLinks int
	Tilemaps, Followers      int
	Indexed                  int
	Steps                    uint
	KineticEnergy            float64
}

func (d DebugInfo) String() string {
	return fmt.Sprintf("bodies: %d (indexed %d)\nlinks: %d (torn %d)\ntilemaps: %d followers: %d\nsteps: %d\nkinetic energy: %.1f",
		d.Bodies, d.Indexed, d.Links, d.TornLinks, d.Tilemaps, d.Followers, d.Steps, d.KineticEnergy)
}

// DebugInfo returns statistics about the world.
func (w *World) DebugInfo() DebugInfo {
	info := DebugInfo{
		Bodies:    len(w.bodies),
		Links:     len(w.links.Links),
		Tilemaps:  len(w.tilemaps),
		Followers: len(w.followers),
		Indexed:   w.index.Count(),
		Steps:     w.stamp,
	}
	for _, link := range w.links.Links {
		if link.Torn() {
			info.TornLinks++
		}
	}
	for _, body := range w.bodies {
		info.KineticEnergy += body.KineticEnergy()
	}
	return info
}
