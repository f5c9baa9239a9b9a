package arcade

import (
	"github.com/setanarut/vec"
)

// Link is a Verlet distance constraint between two bodies.
//
// Each Update moves both endpoints along the link axis toward RestingDistance and rebuilds
// their velocities from the position change, so links can be mixed with impulse-resolved bodies.
type Link struct {
	A, B *Body
	// OffsetA and OffsetB are attachment points relative to each body's top-left corner.
	OffsetA, OffsetB vec.Vec2
	RestingDistance  float64
	// Stiffness in [0, 1]. 1 corrects the whole error in one update.
	Stiffness float64
	// TearDistance breaks the link when the anchors get further apart. 0 disables tearing.
	TearDistance float64

	torn bool
}

// NewLink links a and b at the given offsets. The resting distance is the current distance
// between the anchors.
func NewLink(a, b *Body, offsetA, offsetB vec.Vec2, stiffness float64) *Link {
	link := &Link{
		A:         a,
		B:         b,
		OffsetA:   offsetA,
		OffsetB:   offsetB,
		Stiffness: clamp01(stiffness),
	}
	link.RestingDistance = link.AnchorB().Sub(link.AnchorA()).Mag()
	return link
}

// AnchorA returns the world position of the attachment point on A.
func (link *Link) AnchorA() vec.Vec2 {
	return link.A.position.Add(link.OffsetA)
}

// AnchorB returns the world position of the attachment point on B.
func (link *Link) AnchorB() vec.Vec2 {
	return link.B.position.Add(link.OffsetB)
}

// Distance returns the current distance between the anchors.
func (link *Link) Distance() float64 {
	return link.AnchorA().Sub(link.AnchorB()).Mag()
}

// Torn returns true once the link exceeded its TearDistance.
func (link *Link) Torn() bool {
	return link.torn
}

// Update runs one relaxation of the link. dt is the physics step used to rebuild velocities.
//
// Coincident anchors have no axis to push along and are left alone.
func (link *Link) Update(dt float64) {
	if link.torn {
		return
	}
	a, b := link.A, link.B

	difference := link.AnchorA().Sub(link.AnchorB())
	distance := difference.Mag()
	if distance == 0 {
		return
	}
	if link.TearDistance > 0 && distance > link.TearDistance {
		link.torn = true
		return
	}

	factor := (link.RestingDistance - distance) / distance

	invMassA := 1 / a.mass
	invMassB := 1 / b.mass
	stiffness := clamp01(link.Stiffness)
	scalarA := stiffness * invMassA / (invMassA + invMassB)
	scalarB := stiffness - scalarA

	if movableEndpoint(a) {
		a.position = a.position.Add(difference.Scale(scalarA * factor))
		rebuildVelocity(a, dt)
	}
	if movableEndpoint(b) {
		b.position = b.position.Sub(difference.Scale(scalarB * factor))
		rebuildVelocity(b, dt)
	}
}

func movableEndpoint(body *Body) bool {
	return !body.immovable && body.Exists()
}

func rebuildVelocity(body *Body, dt float64) {
	if dt > 0 {
		body.velocity = body.position.Sub(body.previous).Scale(1 / dt)
	}
}

// LinkGroup is an ordered list of links updated together.
type LinkGroup struct {
	Links []*Link
}

// Add appends links to the group.
func (g *LinkGroup) Add(links ...*Link) {
	g.Links = append(g.Links, links...)
}

// Update relaxes every link once, in list order.
func (g *LinkGroup) Update(dt float64) {
	for _, link := range g.Links {
		link.Update(dt)
	}
}

// RemoveTorn drops torn links and returns how many were removed.
func (g *LinkGroup) RemoveTorn() int {
	n := 0
	kept := g.Links[:0]
	for _, link := range g.Links {
		if link.torn {
			n++
			continue
		}
		kept = append(kept, link)
	}
	clear(g.Links[len(kept):])
	g.Links = kept
	return n
}

// Clear drops every link of the group.
func (g *LinkGroup) Clear() {
	clear(g.Links)
	g.Links = g.Links[:0]
}

// PointFactory creates a grid point body at the given grid cell and position.
type PointFactory func(col, row int, pos vec.Vec2) *Body

// DefaultPointFactory creates 2x2 bodies of mass 1 centered on pos.
func DefaultPointFactory(col, row int, pos vec.Vec2) *Body {
	return NewBody(pos.X-1, pos.Y-1, 2, 2, 1)
}

// LinkGrid is a cols x rows mesh of point bodies.
type LinkGrid struct {
	LinkGroup
	Cols, Rows int
	// Points is row-major: Points[row*Cols+col].
	Points []*Body
}

// Point returns the body at (col, row).
func (g *LinkGrid) Point(col, row int) *Body {
	return g.Points[row*g.Cols+col]
}

// MakeGrid builds a mesh of point bodies spaced by spacing, starting at origin.
//
// Every point is linked to its left and upper neighbour only, which suits cloth and rope
// rather than rigid sheets. Links attach at the point centers. A nil factory uses DefaultPointFactory.
func MakeGrid(origin vec.Vec2, cols, rows int, spacing, stiffness float64, factory PointFactory) *LinkGrid {
	if factory == nil {
		factory = DefaultPointFactory
	}
	grid := &LinkGrid{
		Cols:   cols,
		Rows:   rows,
		Points: make([]*Body, 0, cols*rows),
	}

	for row := range rows {
		for col := range cols {
			pos := origin.Add(vec.Vec2{X: float64(col) * spacing, Y: float64(row) * spacing})
			point := factory(col, row, pos)
			grid.Points = append(grid.Points, point)

			if col > 0 {
				grid.Add(newCenterLink(grid.Point(col-1, row), point, spacing, stiffness))
			}
			if row > 0 {
				grid.Add(newCenterLink(grid.Point(col, row-1), point, spacing, stiffness))
			}
		}
	}
	return grid
}

func newCenterLink(a, b *Body, rest, stiffness float64) *Link {
	return &Link{
		A:               a,
		B:               b,
		OffsetA:         a.Bounds().HalfExtents(),
		OffsetB:         b.Bounds().HalfExtents(),
		RestingDistance: rest,
		Stiffness:       clamp01(stiffness),
	}
}
