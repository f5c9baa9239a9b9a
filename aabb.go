package arcade

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// AABB is an axis-aligned box in screen space. (X, Y) is the top-left corner and Y grows downwards.
type AABB struct {
	X, Y, W, H float64
}

// NewAABB is convenience constructor for AABB structs.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{
		X: x,
		Y: y,
		W: w,
		H: h,
	}
}

// NewAABBForExtents constructs an AABB centered on a point with the given extents (half sizes).
func NewAABBForExtents(c vec.Vec2, hw, hh float64) AABB {
	return AABB{
		X: c.X - hw,
		Y: c.Y - hh,
		W: hw * 2,
		H: hh * 2,
	}
}

func (bb AABB) String() string {
	return fmt.Sprintf("%v %v %v %v", bb.X, bb.Y, bb.W, bb.H)
}

// Left returns the smallest x of the box.
func (bb AABB) Left() float64 {
	return bb.X
}

// Right returns the largest x of the box.
func (bb AABB) Right() float64 {
	return bb.X + bb.W
}

// Top returns the smallest y of the box.
func (bb AABB) Top() float64 {
	return bb.Y
}

// Bottom returns the largest y of the box.
func (bb AABB) Bottom() float64 {
	return bb.Y + bb.H
}

// Mid returns the center of the box.
func (bb AABB) Mid() vec.Vec2 {
	return vec.Vec2{X: bb.X + bb.W*0.5, Y: bb.Y + bb.H*0.5}
}

// HalfExtents returns half of the width and height.
func (bb AABB) HalfExtents() vec.Vec2 {
	return vec.Vec2{X: bb.W * 0.5, Y: bb.H * 0.5}
}

// Distance returns the signed gap between bb and other on each axis.
//
// A negative component is the overlap depth along that axis.
func (bb AABB) Distance(other AABB) vec.Vec2 {
	ma, mb := bb.Mid(), other.Mid()
	ha, hb := bb.HalfExtents(), other.HalfExtents()
	return vec.Vec2{
		X: math.Abs(ma.X-mb.X) - (ha.X + hb.X),
		Y: math.Abs(ma.Y-mb.Y) - (ha.Y + hb.Y),
	}
}

// Intersects returns true if a and b intersect. Touching edges count as intersecting.
func (bb AABB) Intersects(b AABB) bool {
	return bb.Left() <= b.Right() && b.Left() <= bb.Right() &&
		bb.Top() <= b.Bottom() && b.Top() <= bb.Bottom()
}

// Contains returns true if other lies completely within bb.
func (bb AABB) Contains(other AABB) bool {
	return bb.Left() <= other.Left() && bb.Right() >= other.Right() &&
		bb.Top() <= other.Top() && bb.Bottom() >= other.Bottom()
}

// ContainsPoint returns true if bb contains p.
func (bb AABB) ContainsPoint(p vec.Vec2) bool {
	return bb.Left() <= p.X && bb.Right() >= p.X && bb.Top() <= p.Y && bb.Bottom() >= p.Y
}

// Union returns a bounding box that holds both bounding boxes.
func (bb AABB) Union(b AABB) AABB {
	l := math.Min(bb.Left(), b.Left())
	t := math.Min(bb.Top(), b.Top())
	r := math.Max(bb.Right(), b.Right())
	btm := math.Max(bb.Bottom(), b.Bottom())
	return AABB{l, t, r - l, btm - t}
}

// Expand returns a bounding box that holds both bb and p.
func (bb AABB) Expand(p vec.Vec2) AABB {
	l := math.Min(bb.Left(), p.X)
	t := math.Min(bb.Top(), p.Y)
	r := math.Max(bb.Right(), p.X)
	btm := math.Max(bb.Bottom(), p.Y)
	return AABB{l, t, r - l, btm - t}
}

// Offset returns a bounding box moved by d.
func (bb AABB) Offset(d vec.Vec2) AABB {
	return AABB{bb.X + d.X, bb.Y + d.Y, bb.W, bb.H}
}

// Area returns the area of the bounding box.
func (bb AABB) Area() float64 {
	return bb.W * bb.H
}

// ClampPoint clamps a point to bounding box.
func (bb AABB) ClampPoint(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: clamp(p.X, bb.Left(), bb.Right()), Y: clamp(p.Y, bb.Top(), bb.Bottom())}
}

// SegmentQuery returns the fraction along the segment a-b where the box is hit.
// Returns infinity if it doesn't hit.
func (bb AABB) SegmentQuery(a, b vec.Vec2) float64 {
	delta := b.Sub(a)
	tmin := -infinity
	tmax := infinity

	if delta.X == 0 {
		if a.X < bb.Left() || bb.Right() < a.X {
			return infinity
		}
	} else {
		t1 := (bb.Left() - a.X) / delta.X
		t2 := (bb.Right() - a.X) / delta.X
		tmin = math.Max(tmin, math.Min(t1, t2))
		tmax = math.Min(tmax, math.Max(t1, t2))
	}

	if delta.Y == 0 {
		if a.Y < bb.Top() || bb.Bottom() < a.Y {
			return infinity
		}
	} else {
		t1 := (bb.Top() - a.Y) / delta.Y
		t2 := (bb.Bottom() - a.Y) / delta.Y
		tmin = math.Max(tmin, math.Min(t1, t2))
		tmax = math.Min(tmax, math.Max(t1, t2))
	}

	if tmin <= tmax && 0 <= tmax && tmin <= 1.0 {
		return math.Max(tmin, 0.0)
	}
	return infinity
}

// IntersectsSegment returns true if the bounding box intersects the line segment with ends a and b.
func (bb AABB) IntersectsSegment(a, b vec.Vec2) bool {
	return bb.SegmentQuery(a, b) != infinity
}
