package arcade

import (
	"github.com/setanarut/vec"
)

// Draw flags
const (
	DrawBodies        = 1 << 0
	DrawLinks         = 1 << 1
	DrawTiles         = 1 << 2
	DrawTouchingEdges = 1 << 3
	DrawPaths         = 1 << 4

	DrawAll = DrawBodies | DrawLinks | DrawTiles | DrawTouchingEdges | DrawPaths
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// Drawer renders debug geometry in world coordinates.
type Drawer interface {
	DrawRect(bb AABB, outline, fill FColor, data any)
	DrawSegment(a, b vec.Vec2, fill FColor, data any)
	DrawDot(size float64, pos vec.Vec2, fill FColor, data any)

	Flags() uint
	OutlineColor() FColor
	BodyColor(body *Body, data any) FColor
	TileColor(ref TileRef, data any) FColor
	LinkColor() FColor
	TouchingColor() FColor
	Data() any
}

// DrawBody draws the bounds of a body.
func DrawBody(body *Body, drawer Drawer) {
	data := drawer.Data()
	drawer.DrawRect(body.Bounds(), drawer.OutlineColor(), drawer.BodyColor(body, data), data)
}

// DrawTouching draws a line on every side of body that touched something this step.
func DrawTouching(body *Body, drawer Drawer) {
	if body.Touching == None {
		return
	}
	data := drawer.Data()
	color := drawer.TouchingColor()
	bb := body.Bounds()

	tl := vec.Vec2{X: bb.Left(), Y: bb.Top()}
	tr := vec.Vec2{X: bb.Right(), Y: bb.Top()}
	bl := vec.Vec2{X: bb.Left(), Y: bb.Bottom()}
	br := vec.Vec2{X: bb.Right(), Y: bb.Bottom()}

	if body.Touching.Has(Up) {
		drawer.DrawSegment(tl, tr, color, data)
	}
	if body.Touching.Has(Down) {
		drawer.DrawSegment(bl, br, color, data)
	}
	if body.Touching.Has(Left) {
		drawer.DrawSegment(tl, bl, color, data)
	}
	if body.Touching.Has(Right) {
		drawer.DrawSegment(tr, br, color, data)
	}
}

// DrawLink draws a link as a segment between its anchors. Torn links are not drawn.
func DrawLink(link *Link, drawer Drawer) {
	if link.Torn() {
		return
	}
	data := drawer.Data()
	color := drawer.LinkColor()
	a, b := link.AnchorA(), link.AnchorB()
	drawer.DrawSegment(a, b, color, data)
}

// DrawTilemap draws the non-empty tiles of m that intersect region.
func DrawTilemap(m *Tilemap, region AABB, drawer Drawer) {
	data := drawer.Data()
	outline := drawer.OutlineColor()
	m.OverlappingTiles(region, func(col, row, index int) {
		ref := TileRef{Map: m, Col: col, Row: row, Index: index}
		drawer.DrawRect(m.TileBounds(col, row), outline, drawer.TileColor(ref, data), data)
	})
}

// DrawPath draws the segments and nodes of a path.
func DrawPath(path *Path, drawer Drawer) {
	data := drawer.Data()
	color := drawer.LinkColor()
	for i, node := range path.Nodes {
		drawer.DrawDot(3, node, color, data)
		if i > 0 {
			drawer.DrawSegment(path.Nodes[i-1], node, color, data)
		}
	}
}

// DrawWorld draws everything in the world selected by drawer.Flags().
// Tiles are drawn within the camera view when the world has a camera.
func DrawWorld(w *World, drawer Drawer) {
	flags := drawer.Flags()

	if flags&DrawTiles != 0 {
		for _, m := range w.tilemaps {
			region := m.Bounds()
			if w.Camera != nil {
				region = w.Camera.View()
			}
			DrawTilemap(m, region, drawer)
		}
	}
	if flags&DrawPaths != 0 {
		for _, f := range w.followers {
			if f.Path != nil {
				DrawPath(f.Path, drawer)
			}
		}
	}
	if flags&DrawBodies != 0 {
		for _, body := range w.bodies {
			if body.Exists() {
				DrawBody(body, drawer)
			}
		}
	}
	if flags&DrawLinks != 0 {
		for _, link := range w.links.Links {
			DrawLink(link, drawer)
		}
	}
	if flags&DrawTouchingEdges != 0 {
		for _, body := range w.bodies {
			if body.Exists() {
				DrawTouching(body, drawer)
			}
		}
	}
}
