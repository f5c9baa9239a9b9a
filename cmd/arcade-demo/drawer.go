package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/setanarut/arcade"
	"github.com/setanarut/arcade/internal/demo"
	"github.com/setanarut/vec"
)

// ebitenDrawer draws debug geometry with the vector package.
type ebitenDrawer struct {
	screen *ebiten.Image
	camera *arcade.Camera
	shake  float32
}

func newEbitenDrawer(camera *arcade.Camera) *ebitenDrawer {
	return &ebitenDrawer{camera: camera}
}

func toRGBA(c arcade.FColor) color.RGBA {
	return color.RGBA{
		R: uint8(c.R * c.A * 255),
		G: uint8(c.G * c.A * 255),
		B: uint8(c.B * c.A * 255),
		A: uint8(c.A * 255),
	}
}

func (d *ebitenDrawer) toScreen(p vec.Vec2) (float32, float32) {
	s := d.camera.WorldToScreen(p)
	return float32(s.X) + d.shake, float32(s.Y)
}

func (d *ebitenDrawer) DrawRect(bb arcade.AABB, outline, fill arcade.FColor, data any) {
	x, y := d.toScreen(vec.Vec2{X: bb.X, Y: bb.Y})
	z := float32(d.camera.Zoom)
	w, h := float32(bb.W)*z, float32(bb.H)*z
	vector.DrawFilledRect(d.screen, x, y, w, h, toRGBA(fill), false)
	vector.StrokeRect(d.screen, x, y, w, h, 1, toRGBA(outline), false)
}

func (d *ebitenDrawer) DrawSegment(a, b vec.Vec2, fill arcade.FColor, data any) {
	x0, y0 := d.toScreen(a)
	x1, y1 := d.toScreen(b)
	vector.StrokeLine(d.screen, x0, y0, x1, y1, 1, toRGBA(fill), true)
}

func (d *ebitenDrawer) DrawDot(size float64, pos vec.Vec2, fill arcade.FColor, data any) {
	x, y := d.toScreen(pos)
	vector.DrawFilledCircle(d.screen, x, y, float32(size/2), toRGBA(fill), true)
}

func (d *ebitenDrawer) Flags() uint {
	return arcade.DrawAll
}

func (d *ebitenDrawer) OutlineColor() arcade.FColor {
	return arcade.FColor{R: 0.1, G: 0.1, B: 0.12, A: 1}
}

func (d *ebitenDrawer) BodyColor(body *arcade.Body, data any) arcade.FColor {
	switch body.CollisionType {
	case demo.TypePlayer:
		return arcade.FColor{R: 0.35, G: 0.75, B: 1, A: 1}
	case demo.TypeCrate:
		return arcade.FColor{R: 0.8, G: 0.55, B: 0.3, A: 1}
	case demo.TypeCoin:
		return arcade.FColor{R: 1, G: 0.85, B: 0.2, A: 1}
	case demo.TypeLift:
		return arcade.FColor{R: 0.6, G: 0.9, B: 0.5, A: 1}
	}
	return arcade.FColor{R: 0.9, G: 0.9, B: 0.9, A: 1}
}

func (d *ebitenDrawer) TileColor(ref arcade.TileRef, data any) arcade.FColor {
	if ref.Index == arcade.PlatformTile {
		return arcade.FColor{R: 0.55, G: 0.4, B: 0.3, A: 1}
	}
	return arcade.FColor{R: 0.3, G: 0.32, B: 0.38, A: 1}
}

func (d *ebitenDrawer) LinkColor() arcade.FColor {
	return arcade.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1}
}

func (d *ebitenDrawer) TouchingColor() arcade.FColor {
	return arcade.FColor{R: 1, G: 0.3, B: 0.3, A: 1}
}

func (d *ebitenDrawer) Data() any {
	return nil
}
