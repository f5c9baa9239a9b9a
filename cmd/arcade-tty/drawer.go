package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/setanarut/arcade"
	"github.com/setanarut/arcade/internal/demo"
	"github.com/setanarut/vec"
)

// World pixels per terminal cell. Cells are about twice as tall as wide.
const (
	cellW = 8
	cellH = 16
)

// ttyDrawer draws debug geometry as colored terminal cells.
type ttyDrawer struct {
	screen tcell.Screen
	camera *arcade.Camera
}

func newTTYDrawer(screen tcell.Screen, camera *arcade.Camera) *ttyDrawer {
	return &ttyDrawer{screen: screen, camera: camera}
}

// resize fits the camera view to cols x rows cells.
func (d *ttyDrawer) resize(cols, rows int) {
	d.camera.Width = float64(cols * cellW)
	d.camera.Height = float64(rows * cellH)
}

func toColor(c arcade.FColor) tcell.Color {
	return tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255))
}

func (d *ttyDrawer) cell(p vec.Vec2) (int, int) {
	s := d.camera.WorldToScreen(p)
	return int(math.Floor(s.X / cellW)), int(math.Floor(s.Y / cellH))
}

func (d *ttyDrawer) DrawRect(bb arcade.AABB, outline, fill arcade.FColor, data any) {
	x0, y0 := d.cell(vec.Vec2{X: bb.Left(), Y: bb.Top()})
	x1, y1 := d.cell(vec.Vec2{X: bb.Right() - 0.5, Y: bb.Bottom() - 0.5})
	style := tcell.StyleDefault.Background(toColor(fill))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (d *ttyDrawer) DrawSegment(a, b vec.Vec2, fill arcade.FColor, data any) {
	x0, y0 := d.cell(a)
	x1, y1 := d.cell(b)
	steps := max(abs(x1-x0), abs(y1-y0))
	style := tcell.StyleDefault.Foreground(toColor(fill))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		d.keepBackground(x, y, '·', style)
	}
}

func (d *ttyDrawer) DrawDot(size float64, pos vec.Vec2, fill arcade.FColor, data any) {
	x, y := d.cell(pos)
	d.keepBackground(x, y, '•', tcell.StyleDefault.Foreground(toColor(fill)))
}

// keepBackground draws r over whatever background the cell already has.
func (d *ttyDrawer) keepBackground(x, y int, r rune, style tcell.Style) {
	_, _, current, _ := d.screen.GetContent(x, y)
	_, bg, _ := current.Decompose()
	d.screen.SetContent(x, y, r, nil, style.Background(bg))
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func (d *ttyDrawer) Flags() uint {
	return arcade.DrawBodies | arcade.DrawLinks | arcade.DrawTiles
}

func (d *ttyDrawer) OutlineColor() arcade.FColor {
	return arcade.FColor{A: 1}
}

func (d *ttyDrawer) BodyColor(body *arcade.Body, data any) arcade.FColor {
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

func (d *ttyDrawer) TileColor(ref arcade.TileRef, data any) arcade.FColor {
	if ref.Index == arcade.PlatformTile {
		return arcade.FColor{R: 0.55, G: 0.4, B: 0.3, A: 1}
	}
	return arcade.FColor{R: 0.3, G: 0.32, B: 0.38, A: 1}
}

func (d *ttyDrawer) LinkColor() arcade.FColor {
	return arcade.FColor{R: 0.9, G: 0.9, B: 0.9, A: 1}
}

func (d *ttyDrawer) TouchingColor() arcade.FColor {
	return arcade.FColor{R: 1, G: 0.3, B: 0.3, A: 1}
}

func (d *ttyDrawer) Data() any {
	return nil
}
