package arcade

import (
	"math"

	"github.com/setanarut/vec"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is a view into the world. X and Y are the world point at the center of the screen.
type Camera struct {
	X, Y float64
	// Width and Height are the screen size in pixels.
	Width, Height float64
	// Zoom is the scale factor (1 = no zoom, >1 = zoom in).
	Zoom float64

	// Deadzone is the size of the world box around the center the followed body can move
	// in without moving the camera. Zero follows exactly.
	Deadzone vec.Vec2

	// BoundsEnabled clamps the camera so the view stays within Bounds.
	BoundsEnabled bool
	Bounds        AABB

	follow     BodyID
	followLerp float64

	scrollTween *scrollAnim
}

// NewCamera returns a camera for a screen of the given size.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		X:      width / 2,
		Y:      height / 2,
		Width:  width,
		Height: height,
		Zoom:   1,
	}
}

// Follow makes the camera track the center of a body. A lerp of 1 snaps; lower values
// smooth the motion.
func (c *Camera) Follow(id BodyID, lerp float64) {
	c.follow = id
	c.followLerp = clamp01(lerp)
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() {
	c.follow = NoBody
}

// Following returns the followed body handle, or NoBody.
func (c *Camera) Following() BodyID {
	return c.follow
}

// ScrollTo animates the camera to the given world position over duration seconds.
// Following is suspended while the scroll runs.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling returns true while a ScrollTo animation runs.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables bounds clamping.
func (c *Camera) SetBounds(bounds AABB) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances scrolling or following, then clamps to the bounds.
func (c *Camera) Update(w *World, dt float64) {
	switch {
	case c.scrollTween != nil:
		s := c.scrollTween
		if !s.doneX {
			val, done := s.tweenX.Update(float32(dt))
			c.X, s.doneX = float64(val), done
		}
		if !s.doneY {
			val, done := s.tweenY.Update(float32(dt))
			c.Y, s.doneY = float64(val), done
		}
		if s.doneX && s.doneY {
			c.scrollTween = nil
		}
	case w != nil:
		if body := w.Body(c.follow); body != nil {
			target := c.deadzoneTarget(body.Bounds().Mid())
			c.X += (target.X - c.X) * c.followLerp
			c.Y += (target.Y - c.Y) * c.followLerp
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// deadzoneTarget returns the closest center that keeps p inside the deadzone.
func (c *Camera) deadzoneTarget(p vec.Vec2) vec.Vec2 {
	hw, hh := c.Deadzone.X*0.5, c.Deadzone.Y*0.5
	target := vec.Vec2{X: c.X, Y: c.Y}
	if p.X > c.X+hw {
		target.X = p.X - hw
	} else if p.X < c.X-hw {
		target.X = p.X + hw
	}
	if p.Y > c.Y+hh {
		target.Y = p.Y - hh
	} else if p.Y < c.Y-hh {
		target.Y = p.Y + hh
	}
	return target
}

func (c *Camera) clampToBounds() {
	halfW := c.Width / (2 * c.Zoom)
	halfH := c.Height / (2 * c.Zoom)

	minX := c.Bounds.Left() + halfW
	maxX := c.Bounds.Right() - halfW
	minY := c.Bounds.Top() + halfH
	maxY := c.Bounds.Bottom() - halfH

	// Bounds smaller than the view center the camera.
	if minX > maxX {
		c.X = c.Bounds.Mid().X
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Mid().Y
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: (p.X-c.X)*c.Zoom + c.Width/2,
		Y: (p.Y-c.Y)*c.Zoom + c.Height/2,
	}
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: (p.X-c.Width/2)/c.Zoom + c.X,
		Y: (p.Y-c.Height/2)/c.Zoom + c.Y,
	}
}

// View returns the visible world region.
func (c *Camera) View() AABB {
	w, h := c.Width/c.Zoom, c.Height/c.Zoom
	return AABB{c.X - w/2, c.Y - h/2, w, h}
}
