package arcade_test

import (
	"math"
	"testing"

	"github.com/setanarut/arcade"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

var resolver = arcade.NewResolver(1.0 / 60.0)

func newTile(x, y, w, h float64) *arcade.Body {
	tile := arcade.NewImmovableBody(x, y, w, h)
	tile.Tile = true
	return tile
}

func TestNewResolverDefaultStep(t *testing.T) {
	r := arcade.NewResolver(0)
	if r.TimeStep != arcade.DefaultTimeStep || !near(r.InverseTimeStep, 60) {
		t.Errorf("NewResolver(0) = %+v", r)
	}
}

func TestCollideBothImmovable(t *testing.T) {
	a := arcade.NewImmovableBody(0, 0, 10, 10)
	b := arcade.NewImmovableBody(5, 0, 10, 10)
	a.SetVelocity(10, 0)

	if resolver.CollideAny(a, b, nil) {
		t.Fatal("immovable pair collided")
	}
	if a.Position().X != 0 || b.Position().X != 5 || a.Velocity().X != 10 || b.Velocity().X != 0 {
		t.Error("immovable pair was mutated")
	}
}

func TestCollideRejects(t *testing.T) {
	a := arcade.NewBody(0, 0, 10, 10, 1)
	if resolver.CollideAny(a, a, nil) {
		t.Error("body collided with itself")
	}

	b := arcade.NewBody(5, 0, 10, 10, 1)
	b.Solid = false
	if resolver.CollideAny(a, b, nil) {
		t.Error("non-solid body collided")
	}

	b.Solid = true
	b.Kill()
	if resolver.CollideAny(a, b, nil) {
		t.Error("dead body collided")
	}

	far := arcade.NewBody(100, 0, 10, 10, 1)
	if resolver.CollideAny(a, far, nil) {
		t.Error("distant body collided")
	}
}

func TestCollideTileSnaps(t *testing.T) {
	a := arcade.NewBody(0, 0, 16, 16, 1)
	a.SetVelocity(100, 0)
	tile := newTile(14, 0, 16, 16)

	var ev arcade.CollideEvent
	if !resolver.CollideAny(a, tile, func(e arcade.CollideEvent) { ev = e }) {
		t.Fatal("Collide = false, want true")
	}
	if a.Velocity().X != 0 {
		t.Errorf("velocity.X = %v, want 0", a.Velocity().X)
	}
	if want := tile.Position().X - a.Width(); a.Position().X != want {
		t.Errorf("X = %v, want %v", a.Position().X, want)
	}
	if ev.A != a || ev.B != tile || ev.TouchingA != arcade.Right || ev.TouchingB != arcade.Left {
		t.Errorf("event = %+v", ev)
	}
	if tile.Position().X != 14 {
		t.Error("tile moved")
	}
}

func TestCollideTileClosesGap(t *testing.T) {
	a := arcade.NewBody(0, 0, 16, 16, 1)
	a.SetVelocity(100, 0)
	tile := newTile(17, 0, 16, 16)

	if !resolver.CollideAny(a, tile, nil) {
		t.Fatal("Collide = false, want true")
	}
	if a.Position().X != 1 || a.Velocity().X != 0 {
		t.Errorf("position = %v velocity = %v, want flush and stopped", a.Position(), a.Velocity())
	}
}

func TestCollideTileResting(t *testing.T) {
	a := arcade.NewBody(0, 0, 16, 16, 1)
	tile := newTile(16, 0, 16, 16)

	if resolver.CollideAny(a, tile, nil) {
		t.Error("resting body collided with tile")
	}
}

func TestCollideSwapsTile(t *testing.T) {
	a := arcade.NewBody(0, 0, 16, 16, 1)
	a.SetVelocity(100, 0)
	tile := newTile(14, 0, 16, 16)

	var ev arcade.CollideEvent
	resolver.CollideAny(tile, a, func(e arcade.CollideEvent) { ev = e })
	if ev.A != a || ev.B != tile {
		t.Errorf("tile is not B: %+v", ev)
	}
}

func TestCollideHeadOn(t *testing.T) {
	a := arcade.NewBody(0, 0, 10, 10, 1)
	b := arcade.NewBody(6, 0, 10, 10, 1)
	a.SetVelocity(50, 0)
	b.SetVelocity(-50, 0)

	if !resolver.CollideAny(a, b, nil) {
		t.Fatal("Collide = false, want true")
	}
	if !near(a.Velocity().X, -120) || !near(b.Velocity().X, 120) {
		t.Errorf("velocities = %v, %v, want -120, 120", a.Velocity().X, b.Velocity().X)
	}
	if a.Velocity().Y != 0 || b.Velocity().Y != 0 {
		t.Error("velocity changed on the other axis")
	}

	// The gap closes in exactly one step.
	depth := a.Bounds().Distance(b.Bounds()).X
	rel := b.Velocity().X - a.Velocity().X
	if !near(rel+depth*resolver.InverseTimeStep, 0) {
		t.Errorf("relative velocity %v does not cancel depth %v", rel, depth)
	}
}

func TestCollideMassSplit(t *testing.T) {
	a := arcade.NewBody(0, 0, 10, 10, 3)
	b := arcade.NewBody(10, 0, 10, 10, 1)
	a.SetVelocity(40, 0)

	if !resolver.CollideAny(a, b, nil) {
		t.Fatal("Collide = false, want true")
	}
	// remove = -40, impulse = -40 / (1/3 + 1) = -30
	if !near(a.Velocity().X, 30) || !near(b.Velocity().X, 30) {
		t.Errorf("velocities = %v, %v, want 30, 30", a.Velocity().X, b.Velocity().X)
	}
}

func TestCollideSeparating(t *testing.T) {
	a := arcade.NewBody(0, 0, 10, 10, 1)
	b := arcade.NewBody(9, 0, 10, 10, 1)
	a.SetVelocity(-100, 0)
	b.SetVelocity(100, 0)

	if resolver.CollideAny(a, b, nil) {
		t.Error("separating bodies collided")
	}
	if a.Touching != arcade.None || b.Touching != arcade.None {
		t.Error("touching flags set on rejection")
	}
}

func TestCollideTouchingSymmetric(t *testing.T) {
	tests := []struct {
		name         string
		bx, by       float64
		sideA, sideB arcade.Direction
	}{
		{"right", 8, 0, arcade.Right, arcade.Left},
		{"left", -8, 0, arcade.Left, arcade.Right},
		{"below", 0, 8, arcade.Down, arcade.Up},
		{"above", 0, -8, arcade.Up, arcade.Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := arcade.NewBody(0, 0, 10, 10, 1)
			b := arcade.NewBody(tt.bx, tt.by, 10, 10, 1)
			if !resolver.CollideAny(a, b, nil) {
				t.Fatal("Collide = false, want true")
			}
			if a.Touching != tt.sideA || b.Touching != tt.sideB {
				t.Errorf("touching = %v, %v, want %v, %v", a.Touching, b.Touching, tt.sideA, tt.sideB)
			}
		})
	}
}

func TestCollideTieFavorsX(t *testing.T) {
	a := arcade.NewBody(0, 0, 10, 10, 1)
	b := arcade.NewBody(8, 8, 10, 10, 1)

	var ev arcade.CollideEvent
	if !resolver.CollideAny(a, b, func(e arcade.CollideEvent) { ev = e }) {
		t.Fatal("Collide = false, want true")
	}
	if ev.TouchingA != arcade.Right {
		t.Errorf("TouchingA = %v, want Right", ev.TouchingA)
	}
}

func TestCollideEdgeMask(t *testing.T) {
	// Falling onto a one-way platform.
	a := arcade.NewBody(0, 0, 10, 10, 1)
	a.SetVelocity(0, 100)
	platform := arcade.NewImmovableBody(0, 11, 10, 10)
	if !resolver.Collide(a, platform, nil, arcade.Up) {
		t.Fatal("falling body passed through platform")
	}
	if !near(a.Velocity().Y, 60) {
		t.Errorf("velocity.Y = %v, want 60", a.Velocity().Y)
	}

	// Jumping through it from below.
	b := arcade.NewBody(0, 22, 10, 10, 1)
	b.SetVelocity(0, -100)
	if resolver.Collide(b, platform, nil, arcade.Up) {
		t.Error("body hit the bottom of a one-way platform")
	}
	if b.Velocity().Y != -100 {
		t.Error("rejected pair was mutated")
	}
}

func TestCollidePlatform(t *testing.T) {
	w := arcade.NewWorld(arcade.DefaultConfig())
	platform := arcade.NewImmovableBody(0, 10, 30, 5)
	platform.IsPlatform = true
	w.Add(platform)

	rider := arcade.NewBody(0, 0, 10, 10, 1)
	rider.SetVelocity(0, 15)
	if !resolver.CollideAny(rider, platform, nil) {
		t.Fatal("Collide = false, want true")
	}
	if rider.Platform() != platform.ID() {
		t.Errorf("Platform = %v, want %v", rider.Platform(), platform.ID())
	}

	walker := arcade.NewBody(0, 0, 10, 10, 1)
	walker.SetVelocity(0, 15)
	walker.Acceleration.X = 100
	resolver.CollideAny(walker, platform, nil)
	if walker.Platform() != arcade.NoBody {
		t.Error("accelerating body got a platform")
	}
}

func TestOverlap(t *testing.T) {
	a := arcade.NewBody(0, 0, 10, 10, 1)
	b := arcade.NewBody(5, 5, 10, 10, 1)
	b.Solid = false

	called := false
	if !resolver.Overlap(a, b, func(ev arcade.CollideEvent) {
		called = true
		if ev.TouchingA != arcade.None || ev.TouchingB != arcade.None {
			t.Errorf("overlap event has touching flags: %+v", ev)
		}
	}) {
		t.Fatal("Overlap = false, want true")
	}
	if !called {
		t.Error("callback not called")
	}

	b.Active = false
	if resolver.Overlap(a, b, nil) {
		t.Error("inactive body overlapped")
	}
}

func TestOverlapSwept(t *testing.T) {
	a := arcade.NewBody(0, 0, 10, 10, 1)
	b := arcade.NewBody(20, 0, 10, 10, 1)
	if resolver.Overlap(a, b, nil) {
		t.Fatal("resting bodies overlap")
	}
	a.SetVelocity(900, 0) // 15px per step
	if !resolver.Overlap(a, b, nil) {
		t.Error("move bounds ignored")
	}
}
