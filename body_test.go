package arcade_test

import (
	"testing"

	"github.com/setanarut/arcade"
	"github.com/setanarut/vec"
)

func TestNewBody(t *testing.T) {
	b := arcade.NewBody(1, 2, 3, 4, 0)
	if b.Mass() != 1 || b.InverseMass() != 1 {
		t.Errorf("mass = %v inverse = %v, want 1, 1", b.Mass(), b.InverseMass())
	}
	if !b.Solid || !b.Exists() || b.GravityScale != 1 || b.ID() != arcade.NoBody {
		t.Errorf("defaults = %+v", b)
	}
	if b.Bounds() != (arcade.AABB{X: 1, Y: 2, W: 3, H: 4}) {
		t.Errorf("Bounds = %v", b.Bounds())
	}

	b.SetMass(-5)
	if b.Mass() != 1 {
		t.Errorf("SetMass(-5) = %v, want 1", b.Mass())
	}
	b.SetMass(4)
	if b.InverseMass() != 0.25 {
		t.Errorf("InverseMass = %v, want 0.25", b.InverseMass())
	}
}

func TestImmovableBody(t *testing.T) {
	b := arcade.NewImmovableBody(0, 0, 10, 10)
	if !b.Immovable() || b.InverseMass() != 0 || b.GravityScale != 0 {
		t.Errorf("immovable = %v inverse = %v", b.Immovable(), b.InverseMass())
	}

	b.ApplyImpulse(vec.Vec2{X: 10})
	b.UpdateVelocity(vec.Vec2{Y: 900}, dt)
	if b.Velocity() != (vec.Vec2{}) {
		t.Error("immovable body gained velocity")
	}

	b.SetImmovable(false)
	if b.InverseMass() != 1 {
		t.Errorf("InverseMass = %v after SetImmovable(false)", b.InverseMass())
	}
	if b.KineticEnergy() != 0 {
		t.Error("resting body has kinetic energy")
	}
}

func TestBodyUpdateVelocity(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *arcade.Body)
		gravity vec.Vec2
		want    vec.Vec2
	}{
		{"gravity", func(b *arcade.Body) {}, vec.Vec2{Y: 600}, vec.Vec2{Y: 10}},
		{"gravity scale", func(b *arcade.Body) { b.GravityScale = 0.5 }, vec.Vec2{Y: 600}, vec.Vec2{Y: 5}},
		{"acceleration", func(b *arcade.Body) { b.Acceleration.X = -120 }, vec.Vec2{}, vec.Vec2{X: -2}},
		{"drag", func(b *arcade.Body) { b.SetVelocity(10, 0); b.Drag.X = 300 }, vec.Vec2{}, vec.Vec2{X: 5}},
		{"drag stops", func(b *arcade.Body) { b.SetVelocity(-3, 0); b.Drag.X = 300 }, vec.Vec2{}, vec.Vec2{}},
		{"drag ignored while accelerating", func(b *arcade.Body) {
			b.SetVelocity(10, 0)
			b.Drag.X = 300
			b.Acceleration.X = 60
		}, vec.Vec2{}, vec.Vec2{X: 11}},
		{"max velocity", func(b *arcade.Body) { b.SetVelocity(0, 99); b.MaxVelocity.Y = 100 }, vec.Vec2{Y: 600}, vec.Vec2{Y: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := arcade.NewBody(0, 0, 1, 1, 1)
			tt.setup(b)
			b.UpdateVelocity(tt.gravity, 1.0/60)
			if v := b.Velocity(); !near(v.X, tt.want.X) || !near(v.Y, tt.want.Y) {
				t.Errorf("velocity = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestBodyPosition(t *testing.T) {
	b := arcade.NewBody(0, 0, 10, 10, 1)
	b.SetVelocity(60, -120)
	b.SavePosition()
	b.UpdatePosition(0.5)

	if b.Position() != (vec.Vec2{X: 30, Y: -60}) {
		t.Errorf("Position = %v", b.Position())
	}
	if b.Delta() != (vec.Vec2{X: 30, Y: -60}) || b.PreviousPosition() != (vec.Vec2{}) {
		t.Errorf("Delta = %v", b.Delta())
	}

	b.Touching = arcade.Down
	b.SetPlatform(7)
	b.Reset(vec.Vec2{X: 5, Y: 5})
	if b.Delta() != (vec.Vec2{}) || b.Velocity() != (vec.Vec2{}) || b.Touching != arcade.None || b.Platform() != arcade.NoBody {
		t.Error("Reset kept motion state")
	}
}

func TestBodyMoveBounds(t *testing.T) {
	b := arcade.NewBody(10, 10, 10, 10, 1)
	b.SetVelocity(-60, 120)
	if got := b.MoveBounds(0.5); got != (arcade.AABB{X: -20, Y: 10, W: 40, H: 70}) {
		t.Errorf("MoveBounds = %v", got)
	}
}

func TestBodyTouching(t *testing.T) {
	b := arcade.NewBody(0, 0, 1, 1, 1)
	b.Touching = arcade.Down | arcade.Left
	b.WasTouching = arcade.Left

	if !b.IsTouching(arcade.Floor) || !b.IsTouching(arcade.Wall) || b.IsTouching(arcade.Ceiling) {
		t.Error("IsTouching")
	}
	if !b.JustTouched(arcade.Floor) || b.JustTouched(arcade.Left) {
		t.Error("JustTouched")
	}
}

func TestBodyKillRevive(t *testing.T) {
	b := arcade.NewBody(0, 0, 1, 1, 1)
	b.Kill()
	if b.Exists() {
		t.Error("dead body exists")
	}
	b.Revive()
	b.Active = false
	if b.Exists() {
		t.Error("inactive body exists")
	}
}

func TestBodyCustomIntegration(t *testing.T) {
	b := arcade.NewBody(0, 0, 1, 1, 1)
	b.SetVelocityUpdateFunc(func(body *arcade.Body, gravity vec.Vec2, dt float64) {
		body.SetVelocity(1, 1)
	})
	b.SetPositionUpdateFunc(func(body *arcade.Body, dt float64) {
		body.SetPosition(vec.Vec2{X: 42})
	})
	b.UpdateVelocity(vec.Vec2{}, dt)
	b.UpdatePosition(dt)
	if b.Velocity() != (vec.Vec2{X: 1, Y: 1}) || b.Position().X != 42 {
		t.Error("custom integration functions not used")
	}
}

func TestBodyIDString(t *testing.T) {
	w := newWorld(0)
	id := w.Add(arcade.NewBody(0, 0, 1, 1, 1))
	if id.String() != "Body#0.0" || arcade.NoBody.String() != "NoBody" {
		t.Errorf("String = %q", id.String())
	}
}
