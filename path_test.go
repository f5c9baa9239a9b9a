package arcade_test

import (
	"slices"
	"testing"

	"github.com/setanarut/arcade"
	"github.com/setanarut/vec"
)

func TestPathLength(t *testing.T) {
	p := arcade.NewPath(vec.Vec2{}, vec.Vec2{X: 3, Y: 4})
	p.Add(vec.Vec2{X: 3, Y: 14})
	if p.Len() != 3 || p.Length() != 15 {
		t.Errorf("Len = %d Length = %v, want 3, 15", p.Len(), p.Length())
	}
	if arcade.NewPath().Length() != 0 {
		t.Error("empty path has a length")
	}
}

func TestPathModeString(t *testing.T) {
	if arcade.PathYoYo.String() != "YoYo" || arcade.PathMode(9).String() != "Unknown" {
		t.Error("PathMode.String")
	}
}

// walk steps a world with a follower on a three node path and returns the nodes reached.
func walk(t *testing.T, mode arcade.PathMode, steps int) ([]int, *arcade.Follower) {
	t.Helper()
	w := newWorld(0)
	body := arcade.NewImmovableBody(0, 0, 10, 10)
	w.Add(body)

	// 10px segments walked in about one step each.
	path := arcade.NewPath(vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 15, Y: 5}, vec.Vec2{X: 25, Y: 5})
	f := w.AddFollower(arcade.NewFollower(body, path, 600, mode))

	var reached []int
	f.OnNode = func(_ *arcade.Follower, node int) { reached = append(reached, node) }
	for range steps {
		w.Step()
	}
	return reached, f
}

func TestFollowerForward(t *testing.T) {
	reached, f := walk(t, arcade.PathForward, 20)
	if !slices.Equal(reached, []int{1, 2}) {
		t.Errorf("reached %v, want [1 2]", reached)
	}
	if !f.Finished() {
		t.Error("forward follower did not finish")
	}
}

func TestFollowerLoop(t *testing.T) {
	reached, f := walk(t, arcade.PathLoop, 20)
	if len(reached) < 4 || !slices.Equal(reached[:4], []int{1, 2, 0, 1}) {
		t.Errorf("reached %v, want to start with [1 2 0 1]", reached)
	}
	if f.Finished() {
		t.Error("loop follower finished")
	}
}

func TestFollowerYoYo(t *testing.T) {
	reached, f := walk(t, arcade.PathYoYo, 20)
	if len(reached) < 5 || !slices.Equal(reached[:5], []int{1, 2, 1, 0, 1}) {
		t.Errorf("reached %v, want to start with [1 2 1 0 1]", reached)
	}
	if f.Finished() {
		t.Error("yoyo follower finished")
	}
}

func TestFollowerBackward(t *testing.T) {
	body := arcade.NewImmovableBody(20, 0, 10, 10)
	path := arcade.NewPath(vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 15, Y: 5}, vec.Vec2{X: 25, Y: 5})
	f := arcade.NewFollower(body, path, 600, arcade.PathBackward)

	if from, to := f.Segment(); from != 2 || to != 1 {
		t.Errorf("Segment = %d, %d, want 2, 1", from, to)
	}
}

func TestFollowerSetsVelocity(t *testing.T) {
	w := newWorld(0)
	body := arcade.NewImmovableBody(0, 0, 10, 10)
	w.Add(body)
	f := arcade.NewFollower(body, arcade.NewPath(vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 65, Y: 5}), 60, arcade.PathForward)

	f.Update(w, w.TimeStep())
	if v := body.Velocity(); !near32(v.X, 60) || v.Y != 0 {
		t.Errorf("velocity = %v, want (60, 0)", v)
	}
	if body.Position().X != 0 {
		t.Error("follower wrote the position")
	}
}

func TestFollowerRemovedBody(t *testing.T) {
	w := newWorld(0)
	body := arcade.NewImmovableBody(0, 0, 10, 10)
	w.Add(body)
	f := w.AddFollower(arcade.NewFollower(body, arcade.NewPath(vec.Vec2{}, vec.Vec2{X: 100}), 60, arcade.PathForward))
	w.Remove(body.ID())

	w.Step()
	if f.Finished() || body.Velocity() != (vec.Vec2{}) {
		t.Error("follower moved a removed body")
	}
}

func TestFollowerReset(t *testing.T) {
	_, f := walk(t, arcade.PathForward, 20)
	f.Reset()
	if f.Finished() {
		t.Error("Reset kept Finished")
	}
	if from, to := f.Segment(); from != 0 || to != 1 {
		t.Errorf("Segment = %d, %d, want 0, 1", from, to)
	}
}

// near32 compares values that went through float32 tweens.
func near32(a, b float64) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}
