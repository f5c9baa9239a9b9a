package arcade_test

import (
	"testing"

	"github.com/setanarut/arcade"
)

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		d, want arcade.Direction
	}{
		{arcade.Left, arcade.Right},
		{arcade.Up, arcade.Down},
		{arcade.Left | arcade.Up, arcade.Right | arcade.Down},
		{arcade.Any, arcade.Any},
		{arcade.None, arcade.None},
	}
	for _, tt := range tests {
		if got := tt.d.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestDirectionHas(t *testing.T) {
	d := arcade.Left | arcade.Down
	if !d.Has(arcade.Left) || d.Has(arcade.Wall) || d.Has(arcade.None) {
		t.Error("Has")
	}
	if !d.HasAny(arcade.Wall) || d.HasAny(arcade.Ceiling) {
		t.Error("HasAny")
	}
}

func TestDirectionString(t *testing.T) {
	tests := map[arcade.Direction]string{
		arcade.None:               "None",
		arcade.Any:                "Any",
		arcade.Up:                 "Up",
		arcade.Right | arcade.Down: "Right|Down",
	}
	for d, want := range tests {
		if got := d.String(); got != want {
			t.Errorf("String = %q, want %q", got, want)
		}
	}
}
