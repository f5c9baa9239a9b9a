package arcade

import "strings"

// Direction is a set of box sides. Bodies use it to record which of their sides touch
// something, tiles and Collide use it as a mask of collidable edges.
type Direction uint8

const (
	None  Direction = 0
	Left  Direction = 1 << 0
	Right Direction = 1 << 1
	Up    Direction = 1 << 2
	Down  Direction = 1 << 3

	// Ceiling is the side that hits things above the body.
	Ceiling = Up
	// Floor is the side a body stands on.
	Floor = Down
	Wall  = Left | Right
	Any   = Left | Right | Up | Down
)

// Has returns true if every side in o is set in d.
func (d Direction) Has(o Direction) bool {
	return o != None && d&o == o
}

// HasAny returns true if d and o share at least one side.
func (d Direction) HasAny(o Direction) bool {
	return d&o != 0
}

// Opposite mirrors every side: Left becomes Right, Up becomes Down.
func (d Direction) Opposite() Direction {
	var o Direction
	if d&Left != 0 {
		o |= Right
	}
	if d&Right != 0 {
		o |= Left
	}
	if d&Up != 0 {
		o |= Down
	}
	if d&Down != 0 {
		o |= Up
	}
	return o
}

func (d Direction) String() string {
	switch d {
	case None:
		return "None"
	case Any:
		return "Any"
	}
	var parts []string
	for _, s := range []struct {
		d    Direction
		name string
	}{{Left, "Left"}, {Right, "Right"}, {Up, "Up"}, {Down, "Down"}} {
		if d&s.d != 0 {
			parts = append(parts, s.name)
		}
	}
	return strings.Join(parts, "|")
}
