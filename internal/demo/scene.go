// Package demo builds the level shared by the arcade demos.
package demo

import (
	"math"

	"github.com/setanarut/arcade"
	"github.com/setanarut/vec"
)

// Collision types of the demo bodies.
const (
	TypePlayer arcade.CollisionType = iota + 1
	TypeCrate
	TypeCoin
	TypeRope
	TypeLift
)

const TileSize = 16

// Level is the demo map. '#' is solid, '=' a one-way platform, 'p' the player start,
// 'c' a crate, 'o' a coin, 'r' a rope anchor and 'l' the start of the lift.
var Level = []string{
	"########################################",
	"#......................................#",
	"#...........r..........................#",
	"#..........o.......o..........o........#",
	"#.......=====...........=====..........#",
	"#...................................o..#",
	"#..o.........................l.....#####",
	"#######.........................########",
	"#......................................#",
	"#...p.....c....######....c.c...........#",
	"#......................................#",
	"########################################",
}

const (
	moveAccel   = 900
	jumpSpeed   = 380
	hitSpeed    = 120
	liftTravel  = 5 * TileSize
	liftSpeed   = 40
	ropeLinks   = 7
	ropeSpacing = 10
)

// Config returns the world configuration the demo is tuned for.
func Config() arcade.Config {
	cfg := arcade.DefaultConfig()
	cfg.Gravity = vec.Vec2{X: 0, Y: 900}
	cfg.Bounds = arcade.AABB{X: 0, Y: 0, W: float64(len(Level[0]) * TileSize), H: float64(len(Level) * TileSize)}
	return cfg
}

// LoadConfig reads a YAML world config over Config, so a file that leaves out gravity
// or bounds keeps the level's values.
func LoadConfig(path string) (arcade.Config, error) {
	return arcade.LoadConfigOver(path, Config())
}

// Scene is the demo level and its bodies.
type Scene struct {
	World  *arcade.World
	Map    *arcade.Tilemap
	Player *arcade.Body
	Rope   *arcade.LinkGrid
	Lift   *arcade.Body
	Score  int

	// OnHit is called when the player hits a crate hard enough, with the impact speed.
	OnHit func(speed float64)
	// OnCoin is called when a coin is collected.
	OnCoin func()
}

// NewScene builds the level into a new world made from cfg.
func NewScene(cfg arcade.Config) *Scene {
	s := &Scene{World: arcade.NewWorld(cfg)}
	s.Map = s.World.AddTilemap(arcade.NewTilemapFromStrings(vec.Vec2{}, TileSize, TileSize, Level...))

	for row, line := range Level {
		for col, c := range line {
			x, y := float64(col*TileSize), float64(row*TileSize)
			switch c {
			case 'p':
				s.Player = s.newPlayer(x, y)
			case 'c':
				s.newCrate(x, y)
			case 'o':
				s.newCoin(x, y)
			case 'r':
				s.Rope = s.newRope(x+TileSize/2, y)
			case 'l':
				s.Lift = s.newLift(x, y)
			}
		}
	}

	s.World.Camera = arcade.NewCamera(cfg.Bounds.W, cfg.Bounds.H)
	s.World.Camera.SetBounds(cfg.Bounds)
	s.World.Camera.Deadzone = vec.Vec2{X: 4 * TileSize, Y: 2 * TileSize}
	if s.Player != nil {
		s.World.Camera.Follow(s.Player.ID(), 0.2)
	}

	crate := s.World.AddCollisionHandler(TypePlayer, TypeCrate)
	crate.Collide = s.hitCrate

	coin := s.World.AddCollisionHandler(TypePlayer, TypeCoin)
	coin.Sensor = true
	coin.Collide = s.collectCoin

	// The rope swings through the player.
	rope := s.World.AddCollisionHandler(TypeRope, arcade.WildcardCollisionType)
	rope.Filter = func(a, b *arcade.Body) bool { return b.CollisionType != TypePlayer }
	return s
}

func (s *Scene) newPlayer(x, y float64) *arcade.Body {
	player := arcade.NewBody(x+2, y+2, 12, 14, 1)
	player.CollisionType = TypePlayer
	player.Drag = vec.Vec2{X: 700}
	player.MaxVelocity = vec.Vec2{X: 160, Y: 600}
	s.World.Add(player)
	return player
}

func (s *Scene) newCrate(x, y float64) {
	crate := arcade.NewBody(x, y, TileSize, TileSize, 2)
	crate.CollisionType = TypeCrate
	crate.Drag = vec.Vec2{X: 300}
	crate.MaxVelocity = vec.Vec2{X: 200, Y: 600}
	s.World.Add(crate)
}

func (s *Scene) newCoin(x, y float64) {
	coin := arcade.NewImmovableBody(x+4, y+4, 8, 8)
	coin.CollisionType = TypeCoin
	coin.Solid = false
	s.World.Add(coin)
}

func (s *Scene) newRope(x, y float64) *arcade.LinkGrid {
	grid := arcade.MakeGrid(vec.Vec2{X: x, Y: y}, 1, ropeLinks, ropeSpacing, 1,
		func(col, row int, pos vec.Vec2) *arcade.Body {
			var point *arcade.Body
			if row == 0 {
				point = arcade.NewImmovableBody(pos.X-2, pos.Y-2, 4, 4)
			} else {
				point = arcade.NewBody(pos.X-2, pos.Y-2, 4, 4, 0.5)
			}
			point.CollisionType = TypeRope
			return point
		})
	s.World.AddGrid(grid)
	// Give it a push so it swings.
	grid.Point(0, ropeLinks-1).SetVelocity(200, 0)
	return grid
}

func (s *Scene) newLift(x, y float64) *arcade.Body {
	lift := arcade.NewImmovableBody(x, y, 3*TileSize, 6)
	lift.CollisionType = TypeLift
	lift.IsPlatform = true
	s.World.Add(lift)

	center := lift.Bounds().Mid()
	path := arcade.NewPath(center, center.Add(vec.Vec2{X: -liftTravel, Y: 0}), center.Add(vec.Vec2{X: -liftTravel, Y: -2 * TileSize}))
	s.World.AddFollower(arcade.NewFollower(lift, path, liftSpeed, arcade.PathYoYo))
	return lift
}

func (s *Scene) hitCrate(ev arcade.CollideEvent) {
	speed := math.Abs(ev.A.Velocity().X - ev.B.Velocity().X)
	if ev.TouchingA.HasAny(arcade.Up|arcade.Down) || speed < hitSpeed {
		return
	}
	if s.OnHit != nil {
		s.OnHit(speed)
	}
}

func (s *Scene) collectCoin(ev arcade.CollideEvent) {
	coin := ev.B
	s.World.AddPostStepCallback(func(w *arcade.World, key any) {
		w.Remove(coin.ID())
		s.Score++
		if s.OnCoin != nil {
			s.OnCoin()
		}
	}, coin)
}

// Move sets the player's horizontal input: -1 left, 1 right, 0 none.
func (s *Scene) Move(dir float64) {
	s.Player.Acceleration.X = dir * moveAccel
}

// Jump makes the player jump if it stands on something.
func (s *Scene) Jump() bool {
	if !s.Player.IsTouching(arcade.Floor) {
		return false
	}
	s.Player.SetVelocity(s.Player.Velocity().X, -jumpSpeed)
	return true
}

// Respawn puts the player back at the start when it falls out of the level.
func (s *Scene) respawn() {
	if s.Player.Bounds().Intersects(s.Map.Bounds()) {
		return
	}
	s.Player.Reset(vec.Vec2{X: 4 * TileSize, Y: 8 * TileSize})
}

// Update advances the scene by elapsed seconds.
func (s *Scene) Update(elapsed float64) {
	s.World.Update(elapsed)
	s.respawn()
}
