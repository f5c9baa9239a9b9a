// Arcade-demo runs the demo level in a window.
//
// Arrow keys or A/D move, space or up jumps, F1 toggles debug text, R restarts.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/setanarut/arcade"
	"github.com/setanarut/arcade/internal/demo"
	"github.com/tanema/gween/ease"
)

const (
	windowTitle = "arcade demo"
	screenW     = 480
	screenH     = 270
)

type Game struct {
	cfg       arcade.Config
	scene     *demo.Scene
	drawer    *ebitenDrawer
	showDebug bool
	shake     int
}

func NewGame(cfg arcade.Config) *Game {
	g := &Game{cfg: cfg, showDebug: true}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.scene = demo.NewScene(g.cfg)
	cam := g.scene.World.Camera
	cam.Width, cam.Height = screenW, screenH
	cam.Zoom = 1

	// Start on the whole level, then scroll down to the player.
	bounds := g.cfg.Bounds.Mid()
	cam.X, cam.Y = bounds.X, bounds.Y
	start := g.scene.Player.Bounds().Mid()
	cam.ScrollTo(start.X, start.Y, 1.2, ease.InOutCubic)

	g.scene.OnHit = func(speed float64) { g.shake = 6 }
	g.drawer = newEbitenDrawer(cam)
}

func (g *Game) Update() error {
	dir := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dir--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dir++
	}
	g.scene.Move(dir)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.scene.Jump()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}

	g.scene.Update(1 / float64(ebiten.TPS()))
	if g.shake > 0 {
		g.shake--
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawer.screen = screen
	g.drawer.shake = float32(g.shake % 3)
	arcade.DrawWorld(g.scene.World, g.drawer)

	if g.showDebug {
		msg := fmt.Sprintf("score: %d  fps: %.0f\n%s", g.scene.Score, ebiten.ActualFPS(), g.scene.World.DebugInfo())
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	configPath := flag.String("config", "", "YAML world config")
	flag.Parse()

	cfg := demo.Config()
	if *configPath != "" {
		loaded, err := demo.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW*2, screenH*2)
	if err := ebiten.RunGame(NewGame(cfg)); err != nil {
		log.Fatal(err)
	}
}
