// Arcade-tty runs the demo level in a terminal.
//
// Arrow keys or h/l move, space or k jumps, r restarts, Esc or Ctrl-C quits.
// Crate hits and coins beep when an audio device is available.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/setanarut/arcade"
	"github.com/setanarut/arcade/internal/demo"
)

const (
	frame = 16 * time.Millisecond // ~60 FPS
	// holdTime keeps a direction pressed between terminal key repeats.
	holdTime   = 150 * time.Millisecond
	sampleRate = beep.SampleRate(44100)
)

type Game struct {
	screen    tcell.Screen
	cfg       arcade.Config
	scene     *demo.Scene
	drawer    *ttyDrawer
	dir       float64
	heldUntil time.Time
	audioInit bool
}

func NewGame(cfg arcade.Config) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &Game{screen: screen, cfg: cfg}
	if err := g.initAudio(); err != nil {
		// Non-fatal, the demo runs without sound
		log.Printf("Audio initialization failed: %v", err)
	}
	g.reset()
	return g, nil
}

func (g *Game) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		g.audioInit = true
	}
	return err
}

func (g *Game) beep(freq int, d time.Duration) {
	if !g.audioInit {
		return
	}
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (g *Game) reset() {
	g.scene = demo.NewScene(g.cfg)
	g.scene.OnHit = func(speed float64) { g.beep(220+int(speed), 60*time.Millisecond) }
	g.scene.OnCoin = func() { g.beep(1320, 80*time.Millisecond) }
	g.drawer = newTTYDrawer(g.screen, g.scene.World.Camera)
	g.handleResize()
}

func (g *Game) handleResize() {
	w, h := g.screen.Size()
	g.drawer.resize(w, h-1)
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			g.hold(-1)
		case tcell.KeyRight:
			g.hold(1)
		case tcell.KeyUp:
			g.scene.Jump()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'h', 'a':
				g.hold(-1)
			case 'l', 'd':
				g.hold(1)
			case ' ', 'k', 'w':
				g.scene.Jump()
			case 'r':
				g.reset()
			case 'q':
				return false
			}
		}
	case *tcell.EventResize:
		g.handleResize()
		g.screen.Sync()
	}
	return true
}

func (g *Game) hold(dir float64) {
	g.dir = dir
	g.heldUntil = time.Now().Add(holdTime)
}

func (g *Game) draw() {
	g.screen.Clear()
	arcade.DrawWorld(g.scene.World, g.drawer)

	_, h := g.screen.Size()
	status := fmt.Sprintf(" score %d | bodies %d | steps %d ", g.scene.Score, g.scene.World.BodyCount(), g.scene.World.Stamp())
	for i, r := range status {
		g.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				// Fini was called
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			if now.After(g.heldUntil) {
				g.dir = 0
			}
			g.scene.Move(g.dir)
			g.scene.Update(now.Sub(last).Seconds())
			last = now
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
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

	game, err := NewGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
