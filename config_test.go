package arcade_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/setanarut/arcade"
)

func TestParseConfig(t *testing.T) {
	cfg, err := arcade.ParseConfig([]byte(`
time_step: 0.01
gravity: {x: 0, y: 900}
bounds: {x: -100, y: 0, w: 2048, h: 512}
quadtree:
  max_objects: 4
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TimeStep != 0.01 || cfg.Gravity.Y != 900 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Bounds != (arcade.AABB{X: -100, Y: 0, W: 2048, H: 512}) {
		t.Errorf("Bounds = %v", cfg.Bounds)
	}
	if cfg.Quadtree.MaxObjects != 4 || cfg.Quadtree.MaxLevels != arcade.DefaultQuadtreeMaxLevels {
		t.Errorf("Quadtree = %+v", cfg.Quadtree)
	}
	// Fields the document leaves out keep their defaults.
	if cfg.MaxSubSteps != arcade.DefaultMaxSubSteps || cfg.LinkIterations != arcade.DefaultLinkIterations {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := arcade.ParseConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != arcade.DefaultConfig() {
		t.Errorf("ParseConfig(nil) = %+v, want the defaults", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"syntax", "time_step: [", "decode config"},
		{"negative sub steps", "max_sub_steps: -1", "max_sub_steps"},
		{"negative links", "link_iterations: -2", "link_iterations"},
		{"negative bounds", "bounds: {w: -1, h: 10}", "bounds"},
		{"negative quadtree", "quadtree: {max_levels: -1}", "quadtree"},
		{"infinite step", "time_step: .inf", "time_step"},
		{"nan gravity", "gravity: {y: .nan}", "gravity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := arcade.ParseConfig([]byte(tt.doc))
			if err == nil {
				t.Fatal("ParseConfig succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := arcade.Config{TimeStep: -1}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg != arcade.DefaultConfig() {
		t.Errorf("Validate(zero) = %+v, want the defaults", cfg)
	}

	cfg = arcade.Config{Gravity: arcade.DefaultConfig().Gravity}
	cfg.Gravity.X = math.Inf(-1)
	if cfg.Validate() == nil {
		t.Error("infinite gravity accepted")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	if err := os.WriteFile(path, []byte("max_sub_steps: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := arcade.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxSubSteps != 8 {
		t.Errorf("MaxSubSteps = %d, want 8", cfg.MaxSubSteps)
	}

	if _, err := arcade.LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("max_sub_steps: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := arcade.LoadConfig(bad); err == nil || !strings.Contains(err.Error(), "load config") {
		t.Errorf("invalid file error = %v", err)
	}
}

func TestWorldFromConfig(t *testing.T) {
	cfg, err := arcade.ParseConfig([]byte("time_step: 0.02\nmax_sub_steps: 2\nlink_iterations: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	w := arcade.NewWorld(cfg)
	if w.TimeStep() != 0.02 || w.MaxSubSteps != 2 || w.LinkIterations != 3 {
		t.Errorf("world = step %v sub steps %d link iterations %d", w.TimeStep(), w.MaxSubSteps, w.LinkIterations)
	}
	if n := w.Update(1); n != 2 {
		t.Errorf("Update ran %d steps, want 2", n)
	}
}

func TestParseConfigOver(t *testing.T) {
	base := arcade.DefaultConfig()
	base.Gravity.Y = 900
	base.Bounds = arcade.AABB{W: 640, H: 320}

	cfg, err := arcade.ParseConfigOver([]byte("time_step: 0.02\n"), base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TimeStep != 0.02 {
		t.Errorf("TimeStep = %v, want 0.02", cfg.TimeStep)
	}
	if cfg.Gravity.Y != 900 || cfg.Bounds != base.Bounds {
		t.Errorf("base values lost: gravity %v bounds %v", cfg.Gravity, cfg.Bounds)
	}

	cfg, err = arcade.ParseConfigOver([]byte("gravity: {y: 100}\n"), base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gravity.Y != 100 {
		t.Errorf("Gravity = %v, want y 100", cfg.Gravity)
	}
}

func TestLoadConfigOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte("max_sub_steps: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	base := arcade.DefaultConfig()
	base.Gravity.Y = 900

	cfg, err := arcade.LoadConfigOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxSubSteps != 2 || cfg.Gravity.Y != 900 {
		t.Errorf("cfg = %+v", cfg)
	}
	if _, err := arcade.LoadConfigOver(filepath.Join(t.TempDir(), "missing.yaml"), base); err == nil {
		t.Error("missing file loaded")
	}
}
