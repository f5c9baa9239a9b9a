package arcade

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/setanarut/vec"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSubSteps    = 5
	DefaultLinkIterations = 1
)

// QuadtreeConfig sizes the broad phase.
type QuadtreeConfig struct {
	MaxObjects int `yaml:"max_objects"`
	MaxLevels  int `yaml:"max_levels"`
}

// Config holds the parameters of a World.
//
// A YAML document only needs the fields it changes:
//
//	time_step: 0.008333
//	gravity: {x: 0, y: 900}
//	bounds: {x: 0, y: 0, w: 2048, h: 1024}
type Config struct {
	// TimeStep is the fixed physics step in seconds.
	TimeStep float64 `yaml:"time_step"`
	// Gravity in pixels per second squared. +Y is down.
	Gravity vec.Vec2 `yaml:"gravity"`
	// MaxSubSteps bounds the steps one World.Update may run.
	MaxSubSteps int `yaml:"max_sub_steps"`
	// LinkIterations is the number of link relaxations per step.
	LinkIterations int `yaml:"link_iterations"`
	// Bounds is the region covered by the quadtree root.
	Bounds   AABB           `yaml:"bounds"`
	Quadtree QuadtreeConfig `yaml:"quadtree"`
}

// DefaultConfig returns a Config for a 60 Hz world without gravity.
func DefaultConfig() Config {
	return Config{
		TimeStep:       DefaultTimeStep,
		MaxSubSteps:    DefaultMaxSubSteps,
		LinkIterations: DefaultLinkIterations,
		Bounds:         AABB{0, 0, 1024, 1024},
		Quadtree: QuadtreeConfig{
			MaxObjects: DefaultQuadtreeMaxObjects,
			MaxLevels:  DefaultQuadtreeMaxLevels,
		},
	}
}

// ParseConfig decodes a YAML document over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	return ParseConfigOver(data, DefaultConfig())
}

// ParseConfigOver decodes a YAML document over base, so fields the document leaves
// out keep their base values, and validates the result.
func ParseConfigOver(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return LoadConfigOver(path, DefaultConfig())
}

// LoadConfigOver reads the YAML file at path and parses it over base.
func LoadConfigOver(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := ParseConfigOver(data, base)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// Validate rejects values no world can run with and fills unset ones with defaults.
func (cfg *Config) Validate() error {
	if isBad(cfg.TimeStep) {
		return errors.Errorf("time_step must be finite, got %v", cfg.TimeStep)
	}
	if isBad(cfg.Gravity.X) || isBad(cfg.Gravity.Y) {
		return errors.Errorf("gravity must be finite, got %v", cfg.Gravity)
	}
	if cfg.MaxSubSteps < 0 {
		return errors.Errorf("max_sub_steps must not be negative, got %d", cfg.MaxSubSteps)
	}
	if cfg.LinkIterations < 0 {
		return errors.Errorf("link_iterations must not be negative, got %d", cfg.LinkIterations)
	}
	if cfg.Bounds.W < 0 || cfg.Bounds.H < 0 {
		return errors.Errorf("bounds must not have a negative size, got %v", cfg.Bounds)
	}
	if cfg.Quadtree.MaxObjects < 0 || cfg.Quadtree.MaxLevels < 0 {
		return errors.Errorf("quadtree limits must not be negative, got %+v", cfg.Quadtree)
	}

	def := DefaultConfig()
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = def.TimeStep
	}
	if cfg.MaxSubSteps == 0 {
		cfg.MaxSubSteps = def.MaxSubSteps
	}
	if cfg.LinkIterations == 0 {
		cfg.LinkIterations = def.LinkIterations
	}
	if cfg.Bounds.W == 0 || cfg.Bounds.H == 0 {
		cfg.Bounds = def.Bounds
	}
	if cfg.Quadtree.MaxObjects == 0 {
		cfg.Quadtree.MaxObjects = def.Quadtree.MaxObjects
	}
	if cfg.Quadtree.MaxLevels == 0 {
		cfg.Quadtree.MaxLevels = def.Quadtree.MaxLevels
	}
	return nil
}

func isBad(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
