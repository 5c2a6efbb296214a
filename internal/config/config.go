package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitlab/internal/engine"
)

// Scenario is a named, seedable engine configuration as stored on disk.
// A zero seed means "seed from the clock" at the call site.
type Scenario struct {
	Name   string        `yaml:"name"`
	Seed   int64         `yaml:"seed"`
	Engine engine.Config `yaml:"engine"`
}

func Default() *Scenario {
	return &Scenario{
		Name:   "default",
		Engine: engine.DefaultConfig(),
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Default()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the engine would silently coerce, so a
// bad file fails loudly instead of running something else.
func (sc *Scenario) Validate() error {
	c := sc.Engine
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.NumBodies < engine.MinBodies || c.NumBodies > engine.MaxBodies {
		return fmt.Errorf("num_bodies must be in [%d, %d], got %d",
			engine.MinBodies, engine.MaxBodies, c.NumBodies)
	}
	if c.MinMassExp > c.MaxMassExp {
		return fmt.Errorf("min_mass_exp %f exceeds max_mass_exp %f", c.MinMassExp, c.MaxMassExp)
	}
	if c.MinVelocity > c.MaxVelocity {
		return fmt.Errorf("min_velocity %f exceeds max_velocity %f", c.MinVelocity, c.MaxVelocity)
	}
	if c.AdaptiveStep && c.MaxPositionChangeRatio <= 0 {
		return fmt.Errorf("max_position_change_ratio must be positive for adaptive stepping")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas dimensions must be positive")
	}
	if c.MaxTrailLength < 0 {
		return fmt.Errorf("max_trail_length must not be negative, got %d", c.MaxTrailLength)
	}
	return nil
}
