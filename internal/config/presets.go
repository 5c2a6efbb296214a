package config

import "github.com/san-kum/orbitlab/internal/engine"

func preset(name string, mutate func(*engine.Config)) *Scenario {
	sc := Default()
	sc.Name = name
	mutate(&sc.Engine)
	return sc
}

var Presets = map[string]*Scenario{
	"binary": preset("binary", func(c *engine.Config) {
		c.NumBodies = 2
		c.MinMassExp, c.MaxMassExp = 2.5, 3.0
		c.MinVelocity, c.MaxVelocity = -10, 10
	}),
	"triad": preset("triad", func(c *engine.Config) {
		c.NumBodies = 3
	}),
	"chaos5": preset("chaos5", func(c *engine.Config) {
		c.NumBodies = 5
		c.MinVelocity, c.MaxVelocity = -40, 40
		c.MaxTrailLength = 400
	}),
	"close-encounter": preset("close-encounter", func(c *engine.Config) {
		c.NumBodies = 3
		c.AdaptiveStep = true
		c.MaxPositionChangeRatio = 0.05
		c.MinVelocity, c.MaxVelocity = -5, 5
	}),
}

func GetPreset(name string) *Scenario {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
