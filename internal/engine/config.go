package engine

const (
	MinBodies = 2
	MaxBodies = 5

	DefaultG              = 1000.0
	DefaultDt             = 0.02
	DefaultSpeed          = 1.0
	DefaultChangeRatio    = 0.1
	DefaultBodies         = 3
	DefaultMinMassExp     = 2.0
	DefaultMaxMassExp     = 3.0
	DefaultMinVelocity    = -20.0
	DefaultMaxVelocity    = 20.0
	DefaultCanvasWidth    = 800.0
	DefaultCanvasHeight   = 600.0
	DefaultMaxTrailLength = 200
)

// Config holds the simulation parameters. G, Dt and MaxTrailLength may be
// mutated between steps and take effect on the next Step call. The mass
// bounds are base-10 exponents: masses are drawn log-uniformly as
// 10^uniform(MinMassExp, MaxMassExp).
type Config struct {
	G                      float64 `yaml:"g"`
	Dt                     float64 `yaml:"dt"`
	SpeedMultiplier        float64 `yaml:"speed_multiplier"`
	AdaptiveStep           bool    `yaml:"adaptive_step"`
	MaxPositionChangeRatio float64 `yaml:"max_position_change_ratio"`
	NumBodies              int     `yaml:"num_bodies"`
	MinMassExp             float64 `yaml:"min_mass_exp"`
	MaxMassExp             float64 `yaml:"max_mass_exp"`
	MinVelocity            float64 `yaml:"min_velocity"`
	MaxVelocity            float64 `yaml:"max_velocity"`
	CanvasWidth            float64 `yaml:"canvas_width"`
	CanvasHeight           float64 `yaml:"canvas_height"`
	MaxTrailLength         int     `yaml:"max_trail_length"`
}

func DefaultConfig() Config {
	return Config{
		G:                      DefaultG,
		Dt:                     DefaultDt,
		SpeedMultiplier:        DefaultSpeed,
		AdaptiveStep:           false,
		MaxPositionChangeRatio: DefaultChangeRatio,
		NumBodies:              DefaultBodies,
		MinMassExp:             DefaultMinMassExp,
		MaxMassExp:             DefaultMaxMassExp,
		MinVelocity:            DefaultMinVelocity,
		MaxVelocity:            DefaultMaxVelocity,
		CanvasWidth:            DefaultCanvasWidth,
		CanvasHeight:           DefaultCanvasHeight,
		MaxTrailLength:         DefaultMaxTrailLength,
	}
}
