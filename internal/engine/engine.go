package engine

import (
	"math"
	"math/rand"
)

// distEpsilon keeps the pairwise distance away from zero so coincident
// bodies never divide by zero.
const distEpsilon = 1e-10

// Adaptive steps are clamped to this window around the configured base dt.
const (
	adaptiveMinFactor = 0.1
	adaptiveMaxFactor = 10.0
)

const (
	placementJitter   = 0.3  // radians, either side of the ring angle
	placementMinFrac  = 0.15 // of canvas width
	placementSpanFrac = 0.15
)

// Engine owns a body set and advances it one discrete step at a time using
// semi-implicit Euler integration with pairwise Newtonian gravity. It is
// not safe for concurrent use; the caller drives Step from a single
// goroutine and reads state between steps.
type Engine struct {
	cfg         Config
	rng         *rand.Rand
	bodies      []*Body
	running     bool
	effectiveDt float64
	forces      []Vec2
}

// New builds an engine and draws the initial body set. The random source is
// injected so trajectories are reproducible under a fixed seed. The engine
// starts paused.
func New(cfg Config, rng *rand.Rand) *Engine {
	if cfg.NumBodies < MinBodies {
		cfg.NumBodies = MinBodies
	}
	if cfg.NumBodies > MaxBodies {
		cfg.NumBodies = MaxBodies
	}
	if cfg.SpeedMultiplier <= 0 {
		cfg.SpeedMultiplier = DefaultSpeed
	}
	e := &Engine{cfg: cfg, rng: rng}
	e.initialize()
	return e
}

// initialize draws a fresh body set: positions spread around a ring about
// the canvas center with angular jitter, masses log-uniform, velocity
// components uniform in the configured range.
func (e *Engine) initialize() {
	n := e.cfg.NumBodies
	cx := e.cfg.CanvasWidth / 2
	cy := e.cfg.CanvasHeight / 2

	bodies := make([]*Body, n)
	for i := 0; i < n; i++ {
		angle := float64(i)*2*math.Pi/float64(n) + (e.rng.Float64()*2-1)*placementJitter
		dist := (placementMinFrac + e.rng.Float64()*placementSpanFrac) * e.cfg.CanvasWidth

		mass := math.Pow(10, e.uniform(e.cfg.MinMassExp, e.cfg.MaxMassExp))
		pos := Vec2{cx + dist*math.Cos(angle), cy + dist*math.Sin(angle)}
		vel := Vec2{
			e.uniform(e.cfg.MinVelocity, e.cfg.MaxVelocity),
			e.uniform(e.cfg.MinVelocity, e.cfg.MaxVelocity),
		}
		bodies[i] = newBody(mass, pos, vel, i)
	}

	e.bodies = bodies
	e.forces = make([]Vec2, n)
	e.effectiveDt = e.cfg.Dt
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

// Reset replaces the body set with a fresh random draw under the current
// configuration. The running flag is untouched.
func (e *Engine) Reset() {
	e.initialize()
}

// SetNumBodies changes the body count and reinitializes. Values outside
// [MinBodies, MaxBodies] and no-change requests are ignored.
func (e *Engine) SetNumBodies(n int) {
	if n < MinBodies || n > MaxBodies || n == e.cfg.NumBodies {
		return
	}
	e.cfg.NumBodies = n
	e.Reset()
}

// SetSpeedMultiplier stores a playback-cadence hint for the caller. It never
// enters the integration math; non-positive values are ignored.
func (e *Engine) SetSpeedMultiplier(s float64) {
	if s <= 0 {
		return
	}
	e.cfg.SpeedMultiplier = s
}

func (e *Engine) SpeedMultiplier() float64 { return e.cfg.SpeedMultiplier }

// SetAdaptiveTimeStep toggles adaptive step sizing, effective on the next
// Step.
func (e *Engine) SetAdaptiveTimeStep(enabled bool) {
	e.cfg.AdaptiveStep = enabled
}

func (e *Engine) Start()          { e.running = true }
func (e *Engine) Pause()          { e.running = false }
func (e *Engine) ToggleRunning()  { e.running = !e.running }
func (e *Engine) IsRunning() bool { return e.running }

// Bodies returns the live body set. Callers must not mutate it; it is
// replaced wholesale by Reset and SetNumBodies.
func (e *Engine) Bodies() []*Body { return e.bodies }

// Config returns the live configuration. G, Dt and MaxTrailLength may be
// written between steps and apply on the next Step.
func (e *Engine) Config() *Config { return &e.cfg }

// EffectiveTimeStep reports the dt actually used by the most recent Step.
func (e *Engine) EffectiveTimeStep() float64 { return e.effectiveDt }

// Step advances the simulation by one tick. Forces for every body are
// computed from the pre-step positions before any body is updated, then
// each body takes a semi-implicit Euler update: velocity first, position
// from the updated velocity. A no-op while paused.
func (e *Engine) Step() {
	if !e.running {
		return
	}

	dt := e.cfg.Dt
	if e.cfg.AdaptiveStep {
		dt = e.adaptiveDt()
	}
	e.effectiveDt = dt

	n := len(e.bodies)
	for i := range e.forces {
		e.forces[i] = Vec2{}
	}
	for i := 0; i < n; i++ {
		bi := e.bodies[i]
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			bj := e.bodies[j]
			delta := bj.Pos.Sub(bi.Pos)
			d := delta.Len() + distEpsilon
			f := e.cfg.G * bi.Mass * bj.Mass / (d * d)
			e.forces[i] = e.forces[i].Add(delta.Scale(f / d))
		}
	}

	for i, b := range e.bodies {
		b.Vel = b.Vel.Add(e.forces[i].Scale(dt / b.Mass))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Trail.Push(b.Pos, e.cfg.MaxTrailLength)
	}
}

// adaptiveDt bounds how far any body may travel relative to the tightest
// inter-body gap in one step. Degenerate inputs (fewer than two bodies, all
// bodies at rest, no finite pair distance) fall back to the base dt.
func (e *Engine) adaptiveDt() float64 {
	base := e.cfg.Dt
	if len(e.bodies) < 2 {
		return base
	}

	maxVel := 0.0
	for _, b := range e.bodies {
		if v := b.Vel.Len(); v > maxVel {
			maxVel = v
		}
	}

	minDist := math.Inf(1)
	for i := 0; i < len(e.bodies); i++ {
		for j := i + 1; j < len(e.bodies); j++ {
			if d := e.bodies[j].Pos.Sub(e.bodies[i].Pos).Len(); d < minDist {
				minDist = d
			}
		}
	}

	if maxVel == 0 || math.IsInf(minDist, 1) || math.IsNaN(minDist) {
		return base
	}

	candidate := e.cfg.MaxPositionChangeRatio * minDist / maxVel
	lo, hi := adaptiveMinFactor*base, adaptiveMaxFactor*base
	return math.Min(math.Max(candidate, lo), hi)
}

// TotalEnergy is kinetic plus pairwise gravitational potential, with the
// same epsilon guard as the force loop.
func (e *Engine) TotalEnergy() float64 {
	ke := 0.0
	pe := 0.0
	for i, b := range e.bodies {
		v := b.Vel.Len()
		ke += 0.5 * b.Mass * v * v
		for j := i + 1; j < len(e.bodies); j++ {
			o := e.bodies[j]
			d := o.Pos.Sub(b.Pos).Len() + distEpsilon
			pe -= e.cfg.G * b.Mass * o.Mass / d
		}
	}
	return ke + pe
}

// TotalMomentum is the summed vector momentum of the body set.
func (e *Engine) TotalMomentum() Vec2 {
	var p Vec2
	for _, b := range e.bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

// AngularMomentum about the origin.
func (e *Engine) AngularMomentum() float64 {
	l := 0.0
	for _, b := range e.bodies {
		l += b.Mass * (b.Pos.X*b.Vel.Y - b.Pos.Y*b.Vel.X)
	}
	return l
}

// MinPairDistance is the smallest Euclidean distance over unordered body
// pairs, +Inf with fewer than two bodies.
func (e *Engine) MinPairDistance() float64 {
	minDist := math.Inf(1)
	for i := 0; i < len(e.bodies); i++ {
		for j := i + 1; j < len(e.bodies); j++ {
			if d := e.bodies[j].Pos.Sub(e.bodies[i].Pos).Len(); d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}
