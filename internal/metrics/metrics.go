// Package metrics tracks conserved-quantity drift and proximity statistics
// over a simulation run. Metrics are observed once per step and report a
// single scalar at the end.
package metrics

import (
	"math"

	"github.com/san-kum/orbitlab/internal/engine"
)

type Metric interface {
	Name() string
	Observe(e *engine.Engine, t float64)
	Value() float64
	Reset()
}

// MomentumDrift reports the largest deviation of summed vector momentum
// from its first observed value, relative to the initial momentum scale.
type MomentumDrift struct {
	initial  engine.Vec2
	scale    float64
	maxDrift float64
	seen     bool
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(e *engine.Engine, t float64) {
	p := e.TotalMomentum()
	if !m.seen {
		m.initial = p
		m.scale = p.Len()
		if m.scale == 0 {
			m.scale = 1
		}
		m.seen = true
		return
	}
	if d := p.Sub(m.initial).Len() / m.scale; d > m.maxDrift {
		m.maxDrift = d
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() { *m = MomentumDrift{} }

// EnergyDrift reports the largest relative deviation of total energy from
// its first observed value. With a plain Euler scheme this grows with dt;
// it is a regression signal, not a conservation guarantee.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	seen     bool
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) Observe(e *engine.Engine, t float64) {
	en := e.TotalEnergy()
	if !m.seen {
		m.initial = en
		m.seen = true
		return
	}
	scale := math.Abs(m.initial)
	if scale == 0 {
		scale = 1
	}
	if d := math.Abs(en-m.initial) / scale; d > m.maxDrift {
		m.maxDrift = d
	}
}

func (m *EnergyDrift) Value() float64 { return m.maxDrift }

func (m *EnergyDrift) Reset() { *m = EnergyDrift{} }

// MinDistance reports the tightest inter-body gap seen over the run.
type MinDistance struct {
	min  float64
	seen bool
}

func NewMinDistance() *MinDistance { return &MinDistance{} }

func (m *MinDistance) Name() string { return "min_pair_distance" }

func (m *MinDistance) Observe(e *engine.Engine, t float64) {
	d := e.MinPairDistance()
	if math.IsInf(d, 1) {
		return
	}
	if !m.seen || d < m.min {
		m.min = d
		m.seen = true
	}
}

func (m *MinDistance) Value() float64 {
	if !m.seen {
		return 0
	}
	return m.min
}

func (m *MinDistance) Reset() { *m = MinDistance{} }

// Defaults is the standard set recorded by a headless run.
func Defaults() []Metric {
	return []Metric{NewMomentumDrift(), NewEnergyDrift(), NewMinDistance()}
}
