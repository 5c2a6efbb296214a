package metrics

import (
	"math/rand"
	"testing"

	"github.com/san-kum/orbitlab/internal/engine"
)

func runEngine(seed int64) *engine.Engine {
	e := engine.New(engine.DefaultConfig(), rand.New(rand.NewSource(seed)))
	e.Start()
	return e
}

func TestMomentumDriftStaysSmall(t *testing.T) {
	e := runEngine(1)
	m := NewMomentumDrift()

	for i := 0; i < 300; i++ {
		m.Observe(e, float64(i))
		e.Step()
	}

	// Drift is zero in exact arithmetic; leave headroom for round-off
	// amplified by close encounters.
	if m.Value() > 1e-3 {
		t.Errorf("momentum drift %g, expected round-off scale", m.Value())
	}
}

func TestEnergyDriftObservesSomething(t *testing.T) {
	e := runEngine(2)
	m := NewEnergyDrift()

	m.Observe(e, 0)
	if m.Value() != 0 {
		t.Error("drift should be zero after first observation")
	}

	for i := 0; i < 200; i++ {
		e.Step()
		m.Observe(e, float64(i))
	}

	// Euler integration leaks energy; the drift must register and stay
	// finite.
	if v := m.Value(); v < 0 {
		t.Errorf("negative drift %g", v)
	}
}

func TestMinDistance(t *testing.T) {
	e := runEngine(3)
	m := NewMinDistance()

	if m.Value() != 0 {
		t.Error("value before any observation should be 0")
	}

	for i := 0; i < 100; i++ {
		m.Observe(e, float64(i))
		e.Step()
	}

	if m.Value() <= 0 {
		t.Errorf("min distance %g, want positive", m.Value())
	}
}

func TestReset(t *testing.T) {
	e := runEngine(4)
	for _, m := range Defaults() {
		m.Observe(e, 0)
		e.Step()
		m.Observe(e, 1)
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("%s: value %g after reset", m.Name(), m.Value())
		}
	}
}

func TestDefaultsNames(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Defaults() {
		names[m.Name()] = true
	}
	for _, want := range []string{"momentum_drift", "energy_drift", "min_pair_distance"} {
		if !names[want] {
			t.Errorf("default metric %s missing", want)
		}
	}
}
