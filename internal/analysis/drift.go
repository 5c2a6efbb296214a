// Package analysis derives conservation and proximity statistics from
// recorded runs.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/orbitlab/internal/storage"
)

// Summary condenses a recorded run into a handful of scalars.
type Summary struct {
	Steps           int
	DurationSim     float64
	EnergyMean      float64
	EnergyStd       float64
	EnergyDrift     float64 // max relative deviation from initial energy
	MomentumDrift   float64 // max relative deviation from initial momentum
	MinPairDistance float64
	MinDistanceP10  float64 // 10th percentile of per-step minimum gap
	EffectiveDtMin  float64
	EffectiveDtMax  float64
}

// Series holds per-step traces for plotting.
type Series struct {
	Times       []float64
	Energy      []float64
	MinDistance []float64
	EffectiveDt []float64
}

// Trace recomputes energy, momentum and pair distances for every frame of
// a run. Masses and G come from the run metadata; frames carry only body
// state.
func Trace(meta *storage.RunMeta, frames []storage.Frame) *Series {
	s := &Series{
		Times:       make([]float64, len(frames)),
		Energy:      make([]float64, len(frames)),
		MinDistance: make([]float64, len(frames)),
		EffectiveDt: make([]float64, len(frames)),
	}
	for i, fr := range frames {
		s.Times[i] = fr.T
		s.Energy[i] = frameEnergy(meta, fr)
		s.MinDistance[i] = frameMinDistance(fr)
		s.EffectiveDt[i] = fr.Dt
	}
	return s
}

// Summarize computes a Summary from a run's frames.
func Summarize(meta *storage.RunMeta, frames []storage.Frame) Summary {
	if len(frames) == 0 {
		return Summary{}
	}

	s := Trace(meta, frames)

	sum := Summary{
		Steps:       len(frames),
		DurationSim: s.Times[len(s.Times)-1] - s.Times[0],
		EnergyMean:  stat.Mean(s.Energy, nil),
		EnergyStd:   stat.StdDev(s.Energy, nil),
	}

	e0 := s.Energy[0]
	scale := math.Abs(e0)
	if scale == 0 {
		scale = 1
	}
	for _, e := range s.Energy {
		if d := math.Abs(e-e0) / scale; d > sum.EnergyDrift {
			sum.EnergyDrift = d
		}
	}

	px0, py0 := frameMomentum(meta, frames[0])
	pScale := math.Hypot(px0, py0)
	if pScale == 0 {
		pScale = 1
	}
	for _, fr := range frames {
		px, py := frameMomentum(meta, fr)
		if d := math.Hypot(px-px0, py-py0) / pScale; d > sum.MomentumDrift {
			sum.MomentumDrift = d
		}
	}

	sum.MinPairDistance = floats.Min(s.MinDistance)
	sorted := append([]float64(nil), s.MinDistance...)
	sort.Float64s(sorted)
	sum.MinDistanceP10 = stat.Quantile(0.1, stat.Empirical, sorted, nil)

	sum.EffectiveDtMin = floats.Min(s.EffectiveDt)
	sum.EffectiveDtMax = floats.Max(s.EffectiveDt)
	return sum
}

func frameEnergy(meta *storage.RunMeta, fr storage.Frame) float64 {
	ke := 0.0
	pe := 0.0
	for i, b := range fr.Bodies {
		m := mass(meta, i)
		ke += 0.5 * m * (b.VX*b.VX + b.VY*b.VY)
		for j := i + 1; j < len(fr.Bodies); j++ {
			o := fr.Bodies[j]
			d := math.Hypot(o.X-b.X, o.Y-b.Y) + 1e-10
			pe -= meta.G * m * mass(meta, j) / d
		}
	}
	return ke + pe
}

func frameMomentum(meta *storage.RunMeta, fr storage.Frame) (px, py float64) {
	for i, b := range fr.Bodies {
		m := mass(meta, i)
		px += m * b.VX
		py += m * b.VY
	}
	return px, py
}

func frameMinDistance(fr storage.Frame) float64 {
	min := math.Inf(1)
	for i := 0; i < len(fr.Bodies); i++ {
		for j := i + 1; j < len(fr.Bodies); j++ {
			a, b := fr.Bodies[i], fr.Bodies[j]
			if d := math.Hypot(b.X-a.X, b.Y-a.Y); d < min {
				min = d
			}
		}
	}
	return min
}

func mass(meta *storage.RunMeta, i int) float64 {
	if i < len(meta.Masses) {
		return meta.Masses[i]
	}
	return 1
}
