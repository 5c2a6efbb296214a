package engine_test

import (
	"math/rand"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitlab/internal/engine"
)

func TestEngineSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engine Suite")
}

var _ = Describe("Engine", func() {
	var eng *engine.Engine

	newEngine := func(cfg engine.Config, seed int64) *engine.Engine {
		return engine.New(cfg, rand.New(rand.NewSource(seed)))
	}

	BeforeEach(func() {
		eng = newEngine(engine.DefaultConfig(), 99)
	})

	Describe("lifecycle", func() {
		It("starts paused and steps only while running", func() {
			before := eng.Bodies()[0].Pos
			eng.Step()
			Expect(eng.Bodies()[0].Pos).To(Equal(before))

			eng.Start()
			eng.Step()
			Expect(eng.Bodies()[0].Pos).NotTo(Equal(before))
		})

		It("replaces the body set wholesale on reset", func() {
			old := eng.Bodies()
			eng.Reset()
			Expect(eng.Bodies()).To(HaveLen(len(old)))
			Expect(eng.Bodies()[0]).NotTo(BeIdenticalTo(old[0]))
		})
	})

	Describe("adaptive stepping", func() {
		BeforeEach(func() {
			eng.SetAdaptiveTimeStep(true)
			eng.Start()
		})

		It("keeps the effective step inside the clamp window", func() {
			base := eng.Config().Dt
			for i := 0; i < 300; i++ {
				eng.Step()
				Expect(eng.EffectiveTimeStep()).To(And(
					BeNumerically(">=", 0.1*base),
					BeNumerically("<=", 10*base),
				))
			}
		})

		It("falls back to the base dt when disabled again", func() {
			eng.Step()
			eng.SetAdaptiveTimeStep(false)
			eng.Step()
			Expect(eng.EffectiveTimeStep()).To(Equal(eng.Config().Dt))
		})
	})

	Describe("integration", func() {
		It("keeps all body state finite over a long run", func() {
			eng.Start()
			for i := 0; i < 2000; i++ {
				eng.Step()
			}
			for _, b := range eng.Bodies() {
				Expect(b.Pos.IsValid()).To(BeTrue())
				Expect(b.Vel.IsValid()).To(BeTrue())
			}
		})

		It("is deterministic for a fixed seed", func() {
			other := newEngine(engine.DefaultConfig(), 99)
			eng.Start()
			other.Start()
			for i := 0; i < 500; i++ {
				eng.Step()
				other.Step()
			}
			for i := range eng.Bodies() {
				Expect(eng.Bodies()[i].Pos).To(Equal(other.Bodies()[i].Pos))
				Expect(eng.Bodies()[i].Vel).To(Equal(other.Bodies()[i].Vel))
			}
		})
	})
})
