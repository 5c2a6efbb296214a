// Package engine implements the gravitational n-body integration core.
//
// An [Engine] owns a small body set (2 to 5 point masses) and a [Config],
// and advances them one discrete step at a time:
//
//	rng := rand.New(rand.NewSource(seed))
//	eng := engine.New(engine.DefaultConfig(), rng)
//	eng.Start()
//	for range ticks {
//		eng.Step()
//	}
//
// Each step sums pairwise Newtonian forces over the pre-step positions and
// applies a semi-implicit Euler update. With adaptive stepping enabled the
// step size is shrunk or grown so no body traverses more than a configured
// fraction of the tightest inter-body gap, clamped to a window around the
// base dt.
//
// The engine performs no I/O and no internal concurrency. Rendering,
// input handling and step cadence belong to the caller; the speed
// multiplier is a cadence hint for that caller and never enters the
// physics.
package engine
