// SPDX-License-Identifier: MIT
// Package: dtwgesture/synth
//
// options.go: functional options for the synthetic generators.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Generators themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package synth

import (
	"fmt"
	"math/rand"
)

// Option customizes a generator call by mutating its config.
// Complexity: applying N options costs O(N) time, O(1) space.
type Option func(*config)

// WithRand provides an explicit RNG shared across calls. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("synth: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed seeds a fresh RNG for this call.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = nil
		c.seed = seed
	}
}

// WithAmplitude sets the signal amplitude A (> 0). For random walks it is
// the step standard deviation.
func WithAmplitude(a float64) Option {
	if !(a > 0) {
		panic(fmt.Sprintf("synth: WithAmplitude(%g)", a))
	}
	return func(c *config) { c.amplitude = a }
}

// WithFrequency sets the base frequency f0 in cycles per sample (> 0).
func WithFrequency(f0 float64) Option {
	if !(f0 > 0) {
		panic(fmt.Sprintf("synth: WithFrequency(%g)", f0))
	}
	return func(c *config) { c.f0 = f0 }
}

// WithSweep sets the chirp start and end frequencies (both > 0).
func WithSweep(f0, f1 float64) Option {
	if !(f0 > 0) || !(f1 > 0) {
		panic(fmt.Sprintf("synth: WithSweep(%g, %g)", f0, f1))
	}
	return func(c *config) { c.f0, c.f1 = f0, f1 }
}

// WithDuty sets the rectangular pulse duty cycle in [0, 1].
func WithDuty(duty float64) Option {
	if !(duty >= 0 && duty <= 1) {
		panic(fmt.Sprintf("synth: WithDuty(%g)", duty))
	}
	return func(c *config) { c.duty = duty }
}

// WithTriangular switches Pulse to a triangular envelope.
func WithTriangular(on bool) Option {
	return func(c *config) { c.triangular = on }
}

// WithNoise sets additive Gaussian noise sigma (>= 0).
func WithNoise(sigma float64) Option {
	if !(sigma >= 0) {
		panic(fmt.Sprintf("synth: WithNoise(%g)", sigma))
	}
	return func(c *config) { c.noise = sigma }
}

// WithTrend adds k*i to sample i. Any real value is accepted.
func WithTrend(k float64) Option {
	return func(c *config) { c.trend = k }
}

// WithStretch lets GestureSet resample each example to a random length
// within ±frac of the prototype length. frac must be in [0, 1).
func WithStretch(frac float64) Option {
	if !(frac >= 0 && frac < 1) {
		panic(fmt.Sprintf("synth: WithStretch(%g)", frac))
	}
	return func(c *config) { c.stretch = frac }
}

// WithOutliers adds count examples per class to GestureSet, each shifted by
// offset on every channel.
func WithOutliers(count int, offset float64) Option {
	if count < 0 {
		panic(fmt.Sprintf("synth: WithOutliers(count=%d)", count))
	}
	return func(c *config) { c.outliers, c.outlierOffset = count, offset }
}
