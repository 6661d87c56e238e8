// SPDX-License-Identifier: MIT
// Package: dtwgesture/synth
//
// signals.go: deterministic 1-D chirp and pulse generators.
//
// Contract:
//   • Chirp(n, opts...) / Pulse(n, opts...) return a slice of length n.
//   • O(n) time, O(n) memory. No panics. No global state.
//   • Trend is added before noise; noise draws come from the config RNG.

package synth

import (
	"fmt"
	"math"
)

const tau = 2 * math.Pi

// Chirp returns a length-n linear chirp whose frequency sweeps from f0 to f1.
// Model:
//   - fi  = f0 + (f1 − f0) * i/(n−1)  (cycles/sample)
//   - θᵢ  = θᵢ₋₁ + τ * fi             (θ₋₁ = 0)
//   - yᵢ  = A * sin(θᵢ) + trend*i + noise
func Chirp(n int, opts ...Option) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadLength, n)
	}
	cfg := newConfig(opts...)
	f0 := cfg.f0
	if f0 == 0 {
		f0 = defaultChirpF0
	}
	rng := cfg.random()

	out := make([]float64, n)
	theta := 0.0
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		theta += tau * (f0 + (cfg.f1-f0)*t)

		v := cfg.amplitude*math.Sin(theta) + cfg.trend*float64(i)
		if cfg.noise > 0 {
			v += cfg.noise * rng.NormFloat64()
		}
		out[i] = v
	}
	return out, nil
}

// Pulse returns a length-n pulse train.
// Shape:
//   - Rectangular: A while frac(i*f0) < duty, else 0.
//   - Triangular:  A * (1 − |2*frac − 1|).
func Pulse(n int, opts ...Option) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadLength, n)
	}
	cfg := newConfig(opts...)
	f0 := cfg.f0
	if f0 == 0 {
		f0 = defaultPulseF0
	}
	rng := cfg.random()

	out := make([]float64, n)
	for i := range out {
		frac := math.Mod(float64(i)*f0, 1)
		var v float64
		switch {
		case cfg.triangular:
			v = cfg.amplitude * (1 - math.Abs(2*frac-1))
		case frac < cfg.duty:
			v = cfg.amplitude
		}
		v += cfg.trend * float64(i)
		if cfg.noise > 0 {
			v += cfg.noise * rng.NormFloat64()
		}
		out[i] = v
	}
	return out, nil
}
