package synth

import "math/rand"

// Defaults resolved by newConfig.
const (
	defaultSeed      = 1
	defaultAmplitude = 1.0
	defaultChirpF0   = 0.02 // cycles/sample
	defaultChirpF1   = 0.25
	defaultPulseF0   = 0.125 // period 8
	defaultDuty      = 0.5
)

// config aggregates every generator knob. It is passed by value.
type config struct {
	rng  *rand.Rand
	seed int64

	amplitude  float64
	f0, f1     float64 // 0 f0 means the generator's own default
	duty       float64
	triangular bool
	noise      float64
	trend      float64

	stretch       float64
	outliers      int
	outlierOffset float64
}

func newConfig(opts ...Option) config {
	cfg := config{
		seed:      defaultSeed,
		amplitude: defaultAmplitude,
		f1:        defaultChirpF1,
		duty:      defaultDuty,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// random returns the shared RNG if one was given, else a fresh one seeded
// from cfg.seed.
func (c config) random() *rand.Rand {
	if c.rng != nil {
		return c.rng
	}
	return rand.New(rand.NewSource(c.seed))
}

// deriveSeed mixes a parent seed and a stream id with a SplitMix64 finalizer
// so sibling streams are decorrelated.
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG creates an independent stream from base. base.Int63 is consumed
// once so repeated stream ids still yield different children.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(base.Int63(), stream)))
}
