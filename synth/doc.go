// Package synth generates deterministic synthetic time series for tests,
// examples and the command line tool.
//
// Every generator takes functional options. Randomness is explicit: pass
// WithSeed for reproducible output or WithRand to share one stream across
// calls. Without either, the package seed 1 is used, so two calls with the
// same arguments always return the same data.
//
// 1-D signals (Chirp, Pulse) return []float64. Multi-channel generators
// (RandomWalk, Noise, Jitter, Stretch) work on *mat.Dense with rows as time
// steps. GestureSet assembles a labelled timeseries.Dataset from per-class
// random-walk prototypes.
package synth
