// SPDX-License-Identifier: MIT
// Package: dtwgesture/classifier
//
// options.go: functional options for NewDTW.
//
// Contract:
//   • Options are functional (type Option func(*DTW)) and applied in order
//     on top of the defaults.
//   • Option constructors VALIDATE and PANIC on meaningless inputs. Settings
//     read at runtime (files, flags) go through the Set* methods instead,
//     which return errors.

package classifier

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/dtwgesture/dtw"
)

// Option customizes a DTW classifier at construction time.
type Option func(*DTW)

// WithLogger attaches a logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("classifier: WithLogger(nil)")
	}
	return func(d *DTW) { d.log = l }
}

// WithScaling enables min-max scaling with ranges taken from the training data.
func WithScaling(on bool) Option {
	return func(d *DTW) { d.useScaling = on }
}

// WithNullRejection enables null rejection with the given coefficient (> 0).
func WithNullRejection(on bool, coeff float64) Option {
	if !(coeff > 0) || math.IsInf(coeff, 0) {
		panic(fmt.Sprintf("classifier: WithNullRejection(coeff=%g)", coeff))
	}
	return func(d *DTW) {
		d.useNullRejection = on
		d.nullRejectionCoeff = coeff
	}
}

// WithRejectionMode selects the acceptance policy.
func WithRejectionMode(m RejectionMode) Option {
	if !m.Valid() {
		panic(fmt.Sprintf("classifier: WithRejectionMode(%d)", int(m)))
	}
	return func(d *DTW) { d.rejectionMode = m }
}

// WithLikelihoodThreshold sets the acceptance threshold of ClassLikelihoods
// and ThresholdsAndLikelihoods, in [0, 1].
func WithLikelihoodThreshold(t float64) Option {
	if !(t >= 0 && t <= 1) {
		panic(fmt.Sprintf("classifier: WithLikelihoodThreshold(%g)", t))
	}
	return func(d *DTW) { d.likelihoodThreshold = t }
}

// WithDistanceMethod selects the per-frame cost.
func WithDistanceMethod(m dtw.DistanceMethod) Option {
	if !m.Valid() {
		panic(fmt.Sprintf("classifier: WithDistanceMethod(%d)", int(m)))
	}
	return func(d *DTW) { d.align.Method = m }
}

// WithWarpingConstraint restricts warp paths to a band of the given radius in (0, 1].
func WithWarpingConstraint(on bool, radius float64) Option {
	if !(radius > 0 && radius <= 1) {
		panic(fmt.Sprintf("classifier: WithWarpingConstraint(radius=%g)", radius))
	}
	return func(d *DTW) {
		d.align.Constrain = on
		d.align.Radius = radius
	}
}

// WithSmoothing enables box-car smoothing by factor (>= 1).
func WithSmoothing(on bool, factor int) Option {
	if factor < 1 {
		panic(fmt.Sprintf("classifier: WithSmoothing(factor=%d)", factor))
	}
	return func(d *DTW) {
		d.useSmoothing = on
		d.smoothingFactor = factor
	}
}

// WithZNormalisation enables per-series z-normalisation. With constrain set,
// columns whose deviation is below threshold are only mean-centred.
func WithZNormalisation(on, constrain bool, threshold float64) Option {
	if !(threshold >= 0) {
		panic(fmt.Sprintf("classifier: WithZNormalisation(threshold=%g)", threshold))
	}
	return func(d *DTW) {
		d.useZNorm = on
		d.constrainZNorm = constrain
		d.zNormThreshold = threshold
	}
}

// WithOffset subtracts the first sample of every series.
func WithOffset(on bool) Option {
	return func(d *DTW) { d.offsetFirst = on }
}

// WithTrimming trims still segments from training samples before training.
func WithTrimming(on bool, threshold, maxPercent float64) Option {
	if !(threshold >= 0 && threshold <= 1) || !(maxPercent >= 0 && maxPercent <= 100) {
		panic(fmt.Sprintf("classifier: WithTrimming(%g, %g)", threshold, maxPercent))
	}
	return func(d *DTW) {
		d.trim = on
		d.trimThreshold = threshold
		d.maxTrimPercent = maxPercent
	}
}
