package synth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/timeseries"
)

// Gestures is a synthetic labelled dataset and the clean prototype of
// every class. Prototypes[k] belongs to label k+1.
type Gestures struct {
	Data       *timeseries.Dataset
	Prototypes []*mat.Dense
}

// GestureSet builds classes×perClass examples of length×dims.
//
// Every class gets its own random-walk prototype drawn from an independent
// stream. Examples are the prototype plus Gaussian noise (WithNoise),
// optionally resampled to a random length (WithStretch). WithOutliers
// appends shifted examples per class.
//
// Complexity: O(classes·(perClass+outliers)·length·dims).
func GestureSet(classes, perClass, length, dims int, opts ...Option) (*Gestures, error) {
	if classes < 1 || perClass < 1 {
		return nil, fmt.Errorf("%w: %d classes × %d", ErrBadClasses, classes, perClass)
	}
	if err := checkShape(length, dims); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)
	rng := cfg.random()

	g := &Gestures{
		Data:       timeseries.NewDataset(dims),
		Prototypes: make([]*mat.Dense, classes),
	}
	for k := 0; k < classes; k++ {
		label := k + 1
		proto, err := RandomWalk(length, dims, WithRand(deriveRNG(rng, uint64(label))), WithAmplitude(cfg.amplitude))
		if err != nil {
			return nil, err
		}
		g.Prototypes[k] = proto

		for i := 0; i < perClass+cfg.outliers; i++ {
			ex := Jitter(proto, cfg.noise, rng)
			if cfg.stretch > 0 {
				n := int(math.Round(float64(length) * (1 + cfg.stretch*(2*rng.Float64()-1))))
				if n < 1 {
					n = 1
				}
				if ex, err = Stretch(ex, n); err != nil {
					return nil, err
				}
			}
			if i >= perClass {
				ex.Apply(func(_, _ int, v float64) float64 { return v + cfg.outlierOffset }, ex)
			}
			if err := g.Data.AddSample(label, ex); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
