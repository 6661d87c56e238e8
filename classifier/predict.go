package classifier

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/timeseries"
)

const (
	// minDistance guards the 1/d likelihood against exact matches.
	minDistance = 1e-8
	// maxLikelihood is the raw likelihood assigned to an exact match.
	maxLikelihood = 1e8
)

// Predict classifies a complete series of shape L×Dims.
//
// The series runs through the same pipeline as training (scale, z-norm,
// smooth, offset) and is aligned against every template. Raw likelihoods
// are 1/distance, normalised to sum to one. The label is the closest
// template's class unless null rejection turns it into 0.
//
// Complexity: O(K·L·T) for K templates of length T.
func (d *DTW) Predict(series *mat.Dense) (Prediction, error) {
	if !d.trained {
		return Prediction{}, ErrNotTrained
	}
	if series == nil || series.IsEmpty() {
		return Prediction{}, timeseries.ErrEmptySample
	}
	if _, c := series.Dims(); c != d.dims {
		return Prediction{}, fmt.Errorf("%w: model has %d dims, series has %d", ErrDimensionMismatch, d.dims, c)
	}
	if d.useScaling && len(d.ranges) != d.dims {
		return Prediction{}, ErrMissingRanges
	}

	q, err := d.pipeline().Apply(series)
	if err != nil {
		return Prediction{}, err
	}

	k := len(d.templates)
	pred := Prediction{
		Ready:       true,
		Distances:   make([]float64, k),
		Likelihoods: make([]float64, k),
	}
	paths := make([][]Step, k)
	sum := 0.0
	for i, t := range d.templates {
		al, err := d.alignTo(t.Series, q)
		if err != nil {
			return Prediction{}, fmt.Errorf("template %d: %w", i, err)
		}
		if !al.OK() {
			d.log.Warn("no admissible warping path", zap.Int("template", i), zap.Int("class", t.Label))
		}
		pred.Distances[i] = al.Distance
		paths[i] = al.Path

		lik := maxLikelihood
		if al.Distance > minDistance {
			lik = 1 / al.Distance
		}
		pred.Likelihoods[i] = lik
		sum += lik
	}

	pred.Closest = floats.MinIdx(pred.Distances)
	pred.BestDistance = pred.Distances[pred.Closest]
	maxIdx := 0
	if sum > 0 && !math.IsInf(sum, 0) {
		floats.Scale(1/sum, pred.Likelihoods)
		for i, lik := range pred.Likelihoods {
			if lik > pred.MaxLikelihood {
				pred.MaxLikelihood = lik
				maxIdx = i
			}
		}
	}

	pred.Label = d.templates[pred.Closest].Label
	if d.useNullRejection {
		withinThreshold := pred.BestDistance <= d.thresholds[pred.Closest]
		likely := pred.MaxLikelihood >= d.likelihoodThreshold
		switch d.rejectionMode {
		case TemplateThresholds:
			if !withinThreshold {
				pred.Label = timeseries.NullClassLabel
			}
		case ClassLikelihoods:
			pred.Label = timeseries.NullClassLabel
			if likely {
				pred.Label = d.templates[maxIdx].Label
			}
		case ThresholdsAndLikelihoods:
			if !withinThreshold || !likely {
				pred.Label = timeseries.NullClassLabel
			}
		}
	}

	d.log.Debug("prediction",
		zap.Int("label", pred.Label),
		zap.Int("closest", pred.Closest),
		zap.Float64("best_distance", pred.BestDistance),
		zap.Float64("max_likelihood", pred.MaxLikelihood),
	)

	d.last = pred
	d.warpPaths = paths
	return pred, nil
}

// PredictSample pushes one feature vector into the streaming buffer. Until
// the buffer holds AverageTemplateLength vectors the result has Ready unset
// and label 0; after that every call classifies the buffered window.
func (d *DTW) PredictSample(x []float64) (Prediction, error) {
	if !d.trained {
		return Prediction{}, ErrNotTrained
	}
	if len(x) != d.dims {
		return Prediction{}, fmt.Errorf("%w: model has %d dims, sample has %d", ErrDimensionMismatch, d.dims, len(x))
	}
	if d.stream == nil {
		d.stream = newRing(d.avgLength, d.dims)
	}

	d.stream.push(x)
	if !d.stream.full {
		d.last = Prediction{
			Distances:   make([]float64, len(d.templates)),
			Likelihoods: make([]float64, len(d.templates)),
		}
		return d.last, nil
	}
	return d.Predict(d.stream.matrix())
}
