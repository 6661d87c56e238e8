package classifier

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/dtwgesture/preprocess"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

// Train builds one template per class of ds. ds is not modified.
//
// Steps:
//  1. Optional trimming of every sample; untrimmable samples are dropped.
//  2. Scaling ranges are taken from the data, then every sample is scaled
//     and z-normalised as configured.
//  3. Per class (in order of first appearance) the template is the example
//     with the smallest mean distance to the others, after smoothing and
//     offsetting. Mu and sigma come from that example's distances.
//  4. Thresholds are recomputed and the streaming buffer is sized to the
//     overall average template length.
//
// On failure a previously trained model is kept unchanged.
//
// Complexity: O(K·n²·L²) for K classes of n examples of length L.
func (d *DTW) Train(ds *timeseries.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return ErrEmptyDataset
	}

	data := ds.Clone()
	if d.trim {
		tr, err := timeseries.NewTrimmer(d.trimThreshold, d.maxTrimPercent)
		if err != nil {
			return err
		}
		for _, i := range tr.TrimDataset(data) {
			d.log.Warn("dropping training sample that could not be trimmed", zap.Int("sample", i))
		}
		if data.Len() == 0 {
			return ErrEmptyDataset
		}
	}

	p := d.pipeline()
	p.Ranges = data.Ranges()

	labels := data.ClassLabels()
	templates := make([]Template, len(labels))
	totalLength := 0
	for k, label := range labels {
		var series []*mat.Dense
		for _, s := range data.Samples() {
			if s.Label != label {
				continue
			}
			norm, err := p.Normalize(s.Data)
			if err != nil {
				return fmt.Errorf("class %d: %w", label, err)
			}
			series = append(series, norm)
		}

		d.log.Debug("training template", zap.Int("template", k), zap.Int("class", label), zap.Int("examples", len(series)))
		t, err := d.trainTemplate(p, label, series)
		if err != nil {
			return err
		}
		templates[k] = t
		totalLength += t.AverageLength
	}

	d.Clear()
	d.dims = data.Dims()
	d.ranges = p.Ranges
	d.templates = templates
	d.classLabels = labels
	d.avgLength = totalLength / len(templates)
	d.trained = true
	d.RecomputeThresholds()
	d.stream = newRing(d.avgLength, d.dims)
	d.last = Prediction{
		Distances:   make([]float64, len(templates)),
		Likelihoods: make([]float64, len(templates)),
	}

	d.log.Info("training complete",
		zap.Int("templates", len(templates)),
		zap.Int("dims", d.dims),
		zap.Int("average_length", d.avgLength),
		zap.Float64s("thresholds", d.thresholds),
	)

	return nil
}

// trainTemplate selects the template of one class from its normalised examples.
func (d *DTW) trainTemplate(p preprocess.Pipeline, label int, series []*mat.Dense) (Template, error) {
	n := len(series)
	if n < 1 {
		return Template{}, fmt.Errorf("%w: class %d has no examples", ErrInsufficientExamples, label)
	}
	if n == 1 && d.useNullRejection {
		return Template{}, fmt.Errorf("%w: class %d has 1 example; disable null rejection to train it", ErrInsufficientExamples, label)
	}

	t := Template{Label: label}
	sumLength := 0
	shaped := make([]*mat.Dense, n)
	for i, s := range series {
		r, _ := s.Dims()
		sumLength += r
		out, err := p.Shape(s)
		if err != nil {
			return Template{}, fmt.Errorf("class %d: %w", label, err)
		}
		shaped[i] = out
	}
	t.AverageLength = int(float64(sumLength) / float64(n))

	if n == 1 {
		d.log.Warn("single training example: template threshold defaults to 0", zap.Int("class", label))
		t.Series = shaped[0]
		return t, nil
	}

	dist := mat.NewDense(n, n, nil)
	means := make([]float64, n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			al, err := d.alignTo(shaped[a], shaped[b])
			if err != nil {
				return Template{}, fmt.Errorf("class %d: %w", label, err)
			}
			d.log.Debug("pairwise distance",
				zap.Int("class", label), zap.Int("template", a), zap.Int("series", b), zap.Float64("distance", al.Distance))
			dist.Set(a, b, al.Distance)
			means[a] += al.Distance
		}
	}
	floats.Scale(1/float64(n-1), means)
	best := floats.MinIdx(means)
	t.Series = shaped[best]

	if n > 2 {
		row := make([]float64, 0, n-1)
		for b, v := range dist.RawRowView(best) {
			if b != best {
				row = append(row, v)
			}
		}
		t.Mu = means[best]
		t.Sigma = stat.StdDev(row, nil)
	} else {
		d.log.Warn("not enough examples to estimate mu and sigma", zap.Int("class", label), zap.Int("examples", n))
	}

	return t, nil
}
