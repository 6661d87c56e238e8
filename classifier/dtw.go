package classifier

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/dtw"
	"github.com/katalvlaran/dtwgesture/preprocess"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

// Defaults applied by NewDTW.
const (
	DefaultNullRejectionCoeff  = 3.0
	DefaultLikelihoodThreshold = 0.99
	DefaultSmoothingFactor     = 5
)

// DTW is a template-matching time-series classifier.
type DTW struct {
	log *zap.Logger

	useScaling          bool
	useNullRejection    bool
	nullRejectionCoeff  float64
	likelihoodThreshold float64
	rejectionMode       RejectionMode
	align               dtw.Options
	useSmoothing        bool
	smoothingFactor     int
	useZNorm            bool
	constrainZNorm      bool
	zNormThreshold      float64
	offsetFirst         bool
	trim                bool
	trimThreshold       float64
	maxTrimPercent      float64
	base                BaseSettings

	trained     bool
	dims        int
	ranges      []timeseries.MinMax
	templates   []Template
	classLabels []int
	thresholds  []float64
	avgLength   int

	last      Prediction
	warpPaths [][]Step
	stream    *ring
}

var _ Classifier = (*DTW)(nil)

// NewDTW returns an untrained classifier with the defaults below, then
// applies opts in order:
//
//	scaling off, null rejection off (coeff 3), TemplateThresholds,
//	likelihood threshold 0.99, Euclidean costs, no band (radius 0.2),
//	no smoothing (factor 5), no z-normalisation (threshold 0.01),
//	no offset, no trimming (0.1, 90%).
func NewDTW(opts ...Option) *DTW {
	d := &DTW{
		log:                 zap.NewNop(),
		nullRejectionCoeff:  DefaultNullRejectionCoeff,
		likelihoodThreshold: DefaultLikelihoodThreshold,
		rejectionMode:       TemplateThresholds,
		align:               dtw.DefaultOptions(),
		smoothingFactor:     DefaultSmoothingFactor,
		zNormThreshold:      preprocess.DefaultZNormThreshold,
		trimThreshold:       timeseries.DefaultTrimThreshold,
		maxTrimPercent:      timeseries.DefaultMaxTrimPercentage,
		base:                DefaultBaseSettings(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Kind identifies the classifier in the registry.
func (d *DTW) Kind() Kind { return KindDTW }

// Trained reports whether templates are available.
func (d *DTW) Trained() bool { return d.trained }

// Dims returns the input dimensionality of the trained model.
func (d *DTW) Dims() int { return d.dims }

// NumTemplates returns the number of templates (one per class).
func (d *DTW) NumTemplates() int { return len(d.templates) }

// ClassLabels returns the template labels in template order.
func (d *DTW) ClassLabels() []int { return append([]int(nil), d.classLabels...) }

// Thresholds returns the per-template null rejection thresholds.
func (d *DTW) Thresholds() []float64 { return append([]float64(nil), d.thresholds...) }

// Ranges returns the scaling ranges captured at training time.
func (d *DTW) Ranges() []timeseries.MinMax { return append([]timeseries.MinMax(nil), d.ranges...) }

// AverageTemplateLength is the streaming buffer size.
func (d *DTW) AverageTemplateLength() int { return d.avgLength }

// Templates returns deep copies of the templates.
func (d *DTW) Templates() []Template {
	out := make([]Template, len(d.templates))
	for i, t := range d.templates {
		out[i] = t.clone()
	}
	return out
}

// LastPrediction returns the most recent prediction.
func (d *DTW) LastPrediction() Prediction { return d.last }

// WarpPaths returns the warp path of the last prediction against every
// template, nil for templates that could not be aligned.
func (d *DTW) WarpPaths() [][]Step {
	out := make([][]Step, len(d.warpPaths))
	for i, p := range d.warpPaths {
		out[i] = append([]Step(nil), p...)
	}
	return out
}

// Settings accessors.

func (d *DTW) Scaling() bool                      { return d.useScaling }
func (d *DTW) NullRejection() bool                { return d.useNullRejection }
func (d *DTW) NullRejectionCoeff() float64        { return d.nullRejectionCoeff }
func (d *DTW) LikelihoodThreshold() float64       { return d.likelihoodThreshold }
func (d *DTW) RejectionMode() RejectionMode       { return d.rejectionMode }
func (d *DTW) DistanceMethod() dtw.DistanceMethod { return d.align.Method }
func (d *DTW) WarpingConstraint() (bool, float64) { return d.align.Constrain, d.align.Radius }
func (d *DTW) Smoothing() (bool, int)             { return d.useSmoothing, d.smoothingFactor }
func (d *DTW) Offset() bool                       { return d.offsetFirst }
func (d *DTW) BaseSettings() BaseSettings         { return d.base }

// ZNormalisation returns the enable flag, the constraint flag and the threshold.
func (d *DTW) ZNormalisation() (on, constrain bool, threshold float64) {
	return d.useZNorm, d.constrainZNorm, d.zNormThreshold
}

// Trimming returns the enable flag, the energy threshold and the maximum trim percentage.
func (d *DTW) Trimming() (on bool, threshold, maxPercent float64) {
	return d.trim, d.trimThreshold, d.maxTrimPercent
}

// SetLogger replaces the logger; nil installs a no-op logger.
func (d *DTW) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	d.log = l
}

// SetScaling toggles min-max scaling. It takes effect at the next training.
func (d *DTW) SetScaling(on bool) { d.useScaling = on }

// SetNullRejection toggles null rejection.
func (d *DTW) SetNullRejection(on bool) { d.useNullRejection = on }

// SetNullRejectionCoeff validates coeff > 0 and recomputes the thresholds of
// a trained model.
func (d *DTW) SetNullRejectionCoeff(coeff float64) error {
	if !(coeff > 0) || math.IsInf(coeff, 0) {
		return fmt.Errorf("%w: %g", ErrBadNullRejectionCoeff, coeff)
	}
	d.nullRejectionCoeff = coeff
	d.RecomputeThresholds()
	return nil
}

// SetLikelihoodThreshold validates t in [0, 1].
func (d *DTW) SetLikelihoodThreshold(t float64) error {
	if !(t >= 0 && t <= 1) {
		return fmt.Errorf("%w: %g", ErrBadLikelihoodThreshold, t)
	}
	d.likelihoodThreshold = t
	return nil
}

// SetRejectionMode validates and sets the acceptance policy.
func (d *DTW) SetRejectionMode(m RejectionMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownRejectionMode, int(m))
	}
	d.rejectionMode = m
	return nil
}

// SetDistanceMethod validates and sets the per-frame cost.
func (d *DTW) SetDistanceMethod(m dtw.DistanceMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", dtw.ErrUnknownDistanceMethod, int(m))
	}
	d.align.Method = m
	return nil
}

// SetWarpingConstraint toggles the band constraint. The radius must be in (0, 1].
func (d *DTW) SetWarpingConstraint(on bool, radius float64) error {
	if !(radius > 0 && radius <= 1) {
		return fmt.Errorf("%w: %g", dtw.ErrBadRadius, radius)
	}
	d.align.Constrain, d.align.Radius = on, radius
	return nil
}

// SetSmoothing toggles smoothing. The factor must be >= 1.
func (d *DTW) SetSmoothing(on bool, factor int) error {
	if factor < 1 {
		return fmt.Errorf("%w: %d", ErrBadSmoothingFactor, factor)
	}
	d.useSmoothing, d.smoothingFactor = on, factor
	return nil
}

// SetZNormalisation toggles z-normalisation. The threshold must be >= 0.
func (d *DTW) SetZNormalisation(on, constrain bool, threshold float64) error {
	if !(threshold >= 0) {
		return fmt.Errorf("%w: %g", ErrBadZNormThreshold, threshold)
	}
	d.useZNorm, d.constrainZNorm, d.zNormThreshold = on, constrain, threshold
	return nil
}

// SetOffset toggles first-sample offsetting.
func (d *DTW) SetOffset(on bool) { d.offsetFirst = on }

// SetTrimming toggles training-data trimming with threshold in [0, 1] and
// maxPercent in [0, 100].
func (d *DTW) SetTrimming(on bool, threshold, maxPercent float64) error {
	if _, err := timeseries.NewTrimmer(threshold, maxPercent); err != nil {
		return err
	}
	d.trim, d.trimThreshold, d.maxTrimPercent = on, threshold, maxPercent
	return nil
}

// SetBaseSettings replaces the generic learner fields.
func (d *DTW) SetBaseSettings(b BaseSettings) { d.base = b }

// RecomputeThresholds sets every threshold to mu + coeff*sigma. It reports
// false on an untrained model.
func (d *DTW) RecomputeThresholds() bool {
	if !d.trained {
		return false
	}
	d.thresholds = make([]float64, len(d.templates))
	for k, t := range d.templates {
		d.thresholds[k] = t.Mu + t.Sigma*d.nullRejectionCoeff
	}
	return true
}

// SetModels replaces the templates of a trained model. The count must not
// change; the class labels, thresholds and average template length follow
// the new templates, and the streaming buffer is resized to match.
func (d *DTW) SetModels(templates []Template) error {
	if len(templates) != len(d.templates) {
		return fmt.Errorf("%w: have %d, got %d", ErrTemplateCount, len(d.templates), len(templates))
	}
	d.templates = make([]Template, len(templates))
	d.classLabels = make([]int, len(templates))
	total := 0
	for i, t := range templates {
		d.templates[i] = t.clone()
		d.classLabels[i] = t.Label
		if t.AverageLength > 0 {
			total += t.AverageLength
		} else {
			total += t.Len()
		}
	}
	if len(templates) > 0 {
		d.avgLength = total / len(templates)
	}
	d.RecomputeThresholds()
	if d.trained && d.avgLength > 0 && (d.stream == nil || d.stream.size != d.avgLength) {
		d.stream = newRing(d.avgLength, d.dims)
	}
	return nil
}

// Reset refills the streaming buffer with zeros and recomputes thresholds.
// Templates are kept.
func (d *DTW) Reset() {
	if !d.trained {
		d.stream = nil
		return
	}
	if d.stream != nil && d.stream.size == d.avgLength && d.stream.dims == d.dims {
		d.stream.reset()
	} else {
		d.stream = newRing(d.avgLength, d.dims)
	}
	d.RecomputeThresholds()
}

// Clear discards the trained model. Settings are kept.
func (d *DTW) Clear() {
	d.trained = false
	d.dims = 0
	d.ranges = nil
	d.templates = nil
	d.classLabels = nil
	d.thresholds = nil
	d.avgLength = 0
	d.last = Prediction{}
	d.warpPaths = nil
	d.stream = nil
	d.base.NumTrainingIterationsToConverge = 0
}

// Clone returns a deep copy sharing only the logger.
func (d *DTW) Clone() *DTW {
	c := *d
	c.ranges = d.Ranges()
	c.templates = d.Templates()
	c.classLabels = d.ClassLabels()
	c.thresholds = d.Thresholds()
	c.warpPaths = d.WarpPaths()
	c.last.Distances = append([]float64(nil), d.last.Distances...)
	c.last.Likelihoods = append([]float64(nil), d.last.Likelihoods...)
	if d.stream != nil {
		s := *d.stream
		s.data = append([]float64(nil), d.stream.data...)
		c.stream = &s
	}
	return &c
}

func (d *DTW) pipeline() preprocess.Pipeline {
	return preprocess.Pipeline{
		Scale:           d.useScaling,
		Ranges:          d.ranges,
		ZNorm:           d.useZNorm,
		ConstrainZNorm:  d.constrainZNorm,
		ZNormThreshold:  d.zNormThreshold,
		Smooth:          d.useSmoothing,
		SmoothingFactor: d.smoothingFactor,
		Offset:          d.offsetFirst,
	}
}

// alignTo runs one template comparison with the configured cost options.
func (d *DTW) alignTo(template, query *mat.Dense) (dtw.Alignment, error) {
	return dtw.Align(template, query, d.align)
}
