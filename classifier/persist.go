package classifier

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/dtw"
	"github.com/katalvlaran/dtwgesture/internal/tokens"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

// Model file headers.
const (
	ModelHeaderV2 = "GRT_DTW_Model_File_V2.0"
	ModelHeaderV1 = "GRT_DTW_Model_File_V1.0"

	templateHeader = "***************TEMPLATE***************"
	legacyFooter   = "***************************"
)

// Save writes the model and its settings in the V2 text format. An
// untrained model is written without thresholds, labels or templates.
func (d *DTW) Save(w io.Writer) error {
	tw := tokens.NewWriter(w)
	b := d.base

	tw.Line(ModelHeaderV2)
	tw.Line("Trained:", d.trained)
	tw.Line("UseScaling:", d.useScaling)
	tw.Line("NumInputDimensions:", d.dims)
	tw.Line("NumOutputDimensions:", b.NumOutputDimensions)
	tw.Line("NumTrainingIterationsToConverge:", b.NumTrainingIterationsToConverge)
	tw.Line("MinNumEpochs:", b.MinNumEpochs)
	tw.Line("MaxNumEpochs:", b.MaxNumEpochs)
	tw.Line("ValidationSetSize:", b.ValidationSetSize)
	tw.Line("LearningRate:", b.LearningRate)
	tw.Line("MinChange:", b.MinChange)
	tw.Line("UseValidationSet:", b.UseValidationSet)
	tw.Line("RandomiseTrainingOrder:", b.RandomiseTrainingOrder)
	tw.Line("UseNullRejection:", d.useNullRejection)
	tw.Line("ClassifierMode:", int(TimeSeriesMode))
	tw.Line("NullRejectionCoeff:", d.nullRejectionCoeff)

	if d.trained {
		tw.Line("NumClasses:", len(d.classLabels))
		thr := make([]float64, len(d.templates))
		if d.useNullRejection {
			copy(thr, d.thresholds)
		}
		tw.Line(keyed("NullRejectionThresholds:", thr)...)
		labels := make([]any, 0, len(d.classLabels)+1)
		labels = append(labels, "ClassLabels:")
		for _, l := range d.classLabels {
			labels = append(labels, l)
		}
		tw.Line(labels...)
		if d.useScaling {
			tw.Line("Ranges:")
			for _, r := range d.ranges {
				tw.Row([]float64{r.Min, r.Max})
			}
		}
	}

	tw.Line("DistanceMethod:", int(d.align.Method))
	tw.Line("UseSmoothing:", d.useSmoothing)
	tw.Line("SmoothingFactor:", d.smoothingFactor)
	tw.Line("UseZNormalisation:", d.useZNorm)
	tw.Line("OffsetUsingFirstSample:", d.offsetFirst)
	tw.Line("ConstrainWarpingPath:", d.align.Constrain)
	tw.Line("Radius:", d.align.Radius)
	tw.Line("RejectionMode:", int(d.rejectionMode))

	if d.trained {
		tw.Line("NumberOfTemplates:", len(d.templates))
		tw.Line("OverallAverageTemplateLength:", d.avgLength)
		for i, t := range d.templates {
			tw.Line(templateHeader)
			tw.Line("Template:", i+1)
			tw.Line("ClassLabel:", t.Label)
			tw.Line("TimeSeriesLength:", t.Len())
			tw.Line("TemplateThreshold:", d.thresholds[i])
			tw.Line("TrainingMu:", t.Mu)
			tw.Line("TrainingSigma:", t.Sigma)
			tw.Line("AverageTemplateLength:", t.AverageLength)
			tw.Line("TimeSeries:")
			for r := 0; r < t.Len(); r++ {
				tw.Row(t.Series.RawRowView(r))
			}
		}
	}

	return tw.Flush()
}

// SaveFile writes the model to path, creating or truncating it.
func (d *DTW) SaveFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return d.Save(f)
}

// Load replaces the model with one read from r. Both the V2 format and the
// legacy V1 format are accepted. On any failure the classifier is left
// cleared and the error wraps ErrMalformedModel.
func (d *DTW) Load(r io.Reader) error {
	d.Clear()
	tr := tokens.NewReader(r)

	head, err := tr.Next()
	switch {
	case err != nil:
	case head == ModelHeaderV2:
		err = d.loadV2(tr)
	case head == ModelHeaderV1:
		err = d.loadV1(tr)
	default:
		err = fmt.Errorf("%w: unknown header %q", tokens.ErrUnexpectedToken, head)
	}
	if err != nil {
		d.Clear()
		return fmt.Errorf("%w: %w", ErrMalformedModel, err)
	}

	d.log.Info("model loaded",
		zap.String("format", head),
		zap.Int("templates", len(d.templates)),
		zap.Int("dims", d.dims),
	)
	return nil
}

// LoadFile reads a model from path.
func (d *DTW) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.Load(f)
}

func (d *DTW) loadV2(tr *tokens.Reader) error {
	var err error
	var b BaseSettings
	var trained bool

	if trained, err = tr.KeyBool("Trained:"); err != nil {
		return err
	}
	if d.useScaling, err = tr.KeyBool("UseScaling:"); err != nil {
		return err
	}
	if d.dims, err = tr.KeyInt("NumInputDimensions:"); err != nil {
		return err
	}
	if b.NumOutputDimensions, err = tr.KeyInt("NumOutputDimensions:"); err != nil {
		return err
	}
	if b.NumTrainingIterationsToConverge, err = tr.KeyInt("NumTrainingIterationsToConverge:"); err != nil {
		return err
	}
	if b.MinNumEpochs, err = tr.KeyInt("MinNumEpochs:"); err != nil {
		return err
	}
	if b.MaxNumEpochs, err = tr.KeyInt("MaxNumEpochs:"); err != nil {
		return err
	}
	if b.ValidationSetSize, err = tr.KeyInt("ValidationSetSize:"); err != nil {
		return err
	}
	if b.LearningRate, err = tr.KeyFloat("LearningRate:"); err != nil {
		return err
	}
	if b.MinChange, err = tr.KeyFloat("MinChange:"); err != nil {
		return err
	}
	if b.UseValidationSet, err = tr.KeyBool("UseValidationSet:"); err != nil {
		return err
	}
	if b.RandomiseTrainingOrder, err = tr.KeyBool("RandomiseTrainingOrder:"); err != nil {
		return err
	}
	if d.useNullRejection, err = tr.KeyBool("UseNullRejection:"); err != nil {
		return err
	}
	mode, err := tr.KeyInt("ClassifierMode:")
	if err != nil {
		return err
	}
	if Mode(mode) != TimeSeriesMode {
		return fmt.Errorf("%w: classifier mode %d", tokens.ErrUnexpectedToken, mode)
	}
	coeff, err := tr.KeyFloat("NullRejectionCoeff:")
	if err != nil {
		return err
	}
	if !(coeff > 0) {
		return ErrBadNullRejectionCoeff
	}
	d.nullRejectionCoeff = coeff
	d.base = b

	numClasses := 0
	if trained {
		if numClasses, err = tr.KeyInt("NumClasses:"); err != nil {
			return err
		}
		if numClasses < 1 {
			return fmt.Errorf("%w: %d classes", tokens.ErrUnexpectedToken, numClasses)
		}
		// Thresholds are rebuilt from the per-template values below.
		if err = tr.Expect("NullRejectionThresholds:"); err != nil {
			return err
		}
		for i := 0; i < numClasses; i++ {
			if _, err = tr.Float(); err != nil {
				return err
			}
		}
		if err = tr.Expect("ClassLabels:"); err != nil {
			return err
		}
		for i := 0; i < numClasses; i++ {
			if _, err = tr.Int(); err != nil {
				return err
			}
		}
		if d.useScaling {
			if d.ranges, err = readRanges(tr, d.dims); err != nil {
				return err
			}
		}
	}

	if err = d.readSettings(tr); err != nil {
		return err
	}
	if !trained {
		return nil
	}

	n, err := tr.KeyInt("NumberOfTemplates:")
	if err != nil {
		return err
	}
	if n != numClasses {
		return fmt.Errorf("%w: %d templates for %d classes", ErrTemplateCount, n, numClasses)
	}
	if d.avgLength, err = tr.KeyInt("OverallAverageTemplateLength:"); err != nil {
		return err
	}
	if err = d.readTemplates(tr, n, false); err != nil {
		return err
	}
	d.finishLoad()
	return nil
}

// readSettings reads the DTW-specific block shared by both formats' V2 layout.
func (d *DTW) readSettings(tr *tokens.Reader) error {
	method, err := tr.KeyInt("DistanceMethod:")
	if err != nil {
		return err
	}
	if d.useSmoothing, err = tr.KeyBool("UseSmoothing:"); err != nil {
		return err
	}
	if d.smoothingFactor, err = tr.KeyInt("SmoothingFactor:"); err != nil {
		return err
	}
	if d.useZNorm, err = tr.KeyBool("UseZNormalisation:"); err != nil {
		return err
	}
	if d.offsetFirst, err = tr.KeyBool("OffsetUsingFirstSample:"); err != nil {
		return err
	}
	if d.align.Constrain, err = tr.KeyBool("ConstrainWarpingPath:"); err != nil {
		return err
	}
	if d.align.Radius, err = tr.KeyFloat("Radius:"); err != nil {
		return err
	}
	rm, err := tr.KeyInt("RejectionMode:")
	if err != nil {
		return err
	}
	d.align.Method = dtw.DistanceMethod(method)
	d.rejectionMode = RejectionMode(rm)

	return d.checkSettings()
}

func (d *DTW) checkSettings() error {
	if err := d.align.Validate(); err != nil {
		return err
	}
	if !d.rejectionMode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownRejectionMode, int(d.rejectionMode))
	}
	if d.smoothingFactor < 1 {
		return ErrBadSmoothingFactor
	}
	return nil
}

// readTemplates reads n template blocks. Legacy files locate each block by
// its "Template:" key and close it with a footer line.
func (d *DTW) readTemplates(tr *tokens.Reader, n int, legacy bool) error {
	if d.dims < 1 {
		return fmt.Errorf("%w: %d dimensions", ErrDimensionMismatch, d.dims)
	}
	d.templates = make([]Template, n)
	d.thresholds = make([]float64, n)
	d.classLabels = make([]int, n)

	for i := 0; i < n; i++ {
		if legacy {
			if err := tr.SkipTo("Template:"); err != nil {
				return err
			}
		} else {
			if err := tr.Expect(templateHeader); err != nil {
				return err
			}
			if err := tr.Expect("Template:"); err != nil {
				return err
			}
		}
		num, err := tr.Int()
		if err != nil {
			return err
		}
		if num != i+1 {
			return fmt.Errorf("%w: template %d numbered %d", tokens.ErrUnexpectedToken, i+1, num)
		}

		var t Template
		if t.Label, err = tr.KeyInt("ClassLabel:"); err != nil {
			return err
		}
		length, err := tr.KeyInt("TimeSeriesLength:")
		if err != nil {
			return err
		}
		if length < 1 {
			return fmt.Errorf("%w: template %d", timeseries.ErrEmptySample, i+1)
		}
		if d.thresholds[i], err = tr.KeyFloat("TemplateThreshold:"); err != nil {
			return err
		}
		if t.Mu, err = tr.KeyFloat("TrainingMu:"); err != nil {
			return err
		}
		if t.Sigma, err = tr.KeyFloat("TrainingSigma:"); err != nil {
			return err
		}
		if t.AverageLength, err = tr.KeyInt("AverageTemplateLength:"); err != nil {
			return err
		}
		if err = tr.Expect("TimeSeries:"); err != nil {
			return err
		}
		vals := make([]float64, length*d.dims)
		for j := range vals {
			if vals[j], err = tr.Float(); err != nil {
				return err
			}
		}
		t.Series = mat.NewDense(length, d.dims, vals)
		if legacy {
			if err = tr.Expect(legacyFooter); err != nil {
				return err
			}
		}

		d.templates[i] = t
		d.classLabels[i] = t.Label
	}
	return nil
}

// finishLoad marks a fully read model as trained and sizes its buffers.
func (d *DTW) finishLoad() {
	if d.avgLength < 1 {
		d.avgLength = d.templates[0].Len()
	}
	d.trained = true
	d.stream = newRing(d.avgLength, d.dims)
	d.last = Prediction{
		Distances:   make([]float64, len(d.templates)),
		Likelihoods: make([]float64, len(d.templates)),
	}
}

func readRanges(tr *tokens.Reader, dims int) ([]timeseries.MinMax, error) {
	if err := tr.Expect("Ranges:"); err != nil {
		return nil, err
	}
	out := make([]timeseries.MinMax, dims)
	for i := range out {
		var err error
		if out[i].Min, err = tr.Float(); err != nil {
			return nil, err
		}
		if out[i].Max, err = tr.Float(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// keyed prepends key to values for a single Writer.Line call.
func keyed(key string, values []float64) []any {
	out := make([]any, 0, len(values)+1)
	out = append(out, key)
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
