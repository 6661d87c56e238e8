package classifier

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/dtw"
)

// RejectionMode selects how a candidate prediction is accepted when null
// rejection is enabled. The numeric values are persisted.
type RejectionMode int

const (
	// TemplateThresholds accepts when the best distance is within the
	// closest template's threshold.
	TemplateThresholds RejectionMode = iota
	// ClassLikelihoods accepts when the largest normalised likelihood reaches
	// the likelihood threshold.
	ClassLikelihoods
	// ThresholdsAndLikelihoods requires both conditions.
	ThresholdsAndLikelihoods
)

var rejectionNames = [...]string{"template_thresholds", "class_likelihoods", "thresholds_and_likelihoods"}

// Valid reports whether m is one of the enumerated modes.
func (m RejectionMode) Valid() bool {
	return m >= TemplateThresholds && m <= ThresholdsAndLikelihoods
}

func (m RejectionMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("RejectionMode(%d)", int(m))
	}
	return rejectionNames[m]
}

// ParseRejectionMode accepts the names printed by String, case-insensitively.
func ParseRejectionMode(s string) (RejectionMode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range rejectionNames {
		if name == want {
			return RejectionMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRejectionMode, s)
}

// Mode is the persisted classifier mode flag.
type Mode int

const (
	StandardMode Mode = iota
	TimeSeriesMode
)

// Template is the trained reference of one class.
type Template struct {
	Label int
	// Series is the chosen example after smoothing and offsetting.
	Series *mat.Dense
	// Mu and Sigma are the mean and standard deviation of the distances
	// from Series to the other examples of the class.
	Mu    float64
	Sigma float64
	// AverageLength is the mean raw length of the class examples.
	AverageLength int
}

// Len returns the number of rows of the template series.
func (t Template) Len() int {
	if t.Series == nil {
		return 0
	}
	r, _ := t.Series.Dims()
	return r
}

func (t Template) clone() Template {
	c := t
	if t.Series != nil {
		c.Series = mat.DenseCopyOf(t.Series)
	}
	return c
}

// Prediction is the outcome of one Predict or PredictSample call.
type Prediction struct {
	// Ready is false while a stream is still filling its buffer. All other
	// fields are then zero.
	Ready bool
	// Label is the accepted class label or 0 when rejected.
	Label int
	// Closest is the index of the template with the smallest distance.
	Closest int
	// BestDistance is the distance to the closest template.
	BestDistance float64
	// MaxLikelihood is the largest normalised likelihood.
	MaxLikelihood float64
	// Distances and Likelihoods are indexed like the templates.
	Distances   []float64
	Likelihoods []float64
}

// BaseSettings are the generic learner fields carried verbatim by the
// model file. They do not influence DTW training.
type BaseSettings struct {
	NumOutputDimensions             int
	NumTrainingIterationsToConverge int
	MinNumEpochs                    int
	MaxNumEpochs                    int
	ValidationSetSize               int
	LearningRate                    float64
	MinChange                       float64
	UseValidationSet                bool
	RandomiseTrainingOrder          bool
}

// DefaultBaseSettings mirrors the values written by a freshly constructed model.
func DefaultBaseSettings() BaseSettings {
	return BaseSettings{
		MaxNumEpochs:           100,
		ValidationSetSize:      20,
		LearningRate:           0.1,
		MinChange:              1e-5,
		RandomiseTrainingOrder: true,
	}
}

// Step aliases dtw.Step for callers inspecting warp paths.
type Step = dtw.Step
