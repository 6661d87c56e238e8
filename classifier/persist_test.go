package classifier_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/classifier"
	"github.com/katalvlaran/dtwgesture/dtw"
)

var denseEqual = cmp.Comparer(func(a, b *mat.Dense) bool {
	if a == nil || b == nil {
		return a == b
	}
	return mat.Equal(a, b)
})

const legacyModel = `GRT_DTW_Model_File_V1.0
NumberOfDimensions: 1
NumberOfClasses: 2
NumberOfTemplates: 2
DistanceMethod: 1
UseNullRejection: 1
UseSmoothing: 0
SmoothingFactor: 5
UseScaling: 0
UseZNormalisation: 0
OffsetUsingFirstSample: 0
ConstrainWarpingPath: 0
Radius: 0.2
RejectionMode: 0
NullRejectionCoeff: 3
OverallAverageTemplateLength: 3
Template: 1
ClassLabel: 4
TimeSeriesLength: 3
TemplateThreshold: 0.5
TrainingMu: 0.2
TrainingSigma: 0.1
AverageTemplateLength: 3
TimeSeries:
0
1
2
***************************
Template: 2
ClassLabel: 9
TimeSeriesLength: 3
TemplateThreshold: 0.5
TrainingMu: 0.2
TrainingSigma: 0.1
AverageTemplateLength: 4
TimeSeries:
10
11
12
***************************
`

// PersistSuite round-trips trained models through the text formats.
type PersistSuite struct {
	suite.Suite
	model *classifier.DTW
}

func (s *PersistSuite) SetupTest() {
	s.model = classifier.NewDTW(
		classifier.WithScaling(true),
		classifier.WithNullRejection(true, 2.5),
		classifier.WithRejectionMode(classifier.ThresholdsAndLikelihoods),
		classifier.WithDistanceMethod(dtw.NormAbsolute),
		classifier.WithWarpingConstraint(true, 0.5),
		classifier.WithSmoothing(true, 2),
	)
	require.NoError(s.T(), s.model.Train(gestureSet(s.T(), 4, 21)))
}

// TestRoundTrip reloads a saved model and checks it is indistinguishable.
func (s *PersistSuite) TestRoundTrip() {
	t := s.T()
	var buf bytes.Buffer
	require.NoError(t, s.model.Save(&buf))
	first := buf.String()
	require.True(t, strings.HasPrefix(first, classifier.ModelHeaderV2+"\n"))

	loaded := classifier.NewDTW()
	require.NoError(t, loaded.Load(strings.NewReader(first)))
	require.True(t, loaded.Trained())
	require.Empty(t, cmp.Diff(s.model.Templates(), loaded.Templates(), denseEqual))
	require.Equal(t, s.model.Thresholds(), loaded.Thresholds())
	require.Equal(t, s.model.Ranges(), loaded.Ranges())
	require.Equal(t, s.model.ClassLabels(), loaded.ClassLabels())
	require.Equal(t, s.model.AverageTemplateLength(), loaded.AverageTemplateLength())
	require.Equal(t, dtw.NormAbsolute, loaded.DistanceMethod())
	require.Equal(t, classifier.ThresholdsAndLikelihoods, loaded.RejectionMode())
	require.Equal(t, s.model.BaseSettings(), loaded.BaseSettings())
	on, radius := loaded.WarpingConstraint()
	require.True(t, on)
	require.Equal(t, 0.5, radius)

	want, err := s.model.Predict(gesture(1))
	require.NoError(t, err)
	got, err := loaded.Predict(gesture(1))
	require.NoError(t, err)
	require.Equal(t, want, got)

	var again bytes.Buffer
	require.NoError(t, loaded.Save(&again))
	require.Equal(t, first, again.String())
}

// TestUntrainedRoundTrip keeps settings when no model is present.
func (s *PersistSuite) TestUntrainedRoundTrip() {
	t := s.T()
	s.model.Clear()
	var buf bytes.Buffer
	require.NoError(t, s.model.Save(&buf))
	require.NotContains(t, buf.String(), "NumberOfTemplates:")

	loaded := classifier.NewDTW()
	require.NoError(t, loaded.Load(&buf))
	require.False(t, loaded.Trained())
	require.True(t, loaded.Scaling())
	require.True(t, loaded.NullRejection())
	require.Equal(t, 2.5, loaded.NullRejectionCoeff())
	on, factor := loaded.Smoothing()
	require.True(t, on)
	require.Equal(t, 2, factor)
}

// TestSaveFile uses the file helpers.
func (s *PersistSuite) TestSaveFile() {
	t := s.T()
	path := filepath.Join(t.TempDir(), "model.grt")
	require.NoError(t, s.model.SaveFile(path))

	loaded := classifier.NewDTW()
	require.NoError(t, loaded.LoadFile(path))
	require.Equal(t, s.model.Thresholds(), loaded.Thresholds())
	require.Error(t, loaded.LoadFile(filepath.Join(t.TempDir(), "missing")))
}

// TestMalformed checks that every truncation fails cleanly.
func (s *PersistSuite) TestMalformed() {
	t := s.T()
	var buf bytes.Buffer
	require.NoError(t, s.model.Save(&buf))
	full := buf.String()

	for _, cut := range []int{0, 10, len(full) / 3, len(full) / 2, strings.LastIndex(full, "\t")} {
		loaded := classifier.NewDTW()
		err := loaded.Load(strings.NewReader(full[:cut]))
		require.ErrorIs(t, err, classifier.ErrMalformedModel, "cut at %d", cut)
		require.False(t, loaded.Trained())
	}

	loaded := classifier.NewDTW()
	require.ErrorIs(t, loaded.Load(strings.NewReader("GRT_DTW_Model_File_V9.0\n")), classifier.ErrMalformedModel)
	bad := strings.Replace(full, "RejectionMode: 2", "RejectionMode: 7", 1)
	require.ErrorIs(t, loaded.Load(strings.NewReader(bad)), classifier.ErrUnknownRejectionMode)
	bad = strings.Replace(full, "Template: 2", "Template: 3", 1)
	require.ErrorIs(t, loaded.Load(strings.NewReader(bad)), classifier.ErrMalformedModel)
}

func TestPersistSuite(t *testing.T) {
	suite.Run(t, new(PersistSuite))
}

func TestLoadLegacy(t *testing.T) {
	t.Parallel()
	c := classifier.NewDTW()
	require.NoError(t, c.Load(strings.NewReader(legacyModel)))
	require.True(t, c.Trained())
	require.Equal(t, 1, c.Dims())
	require.Equal(t, []int{4, 9}, c.ClassLabels())
	require.Equal(t, []float64{0.5, 0.5}, c.Thresholds())
	require.Equal(t, 3, c.AverageTemplateLength())
	require.Equal(t, 4, c.Templates()[1].AverageLength)

	p, err := c.Predict(mat.NewDense(3, 1, []float64{10, 11, 12}))
	require.NoError(t, err)
	require.Equal(t, 9, p.Label)
	require.Zero(t, p.BestDistance)

	p, err = c.Predict(mat.NewDense(3, 1, []float64{50, 50, 50}))
	require.NoError(t, err)
	require.Zero(t, p.Label)

	scaled := strings.Replace(legacyModel, "UseScaling: 0", "UseScaling: 1", 1)
	require.NoError(t, c.Load(strings.NewReader(scaled)))
	_, err = c.Predict(mat.NewDense(3, 1, []float64{0, 1, 2}))
	require.ErrorIs(t, err, classifier.ErrMissingRanges)

	truncated := legacyModel[:strings.Index(legacyModel, "Template: 2")]
	require.ErrorIs(t, c.Load(strings.NewReader(truncated)), classifier.ErrMalformedModel)
	require.False(t, c.Trained())
}
