package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/dtwgesture/preprocess"
	"github.com/katalvlaran/dtwgesture/timeseries"
)

func TestScaleUnscaleRoundTrip(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(3, 2, []float64{-2, 10, 0, 15, 6, 20})
	ranges := []timeseries.MinMax{{Min: -2, Max: 6}, {Min: 10, Max: 20}}

	scaled, err := preprocess.Scale(m, ranges, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0.25, 0.5, 1, 1}, scaled.RawMatrix().Data)

	back, err := preprocess.Unscale(scaled, ranges, 0, 1)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(m, back, 1e-12))

	_, err = preprocess.Scale(m, ranges[:1], 0, 1)
	assert.ErrorIs(t, err, preprocess.ErrRangesMismatch)
	_, err = preprocess.Scale(nil, ranges, 0, 1)
	assert.ErrorIs(t, err, preprocess.ErrEmptyInput)
}

func TestZNormalize(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(4, 2, []float64{
		1, 5,
		2, 5,
		3, 5.001,
		4, 5,
	})

	t.Run("unconstrained", func(t *testing.T) {
		out, err := preprocess.ZNormalize(m, false, preprocess.DefaultZNormThreshold)
		require.NoError(t, err)
		for j := 0; j < 2; j++ {
			col := mat.Col(nil, j, out)
			mean, std := stat.MeanStdDev(col, nil)
			assert.InDelta(t, 0, mean, 1e-12)
			assert.InDelta(t, 1, std, 1e-9)
		}
	})

	t.Run("constrained_near_constant_column", func(t *testing.T) {
		out, err := preprocess.ZNormalize(m, true, preprocess.DefaultZNormThreshold)
		require.NoError(t, err)
		col := mat.Col(nil, 1, out)
		assert.InDelta(t, -0.00025, col[0], 1e-12)
		assert.InDelta(t, 0.00075, col[2], 1e-12)
		_, std := stat.MeanStdDev(mat.Col(nil, 0, out), nil)
		assert.InDelta(t, 1, std, 1e-9)
	})

	t.Run("constant_column", func(t *testing.T) {
		out, err := preprocess.ZNormalize(mat.NewDense(3, 1, []float64{7, 7, 7}), false, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, out.RawMatrix().Data)
	})

	t.Run("single_row", func(t *testing.T) {
		out, err := preprocess.ZNormalize(mat.NewDense(1, 2, []float64{3, 4}), false, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, out.RawMatrix().Data)
	})
}

func TestSmooth(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(7, 1, []float64{1, 3, 5, 7, 9, 11, 100})

	tests := []struct {
		name string
		k    int
		want []float64
	}{
		{"identity", 1, []float64{1, 3, 5, 7, 9, 11, 100}},
		{"pairs_with_remainder", 2, []float64{2, 6, 10, 100}},
		{"triples_with_remainder", 3, []float64{3, 9, 100}},
		{"exact_blocks", 7, []float64{136.0 / 7}},
		{"factor_longer_than_series", 8, []float64{1, 3, 5, 7, 9, 11, 100}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := preprocess.Smooth(m, tc.k)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.want, out.RawMatrix().Data, 1e-12)
		})
	}

	_, err := preprocess.Smooth(m, 0)
	assert.ErrorIs(t, err, preprocess.ErrBadSmoothingFactor)

	v, err := preprocess.SmoothVector([]float64{2, 4, 6, 8}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, v)
}

func TestOffsetIdempotent(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(3, 2, []float64{1, -1, 2, 0, 4, 3})
	once, err := preprocess.Offset(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 1, 3, 4}, once.RawMatrix().Data)

	twice, err := preprocess.Offset(once)
	require.NoError(t, err)
	assert.True(t, mat.Equal(once, twice))
	assert.Equal(t, 1.0, m.At(0, 0), "input untouched")
}

func TestPipelineOrder(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(4, 1, []float64{0, 2, 4, 8})
	p := preprocess.Pipeline{
		Scale:           true,
		Ranges:          []timeseries.MinMax{{Min: 0, Max: 8}},
		Smooth:          true,
		SmoothingFactor: 2,
		Offset:          true,
	}

	out, err := p.Apply(m)
	require.NoError(t, err)
	// scale: 0, .25, .5, 1 -> smooth: .125, .75 -> offset: 0, .625
	assert.InDeltaSlice(t, []float64{0, 0.625}, out.RawMatrix().Data, 1e-12)

	var zero preprocess.Pipeline
	same, err := zero.Apply(m)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, same))
	same.Set(0, 0, 42)
	assert.Equal(t, 0.0, m.At(0, 0))

	p.Ranges = nil
	_, err = p.Apply(m)
	assert.ErrorIs(t, err, preprocess.ErrRangesMismatch)
}
