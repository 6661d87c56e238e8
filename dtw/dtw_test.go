package dtw_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/dtw"
)

// walk returns a rows×cols random walk with N(0,1) steps.
func walk(rng *rand.Rand, rows, cols int) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		v := 0.0
		for i := 0; i < rows; i++ {
			v += rng.NormFloat64()
			m.Set(i, j, v)
		}
	}
	return m
}

func TestAlign_InputErrors(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(3, 2, nil)
	opts := dtw.DefaultOptions()

	_, err := dtw.Align(nil, a, opts)
	assert.ErrorIs(t, err, dtw.ErrEmptyInput)

	_, err = dtw.Align(a, mat.NewDense(3, 1, nil), opts)
	assert.ErrorIs(t, err, dtw.ErrDimensionMismatch)

	bad := opts
	bad.Method = dtw.DistanceMethod(7)
	_, err = dtw.Align(a, a, bad)
	assert.ErrorIs(t, err, dtw.ErrUnknownDistanceMethod)

	for _, r := range []float64{0, -0.5, 1.5, math.NaN()} {
		bad = opts
		bad.Constrain, bad.Radius = true, r
		_, err = dtw.Align(a, a, bad)
		assert.ErrorIs(t, err, dtw.ErrBadRadius, "radius %g", r)
	}

	// Radius is ignored without the constraint.
	bad = opts
	bad.Radius = 5
	_, err = dtw.Align(a, a, bad)
	assert.NoError(t, err)

	_, err = dtw.AlignVectors(nil, []float64{1}, opts)
	assert.ErrorIs(t, err, dtw.ErrEmptyInput)
}

func TestAlign_IdenticalSeriesIsZero(t *testing.T) {
	t.Parallel()

	a := walk(rand.New(rand.NewSource(1)), 40, 3)
	for _, method := range []dtw.DistanceMethod{dtw.Absolute, dtw.Euclidean, dtw.NormAbsolute} {
		opts := dtw.Options{Method: method}
		al, err := dtw.Align(a, a, opts)
		require.NoError(t, err)
		assert.Equal(t, 0.0, al.Distance, method.String())
		assert.Equal(t, 0.0, al.Accumulated)
		require.Len(t, al.Path, 40)
		for k, s := range al.Path {
			assert.Equal(t, 39-k, s.Row)
			assert.Equal(t, 39-k, s.Col)
		}
	}
}

// TestAlign_HandComputed checks the accumulated grid, tie-breaks and path of
// a small single-channel pair:
//
//	a = [0 1 2], b = [1 1 3], Absolute
//
//	local       accumulated
//	1 1 3       1 2 5
//	0 0 2       1 1 3
//	1 1 1       2 2 2
func TestAlign_HandComputed(t *testing.T) {
	t.Parallel()

	al, err := dtw.AlignVectors([]float64{0, 1, 2}, []float64{1, 1, 3}, dtw.Options{Method: dtw.Absolute})
	require.NoError(t, err)

	want := []dtw.Step{{Row: 2, Col: 2, Cost: 2}, {Row: 1, Col: 1, Cost: 1}, {Row: 0, Col: 0, Cost: 1}}
	if diff := cmp.Diff(want, al.Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 4.0/3.0, al.Distance, 1e-12)
	assert.Equal(t, 2.0, al.Accumulated)

	local, err := dtw.LocalCost(
		mat.NewDense(3, 1, []float64{0, 1, 2}),
		mat.NewDense(3, 1, []float64{1, 1, 3}),
		dtw.Absolute,
	)
	require.NoError(t, err)
	g, err := dtw.Accumulate(local, dtw.Options{Method: dtw.Absolute})
	require.NoError(t, err)

	wantGrid := [][]float64{{1, 2, 5}, {1, 1, 3}, {2, 2, 2}}
	for i := range wantGrid {
		for j := range wantGrid[i] {
			assert.Equal(t, dtw.Computed, g.State(i, j))
			assert.Equal(t, wantGrid[i][j], g.At(i, j), "cell (%d,%d)", i, j)
		}
	}
}

// TestAlign_ConstantOffset aligns a steep ramp against itself shifted by c in
// every channel. The diagonal is the only cheap path, so every matched pair
// costs the per-frame offset cost k and the normalised distance is
// (1+2+...+M)·k / M.
func TestAlign_ConstantOffset(t *testing.T) {
	t.Parallel()

	const (
		rows = 5
		cols = 2
		c    = 0.5
	)
	a := mat.NewDense(rows, cols, nil)
	b := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a.Set(i, j, 10*float64(i))
			b.Set(i, j, 10*float64(i)+c)
		}
	}

	tests := []struct {
		method dtw.DistanceMethod
		frame  float64
	}{
		{dtw.Absolute, cols * c},
		{dtw.Euclidean, math.Sqrt(cols * c * c)},
		{dtw.NormAbsolute, cols * c / rows},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.method.String(), func(t *testing.T) {
			t.Parallel()
			al, err := dtw.Align(a, b, dtw.Options{Method: tc.method})
			require.NoError(t, err)
			require.Len(t, al.Path, rows)
			assert.InDelta(t, 3*tc.frame, al.Distance, 1e-12)
			assert.InDelta(t, rows*tc.frame, al.Accumulated, 1e-12)
		})
	}

	abs, _ := dtw.Distance(a, b, dtw.Options{Method: dtw.Absolute})
	euc, _ := dtw.Distance(a, b, dtw.Options{Method: dtw.Euclidean})
	assert.Greater(t, abs, euc)
}

func TestAlign_ConstraintNeverLowersCost(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 10; trial++ {
		a := walk(rng, 20+rng.Intn(20), 2)
		b := walk(rng, 20+rng.Intn(20), 2)

		free, err := dtw.Align(a, b, dtw.Options{Method: dtw.Euclidean})
		require.NoError(t, err)
		require.True(t, free.OK())

		for _, r := range []float64{0.05, 0.1, 0.3, 1} {
			banded, err := dtw.Align(a, b, dtw.Options{Method: dtw.Euclidean, Constrain: true, Radius: r})
			require.NoError(t, err)
			require.True(t, banded.OK(), "trial %d radius %g", trial, r)
			assert.GreaterOrEqual(t, banded.Accumulated, free.Accumulated-1e-9, "trial %d radius %g", trial, r)
		}
	}
}

// TestAccumulate_BandStates checks that only cells inside the band are ever
// computed and that the band actually prunes the grid.
func TestAccumulate_BandStates(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(5))
	a, b := walk(rng, 12, 1), walk(rng, 12, 1)
	local, err := dtw.LocalCost(a, b, dtw.Absolute)
	require.NoError(t, err)

	g, err := dtw.Accumulate(local, dtw.Options{Method: dtw.Absolute, Constrain: true, Radius: 0.1})
	require.NoError(t, err)

	rows, cols := g.Dims()
	unreachable := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			switch g.State(i, j) {
			case dtw.Computed:
				assert.LessOrEqual(t, abs(i-j), 2, "cell (%d,%d) outside band", i, j)
			case dtw.Unreachable:
				unreachable++
				assert.True(t, math.IsNaN(g.At(i, j)))
			}
		}
	}
	assert.Positive(t, unreachable)
	assert.False(t, math.IsNaN(g.Total()))
}

func TestAlign_NaNInputFails(t *testing.T) {
	t.Parallel()

	a := []float64{0, 1, math.NaN(), 3}
	b := []float64{0, 1, 2, 3}
	al, err := dtw.AlignVectors(a, b, dtw.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, math.IsInf(al.Distance, 1))
	assert.False(t, al.OK())
	assert.Nil(t, al.Path)
}

func TestAlign_SingleRow(t *testing.T) {
	t.Parallel()

	opts := dtw.Options{Method: dtw.Absolute, Constrain: true, Radius: 0.5}
	al, err := dtw.AlignVectors([]float64{1}, []float64{1, 2, 3}, opts)
	require.NoError(t, err)

	want := []dtw.Step{{0, 2, 3}, {0, 1, 1}, {0, 0, 0}}
	if diff := cmp.Diff(want, al.Path, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 4.0/3.0, al.Distance, 1e-12)
}

func TestDistanceMethodNames(t *testing.T) {
	t.Parallel()

	for _, m := range []dtw.DistanceMethod{dtw.Absolute, dtw.Euclidean, dtw.NormAbsolute} {
		got, err := dtw.ParseDistanceMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := dtw.ParseDistanceMethod(" Euclidean ")
	require.NoError(t, err)
	assert.Equal(t, dtw.Euclidean, got)

	_, err = dtw.ParseDistanceMethod("manhattan")
	assert.ErrorIs(t, err, dtw.ErrUnknownDistanceMethod)
	assert.Equal(t, "DistanceMethod(9)", dtw.DistanceMethod(9).String())
	assert.Equal(t, 1, int(dtw.Euclidean))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
