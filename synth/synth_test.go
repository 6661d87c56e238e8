package synth_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/synth"
)

func TestChirp(t *testing.T) {
	t.Parallel()
	y, err := synth.Chirp(1)
	require.NoError(t, err)
	require.InDelta(t, math.Sin(2*math.Pi*0.02), y[0], 1e-12)

	y, err = synth.Chirp(64, synth.WithAmplitude(2))
	require.NoError(t, err)
	require.Len(t, y, 64)
	for _, v := range y {
		require.LessOrEqual(t, math.Abs(v), 2.0)
	}

	a, _ := synth.Chirp(32, synth.WithNoise(0.1), synth.WithSeed(3))
	b, _ := synth.Chirp(32, synth.WithNoise(0.1), synth.WithSeed(3))
	c, _ := synth.Chirp(32, synth.WithNoise(0.1), synth.WithSeed(4))
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)

	_, err = synth.Chirp(0)
	require.ErrorIs(t, err, synth.ErrBadLength)
}

func TestPulse(t *testing.T) {
	t.Parallel()
	y, err := synth.Pulse(16, synth.WithAmplitude(3))
	require.NoError(t, err)
	require.Equal(t, []float64{3, 3, 3, 3, 0, 0, 0, 0, 3, 3, 3, 3, 0, 0, 0, 0}, y)

	y, err = synth.Pulse(5, synth.WithTriangular(true), synth.WithFrequency(0.25))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5, 0}, y, 1e-12)

	y, err = synth.Pulse(3, synth.WithDuty(0), synth.WithTrend(1))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2}, y)
}

func TestRandomWalkAndNoise(t *testing.T) {
	t.Parallel()
	w, err := synth.RandomWalk(20, 3, synth.WithSeed(9))
	require.NoError(t, err)
	r, c := w.Dims()
	require.Equal(t, 20, r)
	require.Equal(t, 3, c)
	require.Equal(t, []float64{0, 0, 0}, w.RawRowView(0))

	again, _ := synth.RandomWalk(20, 3, synth.WithSeed(9))
	require.True(t, mat.Equal(w, again))

	_, err = synth.RandomWalk(5, 0)
	require.ErrorIs(t, err, synth.ErrBadDims)

	n, err := synth.Noise(200, 1, synth.WithAmplitude(0.5), synth.WithTrend(1000))
	require.NoError(t, err)
	require.Greater(t, n.At(199, 0), 150000.0)
}

func TestJitterAndStretch(t *testing.T) {
	t.Parallel()
	m := mat.NewDense(3, 1, []float64{0, 2, 4})
	same := synth.Jitter(m, 0, rand.New(rand.NewSource(1)))
	require.True(t, mat.Equal(m, same))
	require.NotSame(t, m, same)

	s, err := synth.Stretch(m, 5)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 3, 4}, s.RawMatrix().Data)

	s, err = synth.Stretch(m, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 4}, s.RawMatrix().Data)

	s, err = synth.Stretch(mat.NewDense(1, 2, []float64{7, 8}), 3)
	require.NoError(t, err)
	require.Equal(t, []float64{7, 8, 7, 8, 7, 8}, s.RawMatrix().Data)
}

func TestGestureSet(t *testing.T) {
	t.Parallel()
	g, err := synth.GestureSet(3, 4, 30, 2, synth.WithNoise(0.05), synth.WithSeed(11))
	require.NoError(t, err)
	require.Equal(t, 12, g.Data.Len())
	require.Equal(t, []int{1, 2, 3}, g.Data.ClassLabels())
	require.Len(t, g.Prototypes, 3)
	require.False(t, mat.Equal(g.Prototypes[0], g.Prototypes[1]))

	for _, s := range g.Data.Samples() {
		require.Equal(t, 30, s.Len())
		proto := g.Prototypes[s.Label-1]
		var diff mat.Dense
		diff.Sub(s.Data, proto)
		assert.Less(t, mat.Norm(&diff, math.Inf(1)), 0.5)
	}

	again, err := synth.GestureSet(3, 4, 30, 2, synth.WithNoise(0.05), synth.WithSeed(11))
	require.NoError(t, err)
	require.True(t, mat.Equal(g.Data.Sample(5).Data, again.Data.Sample(5).Data))

	_, err = synth.GestureSet(0, 4, 30, 2)
	require.ErrorIs(t, err, synth.ErrBadClasses)
}

func TestGestureSetStretchAndOutliers(t *testing.T) {
	t.Parallel()
	g, err := synth.GestureSet(2, 3, 40, 1,
		synth.WithStretch(0.25),
		synth.WithOutliers(1, 100),
		synth.WithSeed(2),
	)
	require.NoError(t, err)
	require.Equal(t, 8, g.Data.Len())
	for i, s := range g.Data.Samples() {
		require.GreaterOrEqual(t, s.Len(), 30)
		require.LessOrEqual(t, s.Len(), 50)
		if i%4 == 3 {
			assert.InDelta(t, 100.0, s.Data.At(0, 0), 1e-9, "outlier %d starts at the shifted origin", i)
		} else {
			assert.Zero(t, s.Data.At(0, 0))
		}
	}
}

func TestOptionsPanic(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { synth.WithRand(nil) })
	assert.Panics(t, func() { synth.WithAmplitude(0) })
	assert.Panics(t, func() { synth.WithDuty(1.5) })
	assert.Panics(t, func() { synth.WithNoise(-1) })
	assert.Panics(t, func() { synth.WithStretch(1) })
	assert.Panics(t, func() { synth.WithOutliers(-1, 0) })
}
