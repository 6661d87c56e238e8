package synth

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// RandomWalk returns an n×dims Gaussian random walk starting at zero. Each
// step has standard deviation A per channel, plus the configured trend.
func RandomWalk(n, dims int, opts ...Option) (*mat.Dense, error) {
	if err := checkShape(n, dims); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)
	rng := cfg.random()

	out := mat.NewDense(n, dims, nil)
	for i := 1; i < n; i++ {
		for j := 0; j < dims; j++ {
			out.Set(i, j, out.At(i-1, j)+cfg.amplitude*rng.NormFloat64()+cfg.trend)
		}
	}
	return out, nil
}

// Noise returns n×dims independent Gaussian samples with standard deviation
// A, shifted by trend*i.
func Noise(n, dims int, opts ...Option) (*mat.Dense, error) {
	if err := checkShape(n, dims); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)
	rng := cfg.random()

	out := mat.NewDense(n, dims, nil)
	out.Apply(func(i, _ int, _ float64) float64 {
		return cfg.amplitude*rng.NormFloat64() + cfg.trend*float64(i)
	}, out)
	return out, nil
}

// Jitter returns a copy of m with Gaussian noise of the given sigma added
// to every cell. rng must not be nil.
func Jitter(m *mat.Dense, sigma float64, rng *rand.Rand) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return v + sigma*rng.NormFloat64() }, m)
	return &out
}

// Stretch resamples m to n rows by linear interpolation between
// neighbouring rows. The first and last rows are preserved.
func Stretch(m *mat.Dense, n int) (*mat.Dense, error) {
	rows, cols := m.Dims()
	if err := checkShape(n, cols); err != nil {
		return nil, err
	}
	out := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		pos := 0.0
		if n > 1 {
			pos = float64(i) * float64(rows-1) / float64(n-1)
		}
		lo := int(pos)
		if lo >= rows-1 {
			out.SetRow(i, m.RawRowView(rows-1))
			continue
		}
		frac := pos - float64(lo)
		for j := 0; j < cols; j++ {
			out.Set(i, j, (1-frac)*m.At(lo, j)+frac*m.At(lo+1, j))
		}
	}
	return out, nil
}

func checkShape(n, dims int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrBadLength, n)
	}
	if dims < 1 {
		return fmt.Errorf("%w: %d", ErrBadDims, dims)
	}
	return nil
}
