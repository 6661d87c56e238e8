package preprocess

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/timeseries"
)

// Scale maps column j of m from ranges[j] into [lo, hi].
func Scale(m *mat.Dense, ranges []timeseries.MinMax, lo, hi float64) (*mat.Dense, error) {
	return mapColumns(m, ranges, func(r timeseries.MinMax, v float64) float64 {
		return r.Scale(v, lo, hi)
	})
}

// Unscale is the inverse of Scale.
func Unscale(m *mat.Dense, ranges []timeseries.MinMax, lo, hi float64) (*mat.Dense, error) {
	return mapColumns(m, ranges, func(r timeseries.MinMax, v float64) float64 {
		return r.Unscale(v, lo, hi)
	})
}

func mapColumns(m *mat.Dense, ranges []timeseries.MinMax, fn func(timeseries.MinMax, float64) float64) (*mat.Dense, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptyInput
	}
	rows, cols := m.Dims()
	if len(ranges) != cols {
		return nil, fmt.Errorf("%w: %d ranges, %d columns", ErrRangesMismatch, len(ranges), cols)
	}

	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return fn(ranges[j], v)
	}, m)

	return out, nil
}
