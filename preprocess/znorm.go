package preprocess

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultZNormThreshold is the standard deviation below which a constrained
// z-normalisation only mean-centres a column.
const DefaultZNormThreshold = 0.01

// ZNormalize returns m with every column shifted to zero mean and divided by
// its sample standard deviation (N-1 denominator).
//
// When constrain is set, columns whose deviation is below threshold are only
// mean-centred. A zero or undefined deviation (a constant column or a single
// row) is always treated that way.
func ZNormalize(m *mat.Dense, constrain bool, threshold float64) (*mat.Dense, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptyInput
	}
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	col := make([]float64, rows)

	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		mean, std := stat.MeanStdDev(col, nil)
		centreOnly := (constrain && std < threshold) || std == 0 || math.IsNaN(std)
		for i := 0; i < rows; i++ {
			v := col[i] - mean
			if !centreOnly {
				v /= std
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}
