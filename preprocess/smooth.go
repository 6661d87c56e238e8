package preprocess

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Smooth averages non-overlapping blocks of k rows. The result has M/k rows
// plus one extra row averaging the M%k leftover rows when M%k != 0.
// k == 1 or M < k returns an unchanged copy.
//
// Complexity: O(M·C).
func Smooth(m *mat.Dense, k int) (*mat.Dense, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptyInput
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadSmoothingFactor, k)
	}
	rows, cols := m.Dims()
	if k == 1 || rows < k {
		return mat.DenseCopyOf(m), nil
	}

	blocks := rows / k
	rem := rows % k
	outRows := blocks
	if rem != 0 {
		outRows++
	}

	out := mat.NewDense(outRows, cols, nil)
	for j := 0; j < cols; j++ {
		for b := 0; b < outRows; b++ {
			start := b * k
			end := start + k
			if end > rows {
				end = rows
			}
			sum := 0.0
			for i := start; i < end; i++ {
				sum += m.At(i, j)
			}
			out.Set(b, j, sum/float64(end-start))
		}
	}

	return out, nil
}

// SmoothVector is Smooth for a single-channel series.
func SmoothVector(x []float64, k int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	out, err := Smooth(mat.NewDense(len(x), 1, append([]float64(nil), x...)), k)
	if err != nil {
		return nil, err
	}
	r, _ := out.Dims()
	return mat.Col(make([]float64, r), 0, out), nil
}
