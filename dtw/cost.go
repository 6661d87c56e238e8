package dtw

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LocalCost returns the M×N matrix whose cell (i, j) is the cost between
// row i of a and row j of b under method.
//
// Complexity: O(M·N·C).
func LocalCost(a, b *mat.Dense, method DistanceMethod) (*mat.Dense, error) {
	if err := checkPair(a, b); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDistanceMethod, int(method))
	}

	m, _ := a.Dims()
	n, _ := b.Dims()
	out := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		ra := a.RawRowView(i)
		for j := 0; j < n; j++ {
			rb := b.RawRowView(j)
			var c float64
			switch method {
			case Absolute:
				c = floats.Distance(ra, rb, 1)
			case Euclidean:
				c = floats.Distance(ra, rb, 2)
			case NormAbsolute:
				c = floats.Distance(ra, rb, 1) / float64(n)
			}
			out.Set(i, j, c)
		}
	}

	return out, nil
}

func checkPair(a, b *mat.Dense) error {
	if a == nil || b == nil || a.IsEmpty() || b.IsEmpty() {
		return ErrEmptyInput
	}
	_, ca := a.Dims()
	_, cb := b.Dims()
	if ca != cb {
		return fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, ca, cb)
	}
	return nil
}
