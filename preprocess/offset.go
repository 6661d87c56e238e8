package preprocess

import "gonum.org/v1/gonum/mat"

// Offset subtracts the first row from every row. The first row of the
// result is zero, so Offset(Offset(m)) equals Offset(m).
func Offset(m *mat.Dense) (*mat.Dense, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptyInput
	}
	rows, cols := m.Dims()
	first := mat.Row(nil, 0, m)

	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(_, j int, v float64) float64 {
		return v - first[j]
	}, m)

	return out, nil
}
