package dtw

import "gonum.org/v1/gonum/mat"

// Align computes the DTW alignment of a (M×C) against b (N×C).
//
// Algorithm Outline:
//  1. Local costs: c(i, j) = cost(a[i], b[j]) under opts.Method.
//  2. Accumulate: memoised recursion from (M-1, N-1), optionally banded.
//  3. Backtrack: walk back to (0, 0) collecting the accumulated cost of
//     every visited cell; distance = Σ cost / path length.
//
// Errors are returned for invalid input only. An alignment that cannot be
// completed is reported through Alignment.Distance = +Inf.
//
// Complexity: O(M·N·C) time, O(M·N) memory.
func Align(a, b *mat.Dense, opts Options) (Alignment, error) {
	if err := opts.Validate(); err != nil {
		return Alignment{}, err
	}
	local, err := LocalCost(a, b, opts.Method)
	if err != nil {
		return Alignment{}, err
	}
	g, err := Accumulate(local, opts)
	if err != nil {
		return Alignment{}, err
	}
	return Backtrack(g), nil
}

// Distance is Align without the path.
func Distance(a, b *mat.Dense, opts Options) (float64, error) {
	al, err := Align(a, b, opts)
	return al.Distance, err
}

// AlignVectors aligns two single-channel series.
func AlignVectors(a, b []float64, opts Options) (Alignment, error) {
	if len(a) == 0 || len(b) == 0 {
		return Alignment{}, ErrEmptyInput
	}
	return Align(mat.NewDense(len(a), 1, a), mat.NewDense(len(b), 1, b), opts)
}
