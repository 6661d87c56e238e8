// Package dtw computes Dynamic Time Warping (DTW) alignments between
// multi-channel time series.
//
// 🚀 What is DTW?
//
//	DTW finds the best match between two sequences by warping the time
//	axis to minimise cumulative distance. Two performances of the same
//	gesture at different speeds align with a small distance; different
//	gestures do not.
//
// ✨ Key features:
//   - multi-channel series: rows are time steps, columns are channels
//   - three local costs: Absolute, Euclidean and NormAbsolute
//   - optional band constraint around the diagonal (Options.Radius)
//   - memoised recursion over an explicit cell-state grid
//     (Unvisited, Unreachable, Computed); inputs are never mutated
//   - warp path from the end cell back to the origin with every step's
//     accumulated cost, and a path-length normalised distance
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/dtwgesture/dtw"
//
//	opts := dtw.DefaultOptions()
//	opts.Constrain = true
//	opts.Radius = 0.2
//
//	al, err := dtw.Align(a, b, opts) // a, b are *mat.Dense
//	if err != nil {
//	  // ErrEmptyInput, ErrDimensionMismatch, ErrUnknownDistanceMethod, ErrBadRadius
//	}
//	fmt.Println(al.Distance, len(al.Path))
//
// Numerical failure (a band that excludes every path, NaN or Inf costs) is
// not an error: Alignment.Distance is +Inf and Alignment.Path is nil.
//
// Performance:
//
//   - Time:   O(M·N·C) for the local costs, O(M·N) for the recursion
//   - Memory: O(M·N)
package dtw
