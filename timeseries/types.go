package timeseries

import "gonum.org/v1/gonum/mat"

// NullClassLabel is the reserved label reported for rejected or unknown input.
const NullClassLabel = 0

// Sample is one labelled time series: rows are time steps, columns are
// feature dimensions.
type Sample struct {
	Label int
	Data  *mat.Dense
}

// Len returns the number of time steps.
func (s Sample) Len() int {
	if s.Data == nil {
		return 0
	}
	r, _ := s.Data.Dims()
	return r
}

// Dims returns the number of feature dimensions.
func (s Sample) Dims() int {
	if s.Data == nil {
		return 0
	}
	_, c := s.Data.Dims()
	return c
}

// MinMax is the closed value range of one dimension.
type MinMax struct {
	Min float64
	Max float64
}

// Scale maps x from [r.Min, r.Max] into [lo, hi]. A degenerate range maps
// every value to lo.
func (r MinMax) Scale(x, lo, hi float64) float64 {
	if r.Min == r.Max {
		return lo
	}
	return (x-r.Min)*(hi-lo)/(r.Max-r.Min) + lo
}

// Unscale is the inverse of Scale for a non-degenerate range.
func (r MinMax) Unscale(y, lo, hi float64) float64 {
	if hi == lo {
		return r.Min
	}
	return (y-lo)*(r.Max-r.Min)/(hi-lo) + r.Min
}

// ClassTracker counts the samples of one class.
type ClassTracker struct {
	Label int
	Count int
	Name  string
}

// clone returns a deep copy of m, or nil.
func clone(m *mat.Dense) *mat.Dense {
	if m == nil {
		return nil
	}
	return mat.DenseCopyOf(m)
}
