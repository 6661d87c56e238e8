package preprocess

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/timeseries"
)

// Pipeline is the ordered set of enabled transforms. The zero value passes
// data through unchanged.
type Pipeline struct {
	// Ranges are required when Scale is set.
	Scale  bool
	Ranges []timeseries.MinMax

	ZNorm          bool
	ConstrainZNorm bool
	ZNormThreshold float64

	Smooth          bool
	SmoothingFactor int

	Offset bool
}

// Normalize runs the value-level stages: scaling into [0, 1] then
// z-normalisation.
func (p Pipeline) Normalize(m *mat.Dense) (*mat.Dense, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptyInput
	}
	out := m
	var err error
	if p.Scale {
		if out, err = Scale(out, p.Ranges, 0, 1); err != nil {
			return nil, err
		}
	}
	if p.ZNorm {
		if out, err = ZNormalize(out, p.ConstrainZNorm, p.ZNormThreshold); err != nil {
			return nil, err
		}
	}
	if out == m {
		out = mat.DenseCopyOf(m)
	}
	return out, nil
}

// Shape runs the time-level stages: smoothing then offsetting.
func (p Pipeline) Shape(m *mat.Dense) (*mat.Dense, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptyInput
	}
	out := m
	var err error
	if p.Smooth {
		if out, err = Smooth(out, p.SmoothingFactor); err != nil {
			return nil, err
		}
	}
	if p.Offset {
		if out, err = Offset(out); err != nil {
			return nil, err
		}
	}
	if out == m {
		out = mat.DenseCopyOf(m)
	}
	return out, nil
}

// Apply runs every enabled stage in order.
func (p Pipeline) Apply(m *mat.Dense) (*mat.Dense, error) {
	out, err := p.Normalize(m)
	if err != nil {
		return nil, err
	}
	return p.Shape(out)
}
