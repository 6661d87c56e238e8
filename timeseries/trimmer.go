package timeseries

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Default trimmer settings.
const (
	DefaultTrimThreshold     = 0.1
	DefaultMaxTrimPercentage = 90.0
)

// Trimmer removes the still segments at both ends of a sample.
//
// The motion energy of step i >= 1 is the mean absolute change across
// channels between rows i-1 and i, normalised by the largest energy in the
// sample. The kept range is [first, last) where first is the earliest and
// last the latest step whose energy exceeds Threshold.
type Trimmer struct {
	threshold  float64
	maxPercent float64
}

// NewTrimmer validates threshold in [0, 1] and maxPercent in [0, 100].
func NewTrimmer(threshold, maxPercent float64) (*Trimmer, error) {
	if threshold < 0 || threshold > 1 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("%w: threshold %g not in [0, 1]", ErrBadTrimParams, threshold)
	}
	if maxPercent < 0 || maxPercent > 100 || math.IsNaN(maxPercent) {
		return nil, fmt.Errorf("%w: max percentage %g not in [0, 100]", ErrBadTrimParams, maxPercent)
	}
	return &Trimmer{threshold: threshold, maxPercent: maxPercent}, nil
}

// Threshold returns the normalised energy threshold.
func (t *Trimmer) Threshold() float64 { return t.threshold }

// MaxPercent returns the largest share of rows that may be removed.
func (t *Trimmer) MaxPercent() float64 { return t.maxPercent }

// Trim returns a copy of the active section of data, or ErrUntrimmable.
func (t *Trimmer) Trim(data *mat.Dense) (*mat.Dense, error) {
	if data == nil || data.IsEmpty() {
		return nil, ErrEmptySample
	}
	rows, cols := data.Dims()

	energy := make([]float64, rows)
	peak := 0.0
	for i := 1; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += math.Abs(data.At(i, j) - data.At(i-1, j))
		}
		energy[i] = sum / float64(cols)
		if energy[i] > peak {
			peak = energy[i]
		}
	}
	if peak == 0 {
		return nil, fmt.Errorf("%w: no motion", ErrUntrimmable)
	}
	for i := range energy {
		energy[i] /= peak
	}

	first := 0
	for i := 1; i < rows; i++ {
		if energy[i] > t.threshold {
			first = i
			break
		}
	}
	last := 0
	for i := rows - 1; i > first; i-- {
		if energy[i] > t.threshold {
			last = i
			break
		}
	}
	if first >= last {
		return nil, fmt.Errorf("%w: active range [%d, %d) is empty", ErrUntrimmable, first, last)
	}

	kept := last - first
	removed := 100 - float64(kept)/float64(rows)*100
	if removed > t.maxPercent {
		return nil, fmt.Errorf("%w: would remove %.1f%% of %d rows", ErrUntrimmable, removed, rows)
	}

	return mat.DenseCopyOf(data.Slice(first, last, 0, cols)), nil
}

// TrimDataset trims every sample of d in place and returns the indices (in
// the original order) of samples that were dropped as untrimmable.
func (t *Trimmer) TrimDataset(d *Dataset) []int {
	var dropped []int
	kept := d.samples[:0]
	for i, s := range d.samples {
		trimmed, err := t.Trim(s.Data)
		if err != nil {
			dropped = append(dropped, i)
			continue
		}
		kept = append(kept, Sample{Label: s.Label, Data: trimmed})
	}
	d.samples = kept
	d.rebuildTracker()

	return dropped
}
