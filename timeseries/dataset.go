package timeseries

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Dataset is an ordered collection of labelled time series of a fixed
// dimensionality.
//
// Not safe for concurrent mutation.
type Dataset struct {
	name      string
	info      string
	dims      int
	samples   []Sample
	tracker   []ClassTracker
	allowNull bool

	useExternal bool
	external    []MinMax
}

// NewDataset returns an empty dataset whose samples have dims columns.
func NewDataset(dims int) *Dataset {
	return &Dataset{dims: dims}
}

// Name returns the dataset name.
func (d *Dataset) Name() string { return d.name }

// SetName sets the dataset name. Whitespace is replaced by underscores so the
// name survives the single-token field of the file format.
func (d *Dataset) SetName(name string) {
	d.name = strings.Join(strings.Fields(name), "_")
}

// Info returns the free-form info text.
func (d *Dataset) Info() string { return d.info }

// SetInfo sets the free-form info text.
func (d *Dataset) SetInfo(info string) { d.info = info }

// Dims returns the number of feature dimensions.
func (d *Dataset) Dims() int { return d.dims }

// SetDims changes the dimensionality and drops every sample.
func (d *Dataset) SetDims(dims int) {
	d.Clear()
	d.dims = dims
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.samples) }

// NumClasses returns the number of distinct labels.
func (d *Dataset) NumClasses() int { return len(d.tracker) }

// Sample returns the i-th sample. The matrix is shared with the dataset.
func (d *Dataset) Sample(i int) Sample { return d.samples[i] }

// Samples returns the samples in insertion order. The slice is a copy; the
// matrices are shared.
func (d *Dataset) Samples() []Sample {
	out := make([]Sample, len(d.samples))
	copy(out, d.samples)
	return out
}

// ClassTracker returns a copy of the per-class counters in order of first appearance.
func (d *Dataset) ClassTracker() []ClassTracker {
	out := make([]ClassTracker, len(d.tracker))
	copy(out, d.tracker)
	return out
}

// ClassLabels returns the labels in order of first appearance.
func (d *Dataset) ClassLabels() []int {
	out := make([]int, len(d.tracker))
	for i, t := range d.tracker {
		out[i] = t.Label
	}
	return out
}

// SetAllowNullClass controls whether samples labelled 0 are accepted.
func (d *Dataset) SetAllowNullClass(allow bool) { d.allowNull = allow }

// SetClassName attaches a human readable name to a label.
func (d *Dataset) SetClassName(label int, name string) error {
	for i := range d.tracker {
		if d.tracker[i].Label == label {
			d.tracker[i].Name = name
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownClass, label)
}

// Clear drops every sample and counter. Name, info and dimensionality stay.
func (d *Dataset) Clear() {
	d.samples = nil
	d.tracker = nil
}

// AddSample appends a copy of data under label.
func (d *Dataset) AddSample(label int, data *mat.Dense) error {
	if data == nil || data.IsEmpty() {
		return ErrEmptySample
	}
	if _, c := data.Dims(); c != d.dims {
		return fmt.Errorf("%w: sample has %d columns, dataset has %d", ErrDimensionMismatch, c, d.dims)
	}
	if label < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLabel, label)
	}
	if label == NullClassLabel && !d.allowNull {
		return ErrNullClassLabel
	}

	d.samples = append(d.samples, Sample{Label: label, Data: clone(data)})
	for i := range d.tracker {
		if d.tracker[i].Label == label {
			d.tracker[i].Count++
			return nil
		}
	}
	d.tracker = append(d.tracker, ClassTracker{Label: label, Count: 1})

	return nil
}

// RemoveLastSample drops the most recently added sample. It reports false
// on an empty dataset.
func (d *Dataset) RemoveLastSample() bool {
	n := len(d.samples)
	if n == 0 {
		return false
	}
	label := d.samples[n-1].Label
	d.samples = d.samples[:n-1]
	for i := range d.tracker {
		if d.tracker[i].Label == label {
			d.tracker[i].Count--
			if d.tracker[i].Count == 0 {
				d.tracker = append(d.tracker[:i], d.tracker[i+1:]...)
			}
			break
		}
	}
	return true
}

// EraseClass removes every sample labelled label and returns how many were removed.
func (d *Dataset) EraseClass(label int) int {
	kept := d.samples[:0]
	removed := 0
	for _, s := range d.samples {
		if s.Label == label {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	d.samples = kept
	for i := range d.tracker {
		if d.tracker[i].Label == label {
			d.tracker = append(d.tracker[:i], d.tracker[i+1:]...)
			break
		}
	}
	return removed
}

// Relabel moves every sample of oldLabel to newLabel, merging the counters
// when newLabel already exists.
func (d *Dataset) Relabel(oldLabel, newLabel int) error {
	oldIdx, newIdx := -1, -1
	for i, t := range d.tracker {
		if t.Label == oldLabel {
			oldIdx = i
		}
		if t.Label == newLabel {
			newIdx = i
		}
	}
	if oldIdx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownClass, oldLabel)
	}
	if newLabel < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLabel, newLabel)
	}
	if oldLabel == newLabel {
		return nil
	}
	for i := range d.samples {
		if d.samples[i].Label == oldLabel {
			d.samples[i].Label = newLabel
		}
	}
	if newIdx >= 0 {
		d.tracker[newIdx].Count += d.tracker[oldIdx].Count
		d.tracker = append(d.tracker[:oldIdx], d.tracker[oldIdx+1:]...)
		return nil
	}
	d.tracker[oldIdx].Label = newLabel

	return nil
}

// ClassData returns a new dataset holding copies of every sample with label.
func (d *Dataset) ClassData(label int) *Dataset {
	out := NewDataset(d.dims)
	out.allowNull = d.allowNull
	for _, s := range d.samples {
		if s.Label == label {
			// Samples already passed validation.
			_ = out.AddSample(label, s.Data)
		}
	}
	return out
}

// SetExternalRanges installs ranges used by Ranges instead of the observed ones
// when use is true.
func (d *Dataset) SetExternalRanges(ranges []MinMax, use bool) error {
	if len(ranges) != d.dims {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidRanges, len(ranges), d.dims)
	}
	d.external = append([]MinMax(nil), ranges...)
	d.useExternal = use
	return nil
}

// UsesExternalRanges reports whether external ranges are active.
func (d *Dataset) UsesExternalRanges() bool { return d.useExternal }

// Ranges returns the per-dimension min/max over every sample, or the external
// ranges when enabled. An empty dataset yields zero ranges.
func (d *Dataset) Ranges() []MinMax {
	if d.useExternal {
		return append([]MinMax(nil), d.external...)
	}
	ranges := make([]MinMax, d.dims)
	if len(d.samples) == 0 {
		return ranges
	}
	for j := range ranges {
		ranges[j] = MinMax{Min: math.Inf(1), Max: math.Inf(-1)}
	}
	for _, s := range d.samples {
		rows, _ := s.Data.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < d.dims; j++ {
				v := s.Data.At(i, j)
				if v < ranges[j].Min {
					ranges[j].Min = v
				}
				if v > ranges[j].Max {
					ranges[j].Max = v
				}
			}
		}
	}
	return ranges
}

// Scale min-max scales every sample in place into [lo, hi] using Ranges.
func (d *Dataset) Scale(lo, hi float64) {
	ranges := d.Ranges()
	for _, s := range d.samples {
		rows, _ := s.Data.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < d.dims; j++ {
				s.Data.Set(i, j, ranges[j].Scale(s.Data.At(i, j), lo, hi))
			}
		}
	}
}

// Split keeps trainPercent percent of the samples in d and returns the rest
// as a new dataset. With stratified set the percentage is applied per class.
// A nil rng uses a fixed seed.
//
// Complexity: O(n) time.
func (d *Dataset) Split(trainPercent int, stratified bool, rng *rand.Rand) (*Dataset, error) {
	if trainPercent < 0 || trainPercent > 100 {
		return nil, fmt.Errorf("%w: %d", ErrBadPercentage, trainPercent)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	train := NewDataset(d.dims)
	test := NewDataset(d.dims)
	train.allowNull, test.allowNull = d.allowNull, d.allowNull

	var groups [][]int
	if stratified {
		byLabel := make(map[int]int, len(d.tracker))
		groups = make([][]int, len(d.tracker))
		for k, t := range d.tracker {
			byLabel[t.Label] = k
		}
		for i, s := range d.samples {
			k := byLabel[s.Label]
			groups[k] = append(groups[k], i)
		}
	} else {
		all := make([]int, len(d.samples))
		for i := range all {
			all[i] = i
		}
		groups = [][]int{all}
	}

	for _, idx := range groups {
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		cut := len(idx) * trainPercent / 100
		for n, i := range idx {
			s := d.samples[i]
			if n < cut {
				_ = train.AddSample(s.Label, s.Data)
			} else {
				_ = test.AddSample(s.Label, s.Data)
			}
		}
	}

	d.samples, d.tracker = train.samples, train.tracker

	return test, nil
}

// Merge appends copies of every sample of other.
func (d *Dataset) Merge(other *Dataset) error {
	if other.dims != d.dims {
		return fmt.Errorf("%w: merging %d into %d dimensions", ErrDimensionMismatch, other.dims, d.dims)
	}
	for _, s := range other.samples {
		if err := d.AddSample(s.Label, s.Data); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		name:        d.name,
		info:        d.info,
		dims:        d.dims,
		allowNull:   d.allowNull,
		useExternal: d.useExternal,
		external:    append([]MinMax(nil), d.external...),
		tracker:     d.ClassTracker(),
		samples:     make([]Sample, len(d.samples)),
	}
	for i, s := range d.samples {
		out.samples[i] = Sample{Label: s.Label, Data: clone(s.Data)}
	}
	return out
}

// Stats returns a human readable summary.
func (d *Dataset) Stats() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DatasetName:\t%s\n", d.name)
	fmt.Fprintf(&b, "DatasetInfo:\t%s\n", d.info)
	fmt.Fprintf(&b, "Number of Dimensions:\t%d\n", d.dims)
	fmt.Fprintf(&b, "Number of Samples:\t%d\n", len(d.samples))
	fmt.Fprintf(&b, "Number of Classes:\t%d\n", len(d.tracker))
	b.WriteString("ClassStats:\n")
	for _, t := range d.tracker {
		fmt.Fprintf(&b, "ClassLabel:\t%d\tNumber of Samples:\t%d\tClassName:\t%s\n", t.Label, t.Count, t.Name)
	}
	b.WriteString("Dataset Ranges:\n")
	for j, r := range d.Ranges() {
		fmt.Fprintf(&b, "[%d] Min:\t%g\tMax: %g\n", j+1, r.Min, r.Max)
	}
	b.WriteString("Timeseries Lengths:\n")
	for _, s := range d.samples {
		fmt.Fprintf(&b, "ClassLabel: %d Length:\t%d\n", s.Label, s.Len())
	}
	return b.String()
}

// rebuildTracker recounts samples per label, keeping existing order and names
// and dropping labels without samples.
func (d *Dataset) rebuildTracker() {
	counts := make(map[int]int, len(d.tracker))
	for _, s := range d.samples {
		counts[s.Label]++
	}
	kept := d.tracker[:0]
	for _, t := range d.tracker {
		if n := counts[t.Label]; n > 0 {
			t.Count = n
			kept = append(kept, t)
		}
	}
	d.tracker = kept
}
