package dtw

import (
	"fmt"
	"math"
	"strings"
)

// DistanceMethod selects the per-frame local cost.
//
//   - Absolute    : Σ_k |a_k − b_k|
//   - Euclidean   : sqrt(Σ_k (a_k − b_k)²)
//   - NormAbsolute: Σ_k |a_k − b_k| / N, N = length of the second series
//
// The numeric values are persisted in model files and must not change.
type DistanceMethod int

const (
	Absolute DistanceMethod = iota
	Euclidean
	NormAbsolute
)

var methodNames = [...]string{"absolute", "euclidean", "norm_absolute"}

// Valid reports whether m is one of the enumerated methods.
func (m DistanceMethod) Valid() bool {
	return m >= Absolute && m <= NormAbsolute
}

func (m DistanceMethod) String() string {
	if !m.Valid() {
		return fmt.Sprintf("DistanceMethod(%d)", int(m))
	}
	return methodNames[m]
}

// ParseDistanceMethod accepts the names printed by String, case-insensitively.
func ParseDistanceMethod(s string) (DistanceMethod, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range methodNames {
		if name == want {
			return DistanceMethod(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDistanceMethod, s)
}

// DefaultRadius is the band radius used when none is configured.
const DefaultRadius = 0.2

// Options configures an alignment.
//
// Fields:
//   - Method   : local cost between two frames.
//   - Constrain: restrict the warp path to a band around the diagonal.
//   - Radius   : band half-width as a fraction of min(M, N), in (0, 1].
//     Ignored unless Constrain is set.
type Options struct {
	Method    DistanceMethod
	Constrain bool
	Radius    float64
}

// DefaultOptions returns Euclidean costs with no band constraint.
func DefaultOptions() Options {
	return Options{
		Method: Euclidean,
		Radius: DefaultRadius,
	}
}

// Validate checks the method and, when constrained, the radius.
func (o Options) Validate() error {
	if !o.Method.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDistanceMethod, int(o.Method))
	}
	if o.Constrain && (!(o.Radius > 0) || o.Radius > 1) {
		return fmt.Errorf("%w: %g", ErrBadRadius, o.Radius)
	}
	return nil
}

// Step is one cell of a warp path with its accumulated cost.
type Step struct {
	Row  int
	Col  int
	Cost float64
}

// Alignment is the result of aligning two series.
//
// Path runs from (M-1, N-1) back to (0, 0). Distance is the sum of the
// accumulated costs along Path divided by len(Path). Accumulated is the
// minimal cumulative cost of the end cell.
//
// On numerical failure Distance is +Inf and Path is nil.
type Alignment struct {
	Distance    float64
	Accumulated float64
	Path        []Step
}

// OK reports whether the alignment produced a finite distance.
func (a Alignment) OK() bool {
	return !math.IsInf(a.Distance, 0) && !math.IsNaN(a.Distance)
}

func failed(accumulated float64) Alignment {
	return Alignment{Distance: math.Inf(1), Accumulated: accumulated}
}
