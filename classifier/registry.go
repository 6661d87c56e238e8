package classifier

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/timeseries"
)

// Classifier is a trainable time-series classifier.
type Classifier interface {
	Kind() Kind
	Trained() bool
	Train(ds *timeseries.Dataset) error
	Predict(series *mat.Dense) (Prediction, error)
	PredictSample(x []float64) (Prediction, error)
	Reset()
	Clear()
	Save(w io.Writer) error
	Load(r io.Reader) error
}

// Kind names a registered classifier implementation.
type Kind int

const (
	KindDTW Kind = iota + 1
)

type entry struct {
	name string
	ctor func(...Option) Classifier
}

// registry is the fixed kind → constructor table.
var registry = map[Kind]entry{
	KindDTW: {name: "dtw", ctor: func(opts ...Option) Classifier { return NewDTW(opts...) }},
}

func (k Kind) String() string {
	if e, ok := registry[k]; ok {
		return e.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists the registered kinds in ascending order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseKind resolves a kind by name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for k, e := range registry {
		if e.name == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New constructs a classifier of the given kind.
func New(kind Kind, opts ...Option) (Classifier, error) {
	e, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	return e.ctor(opts...), nil
}
