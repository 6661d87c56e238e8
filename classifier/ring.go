package classifier

import "gonum.org/v1/gonum/mat"

// ring is a fixed-capacity circular buffer of feature vectors. It starts
// zero-filled and empty; once full, every push overwrites the oldest vector.
type ring struct {
	data  []float64
	dims  int
	size  int
	head  int
	count int
	full  bool
}

func newRing(size, dims int) *ring {
	return &ring{data: make([]float64, size*dims), dims: dims, size: size}
}

func (r *ring) push(v []float64) {
	copy(r.data[r.head*r.dims:(r.head+1)*r.dims], v)
	r.head = (r.head + 1) % r.size
	if !r.full {
		r.count++
		r.full = r.count == r.size
	}
}

// matrix copies the buffer oldest first into a size×dims matrix.
func (r *ring) matrix() *mat.Dense {
	out := mat.NewDense(r.size, r.dims, nil)
	start := 0
	if r.full {
		start = r.head
	}
	for i := 0; i < r.size; i++ {
		src := ((start + i) % r.size) * r.dims
		out.SetRow(i, r.data[src:src+r.dims])
	}
	return out
}

func (r *ring) reset() {
	for i := range r.data {
		r.data[i] = 0
	}
	r.head, r.count, r.full = 0, 0, false
}
