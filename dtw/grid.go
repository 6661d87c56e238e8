package dtw

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CellState tags one cell of an accumulated-cost Grid.
type CellState uint8

const (
	// Unvisited cells were never needed by the recursion.
	Unvisited CellState = iota
	// Unreachable cells lie outside the band or have no finite predecessor.
	Unreachable
	// Computed cells hold their minimal accumulated cost.
	Computed
)

// Grid is the accumulated-cost matrix of one alignment together with the
// state of every cell.
type Grid struct {
	rows, cols int
	local      *mat.Dense
	cost       []float64
	state      []CellState

	constrain bool
	band      float64 // ceil(min(M, N) * radius)
}

// Accumulate runs the memoised recursion d(M-1, N-1) over the local-cost
// matrix and returns the resulting grid.
//
// Recurrence:
//
//	d(0, 0) = c(0, 0)
//	d(0, n) = c(0, n) + d(0, n-1)
//	d(m, 0) = c(m, 0) + d(m-1, 0)
//	d(m, n) = c(m, n) + min(d(m-1, n-1), d(m-1, n), d(m, n-1))
//
// Predecessors are tried diagonal, up, left; the first strict minimum wins.
// With opts.Constrain, a cell is out of band when
//
//	|n - (N-1)·m/(M-1)| > ceil(min(M, N)·Radius)
//
// and the whole rectangle beyond it (towards the same corner) is marked
// Unreachable at once. A cell with no finite predecessor is Unreachable.
//
// local is only read.
func Accumulate(local *mat.Dense, opts Options) (*Grid, error) {
	if local == nil || local.IsEmpty() {
		return nil, ErrEmptyInput
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m, n := local.Dims()
	g := &Grid{
		rows:      m,
		cols:      n,
		local:     local,
		cost:      make([]float64, m*n),
		state:     make([]CellState, m*n),
		constrain: opts.Constrain,
	}
	if g.constrain {
		g.band = math.Ceil(float64(min(m, n)) * opts.Radius)
	}
	g.fill(m-1, n-1)

	return g, nil
}

// Dims returns the grid size.
func (g *Grid) Dims() (rows, cols int) { return g.rows, g.cols }

// State returns the state of cell (i, j).
func (g *Grid) State(i, j int) CellState { return g.state[i*g.cols+j] }

// At returns the accumulated cost of cell (i, j), or NaN unless it is Computed.
func (g *Grid) At(i, j int) float64 {
	idx := i*g.cols + j
	if g.state[idx] != Computed {
		return math.NaN()
	}
	return g.cost[idx]
}

// Total returns the accumulated cost of the end cell, NaN when it is unreachable.
func (g *Grid) Total() float64 { return g.At(g.rows-1, g.cols-1) }

func (g *Grid) fill(m, n int) float64 {
	idx := m*g.cols + n
	switch g.state[idx] {
	case Unreachable:
		return math.NaN()
	case Computed:
		return g.cost[idx]
	}

	if g.constrain {
		if off := g.offset(m, n); math.Abs(off) > g.band {
			g.markOutside(m, n, off)
			return math.NaN()
		}
	}

	acc := g.local.At(m, n)
	switch {
	case m == 0 && n == 0:
	case m == 0:
		acc += g.fill(m, n-1)
	case n == 0:
		acc += g.fill(m-1, n)
	default:
		best, found := math.MaxFloat64, false
		for _, c := range [3]float64{g.fill(m-1, n-1), g.fill(m-1, n), g.fill(m, n-1)} {
			if c < best {
				best, found = c, true
			}
		}
		if !found {
			acc = math.NaN()
		} else {
			acc += best
		}
	}

	if math.IsNaN(acc) {
		g.state[idx] = Unreachable
		return acc
	}
	g.cost[idx], g.state[idx] = acc, Computed

	return acc
}

// offset is the signed column distance of (m, n) from the diagonal.
func (g *Grid) offset(m, n int) float64 {
	if g.rows == 1 {
		return 0
	}
	return float64(n) - float64(g.cols-1)*float64(m)/float64(g.rows-1)
}

// markOutside marks (m, n) and every Unvisited cell beyond it Unreachable.
// Cells above-right of a cell right of the band are further right still;
// likewise below-left for a cell left of the band.
func (g *Grid) markOutside(m, n int, off float64) {
	r0, r1, c0, c1 := 0, m, n, g.cols
	if off <= 0 {
		r0, r1, c0, c1 = m, g.rows, 0, n
	}
	for i := r0; i < r1; i++ {
		row := g.state[i*g.cols : (i+1)*g.cols]
		for j := c0; j < c1; j++ {
			if row[j] == Unvisited {
				row[j] = Unreachable
			}
		}
	}
	g.state[m*g.cols+n] = Unreachable
}
