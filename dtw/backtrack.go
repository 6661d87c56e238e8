package dtw

import "math"

// Backtrack walks g from (M-1, N-1) to (0, 0) and returns the warp path with
// its path-length normalised distance.
//
// On the first row the walk can only go left, on the first column only up.
// Elsewhere it moves to the Computed neighbour with the smallest accumulated
// cost, checking up then left then diagonal; the diagonal wins ties. A walk
// that finds no Computed neighbour, or an end cell that is not finite,
// yields a failed Alignment (Distance = +Inf).
//
// Complexity: O(M+N).
func Backtrack(g *Grid) Alignment {
	i, j := g.rows-1, g.cols-1
	end := g.Total()
	if math.IsNaN(end) || math.IsInf(end, 0) {
		return failed(end)
	}

	path := make([]Step, 0, g.rows+g.cols-1)
	path = append(path, Step{Row: i, Col: j, Cost: end})
	total := end

	for i > 0 || j > 0 {
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			v := math.MaxFloat64
			di, dj := 0, 0
			if g.State(i-1, j) == Computed && g.At(i-1, j) < v {
				v, di, dj = g.At(i-1, j), 1, 0
			}
			if g.State(i, j-1) == Computed && g.At(i, j-1) < v {
				v, di, dj = g.At(i, j-1), 0, 1
			}
			if g.State(i-1, j-1) == Computed && g.At(i-1, j-1) <= v {
				di, dj = 1, 1
			}
			if di == 0 && dj == 0 {
				return failed(end)
			}
			i, j = i-di, j-dj
		}
		c := g.At(i, j)
		total += c
		path = append(path, Step{Row: i, Col: j, Cost: c})
	}

	dist := total / float64(len(path))
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return failed(end)
	}

	return Alignment{Distance: dist, Accumulated: end, Path: path}
}
