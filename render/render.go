// Package render draws DTW alignments with gonum/plot.
//
// Alignment overlays one channel of the template and of the query series and
// joins every warp-path pair with a thin connector. WarpPath draws the path
// itself on the (query, template) index grid. Both return a *plot.Plot that
// callers can further decorate; SaveAlignment writes straight to a file whose
// extension (png, svg, pdf, ...) selects the format.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/dtwgesture/dtw"
)

var (
	// ErrEmptyPath is returned for alignments without a warp path.
	ErrEmptyPath = errors.New("render: alignment has no warp path")

	// ErrChannel is returned when the requested channel does not exist.
	ErrChannel = errors.New("render: channel out of range")
)

// Default output size used by SaveAlignment.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var (
	templateColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	queryColor     = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	connectorColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// Alignment plots channel ch of template and query. The query is shifted up
// by the template's range so both curves stay readable, and each step of
// al.Path is drawn as a connector between the matched samples.
func Alignment(template, query *mat.Dense, al dtw.Alignment, ch int) (*plot.Plot, error) {
	if len(al.Path) == 0 {
		return nil, ErrEmptyPath
	}
	a, err := column(template, ch)
	if err != nil {
		return nil, err
	}
	b, err := column(query, ch)
	if err != nil {
		return nil, err
	}
	shift := floats.Max(a) - floats.Min(b) + 1

	p := plot.New()
	p.Title.Text = fmt.Sprintf("DTW alignment (channel %d, distance %.4g)", ch, al.Distance)
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "value"

	for _, s := range al.Path {
		if s.Row >= len(a) || s.Col >= len(b) {
			return nil, fmt.Errorf("render: step (%d, %d) outside %d×%d", s.Row, s.Col, len(a), len(b))
		}
		l, err := plotter.NewLine(plotter.XYs{
			{X: float64(s.Row), Y: a[s.Row]},
			{X: float64(s.Col), Y: b[s.Col] + shift},
		})
		if err != nil {
			return nil, err
		}
		l.Color = connectorColor
		l.Width = vg.Points(0.5)
		p.Add(l)
	}

	tl, err := seriesLine(a, 0, templateColor)
	if err != nil {
		return nil, err
	}
	ql, err := seriesLine(b, shift, queryColor)
	if err != nil {
		return nil, err
	}
	p.Add(tl, ql)
	p.Legend.Add("template", tl)
	p.Legend.Add("query (shifted)", ql)
	p.Legend.Top = true

	return p, nil
}

// WarpPath plots al.Path with the query index on X and the template index on Y.
func WarpPath(al dtw.Alignment) (*plot.Plot, error) {
	if len(al.Path) == 0 {
		return nil, ErrEmptyPath
	}
	pts := make(plotter.XYs, len(al.Path))
	for i, s := range al.Path {
		pts[i] = plotter.XY{X: float64(s.Col), Y: float64(s.Row)}
	}

	p := plot.New()
	p.Title.Text = "Warp path"
	p.X.Label.Text = "query index"
	p.Y.Label.Text = "template index"

	l, sc, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	l.Color = templateColor
	sc.Color = templateColor
	p.Add(l, sc, plotter.NewGrid())
	return p, nil
}

// SaveAlignment renders Alignment to path at the default size.
func SaveAlignment(path string, template, query *mat.Dense, al dtw.Alignment, ch int) error {
	p, err := Alignment(template, query, al, ch)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func column(m *mat.Dense, ch int) ([]float64, error) {
	if m == nil || m.IsEmpty() {
		return nil, dtw.ErrEmptyInput
	}
	r, c := m.Dims()
	if ch < 0 || ch >= c {
		return nil, fmt.Errorf("%w: %d of %d", ErrChannel, ch, c)
	}
	return mat.Col(make([]float64, r), ch, m), nil
}

func seriesLine(v []float64, shift float64, c color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(v))
	for i, y := range v {
		pts[i] = plotter.XY{X: float64(i), Y: y + shift}
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = vg.Points(1.5)
	return l, nil
}
