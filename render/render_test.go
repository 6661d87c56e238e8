package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/dtw"
	"github.com/katalvlaran/dtwgesture/render"
)

func aligned(t *testing.T) (*mat.Dense, *mat.Dense, dtw.Alignment) {
	t.Helper()
	a := mat.NewDense(5, 2, []float64{0, 0, 1, 1, 2, 4, 1, 1, 0, 0})
	b := mat.NewDense(6, 2, []float64{0, 0, 0, 0, 1, 1, 2, 4, 1, 1, 0, 0})
	al, err := dtw.Align(a, b, dtw.DefaultOptions())
	require.NoError(t, err)
	require.True(t, al.OK())
	return a, b, al
}

func TestAlignment(t *testing.T) {
	a, b, al := aligned(t)
	p, err := render.Alignment(a, b, al, 1)
	require.NoError(t, err)
	require.Contains(t, p.Title.Text, "channel 1")

	_, err = render.Alignment(a, b, al, 2)
	require.ErrorIs(t, err, render.ErrChannel)
	_, err = render.Alignment(a, b, dtw.Alignment{}, 0)
	require.ErrorIs(t, err, render.ErrEmptyPath)
	_, err = render.Alignment(nil, b, al, 0)
	require.ErrorIs(t, err, dtw.ErrEmptyInput)
}

func TestWarpPath(t *testing.T) {
	_, _, al := aligned(t)
	p, err := render.WarpPath(al)
	require.NoError(t, err)
	require.Equal(t, "Warp path", p.Title.Text)
}

func TestSaveAlignment(t *testing.T) {
	a, b, al := aligned(t)
	dir := t.TempDir()
	for _, name := range []string{"align.png", "align.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, render.SaveAlignment(path, a, b, al, 0))
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
}
