package timeseries_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/timeseries"
)

func sampleDataset(t *testing.T) *timeseries.Dataset {
	t.Helper()
	ds := timeseries.NewDataset(2)
	ds.SetName("wave")
	ds.SetInfo("two hand gestures")
	require.NoError(t, ds.AddSample(1, series(4, 2, 0.5)))
	require.NoError(t, ds.AddSample(2, series(3, 2, -1.25)))
	require.NoError(t, ds.AddSample(1, series(2, 2, 1e-3)))
	return ds
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ds := sampleDataset(t)
	require.NoError(t, ds.SetExternalRanges([]timeseries.MinMax{{Min: -5, Max: 5}, {Min: 0, Max: 20}}, true))

	var buf bytes.Buffer
	require.NoError(t, ds.Save(&buf))
	require.True(t, strings.HasPrefix(buf.String(), timeseries.DatasetHeader+"\n"))

	got, err := timeseries.Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, "wave", got.Name())
	assert.Equal(t, "two hand gestures", got.Info())
	assert.Equal(t, 2, got.Dims())
	assert.True(t, got.UsesExternalRanges())
	assert.Equal(t, ds.Ranges(), got.Ranges())
	assert.Equal(t, ds.ClassTracker(), got.ClassTracker())
	require.Equal(t, ds.Len(), got.Len())
	for i := 0; i < ds.Len(); i++ {
		assert.Equal(t, ds.Sample(i).Label, got.Sample(i).Label)
		assert.True(t, mat.Equal(ds.Sample(i).Data, got.Sample(i).Data), "sample %d", i)
	}
}

func TestSaveLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.grt")
	ds := timeseries.NewDataset(2)
	require.NoError(t, ds.AddSample(3, series(2, 2, 0)))
	require.NoError(t, ds.SaveFile(path))

	got, err := timeseries.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "", got.Name())
	assert.Equal(t, []int{3}, got.ClassLabels())
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, sampleDataset(t).Save(&buf))
	full := buf.String()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong_header", strings.Replace(full, timeseries.DatasetHeader, "SOMETHING_ELSE", 1)},
		{"truncated", full[:len(full)-20]},
		{"bad_marker", strings.Replace(full, "ClassID:", "ClassLabel:", 1)},
		{"count_mismatch", strings.Replace(full, "1\t2\n", "1\t5\n", 1)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := timeseries.Load(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, timeseries.ErrMalformedDataset)
		})
	}
}

func TestReadWriteMatrix(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(3, 2, []float64{1, 2.5, -3, 4, 0.125, 6})
	var buf bytes.Buffer
	require.NoError(t, timeseries.WriteMatrix(&buf, m))
	assert.Equal(t, "1\t2.5\n-3\t4\n0.125\t6\n", buf.String())

	got, err := timeseries.ReadMatrix(strings.NewReader("# header\n" + buf.String() + "\n"))
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, got))

	_, err = timeseries.ReadMatrix(strings.NewReader("1 2\n3\n"))
	assert.ErrorIs(t, err, timeseries.ErrDimensionMismatch)

	_, err = timeseries.ReadMatrix(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, timeseries.ErrEmptySample)
}
