package tokens_test

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dtwgesture/internal/tokens"
)

func TestReaderErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		read  func(*tokens.Reader) error
		want  error
	}{
		{"expect mismatch", "Foo: 1", func(r *tokens.Reader) error { return r.Expect("Bar:") }, tokens.ErrUnexpectedToken},
		{"expect at eof", "", func(r *tokens.Reader) error { return r.Expect("Bar:") }, io.ErrUnexpectedEOF},
		{"skip to eof", "a b c", func(r *tokens.Reader) error { return r.SkipTo("Template:") }, io.ErrUnexpectedEOF},
		{"bool not a flag", "2", func(r *tokens.Reader) error { _, err := r.Bool(); return err }, tokens.ErrUnexpectedToken},
		{"bool word", "true", func(r *tokens.Reader) error { _, err := r.Bool(); return err }, tokens.ErrUnexpectedToken},
		{"int float", "1.5", func(r *tokens.Reader) error { _, err := r.Int(); return err }, tokens.ErrUnexpectedToken},
		{"float garbage", "1.2.3", func(r *tokens.Reader) error { _, err := r.Float(); return err }, tokens.ErrUnexpectedToken},
		{"key wrong", "Radius: 0.5", func(r *tokens.Reader) error { _, err := r.KeyFloat("Rad:"); return err }, tokens.ErrUnexpectedToken},
		{"key value missing", "Radius:", func(r *tokens.Reader) error { _, err := r.KeyFloat("Radius:"); return err }, io.ErrUnexpectedEOF},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.read(tokens.NewReader(strings.NewReader(tc.input)))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReaderValues(t *testing.T) {
	t.Parallel()
	r := tokens.NewReader(strings.NewReader("junk Template: 3\nUseScaling: 1 off 0\nRadius: 0.25\t-inf"))

	require.NoError(t, r.SkipTo("Template:"))
	n, err := r.Int()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	on, err := r.KeyBool("UseScaling:")
	require.NoError(t, err)
	assert.True(t, on)
	require.NoError(t, r.Expect("off"))
	assert.Equal(t, "off", r.Last())
	on, err = r.Bool()
	require.NoError(t, err)
	assert.False(t, on)

	radius, err := r.KeyFloat("Radius:")
	require.NoError(t, err)
	assert.Equal(t, 0.25, radius)
	v, err := r.Float()
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	_, err = r.Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestWriterLayout(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := tokens.NewWriter(&buf)
	w.Line("Trained:", true, "Dims:", 2, "Radius:", 0.1)
	w.Row([]float64{1, -0.5, 3e-9})
	require.NoError(t, w.Flush())
	assert.Equal(t, "Trained: 1 Dims: 2 Radius: 0.1\n1\t-0.5\t3e-09\n", buf.String())

	r := tokens.NewReader(&buf)
	on, err := r.KeyBool("Trained:")
	require.NoError(t, err)
	assert.True(t, on)
	dims, err := r.KeyInt("Dims:")
	require.NoError(t, err)
	assert.Equal(t, 2, dims)
}
